package file

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/models"
)

type ProfileServiceMock struct {
	mock.Mock
}

func (m *ProfileServiceMock) UploadFile(ctx context.Context, who models.Identity, id int64, file models.FileUpload) (*models.Profile, error) {
	args := m.Called(ctx, who, id, file.Filename, file.ContentType)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

var owner = models.Identity{UserID: 2, Type: models.ProfileCustomer}

func withRoute(req *http.Request) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("pk", "2")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(middlewarectx.WithIdentity(ctx, owner))
}

func uploadRequest(t *testing.T, field string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profile/2/file/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return withRoute(req)
}

func TestFileHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("uploaded", func(t *testing.T) {
		svc := new(ProfileServiceMock)
		svc.On("UploadFile", mock.Anything, owner, int64(2), "avatar.png", "application/octet-stream").
			Return(&models.Profile{User: 2, File: "http://files.local/profiles/2/avatar.png", Type: models.ProfileCustomer}, nil).Once()

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, uploadRequest(t, "file"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"file":"http://files.local/profiles/2/avatar.png"`)
		svc.AssertExpectations(t)
	})

	t.Run("wrong field", func(t *testing.T) {
		w := httptest.NewRecorder()
		New(logger, new(ProfileServiceMock)).ServeHTTP(w, uploadRequest(t, "avatar"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"file":["No file was submitted."]}`, w.Body.String())
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/profile/2/file/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		New(logger, new(ProfileServiceMock)).ServeHTTP(w, withRoute(req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"file":["The submitted data was not a file."]}`, w.Body.String())
	})

	t.Run("storage not configured", func(t *testing.T) {
		svc := new(ProfileServiceMock)
		svc.On("UploadFile", mock.Anything, owner, int64(2), "avatar.png", mock.Anything).
			Return(nil, models.ErrUnavailable).Once()

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, uploadRequest(t, "file"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"detail":"File storage is not configured."}`, w.Body.String())
	})
}
