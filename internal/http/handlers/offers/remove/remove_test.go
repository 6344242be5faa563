package remove

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, who models.Identity, id int64) error {
	return m.Called(ctx, who, id).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	owner := models.Identity{UserID: 1, Type: models.ProfileBusiness}

	tests := []struct {
		name       string
		setupMock  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "deleted",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, owner, int64(5)).Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "not the owner",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, owner, int64(5)).
					Return(models.Forbidden("You do not have permission to delete this offer.")).Once()
			},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"detail":"You do not have permission to delete this offer."}`,
		},
		{
			name: "missing",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, owner, int64(5)).Return(models.NotFound(models.MsgNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"Not found."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodDelete, "/api/offers/5/", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "5")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithIdentity(ctx, owner))

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}
