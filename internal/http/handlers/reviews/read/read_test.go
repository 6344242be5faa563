package read

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

type ReviewServiceMock struct {
	mock.Mock
}

func (m *ReviewServiceMock) Get(ctx context.Context, who models.Identity, id int64) (*models.Review, error) {
	args := m.Called(ctx, who, id)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	who := models.Identity{UserID: 2, Type: models.ProfileCustomer}

	tests := []struct {
		name       string
		id         string
		setupMock  func(*ReviewServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "found",
			id:   "5",
			setupMock: func(m *ReviewServiceMock) {
				m.On("Get", mock.Anything, who, int64(5)).
					Return(&models.Review{ID: 5, BusinessUser: 1, Reviewer: 2, Rating: 3}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"rating":3`,
		},
		{
			name: "missing",
			id:   "6",
			setupMock: func(m *ReviewServiceMock) {
				m.On("Get", mock.Anything, who, int64(6)).Return(nil, models.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"detail":"Not found."`,
		},
		{
			name:       "bad id",
			id:         "x",
			setupMock:  func(_ *ReviewServiceMock) {},
			wantStatus: http.StatusNotFound,
			wantBody:   `"detail":"Not found."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ReviewServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/reviews/"+tt.id+"/", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithIdentity(ctx, who))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
