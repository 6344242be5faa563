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

type OrderServiceMock struct {
	mock.Mock
}

func (m *OrderServiceMock) Delete(ctx context.Context, who models.Identity, id int64) error {
	return m.Called(ctx, who, id).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	staff := models.Identity{UserID: 99, IsStaff: true}
	seller := models.Identity{UserID: 1, Type: models.ProfileBusiness}

	tests := []struct {
		name       string
		who        models.Identity
		id         string
		setupMock  func(*OrderServiceMock)
		wantStatus int
	}{
		{
			name: "staff deletes",
			who:  staff,
			id:   "5",
			setupMock: func(m *OrderServiceMock) {
				m.On("Delete", mock.Anything, staff, int64(5)).Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "seller forbidden",
			who:  seller,
			id:   "5",
			setupMock: func(m *OrderServiceMock) {
				m.On("Delete", mock.Anything, seller, int64(5)).Return(models.Forbidden(models.MsgPermissionDenied)).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "bad id",
			who:        staff,
			id:         "five",
			setupMock:  func(_ *OrderServiceMock) {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(OrderServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodDelete, "/api/orders/"+tt.id+"/", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithIdentity(ctx, tt.who))

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
