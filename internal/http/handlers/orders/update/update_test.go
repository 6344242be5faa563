package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
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

func (m *OrderServiceMock) UpdateStatus(ctx context.Context, who models.Identity, id int64, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, who, id, status)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seller := models.Identity{UserID: 1, Type: models.ProfileBusiness}

	tests := []struct {
		name       string
		body       string
		setupMock  func(*OrderServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "completed",
			body: `{"status":"completed"}`,
			setupMock: func(m *OrderServiceMock) {
				m.On("UpdateStatus", mock.Anything, seller, int64(5), models.OrderCompleted).
					Return(&models.Order{ID: 5, Status: models.OrderCompleted}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"completed"`,
		},
		{
			name:       "other fields rejected",
			body:       `{"status":"completed","price":"1.00","title":"x"}`,
			setupMock:  func(_ *OrderServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"price":["Only status may be updated."],"title":["Only status may be updated."]}`,
		},
		{
			name:       "missing status",
			body:       `{}`,
			setupMock:  func(_ *OrderServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":["This field is required."]}`,
		},
		{
			name:       "status not a string",
			body:       `{"status":3}`,
			setupMock:  func(_ *OrderServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":["Not a valid string."]}`,
		},
		{
			name: "illegal transition",
			body: `{"status":"in_progress"}`,
			setupMock: func(m *OrderServiceMock) {
				m.On("UpdateStatus", mock.Anything, seller, int64(5), models.OrderInProgress).
					Return(nil, models.FieldError("status", "Cannot change status from completed to in_progress.")).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":["Cannot change status from completed to in_progress."]}`,
		},
		{
			name: "customer forbidden",
			body: `{"status":"cancelled"}`,
			setupMock: func(m *OrderServiceMock) {
				m.On("UpdateStatus", mock.Anything, seller, int64(5), models.OrderCancelled).
					Return(nil, models.Forbidden(models.MsgPermissionDenied)).Once()
			},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"detail":"You do not have permission to perform this action."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(OrderServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPatch, "/api/orders/5/", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "5")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithIdentity(ctx, seller))

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if strings.HasPrefix(tt.wantBody, "{") {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}
