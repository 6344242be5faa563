package create

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/models"
)

type OrderServiceMock struct {
	mock.Mock
}

func (m *OrderServiceMock) Create(ctx context.Context, who models.Identity, offerDetailID int64) (*models.Order, error) {
	args := m.Called(ctx, who, offerDetailID)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	customer := models.Identity{UserID: 2, Type: models.ProfileCustomer}
	business := models.Identity{UserID: 1, Type: models.ProfileBusiness}
	ts := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		who        models.Identity
		body       string
		setupMock  func(*OrderServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "customer orders",
			who:  customer,
			body: `{"offer_detail_id": 10}`,
			setupMock: func(m *OrderServiceMock) {
				m.On("Create", mock.Anything, customer, int64(10)).Return(&models.Order{
					ID: 3, CustomerUser: 2, BusinessUser: 1, Title: "Basic", Revisions: 2,
					DeliveryTimeInDays: 5, Price: decimal.NewFromInt(150), Features: []string{"Logo"},
					OfferType: models.OfferBasic, Status: models.OrderInProgress, CreatedAt: ts, UpdatedAt: ts,
				}, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody: `{"id":3,"customer_user":2,"business_user":1,"title":"Basic","revisions":2,
				"delivery_time_in_days":5,"price":"150","features":["Logo"],"offer_type":"basic",
				"status":"in_progress","created_at":"2025-05-02T09:30:00Z","updated_at":"2025-05-02T09:30:00Z"}`,
		},
		{
			name:       "business forbidden",
			who:        business,
			body:       `{"offer_detail_id": 10}`,
			setupMock:  func(_ *OrderServiceMock) {},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"detail":"You do not have permission to perform this action."}`,
		},
		{
			name:       "missing detail id",
			who:        customer,
			body:       `{}`,
			setupMock:  func(_ *OrderServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"offer_detail_id":["This field is required."]}`,
		},
		{
			name: "unknown detail",
			who:  customer,
			body: `{"offer_detail_id": 404}`,
			setupMock: func(m *OrderServiceMock) {
				m.On("Create", mock.Anything, customer, int64(404)).
					Return(nil, models.NotFound("Offer detail not found.")).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"Offer detail not found."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(OrderServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/orders/", strings.NewReader(tt.body))
			req = req.WithContext(middlewarectx.WithIdentity(req.Context(), tt.who))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
