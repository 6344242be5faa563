package read

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coderr/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetDetail(ctx context.Context, id int64) (*models.OfferDetail, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.OfferDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		id         string
		setupMock  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "found",
			id:   "9",
			setupMock: func(m *MockService) {
				m.On("GetDetail", mock.Anything, int64(9)).Return(&models.OfferDetail{
					ID: 9, Title: "Premium", Revisions: -1, DeliveryTimeInDays: 2,
					Price: decimal.RequireFromString("499.99"), Features: []string{"Source files"},
					OfferType: models.OfferPremium,
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody: `{"id":9,"title":"Premium","revisions":-1,"delivery_time_in_days":2,
				"price":"499.99","features":["Source files"],"offer_type":"premium"}`,
		},
		{
			name: "missing",
			id:   "10",
			setupMock: func(m *MockService) {
				m.On("GetDetail", mock.Anything, int64(10)).Return(nil, models.NotFound(models.MsgNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"Not found."}`,
		},
		{
			name: "db failure",
			id:   "11",
			setupMock: func(m *MockService) {
				m.On("GetDetail", mock.Anything, int64(11)).Return(nil, errors.New("conn reset")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"Internal server error."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/offerdetails/"+tt.id+"/", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
