package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/models"
)

type OfferServiceMock struct {
	mock.Mock
}

func (m *OfferServiceMock) List(ctx context.Context, who *models.Identity, f models.OfferFilter) (*models.OfferPage, error) {
	args := m.Called(ctx, who, f)
	page, _ := args.Get(0).(*models.OfferPage)
	return page, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func offers(n int) []models.Offer {
	out := make([]models.Offer, 0, n)
	for i := range n {
		out = append(out, models.Offer{
			ID:      int64(i + 1),
			User:    1,
			Title:   "Logo",
			Details: []models.OfferDetail{{ID: int64(10 + i), Price: decimal.NewFromInt(100)}},
		})
	}
	return out
}

func TestListHandler_ServeHTTP(t *testing.T) {
	t.Run("first page links to second", func(t *testing.T) {
		svc := new(OfferServiceMock)
		svc.On("List", mock.Anything, (*models.Identity)(nil), models.OfferFilter{
			Ordering: models.OrderByUpdatedAt, Page: 1,
		}).Return(&models.OfferPage{Count: 8, Items: offers(6)}, nil).Once()

		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/offers/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var page Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 8, page.Count)
		require.NotNil(t, page.Next)
		assert.Equal(t, "http://example.com/api/offers/?page=2", *page.Next)
		assert.Nil(t, page.Previous)
		require.Len(t, page.Results, 6)
		assert.Equal(t, "/offerdetails/10/", page.Results[0].Details[0].URL)
		svc.AssertExpectations(t)
	})

	t.Run("last page links back without page param", func(t *testing.T) {
		svc := new(OfferServiceMock)
		svc.On("List", mock.Anything, (*models.Identity)(nil), models.OfferFilter{
			Ordering: models.OrderByMinPrice, Desc: true, Page: 2,
		}).Return(&models.OfferPage{Count: 8, Items: offers(2)}, nil).Once()

		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec,
			httptest.NewRequest(http.MethodGet, "/api/offers/?page=2&ordering=-min_price", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var page Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Nil(t, page.Next)
		require.NotNil(t, page.Previous)
		assert.Equal(t, "http://example.com/api/offers/?ordering=-min_price", *page.Previous)
	})

	t.Run("business caller is passed through", func(t *testing.T) {
		svc := new(OfferServiceMock)
		who := models.Identity{UserID: 1, Type: models.ProfileBusiness}
		svc.On("List", mock.Anything, &who, mock.Anything).
			Return(&models.OfferPage{Count: 0, Items: nil}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/offers/", nil)
		req = req.WithContext(middlewarectx.WithIdentity(req.Context(), who))
		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("non-numeric filter", func(t *testing.T) {
		svc := new(OfferServiceMock)
		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec,
			httptest.NewRequest(http.MethodGet, "/api/offers/?min_price=cheap&creator_id=x", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"min_price":["A valid number is required."],"creator_id":["A valid integer is required."]}`,
			rec.Body.String())
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid page", func(t *testing.T) {
		svc := new(OfferServiceMock)
		svc.On("List", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, models.NotFound("Invalid page.")).Once()

		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/offers/?page=9", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"detail":"Invalid page."}`, rec.Body.String())
	})
}

func TestParseFilter(t *testing.T) {
	maxDays := 7
	creator := int64(3)
	price := decimal.RequireFromString("50")

	tests := []struct {
		name  string
		query string
		want  models.OfferFilter
	}{
		{
			name:  "defaults",
			query: "",
			want:  models.OfferFilter{Ordering: models.OrderByUpdatedAt, Page: 1},
		},
		{
			name:  "all filters",
			query: "search=+logo+&min_price=50&max_delivery_time=7&creator_id=3&page=2&page_size=10",
			want: models.OfferFilter{
				Search: "logo", MinPrice: &price, MaxDeliveryTime: &maxDays, CreatorID: &creator,
				Ordering: models.OrderByUpdatedAt, Page: 2, PageSize: 10,
			},
		},
		{
			name:  "alias ordering descending",
			query: "ordering=-max_delivery_time",
			want:  models.OfferFilter{Ordering: models.OrderByMinDeliveryTime, Desc: true, Page: 1},
		},
		{
			name:  "unknown ordering ignored",
			query: "ordering=-title",
			want:  models.OfferFilter{Ordering: models.OrderByUpdatedAt, Page: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseFilter(values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
