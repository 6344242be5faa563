package list

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/models"
)

type ReviewServiceMock struct {
	mock.Mock
}

func (m *ReviewServiceMock) List(ctx context.Context, who models.Identity, f models.ReviewFilter) ([]models.Review, error) {
	args := m.Called(ctx, who, f)
	reviews, _ := args.Get(0).([]models.Review)
	return reviews, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	customer := models.Identity{UserID: 2, Type: models.ProfileCustomer}
	business := models.Identity{UserID: 1, Type: models.ProfileBusiness}
	biz := int64(1)

	tests := []struct {
		name       string
		who        models.Identity
		query      string
		setupMock  func(*ReviewServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "filtered by business, best first",
			who:   customer,
			query: "?business_user_id=1&ordering=-rating",
			setupMock: func(m *ReviewServiceMock) {
				m.On("List", mock.Anything, customer, models.ReviewFilter{
					BusinessUserID: &biz, Ordering: "rating", Desc: true,
				}).Return([]models.Review{{ID: 3, BusinessUser: 1, Reviewer: 2, Rating: 5}}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody: `[{"id":3,"business_user":1,"reviewer":2,"rating":5,"description":"",
				"created_at":"0001-01-01T00:00:00Z","updated_at":"0001-01-01T00:00:00Z"}]`,
		},
		{
			name:  "no reviews",
			who:   customer,
			query: "",
			setupMock: func(m *ReviewServiceMock) {
				m.On("List", mock.Anything, customer, models.ReviewFilter{Ordering: "updated_at"}).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "non-numeric reviewer",
			who:        customer,
			query:      "?reviewer_id=me",
			setupMock:  func(_ *ReviewServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"reviewer_id":["A valid integer is required."]}`,
		},
		{
			name:  "business forbidden",
			who:   business,
			query: "",
			setupMock: func(m *ReviewServiceMock) {
				m.On("List", mock.Anything, business, mock.Anything).
					Return(nil, models.Forbidden(models.MsgPermissionDenied)).Once()
			},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"detail":"You do not have permission to perform this action."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ReviewServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/reviews/"+tt.query, nil)
			req = req.WithContext(middlewarectx.WithIdentity(req.Context(), tt.who))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestParseFilter_UnknownOrderingIgnored(t *testing.T) {
	values, err := url.ParseQuery("ordering=-description&page=2&page_size=3")
	require.NoError(t, err)

	f, err := ParseFilter(values)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewFilter{Ordering: "updated_at", Page: 2, PageSize: 3}, f)
}
