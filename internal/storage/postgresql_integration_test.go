package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/coderr/internal/models"
)

func tier(t models.OfferType, price string, days int) models.OfferDetailInput {
	return models.OfferDetailInput{
		Title:              string(t),
		Revisions:          1,
		DeliveryTimeInDays: days,
		Price:              decimal.RequireFromString(price),
		Features:           []string{"logo"},
		OfferType:          t,
	}
}

func TestStorage_Integration(t *testing.T) {
	s, factory := setupTestDatabase(t)
	ctx := context.Background()

	business := factory.CreateUser(t, "biz", models.ProfileBusiness)
	other := factory.CreateUser(t, "biz2", models.ProfileBusiness)
	customer := factory.CreateUser(t, "cust", models.ProfileCustomer)

	fast := factory.CreateOffer(t, business, "Fast website",
		tier(models.OfferBasic, "100.00", 2), tier(models.OfferPremium, "500.00", 7))
	slow := factory.CreateOffer(t, other, "Slow logo",
		tier(models.OfferBasic, "50.00", 5))

	t.Run("register user rejects duplicate username without writing rows", func(t *testing.T) {
		before := factory.CountRows(t, "users")
		_, _, err := s.RegisterUser(ctx, models.Registration{
			Username: "biz", Email: "new@example.com", PasswordHash: "h", Type: models.ProfileCustomer,
		}, func(models.User) (string, error) { return "key", nil })
		assert.True(t, errors.Is(err, ErrUsernameExists))
		assert.Equal(t, before, factory.CountRows(t, "users"))
	})

	t.Run("register user creates profile and token", func(t *testing.T) {
		u, key, err := s.RegisterUser(ctx, models.Registration{
			Username: "fresh", Email: "fresh@example.com", PasswordHash: "h", Type: models.ProfileCustomer,
		}, func(u models.User) (string, error) { return "token-fresh", nil })
		require.NoError(t, err)
		assert.Equal(t, "token-fresh", key)

		id, err := s.IdentityByToken(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, u.ID, id.UserID)
		assert.Equal(t, models.ProfileCustomer, id.Type)
	})

	t.Run("offer aggregates and max delivery filter", func(t *testing.T) {
		maxDays := 3
		page, err := s.ListOffers(ctx, models.OfferFilter{MaxDeliveryTime: &maxDays, Page: 1, PageSize: 6})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, fast.ID, page.Items[0].ID)
		assert.True(t, decimal.RequireFromString("100").Equal(page.Items[0].MinPrice))
		assert.Equal(t, 2, page.Items[0].MinDeliveryTime)
		assert.Len(t, page.Items[0].Details, 2)
		assert.Equal(t, "biz", page.Items[0].UserDetails.Username)
	})

	t.Run("offer ordering by min price descending", func(t *testing.T) {
		page, err := s.ListOffers(ctx, models.OfferFilter{Ordering: models.OrderByMinPrice, Desc: true, Page: 1, PageSize: 6})
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, fast.ID, page.Items[0].ID)
		assert.Equal(t, slow.ID, page.Items[1].ID)
	})

	t.Run("min price filters on cheapest tier", func(t *testing.T) {
		minPrice := decimal.RequireFromString("60")
		page, err := s.ListOffers(ctx, models.OfferFilter{MinPrice: &minPrice, Page: 1, PageSize: 6})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, fast.ID, page.Items[0].ID)
	})

	t.Run("owner scoping hides other sellers", func(t *testing.T) {
		page, err := s.ListOffers(ctx, models.OfferFilter{OwnerID: &other, Page: 1, PageSize: 6})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, slow.ID, page.Items[0].ID)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		page, err := s.ListOffers(ctx, models.OfferFilter{Search: "%", Page: 1, PageSize: 6})
		require.NoError(t, err)
		assert.Equal(t, 0, page.Count)

		page, err = s.ListOffers(ctx, models.OfferFilter{Search: "logo", Page: 1, PageSize: 6})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, slow.ID, page.Items[0].ID)
	})

	t.Run("order denormalizes business user and is scoped", func(t *testing.T) {
		order, err := s.CreateOrder(ctx, customer, fast.Details[0].ID)
		require.NoError(t, err)
		assert.Equal(t, business, order.BusinessUser)
		assert.Equal(t, models.OrderInProgress, order.Status)

		mine, err := s.ListOrdersForUser(ctx, business)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		theirs, err := s.ListOrdersForUser(ctx, other)
		require.NoError(t, err)
		assert.Empty(t, theirs)

		_, err = s.UpdateOrderStatus(ctx, order.ID, models.OrderCompleted, models.OrderCancelled)
		assert.True(t, errors.Is(err, ErrNotFound))

		updated, err := s.UpdateOrderStatus(ctx, order.ID, models.OrderInProgress, models.OrderCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.OrderCompleted, updated.Status)

		completed := models.OrderCompleted
		n, err := s.CountOrders(ctx, business, &completed)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("order count without status covers every state", func(t *testing.T) {
		_, err := s.CreateOrder(ctx, customer, fast.Details[1].ID)
		require.NoError(t, err)
		cancelled, err := s.CreateOrder(ctx, customer, fast.Details[0].ID)
		require.NoError(t, err)
		_, err = s.UpdateOrderStatus(ctx, cancelled.ID, models.OrderInProgress, models.OrderCancelled)
		require.NoError(t, err)

		total, err := s.CountOrders(ctx, business, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, total)

		inProgress := models.OrderInProgress
		open, err := s.CountOrders(ctx, business, &inProgress)
		require.NoError(t, err)
		assert.Equal(t, 1, open)
	})

	t.Run("review uniqueness per reviewer and business", func(t *testing.T) {
		_, err := s.CreateReview(ctx, customer, models.ReviewInput{BusinessUser: business, Rating: 4})
		require.NoError(t, err)
		_, err = s.CreateReview(ctx, customer, models.ReviewInput{BusinessUser: business, Rating: 5})
		assert.True(t, errors.Is(err, ErrReviewExists))
	})

	t.Run("base info", func(t *testing.T) {
		info, err := s.BaseInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, info.ReviewCount)
		assert.InDelta(t, 4.0, info.AverageRating, 0.001)
		assert.Equal(t, 2, info.BusinessProfileCount)
		assert.Equal(t, 2, info.OfferCount)
	})

	t.Run("deleting offer cascades to details and orders", func(t *testing.T) {
		require.NoError(t, s.DeleteOffer(ctx, fast.ID))
		_, err := s.GetOfferDetail(ctx, fast.Details[0].ID)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, 0, factory.CountRows(t, "orders"))
	})
}
