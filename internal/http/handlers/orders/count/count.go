// Package count реализует HTTP-обработчики счётчиков заказов продавца:
// всех (/order-count/) и выполненных (/completed-order-count/).
package count

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Service описывает подсчёт заказов продавца.
type Service interface {
	CountTotal(ctx context.Context, businessUserID int64) (int, error)
	CountCompleted(ctx context.Context, businessUserID int64) (int, error)
}

// Handler отдаёт один из счётчиков под ключом key.
type Handler struct {
	log   *slog.Logger
	key   string
	count func(ctx context.Context, businessUserID int64) (int, error)
}

// NewTotal создаёт обработчик общего числа заказов.
func NewTotal(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, key: "order_count", count: service.CountTotal}
}

// NewCompleted создаёт обработчик числа выполненных заказов.
func NewCompleted(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, key: "completed_order_count", count: service.CountCompleted}
}

// ServeHTTP godoc
// @Summary Счётчик заказов продавца
// @Description /order-count/ считает заказы в любом статусе, /completed-order-count/ только completed.
// @Tags Orders
// @Produce  json
// @Security TokenAuth
// @Param business_user_id path int true "ID продавца"
// @Success 200 {object} map[string]int
// @Failure 404 {object} map[string]string "Продавец не найден"
// @Router /order-count/{business_user_id}/ [get]
// @Router /completed-order-count/{business_user_id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.count"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "business_user_id")
	if err != nil {
		response.WriteError(w, r, log, &models.NotFoundError{Key: "error", Message: "Business user not found."})
		return
	}

	n, err := h.count(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, map[string]int{h.key: n})
}
