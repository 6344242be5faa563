// Package list реализует HTTP-обработчик списка заказов участника,
// в которых он покупатель или продавец. Новые заказы идут первыми.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает запросы к списку заказов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку заказов участника.
type Service interface {
	List(ctx context.Context, who models.Identity) ([]models.Order, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Заказы текущего пользователя
// @Tags Orders
// @Produce  json
// @Security TokenAuth
// @Success 200 {array} models.Order
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /orders/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	who, _ := middlewarectx.IdentityFrom(r.Context())
	orders, err := h.service.List(r.Context(), who)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	log.Debug("orders listed", slog.Int("count", len(orders)))
	render.JSON(w, r, orders)
}
