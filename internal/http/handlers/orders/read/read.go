// Package read реализует HTTP-обработчик получения заказа по ID.
package read

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

// Handler обрабатывает запросы на получение заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение заказа.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Order, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить заказ
// @Tags Orders
// @Produce  json
// @Security TokenAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} models.Order
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Router /orders/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "id")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, order)
}
