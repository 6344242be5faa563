// Package remove реализует HTTP-обработчик удаления заказа сотрудником платформы.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает запросы на удаление заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает удаление заказа.
type Service interface {
	Delete(ctx context.Context, who models.Identity, id int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить заказ
// @Tags Orders
// @Security TokenAuth
// @Param id path int true "ID заказа"
// @Success 204 "Заказ удалён"
// @Failure 403 {object} response.ErrorResponse "Только для сотрудников"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Router /orders/{id}/ [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "id")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	who, _ := middlewarectx.IdentityFrom(r.Context())
	if err := h.service.Delete(r.Context(), who, id); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("order deleted", slog.Int64("id", id), slog.Int64("by", who.UserID))
	response.NoContent(w, r)
}
