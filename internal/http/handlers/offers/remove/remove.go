// Package remove реализует HTTP-обработчик удаления предложения владельцем.
// Вместе с предложением удаляются его уровни и заказы на них.
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

// Handler обрабатывает запросы на удаление предложения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает удаление предложения.
type Service interface {
	Delete(ctx context.Context, who models.Identity, id int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить предложение
// @Tags Offers
// @Security TokenAuth
// @Param id path int true "ID предложения"
// @Success 204 "Предложение удалено"
// @Failure 403 {object} response.ErrorResponse "Не владелец предложения"
// @Failure 404 {object} response.ErrorResponse "Предложение не найдено"
// @Router /offers/{id}/ [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.remove"

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

	log.Info("offer deleted", slog.Int64("id", id))
	response.NoContent(w, r)
}
