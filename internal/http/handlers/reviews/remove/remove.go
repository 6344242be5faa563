// Package remove реализует HTTP-обработчик удаления отзыва его автором.
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

// Handler обрабатывает запросы на удаление отзыва.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает удаление отзыва.
type Service interface {
	Delete(ctx context.Context, who models.Identity, id int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить отзыв
// @Tags Reviews
// @Security TokenAuth
// @Param id path int true "ID отзыва"
// @Success 204 "Отзыв удалён"
// @Failure 403 {object} response.ErrorResponse "Не автор отзыва"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Router /reviews/{id}/ [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reviews.remove"

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

	log.Info("review deleted", slog.Int64("id", id))
	response.NoContent(w, r)
}
