// Package read реализует HTTP-обработчик получения отзыва по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает запросы на получение отзыва.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение отзыва.
type Service interface {
	Get(ctx context.Context, who models.Identity, id int64) (*models.Review, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить отзыв
// @Tags Reviews
// @Produce  json
// @Security TokenAuth
// @Param id path int true "ID отзыва"
// @Success 200 {object} models.Review
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Router /reviews/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reviews.read"

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
	review, err := h.service.Get(r.Context(), who, id)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, review)
}
