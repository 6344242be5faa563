// Package update реализует HTTP-обработчик изменения отзыва его автором.
package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает PATCH-запросы к отзыву.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает обновление отзыва.
type Service interface {
	Update(ctx context.Context, who models.Identity, id int64, patch models.ReviewPatch) (*models.Review, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Изменить отзыв
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Security TokenAuth
// @Param id path int true "ID отзыва"
// @Param request body models.ReviewPatch true "Оценка и/или текст"
// @Success 200 {object} models.Review
// @Failure 400 {object} map[string][]string "Ошибки по полям"
// @Failure 403 {object} response.ErrorResponse "Не автор отзыва"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Router /reviews/{id}/ [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reviews.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "id")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	var patch models.ReviewPatch
	if err := request.DecodeJSON(r, &patch); err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if err := request.Validate(h.validate, patch); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	who, _ := middlewarectx.IdentityFrom(r.Context())
	review, err := h.service.Update(r.Context(), who, id, patch)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("review updated", slog.Int64("id", id))
	render.JSON(w, r, review)
}
