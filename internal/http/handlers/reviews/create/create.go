// Package create реализует HTTP-обработчик создания отзыва покупателем.
//
// Автором отзыва всегда становится текущий пользователь. Один покупатель
// может оставить продавцу только один отзыв.
package create

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

// Handler обрабатывает запросы на создание отзыва.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает создание отзыва.
type Service interface {
	Create(ctx context.Context, who models.Identity, in models.ReviewInput) (*models.Review, error)
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
// @Summary Оставить отзыв
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Security TokenAuth
// @Param request body models.ReviewInput true "Отзыв"
// @Success 201 {object} models.Review
// @Failure 400 {object} map[string][]string "Ошибки по полям или повторный отзыв"
// @Failure 403 {object} response.ErrorResponse "Нет профиля покупателя"
// @Router /reviews/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reviews.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	who, _ := middlewarectx.IdentityFrom(r.Context())
	if !who.IsCustomer() {
		response.WriteError(w, r, log, models.ErrForbidden)
		return
	}

	var in models.ReviewInput
	if err := request.DecodeJSON(r, &in); err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if err := request.Validate(h.validate, in); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	review, err := h.service.Create(r.Context(), who, in)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("review created", slog.Int64("id", review.ID), slog.Int64("business_user", review.BusinessUser))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, review)
}
