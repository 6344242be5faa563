// Package business реализует HTTP-обработчик списка профилей продавцов.
package business

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает запросы к списку продавцов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку профилей продавцов.
type Service interface {
	ListBusiness(ctx context.Context) ([]models.BusinessProfile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Профили продавцов
// @Tags Profiles
// @Produce  json
// @Security TokenAuth
// @Success 200 {array} models.BusinessProfile
// @Failure 404 {object} map[string]string "Продавцов нет"
// @Router /profiles/business/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profiles.business"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profiles, err := h.service.ListBusiness(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, profiles)
}
