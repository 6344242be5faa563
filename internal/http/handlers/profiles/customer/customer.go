// Package customer реализует HTTP-обработчик списка профилей покупателей.
package customer

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает запросы к списку покупателей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку профилей покупателей.
type Service interface {
	ListCustomer(ctx context.Context) ([]models.CustomerProfile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Профили покупателей
// @Tags Profiles
// @Produce  json
// @Security TokenAuth
// @Success 200 {array} models.CustomerProfile
// @Failure 404 {object} map[string]string "Покупателей нет"
// @Router /profiles/customer/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profiles.customer"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profiles, err := h.service.ListCustomer(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, profiles)
}
