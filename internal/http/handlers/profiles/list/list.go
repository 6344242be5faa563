// Package list реализует HTTP-обработчик списка всех профилей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает запросы к списку профилей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку профилей.
type Service interface {
	List(ctx context.Context) ([]models.Profile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список профилей
// @Tags Profiles
// @Produce  json
// @Security TokenAuth
// @Success 200 {array} models.Profile
// @Router /profile/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profiles.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profiles, err := h.service.List(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}

	render.JSON(w, r, profiles)
}
