// Package read реализует HTTP-обработчик получения профиля пользователя.
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

// Handler обрабатывает запросы на получение профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение профиля.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить профиль
// @Tags Profiles
// @Produce  json
// @Security TokenAuth
// @Param pk path int true "ID пользователя"
// @Success 200 {object} models.Profile
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Router /profile/{pk}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profiles.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "pk")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	profile, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, profile)
}
