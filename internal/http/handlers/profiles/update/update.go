// Package update реализует HTTP-обработчик частичного обновления профиля.
//
// Изменять профиль может только его владелец. Смена email сбрасывает
// закэшированную идентичность пользователя.
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

// Handler обрабатывает PATCH-запросы к профилю.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает обновление профиля.
type Service interface {
	Update(ctx context.Context, who models.Identity, id int64, patch models.ProfilePatch) (*models.Profile, error)
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
// @Summary Обновить профиль
// @Tags Profiles
// @Accept  json
// @Produce  json
// @Security TokenAuth
// @Param pk path int true "ID пользователя"
// @Param request body models.ProfilePatch true "Изменяемые поля"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string][]string "Ошибки по полям"
// @Failure 403 {object} response.ErrorResponse "Чужой профиль"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Router /profile/{pk}/ [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profiles.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "pk")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	var patch models.ProfilePatch
	if err := request.DecodeJSON(r, &patch); err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if err := request.Validate(h.validate, patch); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	who, _ := middlewarectx.IdentityFrom(r.Context())
	profile, err := h.service.Update(r.Context(), who, id, patch)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("profile updated", slog.Int64("user", id))
	render.JSON(w, r, profile)
}
