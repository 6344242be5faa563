// Package list реализует HTTP-обработчик выдачи всех уровней предложений.
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

// Handler обрабатывает запросы к списку уровней.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку уровней.
type Service interface {
	ListDetails(ctx context.Context) ([]models.OfferDetail, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список уровней предложений
// @Tags OfferDetails
// @Produce  json
// @Security TokenAuth
// @Success 200 {array} models.OfferDetail
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /offerdetails/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offerdetails.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	details, err := h.service.ListDetails(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if details == nil {
		details = []models.OfferDetail{}
	}

	render.JSON(w, r, details)
}
