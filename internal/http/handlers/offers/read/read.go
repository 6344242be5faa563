// Package read реализует HTTP-обработчик получения предложения по ID
// со всеми уровнями и агрегатами.
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

// Handler обрабатывает запросы на получение предложения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение предложения.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Offer, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить предложение
// @Tags Offers
// @Produce  json
// @Security TokenAuth
// @Param id path int true "ID предложения"
// @Success 200 {object} models.OfferView
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Предложение не найдено"
// @Router /offers/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "id")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	offer, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, offer.AsView())
}
