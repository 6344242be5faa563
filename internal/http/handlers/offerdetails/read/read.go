// Package read реализует HTTP-обработчик получения уровня предложения по ID.
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

// Handler обрабатывает запросы на получение уровня.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение уровня.
type Service interface {
	GetDetail(ctx context.Context, id int64) (*models.OfferDetail, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить уровень предложения
// @Tags OfferDetails
// @Produce  json
// @Security TokenAuth
// @Param id path int true "ID уровня"
// @Success 200 {object} models.OfferDetail
// @Failure 404 {object} response.ErrorResponse "Уровень не найден"
// @Router /offerdetails/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offerdetails.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "id")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	detail, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, detail)
}
