// Package baseinfo реализует открытый HTTP-обработчик сводной статистики платформы.
package baseinfo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler отдает сводные показатели.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает расчет статистики.
type Service interface {
	BaseInfo(ctx context.Context) (*models.BaseInfo, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика платформы
// @Description Количество отзывов, средний рейтинг, число продавцов и предложений
// @Tags BaseInfo
// @Produce  json
// @Success 200 {object} models.BaseInfo
// @Router /base-info/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.baseinfo"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	info, err := h.service.BaseInfo(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, info)
}
