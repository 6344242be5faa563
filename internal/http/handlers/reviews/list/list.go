// Package list реализует HTTP-обработчик списка отзывов с фильтрами
// по продавцу и автору, сортировкой и постраничной выдачей.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает запросы к списку отзывов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку отзывов.
type Service interface {
	List(ctx context.Context, who models.Identity, f models.ReviewFilter) ([]models.Review, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список отзывов
// @Tags Reviews
// @Produce  json
// @Security TokenAuth
// @Param business_user_id query int false "Продавец"
// @Param reviewer_id query int false "Автор отзыва"
// @Param ordering query string false "updated_at | rating, префикс - для убывания"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы (до 100)"
// @Success 200 {array} models.Review
// @Failure 400 {object} map[string][]string "Нечисловой фильтр"
// @Failure 403 {object} response.ErrorResponse "Нет профиля покупателя"
// @Router /reviews/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reviews.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	who, _ := middlewarectx.IdentityFrom(r.Context())
	reviews, err := h.service.List(r.Context(), who, f)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	render.JSON(w, r, reviews)
}

// ParseFilter разбирает параметры выборки отзывов.
func ParseFilter(values url.Values) (models.ReviewFilter, error) {
	q := request.NewQuery(values)
	f := models.ReviewFilter{
		BusinessUserID: q.Int64("business_user_id"),
		ReviewerID:     q.Int64("reviewer_id"),
		Ordering:       "updated_at",
	}
	if p := q.Int("page"); p != nil {
		f.Page = *p
	}
	if s := q.Int("page_size"); s != nil {
		f.PageSize = *s
	}
	if err := q.Err(); err != nil {
		return models.ReviewFilter{}, err
	}

	field, desc := strings.CutPrefix(strings.TrimSpace(values.Get("ordering")), "-")
	if field == "updated_at" || field == "rating" {
		f.Ordering, f.Desc = field, desc
	}
	return f, nil
}
