// Package list реализует HTTP-обработчик выдачи каталога предложений.
//
// Поддерживает поиск, фильтры по цене, сроку и автору, сортировку
// и постраничную выдачу в конверте {count, next, previous, results}.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
	offerservice "github.com/magabrotheeeer/coderr/internal/services/offer"
)

// Page: конверт постраничной выдачи.
type Page struct {
	Count    int                    `json:"count"`
	Next     *string                `json:"next"`
	Previous *string                `json:"previous"`
	Results  []models.OfferListItem `json:"results"`
}

// Handler обрабатывает запросы к каталогу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку каталога.
type Service interface {
	List(ctx context.Context, who *models.Identity, f models.OfferFilter) (*models.OfferPage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог предложений
// @Description Продавец видит только свои предложения, остальные видят все.
// @Tags Offers
// @Produce  json
// @Param search query string false "Поиск по названию и описанию"
// @Param min_price query number false "Минимальная цена не ниже"
// @Param max_delivery_time query int false "Минимальный срок не больше"
// @Param creator_id query int false "Автор предложения"
// @Param ordering query string false "updated_at | min_price | min_delivery_time, префикс - для убывания"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы (до 100)"
// @Success 200 {object} Page
// @Failure 400 {object} map[string][]string "Нечисловой фильтр"
// @Failure 404 {object} response.ErrorResponse "Страница вне диапазона"
// @Router /offers/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	var who *models.Identity
	if identity, ok := middlewarectx.IdentityFrom(r.Context()); ok {
		who = &identity
	}

	page, err := h.service.List(r.Context(), who, f)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	items := make([]models.OfferListItem, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, o.AsListItem())
	}

	log.Debug("offers listed", slog.Int("count", page.Count), slog.Int("page", f.Page))
	render.JSON(w, r, Page{
		Count:    page.Count,
		Next:     pageLink(r, f.Page+1, f.Page*pageSize(f) < page.Count),
		Previous: pageLink(r, f.Page-1, f.Page > 1),
		Results:  items,
	})
}

// ParseFilter разбирает параметры каталога. Неизвестное поле сортировки игнорируется.
func ParseFilter(values url.Values) (models.OfferFilter, error) {
	q := request.NewQuery(values)
	f := models.OfferFilter{
		Search:          strings.TrimSpace(q.String("search")),
		MinPrice:        q.Decimal("min_price"),
		MaxDeliveryTime: q.Int("max_delivery_time"),
		CreatorID:       q.Int64("creator_id"),
		Page:            1,
	}
	if p := q.Int("page"); p != nil {
		f.Page = *p
	}
	if s := q.Int("page_size"); s != nil {
		f.PageSize = *s
	}
	if err := q.Err(); err != nil {
		return models.OfferFilter{}, err
	}

	f.Ordering, f.Desc = parseOrdering(values.Get("ordering"))
	return f, nil
}

func parseOrdering(raw string) (models.OfferOrdering, bool) {
	field, desc := strings.CutPrefix(strings.TrimSpace(raw), "-")
	switch field {
	case "updated_at":
		return models.OrderByUpdatedAt, desc
	case "min_price":
		return models.OrderByMinPrice, desc
	case "min_delivery_time", "max_delivery_time":
		return models.OrderByMinDeliveryTime, desc
	default:
		return models.OrderByUpdatedAt, false
	}
}

func pageSize(f models.OfferFilter) int {
	if f.PageSize <= 0 {
		return offerservice.DefaultPageSize
	}
	return min(f.PageSize, offerservice.MaxPageSize)
}

// pageLink строит абсолютную ссылку на соседнюю страницу. Для первой страницы
// параметр page убирается.
func pageLink(r *http.Request, page int, ok bool) *string {
	if !ok {
		return nil
	}
	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	link := u.String()
	return &link
}
