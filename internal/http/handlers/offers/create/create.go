// Package create реализует HTTP-обработчик создания предложения продавцом.
//
// Handler принимает JSON с предложением и его уровнями (от одного до трёх,
// без повторов offer_type), проверяет данные и сохраняет всё одной транзакцией.
package create

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

// Handler управляет HTTP-запросами на создание предложений.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис каталога
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания предложения.
type Service interface {
	Create(ctx context.Context, who models.Identity, in models.OfferInput) (*models.Offer, error)
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
// @Summary Создать предложение
// @Description Доступно только продавцам. Предложение и его уровни сохраняются атомарно.
// @Tags Offers
// @Accept  json
// @Produce  json
// @Security TokenAuth
// @Param request body models.OfferInput true "Предложение с уровнями"
// @Success 201 {object} models.OfferCreated
// @Failure 400 {object} map[string][]string "Ошибки по полям"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет профиля продавца"
// @Router /offers/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	who, _ := middlewarectx.IdentityFrom(r.Context())
	if !who.IsBusiness() {
		response.WriteError(w, r, log, models.ErrForbidden)
		return
	}

	var req models.OfferInput
	if err := request.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if err := request.Validate(h.validate, req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	offer, err := h.service.Create(r.Context(), who, req)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("offer created", slog.Int64("id", offer.ID), slog.Int("details", len(offer.Details)))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, offer.AsCreated())
}
