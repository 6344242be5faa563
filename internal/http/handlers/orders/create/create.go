// Package create реализует HTTP-обработчик размещения заказа покупателем.
//
// Заказ оформляется на конкретный уровень предложения. Продавцом становится
// владелец предложения на момент заказа.
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

// Request: тело запроса на создание заказа.
type Request struct {
	OfferDetailID int64 `json:"offer_detail_id" validate:"required,gt=0"`
}

// Handler обрабатывает запросы на создание заказа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает размещение заказа.
type Service interface {
	Create(ctx context.Context, who models.Identity, offerDetailID int64) (*models.Order, error)
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
// @Summary Создать заказ
// @Description Доступно только покупателям.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Security TokenAuth
// @Param request body Request true "Уровень предложения"
// @Success 201 {object} models.Order
// @Failure 400 {object} map[string][]string "Ошибки по полям"
// @Failure 403 {object} response.ErrorResponse "Нет профиля покупателя"
// @Failure 404 {object} response.ErrorResponse "Уровень не найден"
// @Router /orders/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	who, _ := middlewarectx.IdentityFrom(r.Context())
	if !who.IsCustomer() {
		response.WriteError(w, r, log, models.ErrForbidden)
		return
	}

	var req Request
	if err := request.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if err := request.Validate(h.validate, req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	order, err := h.service.Create(r.Context(), who, req.OfferDetailID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("order created", slog.Int64("id", order.ID), slog.Int64("business_user", order.BusinessUser))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, order)
}
