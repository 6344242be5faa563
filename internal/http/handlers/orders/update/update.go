// Package update реализует HTTP-обработчик смены статуса заказа.
//
// Тело запроса может содержать только поле status. Допустимость перехода
// проверяет сервис заказов.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

const msgReadOnly = "Only status may be updated."

// Request: тело запроса на смену статуса.
type Request struct {
	Status models.OrderStatus `json:"status"`
}

// Handler обрабатывает PATCH-запросы к заказу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает смену статуса заказа.
type Service interface {
	UpdateStatus(ctx context.Context, who models.Identity, id int64, status models.OrderStatus) (*models.Order, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сменить статус заказа
// @Description Доступно продавцу заказа. Разрешены переходы in_progress -> completed и in_progress -> cancelled.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Security TokenAuth
// @Param id path int true "ID заказа"
// @Param request body Request true "Новый статус"
// @Success 200 {object} models.Order
// @Failure 400 {object} map[string][]string "Недопустимый статус или лишние поля"
// @Failure 403 {object} response.ErrorResponse "Не продавец заказа"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Router /orders/{id}/ [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "id")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	status, err := decodeStatus(r)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	who, _ := middlewarectx.IdentityFrom(r.Context())
	order, err := h.service.UpdateStatus(r.Context(), who, id, status)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("order status changed", slog.Int64("id", id), slog.String("status", string(order.Status)))
	render.JSON(w, r, order)
}

// decodeStatus отклоняет любые поля, кроме status.
func decodeStatus(r *http.Request) (models.OrderStatus, error) {
	var raw map[string]json.RawMessage
	if err := request.DecodeJSON(r, &raw); err != nil {
		return "", err
	}

	errs := models.ValidationErrors{}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k != "status" {
			errs.Add(k, msgReadOnly)
		}
	}

	var req Request
	if body, ok := raw["status"]; ok {
		if err := json.Unmarshal(body, &req.Status); err != nil {
			errs.Add("status", "Not a valid string.")
		}
	}
	if req.Status == "" && len(errs["status"]) == 0 {
		errs.Add("status", response.MsgRequired)
	}
	if err := errs.Err(); err != nil {
		return "", err
	}
	return req.Status, nil
}
