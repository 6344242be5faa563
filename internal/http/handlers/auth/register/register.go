// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает JSON с учётными данными и типом профиля, проверяет поля
// и создаёт учётную запись вместе с профилем и токеном доступа.
// Ошибки возвращаются в виде {"поле": ["сообщение"]}.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис регистрации
	validate *validator.Validate // Валидатор входных данных
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись, профиль выбранного типа и токен доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.RegisterRequest true "Данные регистрации"
// @Success 201 {object} models.AuthResult "Пользователь зарегистрирован"
// @Failure 400 {object} map[string][]string "Ошибки по полям"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /registration/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if err := request.Validate(h.validate, req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("user registered", slog.Int64("user_id", res.UserID), slog.String("type", string(req.Type)))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}
