// Package login реализует HTTP-обработчик входа по имени пользователя и паролю.
//
// При успешной проверке возвращается действующий токен доступа пользователя.
// Неверные учётные данные дают HTTP 400 с ключом non_field_errors.
package login

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

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
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
// @Summary Вход пользователя
// @Description Проверяет имя и пароль, возвращает токен доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.LoginRequest true "Учетные данные пользователя"
// @Success 200 {object} models.AuthResult "Успешная авторизация"
// @Failure 400 {object} map[string][]string "Неверные учетные данные или ошибки по полям"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if err := request.Validate(h.validate, req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	res, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("login success", slog.String("username", req.Username))
	render.JSON(w, r, res)
}
