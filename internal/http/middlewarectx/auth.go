// Package middlewarectx содержит HTTP middleware: аутентификацию по токену,
// ограничение частоты запросов и сбор метрик.
//
// Authenticate разбирает заголовок Authorization и, если токен передан и валиден,
// кладёт участника запроса в контекст. RequireAuth отклоняет анонимные запросы
// с HTTP 401.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/lib/sl"
	"github.com/magabrotheeeer/coderr/internal/models"
	authservice "github.com/magabrotheeeer/coderr/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey: ключ участника запроса в контексте.
const IdentityKey Key = "identity"

// Service описывает проверку токена доступа.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// IdentityFrom возвращает участника запроса, если он аутентифицирован.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(models.Identity)
	return identity, ok
}

// WithIdentity кладёт участника в контекст.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// tokenFromHeader принимает схемы "Token <key>" и "Bearer <key>".
func tokenFromHeader(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate возвращает middleware, который проверяет токен из заголовка Authorization.
//
// Запрос без заголовка пропускается анонимным. Переданный, но неверный токен
// отклоняется с HTTP 401 даже на открытых маршрутах.
func Authenticate(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"

			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := tokenFromHeader(header)
			if !ok {
				log.Info("malformed authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Detail(response.MsgInvalidToken))
				return
			}

			identity, err := authService.Authenticate(r.Context(), token)
			if errors.Is(err, authservice.ErrInvalidToken) {
				log.Info("invalid token")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Detail(response.MsgInvalidToken))
				return
			}
			if err != nil {
				log.Error("failed to authenticate request", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Detail(response.MsgInternal))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *identity)))
		})
	}
}

// RequireAuth отклоняет запросы без аутентифицированного участника.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Detail(response.MsgNotProvided))
			return
		}
		next.ServeHTTP(w, r)
	})
}
