// Package response содержит вспомогательные типы и функции для формирования
// JSON-ответов HTTP-обработчиков: тела ошибок, перевод ошибок валидатора
// в ошибки по полям и отображение доменных ошибок в HTTP-статусы.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coderr/internal/lib/sl"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Сообщения, которые отдаются клиенту без изменений.
const (
	MsgInternal        = "Internal server error."
	MsgUnavailable     = "File storage is not configured."
	MsgNotProvided     = "Authentication credentials were not provided."
	MsgInvalidToken    = "Invalid token."
	MsgThrottled       = "Request was throttled."
	MsgMalformedJSON   = "JSON parse error."
	MsgRequired        = "This field is required."
	MsgInvalidInteger  = "A valid integer is required."
	MsgInvalidNumber   = "A valid number is required."
	MsgInvalidIdentity = "Invalid id."
)

// ErrorResponse: тело ответа с единственным сообщением.
// Используется в аннотациях @Failure.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Not found."`
}

// Detail возвращает тело {"detail": msg}.
func Detail(msg string) ErrorResponse {
	return ErrorResponse{Detail: msg}
}

// NewValidator создаёт валидатор, который называет поля по json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError переводит ошибки валидатора в ошибки по полям.
func ValidationError(errs validator.ValidationErrors) models.ValidationErrors {
	out := models.ValidationErrors{}
	for _, err := range errs {
		out.Add(fieldPath(err.Namespace()), fieldMessage(err))
	}
	return out
}

// fieldPath отрезает имя корневой структуры: "OfferInput.details[0].title" -> "details[0].title".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return MsgRequired
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", err.Value())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", err.Param())
	case "min":
		switch err.Kind() {
		case reflect.String:
			return fmt.Sprintf("Ensure this field has at least %s characters.", err.Param())
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("Ensure this field has at least %s elements.", err.Param())
		default:
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", err.Param())
		}
	case "max":
		switch err.Kind() {
		case reflect.String:
			return fmt.Sprintf("Ensure this field has no more than %s characters.", err.Param())
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("Ensure this field has no more than %s elements.", err.Param())
		default:
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", err.Param())
		}
	default:
		return "Invalid value."
	}
}

// DecodeError переводит ошибку разбора тела запроса в ошибки по полям.
func DecodeError(err error) models.ValidationErrors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		msg := "Incorrect type."
		switch typeErr.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			msg = MsgInvalidInteger
		case reflect.Float32, reflect.Float64:
			msg = MsgInvalidNumber
		case reflect.String:
			msg = "Not a valid string."
		}
		return models.FieldError(typeErr.Field, msg)
	}
	if errors.Is(err, io.EOF) {
		return models.FieldError(models.NonFieldErrors, "No data provided.")
	}
	return models.FieldError(models.NonFieldErrors, MsgMalformedJSON)
}

// WriteError выбирает статус по типу ошибки и пишет тело ответа.
// Причина внутренних ошибок только логируется.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		verrs     models.ValidationErrors
		notFound  *models.NotFoundError
		forbidden *models.ForbiddenError
	)

	switch {
	case errors.As(err, &verrs):
		log.Info("validation failed", slog.Any("errors", verrs))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, verrs)
	case errors.As(err, &notFound):
		log.Info("not found", slog.String("message", notFound.Message))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{notFound.Key: notFound.Message})
	case errors.Is(err, models.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, Detail(models.MsgNotFound))
	case errors.As(err, &forbidden):
		log.Info("forbidden", slog.String("message", forbidden.Message))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, Detail(forbidden.Message))
	case errors.Is(err, models.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, Detail(models.MsgPermissionDenied))
	case errors.Is(err, models.ErrUnavailable):
		log.Warn("dependency is not configured")
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, Detail(MsgUnavailable))
	default:
		log.Error("request failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Detail(MsgInternal))
	}
}

// NoContent отвечает 204 без тела.
func NoContent(w http.ResponseWriter, r *http.Request) {
	render.NoContent(w, r)
}
