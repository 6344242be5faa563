// Package file реализует HTTP-обработчик загрузки файла профиля.
package file

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coderr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coderr/internal/http/request"
	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/lib/sl"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Handler обрабатывает загрузку файла профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает сохранение файла профиля.
type Service interface {
	UploadFile(ctx context.Context, who models.Identity, id int64, file models.FileUpload) (*models.Profile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Загрузить файл профиля
// @Tags Profiles
// @Accept  multipart/form-data
// @Produce  json
// @Security TokenAuth
// @Param pk path int true "ID пользователя"
// @Param file formData file true "Аватар или документ"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string][]string "Файл не передан"
// @Failure 403 {object} response.ErrorResponse "Чужой профиль"
// @Failure 503 {object} response.ErrorResponse "Хранилище файлов не настроено"
// @Router /profile/{pk}/file/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profiles.file"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "pk")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	upload, closeFile, err := request.FormFile(r, "file")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	defer func() {
		if err := closeFile(); err != nil {
			log.Warn("failed to close uploaded file", sl.Err(err))
		}
	}()

	who, _ := middlewarectx.IdentityFrom(r.Context())
	profile, err := h.service.UploadFile(r.Context(), who, id, upload)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("profile file uploaded", slog.Int64("user", id), slog.String("file", profile.File))
	render.JSON(w, r, profile)
}
