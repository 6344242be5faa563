// Package image реализует HTTP-обработчик загрузки изображения предложения.
//
// Файл принимается из multipart-поля image, сохраняется в объектное хранилище,
// а в предложение записывается его публичный адрес.
package image

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

// Handler обрабатывает загрузку изображения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает загрузку изображения предложения.
type Service interface {
	UploadImage(ctx context.Context, who models.Identity, id int64, file models.FileUpload) (*models.Offer, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Загрузить изображение предложения
// @Tags Offers
// @Accept  multipart/form-data
// @Produce  json
// @Security TokenAuth
// @Param id path int true "ID предложения"
// @Param image formData file true "Изображение"
// @Success 200 {object} models.OfferView
// @Failure 400 {object} map[string][]string "Файл не передан"
// @Failure 403 {object} response.ErrorResponse "Не владелец предложения"
// @Failure 503 {object} response.ErrorResponse "Хранилище файлов не настроено"
// @Router /offers/{id}/image/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.image"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.PathID(r, "id")
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	file, closeFile, err := request.FormFile(r, "image")
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
	offer, err := h.service.UploadImage(r.Context(), who, id, file)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("offer image uploaded", slog.Int64("id", id), slog.String("image", offer.Image))
	render.JSON(w, r, offer.AsView())
}
