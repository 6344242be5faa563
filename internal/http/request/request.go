// Package request содержит общий разбор входных данных HTTP-обработчиков:
// идентификаторов из пути, тела JSON, параметров запроса и загружаемых файлов.
package request

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/coderr/internal/http/response"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// MaxUploadSize: предельный размер multipart-запроса с файлом.
const MaxUploadSize = 10 << 20

// PathID разбирает числовой идентификатор из пути. Нечисловое значение
// означает несуществующий ресурс.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.ErrNotFound
	}
	return id, nil
}

// DecodeJSON читает тело запроса в v. Ошибка разбора возвращается
// как models.ValidationErrors.
func DecodeJSON(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return response.DecodeError(err)
	}
	return nil
}

// Validate проверяет структуру и переводит нарушения в ошибки по полям.
func Validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return response.ValidationError(verrs)
	}
	return err
}

// Query накапливает ошибки разбора параметров запроса.
type Query struct {
	values url.Values
	errs   models.ValidationErrors
}

// NewQuery оборачивает параметры запроса.
func NewQuery(values url.Values) *Query {
	return &Query{values: values, errs: models.ValidationErrors{}}
}

// String возвращает значение параметра как есть.
func (q *Query) String(name string) string {
	return q.values.Get(name)
}

// Int возвращает nil, если параметр не передан.
func (q *Query) Int(name string) *int {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.errs.Add(name, response.MsgInvalidInteger)
		return nil
	}
	return &n
}

// Int64 возвращает nil, если параметр не передан.
func (q *Query) Int64(name string) *int64 {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		q.errs.Add(name, response.MsgInvalidInteger)
		return nil
	}
	return &n
}

// Decimal возвращает nil, если параметр не передан.
func (q *Query) Decimal(name string) *decimal.Decimal {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		q.errs.Add(name, response.MsgInvalidNumber)
		return nil
	}
	return &d
}

// Err возвращает накопленные ошибки или nil.
func (q *Query) Err() error {
	return q.errs.Err()
}

// FormFile читает файл из multipart-поля field.
// Вызывающий закрывает возвращённую функцию.
func FormFile(r *http.Request, field string) (models.FileUpload, func() error, error) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		return models.FileUpload{}, nil, models.FieldError(field, "The submitted data was not a file.")
	}
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return models.FileUpload{}, nil, models.FieldError(field, "No file was submitted.")
	}
	contentType := hdr.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return models.FileUpload{
		Filename:    hdr.Filename,
		ContentType: contentType,
		Size:        hdr.Size,
		Body:        f,
	}, f.Close, nil
}
