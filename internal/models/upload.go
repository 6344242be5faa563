package models

import "io"

// FileUpload: загружаемый файл из multipart-запроса.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Сообщения об отказе в доступе, возвращаемые клиенту как есть.
const (
	MsgPermissionDenied = "You do not have permission to perform this action."
	MsgNotFound         = "Not found."
)
