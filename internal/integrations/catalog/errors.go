package catalog

import "errors"

var (
	// ErrNotFound возвращается, когда медиафайл или плейлист отсутствует в каталоге
	ErrNotFound = errors.New("catalog client: content not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("catalog client: invalid response")
)
