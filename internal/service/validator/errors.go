package validator

import "errors"

var (
	// ErrNoContentSelected возвращается, когда не выбран ни один медиафайл или плейлист
	ErrNoContentSelected = errors.New("validator: no content selected")

	// ErrMultiClientContent возвращается, когда выбранный контент принадлежит нескольким клиентам
	ErrMultiClientContent = errors.New("validator: content belongs to more than one client")

	// ErrContentNotFound возвращается, когда медиафайл или плейлист отсутствует в каталоге
	ErrContentNotFound = errors.New("validator: content not found")

	// ErrCatalogUnavailable возвращается, когда каталог не ответил
	ErrCatalogUnavailable = errors.New("validator: catalog unavailable")
)
