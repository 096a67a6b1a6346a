package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrNoContentSelected возвращается, когда не выбран контент
	ErrNoContentSelected = errors.New("create_booking: no content selected")

	// ErrMultiClientContent возвращается, когда контент принадлежит нескольким клиентам
	ErrMultiClientContent = errors.New("create_booking: content belongs to more than one client")

	// ErrContentNotFound возвращается, когда контент отсутствует в каталоге
	ErrContentNotFound = errors.New("create_booking: content not found")

	// ErrClientMismatch возвращается, когда переданный клиент не совпадает с владельцем контента
	ErrClientMismatch = errors.New("create_booking: client does not own the selected content")

	// ErrInvalidStackDuration возвращается при некорректной длительности в режиме stack
	ErrInvalidStackDuration = errors.New("create_booking: invalid stack duration")

	// ErrInvalidDateRange возвращается при некорректном периоде показа
	ErrInvalidDateRange = errors.New("create_booking: invalid date range")

	// ErrInvalidTimeSlot возвращается, когда час вне рабочего окна устройства
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidSubSlots возвращается при пустом списке подслотов, дубликатах или индексе вне шаблона
	ErrInvalidSubSlots = errors.New("create_booking: invalid sub-slot selection")

	// ErrDeviceNotFound возвращается, когда устройство не найдено
	ErrDeviceNotFound = errors.New("create_booking: device not found")

	// ErrConfigNotFound возвращается, когда шаблон слота устройства не найден
	ErrConfigNotFound = errors.New("create_booking: slot configuration not found")

	// ErrDeviceOffline возвращается, когда устройство офлайн
	ErrDeviceOffline = errors.New("create_booking: device is offline")

	// ErrConfigMismatch возвращается, когда переданный шаблон не совпадает с шаблоном устройства
	ErrConfigMismatch = errors.New("create_booking: configuration does not match the device")

	// ErrSubSlotConflict возвращается, когда подслот уже занят
	ErrSubSlotConflict = errors.New("create_booking: sub-slot already claimed")

	// ErrOverCapacity возвращается, когда загрузка слота превысит 100%
	ErrOverCapacity = errors.New("create_booking: slot occupancy would exceed 100%")

	// ErrReserveTimeout возвращается, когда резервирование не уложилось в таймаут; ничего не записано
	ErrReserveTimeout = errors.New("create_booking: reservation timed out")

	// ErrCatalogUnavailable возвращается, когда каталог контента недоступен
	ErrCatalogUnavailable = errors.New("create_booking: catalog unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
