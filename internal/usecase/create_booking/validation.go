package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// validateRequest валидирует форму запроса
func validateRequest(req *Request) (domain.ContentType, domain.PlaybackMode, error) {
	if req.DeviceID <= 0 {
		return "", "", fmt.Errorf("%w: deviceId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ConfigurationID != nil && *req.ConfigurationID <= 0 {
		return "", "", fmt.Errorf("%w: configurationId must be positive", ErrInvalidInput)
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return "", "", fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	contentType, ok := domain.ParseContentType(req.ContentType)
	if !ok {
		return "", "", fmt.Errorf("%w: contentType must be media or playlist", ErrInvalidInput)
	}

	mode, ok := domain.ParsePlaybackMode(req.PlaybackMode)
	if !ok {
		return "", "", fmt.Errorf("%w: playbackMode must be fixed or stack", ErrInvalidInput)
	}

	return contentType, mode, nil
}

// validatePlayback длительность обязательна для stack и запрещена для fixed
func validatePlayback(mode domain.PlaybackMode, stackDuration *int) error {
	switch mode {
	case domain.PlaybackStack:
		if stackDuration == nil {
			return fmt.Errorf("%w: stackDuration is required for stack mode", ErrInvalidStackDuration)
		}
		if *stackDuration < domain.MinStackDurationSeconds || *stackDuration > domain.MaxStackDurationSeconds {
			return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidStackDuration,
				*stackDuration, domain.MinStackDurationSeconds, domain.MaxStackDurationSeconds)
		}
	case domain.PlaybackFixed:
		if stackDuration != nil {
			return fmt.Errorf("%w: stackDuration is only allowed in stack mode", ErrInvalidStackDuration)
		}
	}
	return nil
}

// validateDateRange start <= end, end не в прошлом, дата слота внутри периода
func validateDateRange(dates domain.DateRange, slotDate, now time.Time) error {
	if err := dates.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}

	if domain.DateOnly(dates.End).Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: end %s is in the past", ErrInvalidDateRange, dates.End.Format(domain.DateFormat))
	}

	if !dates.Contains(slotDate) {
		return fmt.Errorf("%w: slot date %s is outside %s..%s", ErrInvalidDateRange,
			slotDate.Format(domain.DateFormat), dates.Start.Format(domain.DateFormat), dates.End.Format(domain.DateFormat))
	}

	return nil
}
