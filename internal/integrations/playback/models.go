package playback

import (
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// CommandType тип управляющей команды устройству
type CommandType string

const (
	// CommandStop немедленно прекратить показ контента бронирования
	CommandStop CommandType = "STOP"
)

// Command управляющая команда устройству
type Command struct {
	Type       CommandType `json:"type"`
	DeviceID   int64       `json:"device_id"`
	BookingID  int64       `json:"booking_id"`
	Date       string      `json:"date"`
	Hour       int         `json:"hour"`
	SubSlots   []int       `json:"sub_slots"`
	ContentIDs []int64     `json:"content_ids"`
	Reason     string      `json:"reason,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// NewStopCommand команда остановки показа для бронирования
func NewStopCommand(b *domain.Booking, now time.Time) Command {
	reason := ""
	if b.StopReason != nil {
		reason = *b.StopReason
	}

	return Command{
		Type:       CommandStop,
		DeviceID:   b.Slot.DeviceID,
		BookingID:  b.ID,
		Date:       b.Slot.Date.Format(domain.DateFormat),
		Hour:       b.Slot.Hour,
		SubSlots:   append([]int(nil), b.SubSlots...),
		ContentIDs: append([]int64(nil), b.ContentIDs...),
		Reason:     reason,
		Timestamp:  now.UTC(),
	}
}
