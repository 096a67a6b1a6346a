package models

import (
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Request модели

// GetDeviceBookingsRequest запрос на получение бронирований устройства
type GetDeviceBookingsRequest struct {
	DeviceID int64
	Date     *time.Time
	Status   *string
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64
	Status   *string
}

// Response модели

// DateRangeResponse период показа
type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                   int64             `json:"id"`
	DeviceID             int64             `json:"deviceId"`
	Date                 string            `json:"date"`
	Hour                 int               `json:"hour"`
	SlotConfigID         int64             `json:"configurationId"`
	SubSlotsPerCycle     int               `json:"subSlotsPerCycle"`
	SubSlots             []int             `json:"subSlots"`
	ClientID             int64             `json:"clientId"`
	ContentType          string            `json:"contentType"`
	ContentIDs           []int64           `json:"contentIds"`
	PlaybackMode         string            `json:"playbackMode"`
	StackDurationSeconds *int              `json:"stackDuration,omitempty"`
	DateRange            DateRangeResponse `json:"dateRange"`
	OccupancyPercent     int               `json:"occupancyPercent"`
	Status               string            `json:"status"`
	StopReason           *string           `json:"stopReason,omitempty"`
	StoppedAt            *time.Time        `json:"stoppedAt,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                   b.ID,
		DeviceID:             b.Slot.DeviceID,
		Date:                 b.Slot.Date.Format(domain.DateFormat),
		Hour:                 b.Slot.Hour,
		SlotConfigID:         b.SlotConfigID,
		SubSlotsPerCycle:     b.SubSlotsPerCycle,
		SubSlots:             b.SubSlots,
		ClientID:             b.ClientID,
		ContentType:          string(b.ContentType),
		ContentIDs:           b.ContentIDs,
		PlaybackMode:         string(b.PlaybackMode),
		StackDurationSeconds: b.StackDurationSeconds,
		DateRange: DateRangeResponse{
			Start: b.DateRange.Start.Format(domain.DateFormat),
			End:   b.DateRange.End.Format(domain.DateFormat),
		},
		OccupancyPercent: b.RoundedOccupancy(),
		Status:           string(b.Status),
		StopReason:       b.StopReason,
		StoppedAt:        b.StoppedAt,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if r := FromDomainBooking(b); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}

	return resp
}
