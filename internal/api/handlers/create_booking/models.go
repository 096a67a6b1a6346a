package create_booking

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/service/bookings/models"
	createBooking "github.com/m04kA/DOOH-InventoryService/internal/usecase/create_booking"
)

var errAmbiguousContent = errors.New("both contentId and contentIds are set")

// DateRangeRequest период показа
type DateRangeRequest struct {
	Start string `json:"start"` // "2025-10-08"
	End   string `json:"end"`
}

// CreateBookingRequest HTTP request model
// Устройство, дата и час берутся из пути
type CreateBookingRequest struct {
	ConfigurationID *int64           `json:"configurationId,omitempty"`
	SubSlots        []int            `json:"subSlots"`
	ClientID        *int64           `json:"clientId,omitempty"`
	ContentType     string           `json:"contentType"`
	ContentID       *int64           `json:"contentId,omitempty"` // один плейлист или один медиафайл
	ContentIDs      []int64          `json:"contentIds,omitempty"`
	PlaybackMode    string           `json:"playbackMode"`
	DateRange       DateRangeRequest `json:"dateRange"`
	StackDuration   *int             `json:"stackDuration,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	models.BookingResponse
	PricingTier string          `json:"pricingTier"`
	Price       decimal.Decimal `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(deviceID int64, date string, hour int) (*createBooking.Request, error) {
	slotDate, err := handlers.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	start, err := handlers.ParseDate(r.DateRange.Start)
	if err != nil {
		return nil, fmt.Errorf("dateRange.start: %w", err)
	}

	end, err := handlers.ParseDate(r.DateRange.End)
	if err != nil {
		return nil, fmt.Errorf("dateRange.end: %w", err)
	}

	contentIDs := r.ContentIDs
	if r.ContentID != nil {
		if len(contentIDs) > 0 {
			return nil, errAmbiguousContent
		}
		contentIDs = []int64{*r.ContentID}
	}

	return &createBooking.Request{
		DeviceID:             deviceID,
		Date:                 slotDate,
		Hour:                 hour,
		ConfigurationID:      r.ConfigurationID,
		SubSlots:             r.SubSlots,
		ClientID:             r.ClientID,
		ContentType:          r.ContentType,
		ContentIDs:           contentIDs,
		PlaybackMode:         r.PlaybackMode,
		StackDurationSeconds: r.StackDuration,
		DateRange:            domain.DateRange{Start: start, End: end},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		PricingTier:     string(resp.PricingTier),
		Price:           resp.Price,
	}
}
