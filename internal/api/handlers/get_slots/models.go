package get_slots

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	getSlots "github.com/m04kA/DOOH-InventoryService/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	DeviceID        int64          `json:"deviceId"`
	Date            string         `json:"date"`
	ConfigurationID int64          `json:"configurationId"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse мастер-слот с текущей загрузкой
type SlotResponse struct {
	Hour                   int             `json:"hour"`
	StartsAt               time.Time       `json:"startsAt"`
	PricingTier            string          `json:"pricingTier"`
	Price                  decimal.Decimal `json:"price"`
	SubSlotsPerCycle       int             `json:"subSlotsPerCycle"`
	SubSlotDurationSeconds int             `json:"subSlotDurationSeconds"`
	OccupancyPercent       int             `json:"occupancyPercent"`
	FreeSubSlots           []int           `json:"freeSubSlots"`
	Claims                 []ClaimResponse `json:"claims"`
}

// ClaimResponse подслоты одного бронирования
type ClaimResponse struct {
	BookingID int64  `json:"bookingId"`
	ClientID  int64  `json:"clientId"`
	SubSlots  []int  `json:"subSlots"`
	Status    string `json:"status"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(deviceID int64, dateStr, configIDStr string) (*getSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getSlots.Request{
		DeviceID: deviceID,
		Date:     date,
	}

	if configIDStr != "" {
		configID, err := strconv.ParseInt(configIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ConfigurationID = &configID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		claims := make([]ClaimResponse, 0, len(s.Claims))
		for _, c := range s.Claims {
			claims = append(claims, ClaimResponse{
				BookingID: c.BookingID,
				ClientID:  c.ClientID,
				SubSlots:  c.SubSlots,
				Status:    string(c.Status),
			})
		}

		slots = append(slots, SlotResponse{
			Hour:                   s.Slot.Key.Hour,
			StartsAt:               s.Slot.Key.StartsAt(),
			PricingTier:            string(s.Slot.PricingTier),
			Price:                  s.Slot.Price,
			SubSlotsPerCycle:       s.Slot.SubSlotsPerCycle,
			SubSlotDurationSeconds: s.Slot.SubSlotDurationSeconds,
			OccupancyPercent:       int(math.Round(s.TotalOccupancy)),
			FreeSubSlots:           s.FreeSubSlots,
			Claims:                 claims,
		})
	}

	return &SlotsResponse{
		DeviceID:        resp.DeviceID,
		Date:            resp.Date.Format(domain.DateFormat),
		ConfigurationID: resp.ConfigurationID,
		Slots:           slots,
	}
}
