package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage"
	"github.com/m04kA/DOOH-InventoryService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookings BookingReader
	logger   Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookings BookingReader, logger Logger) *Service {
	return &Service{
		bookings: bookings,
		logger:   logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetDeviceBookings получает бронирования устройства
// Опционально фильтрует по дате мастер-слота и статусу
func (s *Service) GetDeviceBookings(ctx context.Context, req *models.GetDeviceBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetDeviceBookings: fetching bookings for device=%d, status=%v", req.DeviceID, req.Status)

	filter := domain.DeviceBookingsFilter{
		DeviceID: req.DeviceID,
		Date:     req.Date,
	}

	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetDeviceBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	bookings, err := s.bookings.ListByDevice(ctx, filter)
	if err != nil {
		s.logger.Error("GetDeviceBookings: repository error for device=%d: %v", req.DeviceID, err)
		return nil, fmt.Errorf("%w: GetDeviceBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDeviceBookings: fetched %d bookings for device=%d", len(bookings), req.DeviceID)
	return models.FromDomainBookingList(bookings), nil
}

// GetClientBookings получает бронирования клиента
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetClientBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		status = &parsed
	}

	bookings, err := s.bookings.ListByClient(ctx, req.ClientID)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	if status != nil {
		filtered := make([]*domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == *status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	return models.FromDomainBookingList(bookings), nil
}
