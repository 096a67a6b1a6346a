package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage"
)

// Ledger журнал загрузки слотов в памяти
//
// Бронирование занимает свой час на каждый день периода, поэтому журнал разбит на полосы
// (устройство, час), и у каждой полосы свой замок. Reserve, Release и UpdateStatus для одной
// полосы выполняются строго последовательно, разные полосы не блокируют друг друга.
// Замок захватывается с учетом ctx: по истечении таймаута запрос завершается без записи.
type Ledger struct {
	mu     sync.RWMutex // защищает lanes, index и nextID
	lanes  map[laneKey]*laneRecord
	index  map[int64]*laneRecord
	nextID int64
	now    func() time.Time
}

type laneKey struct {
	deviceID int64
	hour     int
}

func (k laneKey) String() string {
	return fmt.Sprintf("%d/*/%d", k.deviceID, k.hour)
}

type laneRecord struct {
	key      laneKey
	lock     chan struct{}
	bookings []*domain.Booking
}

// NewLedger создает пустой журнал
func NewLedger() *Ledger {
	return &Ledger{
		lanes: make(map[laneKey]*laneRecord),
		index: make(map[int64]*laneRecord),
		now:   time.Now,
	}
}

// Reserve атомарно проверяет и занимает подслоты booking.SubSlots в часе booking.Slot
// на весь период бронирования
func (l *Ledger) Reserve(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	subSlots, err := domain.NormalizeSubSlots(booking.SubSlots, booking.SubSlotsPerCycle)
	if err != nil {
		return nil, err
	}

	rec := l.laneFor(booking.Slot)

	if err := rec.acquire(ctx); err != nil {
		return nil, fmt.Errorf("Reserve - acquire slot %s: %w", booking.Slot, err)
	}
	defer rec.release()

	if err := domain.CheckReservation(rec.bookings, booking.Period(), subSlots, booking.SubSlotsPerCycle); err != nil {
		return nil, err
	}

	// Таймаут мог истечь во время проверки: ничего не записываем
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Reserve - slot %s: %w", booking.Slot, err)
	}

	stored := booking.Clone()
	stored.SubSlots = subSlots
	stored.OccupancyPercent = domain.OccupancyPercent(len(subSlots), booking.SubSlotsPerCycle)
	now := l.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	l.mu.Lock()
	l.nextID++
	stored.ID = l.nextID
	l.index[stored.ID] = rec
	l.mu.Unlock()

	rec.bookings = append(rec.bookings, stored)

	return stored.Clone(), nil
}

// Release останавливает бронирование и освобождает его подслоты
// Повторный вызов для остановленного бронирования возвращает domain.ErrAlreadyStopped
func (l *Ledger) Release(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	return l.update(ctx, bookingID, func(b *domain.Booking, now time.Time) error {
		if b.Status == domain.StatusStopped {
			return domain.ErrAlreadyStopped
		}
		if !b.CanBeStopped() {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStateTransition, b.Status, domain.StatusStopped)
		}

		b.Status = domain.StatusStopped
		b.StoppedAt = &now
		if reason != "" {
			r := reason
			b.StopReason = &r
		}
		return nil
	})
}

// UpdateStatus переводит бронирование в новый статус по правилам domain.CanTransition
func (l *Ledger) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	return l.update(ctx, bookingID, func(b *domain.Booking, now time.Time) error {
		if !domain.CanTransition(b.Status, status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStateTransition, b.Status, status)
		}
		b.Status = status
		if status == domain.StatusStopped {
			b.StoppedAt = &now
		}
		return nil
	})
}

// GetByID получает бронирование по ID
func (l *Ledger) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	rec, err := l.recordOf(bookingID)
	if err != nil {
		return nil, err
	}

	if err := rec.acquire(ctx); err != nil {
		return nil, fmt.Errorf("GetByID - acquire lane %s: %w", rec.key, err)
	}
	defer rec.release()

	for _, b := range rec.bookings {
		if b.ID == bookingID {
			return b.Clone(), nil
		}
	}
	return nil, storage.ErrBookingNotFound
}

// BookingsFor все бронирования (любых статусов), чей период содержит дату слота, в порядке создания
func (l *Ledger) BookingsFor(ctx context.Context, key domain.TimeSlotKey) ([]*domain.Booking, error) {
	l.mu.RLock()
	rec, ok := l.lanes[laneOf(key)]
	l.mu.RUnlock()

	if !ok {
		return []*domain.Booking{}, nil
	}

	if err := rec.acquire(ctx); err != nil {
		return nil, fmt.Errorf("BookingsFor - acquire slot %s: %w", key, err)
	}
	defer rec.release()

	return cloneAll(domain.BookingsOn(rec.bookings, key.Date)), nil
}

// TotalOccupancy суммарная загрузка слота scheduled и active бронированиями
func (l *Ledger) TotalOccupancy(ctx context.Context, key domain.TimeSlotKey) (float64, error) {
	bookings, err := l.BookingsFor(ctx, key)
	if err != nil {
		return 0, err
	}
	return domain.TotalOccupancy(bookings), nil
}

// ListByStatus бронирования с любым из указанных статусов
func (l *Ledger) ListByStatus(ctx context.Context, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	wanted := make(map[domain.BookingStatus]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}

	return l.collect(ctx, func(b *domain.Booking) bool {
		_, ok := wanted[b.Status]
		return ok
	})
}

// ListByDevice бронирования устройства с фильтром по дню показа и статусу
func (l *Ledger) ListByDevice(ctx context.Context, filter domain.DeviceBookingsFilter) ([]*domain.Booking, error) {
	return l.collect(ctx, func(b *domain.Booking) bool {
		if b.Slot.DeviceID != filter.DeviceID {
			return false
		}
		if filter.Date != nil && !b.Period().Contains(*filter.Date) {
			return false
		}
		if filter.Status != nil && b.Status != *filter.Status {
			return false
		}
		return true
	})
}

// ListByClient все бронирования клиента
func (l *Ledger) ListByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	return l.collect(ctx, func(b *domain.Booking) bool {
		return b.ClientID == clientID
	})
}

func (l *Ledger) update(ctx context.Context, bookingID int64, apply func(b *domain.Booking, now time.Time) error) (*domain.Booking, error) {
	rec, err := l.recordOf(bookingID)
	if err != nil {
		return nil, err
	}

	if err := rec.acquire(ctx); err != nil {
		return nil, fmt.Errorf("update - acquire lane %s: %w", rec.key, err)
	}
	defer rec.release()

	for _, b := range rec.bookings {
		if b.ID != bookingID {
			continue
		}

		now := l.now()
		if err := apply(b, now); err != nil {
			return b.Clone(), err
		}
		b.UpdatedAt = now
		return b.Clone(), nil
	}

	return nil, storage.ErrBookingNotFound
}

// collect обходит полосы по одной и возвращает бронирования, отсортированные по ID
func (l *Ledger) collect(ctx context.Context, match func(b *domain.Booking) bool) ([]*domain.Booking, error) {
	l.mu.RLock()
	records := make([]*laneRecord, 0, len(l.lanes))
	for _, rec := range l.lanes {
		records = append(records, rec)
	}
	l.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, rec := range records {
		if err := rec.acquire(ctx); err != nil {
			return nil, fmt.Errorf("collect - acquire lane %s: %w", rec.key, err)
		}
		for _, b := range rec.bookings {
			if match(b) {
				result = append(result, b.Clone())
			}
		}
		rec.release()
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func laneOf(key domain.TimeSlotKey) laneKey {
	return laneKey{deviceID: key.DeviceID, hour: key.Hour}
}

func (l *Ledger) laneFor(key domain.TimeSlotKey) *laneRecord {
	k := laneOf(key)

	l.mu.RLock()
	rec, ok := l.lanes[k]
	l.mu.RUnlock()
	if ok {
		return rec
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if rec, ok := l.lanes[k]; ok {
		return rec
	}
	rec = &laneRecord{
		key:  k,
		lock: make(chan struct{}, 1),
	}
	l.lanes[k] = rec
	return rec
}

func (l *Ledger) recordOf(bookingID int64) (*laneRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.index[bookingID]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return rec, nil
}

func (s *laneRecord) acquire(ctx context.Context) error {
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *laneRecord) release() {
	<-s.lock
}

func cloneAll(bookings []*domain.Booking) []*domain.Booking {
	result := make([]*domain.Booking, len(bookings))
	for i, b := range bookings {
		result[i] = b.Clone()
	}
	return result
}
