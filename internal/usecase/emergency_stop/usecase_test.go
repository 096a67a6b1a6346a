package emergency_stop

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage/memory"
	"github.com/m04kA/DOOH-InventoryService/internal/integrations/playback"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
)

// MockCommander мок для Commander
type MockCommander struct {
	mock.Mock
}

func (m *MockCommander) Send(ctx context.Context, cmd playback.Command) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// MockMetrics мок для Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) EmergencyStopped() {
	m.Called()
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

var (
	now     = time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)
	slotKey = domain.NewTimeSlotKey(7, time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC), 14)
)

type fixture struct {
	uc        *UseCase
	ledger    *memory.Ledger
	commander *MockCommander
	metrics   *MockMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ledger:    memory.NewLedger(),
		commander: new(MockCommander),
		metrics:   new(MockMetrics),
	}
	f.metrics.On("EmergencyStopped").Maybe()

	f.uc = NewUseCase(f.ledger, f.commander, f.metrics, logger.Nop{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) reserve(t *testing.T, clientID int64, subSlots []int, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	b, err := f.ledger.Reserve(context.Background(), &domain.Booking{
		Slot:             slotKey,
		SlotConfigID:     1,
		SubSlotsPerCycle: 12,
		SubSlots:         subSlots,
		ClientID:         clientID,
		ContentType:      domain.ContentMedia,
		ContentIDs:       []int64{100 + clientID},
		PlaybackMode:     domain.PlaybackFixed,
		DateRange:        domain.DateRange{Start: slotKey.Date, End: slotKey.Date.AddDate(0, 0, 6)},
		OccupancyPercent: domain.OccupancyPercent(len(subSlots), 12),
		Status:           status,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) occupancy(t *testing.T) float64 {
	t.Helper()
	total, err := f.ledger.TotalOccupancy(context.Background(), slotKey)
	require.NoError(t, err)
	return total
}

func TestEmergencyStop_ScenarioC(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.reserve(t, 1, []int{0, 1, 2, 3, 4, 5, 6}, domain.StatusActive)
	f.reserve(t, 2, []int{7, 8, 9, 10, 11}, domain.StatusActive)
	require.InDelta(t, 100.0, f.occupancy(t), 1e-9)

	f.commander.On("Send", mock.Anything, mock.MatchedBy(func(cmd playback.Command) bool {
		return cmd.Type == playback.CommandStop && cmd.BookingID == first.ID && cmd.DeviceID == 7
	})).Return(nil).Once()

	resp, err := f.uc.Execute(ctx, &Request{BookingID: first.ID, Reason: "wrong creative"})
	require.NoError(t, err)
	assert.False(t, resp.AlreadyStopped)
	assert.Equal(t, domain.StatusStopped, resp.Booking.Status)
	require.NotNil(t, resp.Booking.StopReason)
	assert.Equal(t, "wrong creative", *resp.Booking.StopReason)
	assert.InDelta(t, 5.0/12*100, f.occupancy(t), 1e-9)

	// Повторная остановка ничего не меняет и не шлет команду
	again, err := f.uc.Execute(ctx, &Request{BookingID: first.ID})
	require.NoError(t, err)
	assert.True(t, again.AlreadyStopped)
	assert.Equal(t, domain.StatusStopped, again.Booking.Status)
	assert.InDelta(t, 5.0/12*100, f.occupancy(t), 1e-9)

	f.commander.AssertNumberOfCalls(t, "Send", 1)
	f.metrics.AssertNumberOfCalls(t, "EmergencyStopped", 1)

	// Освобожденные подслоты снова доступны
	f.reserve(t, 3, []int{0, 1}, domain.StatusScheduled)
}

func TestEmergencyStop_DeliveryFailureIsNotReturned(t *testing.T) {
	f := newFixture(t)

	b := f.reserve(t, 1, []int{0}, domain.StatusScheduled)
	f.commander.On("Send", mock.Anything, mock.Anything).Return(playback.ErrInternal)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, resp.Booking.Status)
	assert.Zero(t, f.occupancy(t))
}

func TestEmergencyStop_Errors(t *testing.T) {
	t.Run("completed booking", func(t *testing.T) {
		f := newFixture(t)

		b := f.reserve(t, 1, []int{0}, domain.StatusActive)
		_, err := f.ledger.UpdateStatus(context.Background(), b.ID, domain.StatusCompleted)
		require.NoError(t, err)

		_, err = f.uc.Execute(context.Background(), &Request{BookingID: b.ID})
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
		f.commander.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Execute(context.Background(), &Request{BookingID: 42})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Execute(context.Background(), &Request{BookingID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("reason too long", func(t *testing.T) {
		f := newFixture(t)

		b := f.reserve(t, 1, []int{0}, domain.StatusActive)
		_, err := f.uc.Execute(context.Background(), &Request{
			BookingID: b.ID,
			Reason:    strings.Repeat("x", domain.MaxStopReasonLength+1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.InDelta(t, 100.0/12, f.occupancy(t), 1e-9)
	})

	t.Run("ledger failure", func(t *testing.T) {
		ledger := new(MockLedger)
		ledger.On("Release", mock.Anything, int64(5), "").Return(nil, errors.New("connection refused"))

		uc := NewUseCase(ledger, new(MockCommander), new(MockMetrics), logger.Nop{})
		_, err := uc.Execute(context.Background(), &Request{BookingID: 5})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

// MockLedger мок для Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Release(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
