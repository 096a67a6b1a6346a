package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Service переводит бронирования по датам показа:
// scheduled -> active в день начала, active -> completed после дня окончания
type Service struct {
	ledger       Ledger
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	runTimeout   time.Duration

	cron *cron.Cron
}

// NewService создает сервис жизненного цикла бронирований
func NewService(ledger Ledger, metrics Metrics, timeProvider TimeProvider, runTimeout time.Duration, logger Logger) *Service {
	return &Service{
		ledger:       ledger,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
		runTimeout:   runTimeout,
	}
}

// Start запускает периодический прогон по cron-расписанию (UTC)
func (s *Service) Start(schedule string) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()

		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Error("Lifecycle run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	s.cron = c
	c.Start()
	s.logger.Info("Lifecycle job started, schedule=%q", schedule)
	return nil
}

// Stop останавливает расписание и ждет завершения текущего прогона
func (s *Service) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Lifecycle job stopped")
	case <-ctx.Done():
		s.logger.Warn("Lifecycle job did not stop in time: %v", ctx.Err())
	}
}

// RunOnce выполняет один прогон и возвращает число переведенных бронирований
// Бронирование, остановленное параллельно, пропускается
func (s *Service) RunOnce(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	bookings, err := s.ledger.ListByStatus(ctx, domain.HoldingStatuses)
	if err != nil {
		return 0, fmt.Errorf("%w: RunOnce - list bookings: %v", ErrLedger, err)
	}

	advanced := 0
	for _, b := range bookings {
		// Бронирование, начавшееся и закончившееся между прогонами, проходит оба перехода
		for {
			next, ok := domain.NextStatus(b, now)
			if !ok {
				break
			}

			updated, err := s.ledger.UpdateStatus(ctx, b.ID, next)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidStateTransition) || errors.Is(err, domain.ErrAlreadyStopped) {
					s.logger.Warn("Lifecycle: booking id=%d changed concurrently: %v", b.ID, err)
					break
				}
				if ctx.Err() != nil {
					return advanced, ctx.Err()
				}
				s.logger.Error("Lifecycle: failed to move booking id=%d to %s: %v", b.ID, next, err)
				break
			}

			s.metrics.StatusAdvanced(string(next))
			s.logger.Info("Lifecycle: booking id=%d %s -> %s", b.ID, b.Status, next)
			advanced++
			b = updated
		}
	}

	return advanced, nil
}
