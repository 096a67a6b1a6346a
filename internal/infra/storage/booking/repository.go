package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/DOOH-InventoryService/pkg/psqlbuilder"
)

const table = "slot_bookings"

var columns = []string{
	"id",
	"device_id",
	"slot_date",
	"slot_hour",
	"slot_config_id",
	"sub_slots_per_cycle",
	"sub_slots",
	"client_id",
	"content_type",
	"content_ids",
	"playback_mode",
	"stack_duration_seconds",
	"start_date",
	"end_date",
	"occupancy_percent",
	"status",
	"stop_reason",
	"stopped_at",
	"created_at",
	"updated_at",
}

// Repository журнал загрузки слотов в PostgreSQL
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Reserve проверяет и занимает подслоты в сериализуемой транзакции
// Бронирования того же устройства и часа с пересекающимся периодом читаются с FOR UPDATE,
// конфликт сериализации при параллельной вставке в пустой час повторяется менеджером транзакций.
func (r *Repository) Reserve(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	subSlots, err := domain.NormalizeSubSlots(booking.SubSlots, booking.SubSlotsPerCycle)
	if err != nil {
		return nil, err
	}

	normalized := booking.Clone()
	normalized.SubSlots = subSlots
	normalized.OccupancyPercent = domain.OccupancyPercent(len(subSlots), booking.SubSlotsPerCycle)
	normalized.DateRange = booking.Period()

	var created *domain.Booking

	err = r.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := r.selectBookings(txCtx, laneFilter(normalized.Slot, normalized.DateRange), true)
		if err != nil {
			return err
		}

		if err := domain.CheckReservation(existing, normalized.DateRange, subSlots, normalized.SubSlotsPerCycle); err != nil {
			return err
		}

		created, err = r.insert(txCtx, normalized)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Release останавливает бронирование и освобождает подслоты
func (r *Repository) Release(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	return r.update(ctx, bookingID, func(b *domain.Booking) (squirrel.UpdateBuilder, error) {
		if b.Status == domain.StatusStopped {
			return squirrel.UpdateBuilder{}, domain.ErrAlreadyStopped
		}
		if !b.CanBeStopped() {
			return squirrel.UpdateBuilder{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStateTransition, b.Status, domain.StatusStopped)
		}

		var stopReason *string
		if reason != "" {
			stopReason = &reason
		}

		return psqlbuilder.Update(table).
			Set("status", domain.StatusStopped).
			Set("stop_reason", stopReason).
			Set("stopped_at", squirrel.Expr("NOW()")).
			Set("updated_at", squirrel.Expr("NOW()")), nil
	})
}

// UpdateStatus переводит бронирование в новый статус
func (r *Repository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	return r.update(ctx, bookingID, func(b *domain.Booking) (squirrel.UpdateBuilder, error) {
		if !domain.CanTransition(b.Status, status) {
			return squirrel.UpdateBuilder{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStateTransition, b.Status, status)
		}

		builder := psqlbuilder.Update(table).
			Set("status", status).
			Set("updated_at", squirrel.Expr("NOW()"))
		if status == domain.StatusStopped {
			builder = builder.Set("stopped_at", squirrel.Expr("NOW()"))
		}
		return builder, nil
	})
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	bookings, err := r.selectBookings(ctx, squirrel.Eq{"id": id}, false)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// BookingsFor все бронирования, занимающие час key.Hour в день key.Date
func (r *Repository) BookingsFor(ctx context.Context, key domain.TimeSlotKey) ([]*domain.Booking, error) {
	return r.selectBookings(ctx, slotFilter(key, false), false)
}

// TotalOccupancy суммарная загрузка слота scheduled и active бронированиями
func (r *Repository) TotalOccupancy(ctx context.Context, key domain.TimeSlotKey) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(occupancy_percent), 0)").
		From(table).
		Where(slotFilter(key, true)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: TotalOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	var total float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: TotalOccupancy - scan total: %v", ErrScanRow, err)
	}
	return total, nil
}

// ListByStatus бронирования с любым из указанных статусов
func (r *Repository) ListByStatus(ctx context.Context, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	return r.selectBookings(ctx, squirrel.Eq{"status": statusStrings(statuses)}, false)
}

// ListByDevice бронирования устройства с фильтрацией по дню показа и статусу
func (r *Repository) ListByDevice(ctx context.Context, filter domain.DeviceBookingsFilter) ([]*domain.Booking, error) {
	where := squirrel.And{squirrel.Eq{"device_id": filter.DeviceID}}

	if filter.Date != nil {
		where = append(where, coversDate(*filter.Date))
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}

	return r.selectBookings(ctx, where, false)
}

// ListByClient все бронирования клиента
func (r *Repository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	return r.selectBookings(ctx, squirrel.Eq{"client_id": clientID}, false)
}

// update читает бронирование с блокировкой строки, проверяет переход через prepare и обновляет
// Если prepare вернул ошибку, возвращается текущее состояние бронирования вместе с ошибкой
func (r *Repository) update(
	ctx context.Context,
	bookingID int64,
	prepare func(b *domain.Booking) (squirrel.UpdateBuilder, error),
) (*domain.Booking, error) {
	var result *domain.Booking

	err := r.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := r.selectBookings(txCtx, squirrel.Eq{"id": bookingID}, true)
		if err != nil {
			return err
		}
		if len(bookings) == 0 {
			return ErrBookingNotFound
		}
		current := bookings[0]

		builder, err := prepare(current)
		if err != nil {
			result = current
			return err
		}

		query, args, err := builder.
			Where(squirrel.Eq{"id": bookingID}).
			Suffix("RETURNING " + joinColumns()).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: update - build update query: %v", ErrBuildQuery, err)
		}

		executor := dbmetrics.GetExecutor(txCtx, r.db)
		updated, err := scanBooking(executor.QueryRowContext(txCtx, query, args...))
		if err != nil {
			return fmt.Errorf("%w: update - execute update: %w", ErrExecQuery, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrAlreadyStopped) || errors.Is(err, domain.ErrInvalidStateTransition) {
			return result, err
		}
		return nil, err
	}

	return result, nil
}

func (r *Repository) insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[1:len(columns)-2]...).
		Values(
			booking.Slot.DeviceID,
			booking.Slot.Date,
			booking.Slot.Hour,
			booking.SlotConfigID,
			booking.SubSlotsPerCycle,
			pq.Array(toInt64s(booking.SubSlots)),
			booking.ClientID,
			booking.ContentType,
			pq.Array(booking.ContentIDs),
			booking.PlaybackMode,
			booking.StackDurationSeconds,
			domain.DateOnly(booking.DateRange.Start),
			domain.DateOnly(booking.DateRange.End),
			booking.OccupancyPercent,
			booking.Status,
			booking.StopReason,
			booking.StoppedAt,
		).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: insert - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		// %w сохраняет *pq.Error, чтобы менеджер транзакций мог повторить конфликт сериализации
		return nil, fmt.Errorf("%w: insert - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

func (r *Repository) selectBookings(ctx context.Context, where squirrel.Sqlizer, forUpdate bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("id ASC")

	// FOR UPDATE имеет смысл только внутри транзакции
	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: selectBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: selectBookings - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: selectBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: selectBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// slotFilter бронирования часа, чей период содержит дату слота
// holdingOnly оставляет только scheduled и active
func slotFilter(key domain.TimeSlotKey, holdingOnly bool) squirrel.Sqlizer {
	where := squirrel.And{
		squirrel.Eq{"device_id": key.DeviceID},
		squirrel.Eq{"slot_hour": key.Hour},
		coversDate(key.Date),
	}
	if holdingOnly {
		where = append(where, squirrel.Eq{"status": statusStrings(domain.HoldingStatuses)})
	}
	return where
}

// laneFilter scheduled и active бронирования часа, чей период пересекается с period
func laneFilter(key domain.TimeSlotKey, period domain.DateRange) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"device_id": key.DeviceID},
		squirrel.Eq{"slot_hour": key.Hour},
		squirrel.LtOrEq{"start_date": domain.DateOnly(period.End)},
		squirrel.GtOrEq{"end_date": domain.DateOnly(period.Start)},
		squirrel.Eq{"status": statusStrings(domain.HoldingStatuses)},
	}
}

func coversDate(date time.Time) squirrel.Sqlizer {
	d := domain.DateOnly(date)
	return squirrel.And{
		squirrel.LtOrEq{"start_date": d},
		squirrel.GtOrEq{"end_date": d},
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b          domain.Booking
		slotDate   time.Time
		subSlots   pq.Int64Array
		contentIDs pq.Int64Array
		stack      sql.NullInt64
		stopReason sql.NullString
		stoppedAt  sql.NullTime
		createdAt  sql.NullTime
		updatedAt  sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.Slot.DeviceID,
		&slotDate,
		&b.Slot.Hour,
		&b.SlotConfigID,
		&b.SubSlotsPerCycle,
		&subSlots,
		&b.ClientID,
		&b.ContentType,
		&contentIDs,
		&b.PlaybackMode,
		&stack,
		&b.DateRange.Start,
		&b.DateRange.End,
		&b.OccupancyPercent,
		&b.Status,
		&stopReason,
		&stoppedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Slot.Date = domain.DateOnly(slotDate)
	b.DateRange.Start = domain.DateOnly(b.DateRange.Start)
	b.DateRange.End = domain.DateOnly(b.DateRange.End)
	b.SubSlots = make([]int, len(subSlots))
	for i, v := range subSlots {
		b.SubSlots[i] = int(v)
	}
	b.ContentIDs = []int64(contentIDs)
	if stack.Valid {
		v := int(stack.Int64)
		b.StackDurationSeconds = &v
	}
	if stopReason.Valid {
		b.StopReason = &stopReason.String
	}
	if stoppedAt.Valid {
		b.StoppedAt = &stoppedAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func joinColumns() string {
	result := ""
	for i, c := range columns {
		if i > 0 {
			result += ", "
		}
		result += c
	}
	return result
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func toInt64s(values []int) []int64 {
	result := make([]int64, len(values))
	for i, v := range values {
		result[i] = int64(v)
	}
	return result
}
