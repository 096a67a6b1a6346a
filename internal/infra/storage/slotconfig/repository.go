package slotconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/DOOH-InventoryService/pkg/psqlbuilder"
)

const table = "slot_configurations"

var columns = []string{
	"id",
	"name",
	"master_slot_duration_seconds",
	"sub_slot_duration_seconds",
	"sub_slots_per_cycle",
	"peak_price",
	"non_peak_price",
	"created_at",
	"updated_at",
}

// Repository репозиторий шаблонов слотов
// Шаблоны только создаются и читаются, обновления нет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет шаблон слота
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"master_slot_duration_seconds",
			"sub_slot_duration_seconds",
			"sub_slots_per_cycle",
			"peak_price",
			"non_peak_price",
		).
		Values(
			config.Name,
			config.MasterSlotDurationSeconds,
			config.SubSlotDurationSeconds,
			config.SubSlotsPerCycle,
			config.PeakPrice,
			config.NonPeakPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *config
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// List получает все шаблоны по возрастанию ID
func (r *Repository) List(ctx context.Context) ([]*domain.SlotConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SlotConfiguration, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.SlotConfiguration, error) {
	var config domain.SlotConfiguration
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.Name,
		&config.MasterSlotDurationSeconds,
		&config.SubSlotDurationSeconds,
		&config.SubSlotsPerCycle,
		&config.PeakPrice,
		&config.NonPeakPrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
