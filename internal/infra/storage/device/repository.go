package device

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

const table = "devices"

var columns = []string{
	"id",
	"name",
	"status",
	"slot_config_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий устройств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория устройств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет устройство; заданный ID сохраняется как есть
func (r *Repository) Create(ctx context.Context, device *domain.Device) (*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert(table)
	if device.ID != 0 {
		builder = builder.
			Columns("id", "name", "status", "slot_config_id").
			Values(device.ID, device.Name, device.Status, device.SlotConfigID)
	} else {
		builder = builder.
			Columns("name", "status", "slot_config_id").
			Values(device.Name, device.Status, device.SlotConfigID)
	}

	query, args, err := builder.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *device
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// GetByID получает устройство по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	device, err := scanDevice(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan device: %v", ErrScanRow, err)
	}

	return device, nil
}

// List получает все устройства по возрастанию ID
func (r *Repository) List(ctx context.Context) ([]*domain.Device, error) {
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

	devices := make([]*domain.Device, 0)
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		devices = append(devices, device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return devices, nil
}

// UpdateSlotConfig назначает устройству шаблон слота
func (r *Repository) UpdateSlotConfig(ctx context.Context, deviceID, configID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("slot_config_id", configID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotConfig - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotConfig - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotConfig - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDevice(row rowScanner) (*domain.Device, error) {
	var device domain.Device
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&device.ID,
		&device.Name,
		&device.Status,
		&device.SlotConfigID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	device.CreatedAt = createdAt.Time
	device.UpdatedAt = updatedAt.Time

	return &device, nil
}
