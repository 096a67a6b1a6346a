package slotconfig

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DOOH-InventoryService/pkg/dbmetrics"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Plain(db)), mock
}

func TestList_ScansPrices(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM slot_configurations ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "2m / 12 x 10s", int64(120), int64(10), int64(12), "100.00", "60.50", now, now).
			AddRow(int64(2), "1h / 8 x 450s", int64(3600), int64(450), int64(8), "900", "400", now, now))

	configs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, 12, configs[0].SubSlotsPerCycle)
	assert.True(t, decimal.RequireFromString("60.5").Equal(configs[0].NonPeakPrice))
	assert.Equal(t, 3600, configs[1].MasterSlotDurationSeconds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM slot_configurations WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
