package get_slot_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage/memory"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
)

func TestHandle(t *testing.T) {
	service := slotconfig.NewService(memory.NewSlotConfigRepository(), memory.NewDeviceRepository(), memory.NewLedger(), logger.Nop{})
	_, err := service.Register(context.Background(), &models.RegisterConfigRequest{
		Name:                      "1h / 12 x 5m",
		MasterSlotDurationSeconds: 3600,
		SubSlotDurationSeconds:    300,
		SubSlotsPerCycle:          12,
		PeakPrice:                 decimal.NewFromInt(500),
		NonPeakPrice:              decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/slot-configurations/{id}", NewHandler(service, logger.Nop{}).Handle)

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/slot-configurations/1", http.StatusOK},
		{"/api/v1/slot-configurations/2", http.StatusNotFound},
		{"/api/v1/slot-configurations/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
