package register_slot_config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage/memory"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{
			name:   "valid",
			body:   `{"name":"2m","masterSlotDurationSeconds":120,"subSlotDurationSeconds":10,"subSlotsPerCycle":12,"peakPrice":"100","nonPeakPrice":"60.5"}`,
			status: http.StatusCreated,
		},
		{
			name:   "sub slots do not fill the master slot",
			body:   `{"name":"bad","masterSlotDurationSeconds":100,"subSlotDurationSeconds":10,"subSlotsPerCycle":12,"peakPrice":"1","nonPeakPrice":"1"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			body:   `{"name":"x","slots":12}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "empty body",
			body:   ``,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := slotconfig.NewService(memory.NewSlotConfigRepository(), memory.NewDeviceRepository(), memory.NewLedger(), logger.Nop{})
			h := NewHandler(service, logger.Nop{})

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slot-configurations", strings.NewReader(tt.body)))
			require.Equal(t, tt.status, rec.Code)

			if tt.status == http.StatusCreated {
				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.EqualValues(t, 1, body["id"])
				assert.Equal(t, "60.5", body["nonPeakPrice"])
			}
		})
	}
}
