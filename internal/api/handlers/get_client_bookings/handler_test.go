package get_client_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage/memory"
	"github.com/m04kA/DOOH-InventoryService/internal/service/bookings"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
)

func TestHandle(t *testing.T) {
	ledger := memory.NewLedger()
	day := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	for _, clientID := range []int64{1, 1, 2} {
		_, err := ledger.Reserve(context.Background(), &domain.Booking{
			Slot:             domain.NewTimeSlotKey(7, day, 9+int(clientID)),
			SubSlotsPerCycle: 12,
			SubSlots:         []int{int(clientID)},
			ClientID:         clientID,
			ContentType:      domain.ContentMedia,
			ContentIDs:       []int64{100 + clientID},
			PlaybackMode:     domain.PlaybackFixed,
			DateRange:        domain.DateRange{Start: day, End: day},
			OccupancyPercent: 100.0 / 12,
			Status:           domain.StatusActive,
		})
		require.NoError(t, err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/clients/{clientId}/bookings", NewHandler(bookings.NewService(ledger, logger.Nop{}), logger.Nop{}).Handle)

	tests := []struct {
		name   string
		target string
		status int
		count  int
	}{
		{"client 1", "/api/v1/clients/1/bookings", http.StatusOK, 2},
		{"client 2 active", "/api/v1/clients/2/bookings?status=active", http.StatusOK, 1},
		{"client 2 stopped", "/api/v1/clients/2/bookings?status=stopped", http.StatusOK, 0},
		{"invalid status", "/api/v1/clients/2/bookings?status=done", http.StatusBadRequest, 0},
		{"invalid client", "/api/v1/clients/-1/bookings", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.Equal(t, tt.status, rec.Code)

			if tt.status == http.StatusOK {
				var body []map[string]interface{}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Len(t, body, tt.count)
			}
		})
	}
}
