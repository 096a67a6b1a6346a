package get_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	getSlots "github.com/m04kA/DOOH-InventoryService/internal/usecase/get_slots"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
)

// MockGetSlotsUseCase мок для GetSlotsUseCase
type MockGetSlotsUseCase struct {
	mock.Mock
}

func (m *MockGetSlotsUseCase) Execute(ctx context.Context, req *getSlots.Request) (*getSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getSlots.Response), args.Error(1)
}

func serve(uc GetSlotsUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/slots/{deviceId}", NewHandler(uc, logger.Nop{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Overview(t *testing.T) {
	day := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)
	config := &domain.SlotConfiguration{
		ID:                     1,
		SubSlotDurationSeconds: 10,
		SubSlotsPerCycle:       12,
		PeakPrice:              decimal.NewFromInt(100),
		NonPeakPrice:           decimal.NewFromInt(60),
	}

	uc := new(MockGetSlotsUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getSlots.Request) bool {
		return r.DeviceID == 7 && r.Date.Equal(day) && r.ConfigurationID != nil && *r.ConfigurationID == 1
	})).Return(&getSlots.Response{
		DeviceID:        7,
		Date:            day,
		ConfigurationID: 1,
		Slots: []getSlots.SlotOverview{{
			Slot:           domain.NewTimeSlot(domain.NewTimeSlotKey(7, day, 8), config),
			TotalOccupancy: 7.0 / 12 * 100,
			FreeSubSlots:   []int{7, 8, 9, 10, 11},
			Claims: []getSlots.Claim{
				{BookingID: 1, ClientID: 1, SubSlots: []int{0, 1, 2, 3, 4, 5, 6}, Status: domain.StatusActive},
			},
		}},
	}, nil)

	rec := serve(uc, "/api/v1/slots/7?date=2025-10-08&configId=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body SlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "2025-10-08", body.Date)
	assert.Equal(t, 58, body.Slots[0].OccupancyPercent)
	assert.Equal(t, "peak", body.Slots[0].PricingTier)
	assert.Equal(t, []int{7, 8, 9, 10, 11}, body.Slots[0].FreeSubSlots)
	assert.Equal(t, int64(1), body.Slots[0].Claims[0].BookingID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		ucErr  error
		status int
	}{
		{"invalid device", "/api/v1/slots/x?date=2025-10-08", nil, http.StatusBadRequest},
		{"missing date", "/api/v1/slots/7", nil, http.StatusBadRequest},
		{"invalid date", "/api/v1/slots/7?date=tomorrow", nil, http.StatusBadRequest},
		{"invalid config id", "/api/v1/slots/7?date=2025-10-08&configId=abc", nil, http.StatusBadRequest},
		{"device not found", "/api/v1/slots/7?date=2025-10-08", getSlots.ErrDeviceNotFound, http.StatusNotFound},
		{"config mismatch", "/api/v1/slots/7?date=2025-10-08&configId=2", getSlots.ErrConfigMismatch, http.StatusBadRequest},
		{"internal", "/api/v1/slots/7?date=2025-10-08", getSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockGetSlotsUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(uc, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
