package playback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
)

func stoppedBooking() *domain.Booking {
	reason := "wrong creative"
	return &domain.Booking{
		ID:         7,
		Slot:       domain.NewTimeSlotKey(3, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 8),
		SubSlots:   []int{0, 1, 2},
		ContentIDs: []int64{10},
		Status:     domain.StatusStopped,
		StopReason: &reason,
	}
}

func TestClient_SendDeliversStopCommand(t *testing.T) {
	var received Command
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/devices/3/commands", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0, logger.Nop{})
	cmd := NewStopCommand(stoppedBooking(), time.Now())

	require.NoError(t, c.Send(context.Background(), cmd))
	assert.Equal(t, CommandStop, received.Type)
	assert.Equal(t, int64(7), received.BookingID)
	assert.Equal(t, "2025-01-01", received.Date)
	assert.Equal(t, []int{0, 1, 2}, received.SubSlots)
	assert.Equal(t, "wrong creative", received.Reason)
}

func TestClient_SendRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 2, logger.Nop{})

	require.NoError(t, c.Send(context.Background(), NewStopCommand(stoppedBooking(), time.Now())))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_SendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0, logger.Nop{})

	err := c.Send(context.Background(), NewStopCommand(stoppedBooking(), time.Now()))
	assert.ErrorIs(t, err, ErrRejected)
}

func TestLogSink_NeverFails(t *testing.T) {
	sink := NewLogSink(logger.Nop{})
	assert.NoError(t, sink.Send(context.Background(), NewStopCommand(stoppedBooking(), time.Now())))
}
