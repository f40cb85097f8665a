package queue

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleMessageAppendsJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	c := NewConsumer("amqp://unused", path, zap.NewNop())

	ev := BookingEvent{
		Type: BookingApproved, BookingID: 4, ItemID: 2, ItemName: "Drill",
		OwnerID: 1, BookerID: 3, Status: "APPROVED",
		StartsAt: "2025-06-01T10:00:00Z", EndsAt: "2025-06-02T10:00:00Z",
		OccurredAt: "2025-05-30T09:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, c.handleMessage(body))
	require.NoError(t, c.handleMessage(body))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		`[2025-05-30T09:00:00Z] Booking APPROVED | booking_id=4 | item_id=2 | item="Drill" | owner_id=1 | booker_id=3 | status=APPROVED | start=2025-06-01T10:00:00Z | end=2025-06-02T10:00:00Z`,
		lines[0])
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	c := NewConsumer("amqp://unused", filepath.Join(t.TempDir(), "booking.log"), zap.NewNop())
	assert.Error(t, c.handleMessage([]byte("{not json")))
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleep(ctx, time.Minute))
	assert.True(t, sleep(context.Background(), time.Millisecond))
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	assert.Equal(t, "2025-06-01T09:00:00Z", FormatTime(time.Date(2025, 6, 1, 12, 0, 0, 0, loc)))
}
