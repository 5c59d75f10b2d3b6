package entities_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lifeline-connect/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingToken_Format(t *testing.T) {
	token := entities.NewBookingToken()

	require.NotEmpty(t, token)
	assert.True(t, strings.HasPrefix(token, "APT-"))
	assert.Len(t, strings.Split(token, "-"), 3)
}

func TestNewBookingToken_UniqueAcrossRapidSequentialCalls(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		token := entities.NewBookingToken()
		_, dup := seen[token]
		require.False(t, dup, "duplicate token issued: %s", token)
		seen[token] = struct{}{}
	}
}

func TestNewBookingToken_UniqueUnderConcurrency(t *testing.T) {
	const workers = 8
	const perWorker = 500

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				token := entities.NewBookingToken()
				mu.Lock()
				seen[token] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestAppointment_DerivedState(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		slot string
		want entities.AppointmentState
	}{
		{"future date", "2025-04-01", "10:00 AM", entities.AppointmentStateUpcoming},
		{"past date", "2025-03-01", "10:00 AM", entities.AppointmentStateCompleted},
		{"same day earlier slot", "2025-03-15", "9:00 AM", entities.AppointmentStateCompleted},
		{"same day later slot", "2025-03-15", "4:30 PM", entities.AppointmentStateUpcoming},
		{"unparseable slot stays upcoming", "2025-03-15", "morning", entities.AppointmentStateUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &entities.Appointment{Date: tt.date, Time: tt.slot}
			assert.Equal(t, tt.want, a.DerivedState(now))
		})
	}
}
