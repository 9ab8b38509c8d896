package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"expertbook/internal/realtime"
	"expertbook/internal/repository"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ev realtime.Event, userIDs ...string) {
	m.Called(ev.Type, ev.Booking.ID, userIDs)
}

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestCheckSlot(t *testing.T) {
	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"tomorrow", fixedNow.Add(24 * time.Hour), nil},
		{"exactly three months", fixedNow.AddDate(0, 3, 0), nil},
		{"now is not future", fixedNow, ErrDateNotInFuture},
		{"past", fixedNow.Add(-time.Minute), ErrDateNotInFuture},
		{"beyond window", fixedNow.AddDate(0, 3, 1), ErrDateTooFar},
		{"zero", time.Time{}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSlot(tt.at, fixedNow)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNotFound(t *testing.T) {
	assert.NoError(t, notFound(nil, "x"))

	err := notFound(repository.ErrNotFound, "expert")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "expert: not found")

	other := errors.New("boom")
	assert.Equal(t, other, notFound(other, "expert"))
}

func TestRequireFields(t *testing.T) {
	assert.NoError(t, requireFields("a", "x", "b", "y"))
	err := requireFields("a", "x", "b", "  ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "validation failed: b is required")
}
