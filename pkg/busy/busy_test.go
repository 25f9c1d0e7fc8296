package busy

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerCountsOverlappingSequences(t *testing.T) {
	tracker := NewTracker()
	assert.False(t, tracker.Busy())

	tracker.Begin()
	tracker.Begin()
	assert.True(t, tracker.Busy())
	assert.EqualValues(t, 2, tracker.InFlight())

	tracker.End()
	assert.True(t, tracker.Busy(), "still busy while one sequence remains")

	tracker.End()
	assert.False(t, tracker.Busy())
}

func TestTrackerEndClampsAtZero(t *testing.T) {
	tracker := NewTracker()
	tracker.End()
	assert.EqualValues(t, 0, tracker.InFlight())
}

func TestTrackerTrackReleasesOnError(t *testing.T) {
	tracker := NewTracker()
	wantErr := errors.New("fetch failed")

	err := tracker.Track(func() error {
		assert.True(t, tracker.Busy())
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.False(t, tracker.Busy())
}

func TestTrackerConcurrent(t *testing.T) {
	tracker := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tracker.Track(func() error { return nil })
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 0, tracker.InFlight())
}
