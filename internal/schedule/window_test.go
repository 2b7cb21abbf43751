package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
)

func TestNextTourTimingFirstTour(t *testing.T) {
	cfg := eveningConfig()

	start, end := NextTourTiming(time.Time{}, cfg, testNow)

	assert.Equal(t, at(18, 0), start, "first tour starts at the configured start time, anchored to today")
	assert.Equal(t, at(18, 10), end)
}

func TestNextTourTimingAfterPreviousTour(t *testing.T) {
	cfg := eveningConfig()
	cfg.BreakDuration = 3

	start, end := NextTourTiming(at(18, 12), cfg, testNow)

	assert.Equal(t, at(18, 15), start, "start is previous actual end plus break")
	assert.Equal(t, at(18, 25), end)
}

func TestFitsWithinWindow(t *testing.T) {
	cfg := eveningConfig()

	assert.True(t, FitsWithinWindow(at(18, 20), cfg, testNow))
	assert.True(t, FitsWithinWindow(at(18, 30), cfg, testNow), "ending exactly at the window end fits")
	assert.False(t, FitsWithinWindow(at(18, 31), cfg, testNow))
}

func TestEventExhausted(t *testing.T) {
	cfg := eveningConfig()

	t.Run("now past end of window", func(t *testing.T) {
		assert.True(t, EventExhausted(at(19, 0), cfg, 0))
	})

	t.Run("capacity not yet reached", func(t *testing.T) {
		// floor(30/10) = 3 tours fit; index 2 is the third.
		assert.False(t, EventExhausted(at(18, 5), cfg, 0))
		assert.False(t, EventExhausted(at(18, 5), cfg, 2))
	})

	t.Run("capacity reached", func(t *testing.T) {
		assert.True(t, EventExhausted(at(18, 5), cfg, 3))
	})

	t.Run("break counts against capacity", func(t *testing.T) {
		withBreak := cfg
		withBreak.BreakDuration = 5
		// floor(30/15) = 2 tours.
		assert.False(t, EventExhausted(at(18, 5), withBreak, 1))
		assert.True(t, EventExhausted(at(18, 5), withBreak, 2))
	})

	t.Run("zero-length window", func(t *testing.T) {
		degenerate := cfg
		degenerate.EndTime = config.TimeOfDay{Hour: 18}
		// now == end-of-day is not "past", but the window holds nothing.
		assert.True(t, EventExhausted(at(17, 0), degenerate, 0))
	})
}
