package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
)

func TestRoundTimerLifecycle(t *testing.T) {
	c := newTestController(t, eveningConfig(), 8, nil)
	c.Generate()

	assert.Equal(t, TimerGlobal, c.TimerMode())
	assert.Equal(t, 600, c.RoundRemaining(), "armed at the full match duration")
	assert.False(t, c.RoundRunning())

	t.Run("ticks only while running", func(t *testing.T) {
		c.Tick()
		assert.Equal(t, 600, c.RoundRemaining())

		c.StartRoundTimer()
		c.Tick()
		c.Tick()
		assert.Equal(t, 598, c.RoundRemaining())
	})

	t.Run("pause holds the countdown", func(t *testing.T) {
		c.PauseRoundTimer()
		c.Tick()
		assert.Equal(t, 598, c.RoundRemaining())
		assert.False(t, c.RoundRunning())
	})

	t.Run("reset re-arms stopped", func(t *testing.T) {
		c.ResetRoundTimer()
		assert.Equal(t, 600, c.RoundRemaining())
		assert.False(t, c.RoundRunning())
	})
}

func TestRoundTimerExpiryAdvances(t *testing.T) {
	cfg := eveningConfig()
	cfg.MatchDuration = 1
	cfg.EndTime = config.TimeOfDay{Hour: 18, Minute: 3}
	c := newTestController(t, cfg, 8, nil)
	require.Equal(t, 3, c.Generate())

	c.StartRoundTimer()
	for i := 0; i < 59; i++ {
		advanced, _ := c.Tick()
		require.False(t, advanced, "tick %d", i+1)
	}
	assert.Equal(t, 1, c.RoundRemaining())

	advanced, terminal := c.Tick()

	assert.True(t, advanced, "the final tick triggers the advance")
	assert.False(t, terminal)
	assert.Equal(t, 1, c.CurrentIndex())
	assert.True(t, c.Tours()[0].Completed)
	assert.Equal(t, 60, c.RoundRemaining(), "the next tour starts with a fresh timer")
	assert.False(t, c.RoundRunning())
}

func TestRoundTimerExpiryAtEndOfEvent(t *testing.T) {
	cfg := eveningConfig()
	cfg.MatchDuration = 1
	cfg.EndTime = config.TimeOfDay{Hour: 18, Minute: 1}
	c := newTestController(t, cfg, 8, nil)
	require.Equal(t, 1, c.Generate())

	c.StartRoundTimer()
	var advanced, terminal bool
	for i := 0; i < 60; i++ {
		advanced, terminal = c.Tick()
	}

	assert.True(t, advanced)
	assert.True(t, terminal)
	assert.Equal(t, Exhausted, c.State())
	assert.Equal(t, 0, c.RoundRemaining())
}

func TestIndividualTimers(t *testing.T) {
	cfg := eveningConfig()
	cfg.Courts = 2
	c := newTestController(t, cfg, 8, nil)
	c.Generate()

	c.UseIndividualTimers()

	require.Equal(t, TimerIndividual, c.TimerMode())
	assert.False(t, c.RoundRunning(), "the global timer stops when switching modes")

	cur := c.CurrentTour()
	require.Len(t, cur.Matches, 2)
	timers := c.MatchTimers()
	require.Len(t, timers, 2)
	for _, m := range cur.Matches {
		mt := timers[m.ID]
		require.NotNil(t, mt)
		assert.Equal(t, 600, mt.Remaining)
		assert.False(t, mt.Running)
	}

	first, second := cur.Matches[0].ID, cur.Matches[1].ID

	t.Run("timers count down independently", func(t *testing.T) {
		c.ToggleMatchTimer(first)
		c.Tick()
		c.Tick()
		assert.Equal(t, 598, timers[first].Remaining)
		assert.Equal(t, 600, timers[second].Remaining)
	})

	t.Run("toggle pauses", func(t *testing.T) {
		c.ToggleMatchTimer(first)
		c.Tick()
		assert.Equal(t, 598, timers[first].Remaining)
		assert.False(t, timers[first].Running)
	})

	t.Run("reset re-arms one timer", func(t *testing.T) {
		c.ResetMatchTimer(first)
		mt := c.MatchTimers()[first]
		assert.Equal(t, 600, mt.Remaining)
		assert.False(t, mt.Running)
	})

	t.Run("unknown match id is ignored", func(t *testing.T) {
		c.ToggleMatchTimer("no-such-match")
		c.ResetMatchTimer("no-such-match")
	})

	t.Run("individual ticks never advance the tour", func(t *testing.T) {
		advanced, terminal := c.Tick()
		assert.False(t, advanced)
		assert.False(t, terminal)
		assert.Equal(t, 0, c.CurrentIndex())
	})
}

func TestIndividualTimerStopsAtZero(t *testing.T) {
	cfg := eveningConfig()
	cfg.MatchDuration = 1
	cfg.EndTime = config.TimeOfDay{Hour: 18, Minute: 2}
	c := newTestController(t, cfg, 8, nil)
	c.Generate()

	c.UseIndividualTimers()
	id := c.CurrentTour().Matches[0].ID
	c.ToggleMatchTimer(id)

	for i := 0; i < 60; i++ {
		c.Tick()
	}

	mt := c.MatchTimers()[id]
	assert.Equal(t, 0, mt.Remaining)
	assert.False(t, mt.Running)
	assert.Equal(t, 0, c.CurrentIndex(), "an expired match timer does not end the tour")

	t.Run("restarting an expired timer re-arms it", func(t *testing.T) {
		c.ToggleMatchTimer(id)
		assert.True(t, mt.Running)
		assert.Equal(t, 60, mt.Remaining)
	})
}

func TestSwitchingBackToGlobalClearsIndividualTimers(t *testing.T) {
	c := newTestController(t, eveningConfig(), 8, nil)
	c.Generate()

	c.UseIndividualTimers()
	require.NotEmpty(t, c.MatchTimers())

	c.StartRoundTimer()

	assert.Equal(t, TimerGlobal, c.TimerMode())
	assert.True(t, c.RoundRunning())
	assert.Empty(t, c.MatchTimers())
}
