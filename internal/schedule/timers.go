package schedule

// TimerMode selects which countdown mechanism is active. The two modes are
// mutually exclusive: switching one on clears the other's counters.
type TimerMode int

const (
	// TimerGlobal: one round timer counts down for the whole tour.
	TimerGlobal TimerMode = iota
	// TimerIndividual: each match in the current tour has its own countdown.
	TimerIndividual
)

// MatchTimer is one match's independent countdown.
type MatchTimer struct {
	Remaining int // seconds
	Running   bool
}

type timerState struct {
	mode           TimerMode
	roundRemaining int // seconds
	roundRunning   bool
	perMatch       map[string]*MatchTimer
}

// TimerMode returns the active countdown mode.
func (c *Controller) TimerMode() TimerMode { return c.timers.mode }

// RoundRemaining returns the seconds left on the global round timer.
func (c *Controller) RoundRemaining() int { return c.timers.roundRemaining }

// RoundRunning reports whether the global round timer is counting down.
func (c *Controller) RoundRunning() bool { return c.timers.roundRunning }

// MatchTimers returns the per-match countdowns, keyed by match id. Empty
// outside individual mode.
func (c *Controller) MatchTimers() map[string]*MatchTimer { return c.timers.perMatch }

// resetTimers re-arms the global round timer at the full match duration and
// clears per-match timers. Called on every tour transition.
func (c *Controller) resetTimers() {
	c.timers.mode = TimerGlobal
	c.timers.roundRemaining = c.cfg.MatchDuration * 60
	c.timers.roundRunning = false
	c.timers.perMatch = nil
}

func (c *Controller) stopRoundTimer() {
	c.timers.roundRunning = false
	c.timers.roundRemaining = 0
}

// StartRoundTimer starts (or resumes) the global round timer, switching back
// to global mode and clearing any individual timers.
func (c *Controller) StartRoundTimer() {
	if c.timers.roundRemaining <= 0 {
		c.timers.roundRemaining = c.cfg.MatchDuration * 60
	}
	c.timers.mode = TimerGlobal
	c.timers.roundRunning = true
	c.timers.perMatch = nil
}

// PauseRoundTimer pauses the global round timer without resetting it.
func (c *Controller) PauseRoundTimer() {
	c.timers.roundRunning = false
}

// ResetRoundTimer re-arms the global timer at the full match duration,
// stopped, and clears individual timers.
func (c *Controller) ResetRoundTimer() {
	c.resetTimers()
}

// UseIndividualTimers switches to per-match countdowns: the global timer
// stops and every match in the current tour gets its own full-duration
// timer, initially paused.
func (c *Controller) UseIndividualTimers() {
	c.timers.roundRunning = false
	c.timers.mode = TimerIndividual
	c.timers.perMatch = make(map[string]*MatchTimer)
	if cur := c.CurrentTour(); cur != nil {
		for _, m := range cur.Matches {
			c.timers.perMatch[m.ID] = &MatchTimer{
				Remaining: c.cfg.MatchDuration * 60,
			}
		}
	}
}

// ToggleMatchTimer starts or pauses one match's countdown in individual
// mode. Starting an expired timer re-arms it at the full duration.
func (c *Controller) ToggleMatchTimer(matchID string) {
	mt, ok := c.timers.perMatch[matchID]
	if !ok {
		return
	}
	mt.Running = !mt.Running
	if mt.Running && mt.Remaining <= 0 {
		mt.Remaining = c.cfg.MatchDuration * 60
	}
}

// ResetMatchTimer re-arms one match's countdown at the full duration,
// paused.
func (c *Controller) ResetMatchTimer(matchID string) {
	if _, ok := c.timers.perMatch[matchID]; !ok {
		return
	}
	c.timers.perMatch[matchID] = &MatchTimer{
		Remaining: c.cfg.MatchDuration * 60,
	}
}

// Tick advances the active countdown by one second. In global mode, an
// expiring round timer triggers Advance; the returned values report whether
// that happened and whether the event reached its terminal state. In
// individual mode each running match timer counts down independently and
// simply stops at zero.
func (c *Controller) Tick() (advanced, terminal bool) {
	switch c.timers.mode {
	case TimerGlobal:
		if !c.timers.roundRunning {
			return false, false
		}
		c.timers.roundRemaining--
		if c.timers.roundRemaining > 0 {
			return false, false
		}
		c.timers.roundRunning = false
		c.timers.roundRemaining = 0
		return true, c.Advance()

	case TimerIndividual:
		for _, mt := range c.timers.perMatch {
			if !mt.Running {
				continue
			}
			mt.Remaining--
			if mt.Remaining <= 0 {
				mt.Remaining = 0
				mt.Running = false
			}
		}
	}
	return false, false
}
