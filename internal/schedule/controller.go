package schedule

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/tiendc/go-deepcopy"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
	"github.com/Wawaguigui/MatchPlanner/internal/pool"
	"github.com/Wawaguigui/MatchPlanner/internal/roster"
)

// maxPreGeneratedTours bounds the pre-generation loop. Hitting the cap is a
// warning, not a failure: the schedule simply stops growing ahead of time and
// further tours are synthesized on demand.
const maxPreGeneratedTours = 50

// State is the controller's position in its lifecycle.
type State int

const (
	// Empty: no schedule exists for the current configuration.
	Empty State = iota
	// PreGenerated: a full schedule was built ahead of time.
	PreGenerated
	// Active: the cursor is inside the schedule and play is under way.
	Active
	// Exhausted: terminal, no further tour fits inside the window.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case PreGenerated:
		return "pre-generated"
	case Active:
		return "active"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Clock is the controller's source of wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// MatchRecord is a flattened per-match history row handed to the store. It
// duplicates the tour timing so score history survives rescheduling.
type MatchRecord struct {
	Match        `bson:",inline"`
	Tour         int       `bson:"tour"`
	TournamentID string    `bson:"tournament_id"`
	StartLabel   string    `bson:"start_label"`
	EndLabel     string    `bson:"end_label"`
	ActualStart  time.Time `bson:"actual_start"`
	ActualEnd    time.Time `bson:"actual_end"`
	Timestamp    time.Time `bson:"timestamp"`
}

// Store is the persistence collaborator. Calls are fire-and-forget from the
// controller's perspective: errors are logged and never interrupt the state
// machine.
type Store interface {
	SaveSchedule(tournamentID string, tours []Tour) error
	SaveMatches(tournamentID string, records []MatchRecord) error
	SaveMatchScore(tournamentID, matchID string, team Team, score *int) error
	ReadSchedule(tournamentID string) ([]Tour, error)
}

type noopStore struct{}

func (noopStore) SaveSchedule(string, []Tour) error                { return nil }
func (noopStore) SaveMatches(string, []MatchRecord) error          { return nil }
func (noopStore) SaveMatchScore(string, string, Team, *int) error  { return nil }
func (noopStore) ReadSchedule(string) ([]Tour, error)              { return nil, nil }

// Controller owns one tournament's schedule: it pre-generates tours, advances
// through them as time and user actions allow, and decides when the event is
// over. It is single-threaded; all methods must be called from one goroutine.
type Controller struct {
	tournamentID string
	cfg          config.Tournament // snapshot the schedule was generated against
	selected     []roster.Player
	gen          *Generator
	rng          *rand.Rand
	store        Store
	clock        Clock
	log          *slog.Logger

	tours   []Tour
	current int
	state   State

	timers timerState
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore sets the persistence collaborator.
func WithStore(s Store) Option {
	return func(c *Controller) { c.store = s }
}

// WithClock sets the wall-clock source.
func WithClock(clk Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

// WithRand sets the random source used for pool shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the logger for warnings and persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController builds a controller for one tournament. The configuration and
// selected players are deep-copied so later edits to the live config cannot
// alias into the running schedule; EnsureSchedule detects such edits and
// regenerates.
func NewController(tournamentID string, cfg config.Tournament, selected []roster.Player, opts ...Option) *Controller {
	c := &Controller{
		tournamentID: tournamentID,
		store:        noopStore{},
		clock:        systemClock{},
		log:          slog.Default(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		state:        Empty,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.snapshot(cfg, selected)
	return c
}

func (c *Controller) snapshot(cfg config.Tournament, selected []roster.Player) {
	var cfgCopy config.Tournament
	if err := deepcopy.Copy(&cfgCopy, &cfg); err != nil {
		// Tournament contains only plain fields and slices; a copy failure
		// would be a programming error.
		panic(err)
	}
	var selCopy []roster.Player
	if err := deepcopy.Copy(&selCopy, &selected); err != nil {
		panic(err)
	}
	c.cfg = cfgCopy
	c.selected = selCopy
	c.gen = NewGenerator(c.cfg, c.selected, c.rng)
}

// State returns the controller's lifecycle state.
func (c *Controller) State() State { return c.state }

// Tours returns the schedule built so far. The slice is shared; callers must
// treat it as read-only.
func (c *Controller) Tours() []Tour { return c.tours }

// CurrentIndex returns the zero-based cursor into the schedule.
func (c *Controller) CurrentIndex() int { return c.current }

// CurrentTour returns the tour the cursor is on, or nil when no schedule
// exists.
func (c *Controller) CurrentTour() *Tour {
	if c.current < 0 || c.current >= len(c.tours) {
		return nil
	}
	return &c.tours[c.current]
}

// Config returns the configuration snapshot the schedule was generated
// against.
func (c *Controller) Config() config.Tournament { return c.cfg }

// Generate pre-builds the full schedule: tours are generated and appended
// until one no longer fits inside the window or the pre-generation cap is
// hit. Any existing schedule is discarded. Returns the number of tours built.
func (c *Controller) Generate() int {
	now := c.clock.Now()

	c.tours = nil
	c.current = 0

	p := pool.Reshuffle(c.selected, c.rng)
	var prevEnd time.Time

	for {
		tour, _ := c.gen.GenerateTour(p, prevEnd, now)
		if !FitsWithinWindow(tour.ActualEnd, c.cfg, now) {
			break
		}
		tour.Number = len(c.tours) + 1
		c.tours = append(c.tours, tour)

		prevEnd = tour.ActualEnd
		p = pool.Recycle(tour.PlayersPlayed, tour.RemainingPool)

		if len(c.tours) >= maxPreGeneratedTours {
			c.log.Warn("pre-generation cap reached, stopping",
				"tournament", c.tournamentID, "tours", len(c.tours))
			break
		}
	}

	if len(c.tours) == 0 {
		c.state = Empty
		return 0
	}

	c.state = PreGenerated
	c.resetTimers()
	c.persistSchedule()
	c.persistMatches(c.tours...)
	return len(c.tours)
}

// EnsureSchedule regenerates the schedule when the live configuration differs
// by value (including the selected-player set) from the snapshot the current
// schedule was generated against. Returns true when regeneration happened.
func (c *Controller) EnsureSchedule(cfg config.Tournament, selected []roster.Player) bool {
	if c.state != Empty && c.cfg.Equal(cfg) {
		return false
	}
	c.snapshot(cfg, selected)
	c.state = Empty
	c.Generate()
	return true
}

// Advance finalizes the current tour and moves to the next one: a
// pre-generated tour is re-timed against the current tour's actual end (drift
// correction), or a new tour is synthesized when the schedule has run out.
// When the next tour would not fit inside the window, the controller
// transitions to Exhausted without moving the cursor.
//
// Advances are atomic: the schedule is only mutated once the outcome is
// decided, so no half-formed tour is ever observable. The returned terminal
// flag is true once no further tour can be played.
func (c *Controller) Advance() (terminal bool) {
	if c.state == Exhausted {
		return true
	}
	cur := c.CurrentTour()
	if cur == nil {
		return true
	}

	now := c.clock.Now()
	c.finalize(cur)

	// Drift correction keys off the recorded actual end of the finished
	// tour, not the nominal schedule.
	actualEnd := cur.ActualEnd

	start, end := NextTourTiming(actualEnd, c.cfg, now)
	if !FitsWithinWindow(end, c.cfg, now) {
		c.state = Exhausted
		c.stopRoundTimer()
		c.persistSchedule()
		return true
	}

	if c.current < len(c.tours)-1 {
		// Replay the next pre-generated tour with corrected timing.
		c.tours[c.current+1].setTiming(start, end)
		c.current++
	} else {
		// Schedule exhausted: synthesize one more tour on demand. An empty
		// tour still consumes its time slot.
		p := pool.Recycle(cur.PlayersPlayed, cur.RemainingPool)
		tour, _ := c.gen.GenerateTour(p, actualEnd, now)
		tour.Number = len(c.tours) + 1
		c.tours = append(c.tours, tour)
		c.current = len(c.tours) - 1
		if len(tour.Matches) > 0 {
			c.persistMatches(tour)
		}
	}

	c.state = Active
	c.resetTimers()
	c.persistSchedule()
	return false
}

// finalize coerces missing scores to 0, marks the tour completed, and pushes
// every score to the store.
func (c *Controller) finalize(t *Tour) {
	for i := range t.Matches {
		m := &t.Matches[i]
		if m.ScoreTeam1 == nil {
			m.ScoreTeam1 = intPtr(0)
		}
		if m.ScoreTeam2 == nil {
			m.ScoreTeam2 = intPtr(0)
		}
		m.Status = StatusCompleted
		c.persistScore(m.ID, Team1, m.ScoreTeam1)
		c.persistScore(m.ID, Team2, m.ScoreTeam2)
	}
	t.Completed = true
}

// StepBack moves the cursor to the previous tour, re-arming its saved timing.
// The round timer resets and per-match timers clear. Returns false when
// already on the first tour.
func (c *Controller) StepBack() bool {
	if c.current == 0 || len(c.tours) == 0 {
		return false
	}
	c.current--
	c.resetTimers()
	return true
}

// UpdateScore records a score for one team of one match. A nil score clears
// the entry (scores are coerced to 0 only at finalization). The change is
// pushed to the store immediately.
func (c *Controller) UpdateScore(tourIdx, matchIdx int, team Team, score *int) error {
	if tourIdx < 0 || tourIdx >= len(c.tours) {
		return fmt.Errorf("tour index %d out of range (have %d tours)", tourIdx, len(c.tours))
	}
	t := &c.tours[tourIdx]
	if matchIdx < 0 || matchIdx >= len(t.Matches) {
		return fmt.Errorf("match index %d out of range (tour %d has %d matches)", matchIdx, t.Number, len(t.Matches))
	}

	m := &t.Matches[matchIdx]
	switch team {
	case Team1:
		m.ScoreTeam1 = score
	case Team2:
		m.ScoreTeam2 = score
	default:
		return fmt.Errorf("unknown team %q", team)
	}

	c.persistScore(m.ID, team, score)
	return nil
}

// IsExhausted reports whether the event is over as of now: either the
// controller already reached its terminal state, or the window arithmetic
// says no further tour fits. Re-evaluated on every call because it depends on
// wall-clock time.
func (c *Controller) IsExhausted(now time.Time) bool {
	if c.state == Exhausted {
		return true
	}
	if len(c.tours) == 0 {
		return true
	}
	return EventExhausted(now, c.cfg, c.current)
}

func (c *Controller) persistSchedule() {
	if err := c.store.SaveSchedule(c.tournamentID, c.tours); err != nil {
		c.log.Warn("saving schedule failed", "tournament", c.tournamentID, "err", err)
	}
}

func (c *Controller) persistMatches(tours ...Tour) {
	var records []MatchRecord
	saved := c.clock.Now()
	for _, t := range tours {
		for _, m := range t.Matches {
			records = append(records, MatchRecord{
				Match:        m,
				Tour:         t.Number,
				TournamentID: c.tournamentID,
				StartLabel:   t.StartLabel,
				EndLabel:     t.EndLabel,
				ActualStart:  t.ActualStart,
				ActualEnd:    t.ActualEnd,
				Timestamp:    saved,
			})
		}
	}
	if len(records) == 0 {
		return
	}
	if err := c.store.SaveMatches(c.tournamentID, records); err != nil {
		c.log.Warn("saving match history failed", "tournament", c.tournamentID, "err", err)
	}
}

func (c *Controller) persistScore(matchID string, team Team, score *int) {
	if err := c.store.SaveMatchScore(c.tournamentID, matchID, team, score); err != nil {
		c.log.Warn("saving score failed",
			"tournament", c.tournamentID, "match", matchID, "team", team, "err", err)
	}
}

func intPtr(v int) *int { return &v }
