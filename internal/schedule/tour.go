package schedule

import (
	"encoding/hex"
	"math/rand"
	"time"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
	"github.com/Wawaguigui/MatchPlanner/internal/pool"
	"github.com/Wawaguigui/MatchPlanner/internal/roster"
	"github.com/Wawaguigui/MatchPlanner/internal/strategy"
)

// Team identifies one side of a match in score updates and persistence.
type Team string

const (
	Team1 Team = "team1"
	Team2 Team = "team2"
)

// MatchStatus tracks a match's lifecycle. Matches are never deleted, only
// superseded by rescheduling.
type MatchStatus string

const (
	StatusUpcoming  MatchStatus = "upcoming"
	StatusCompleted MatchStatus = "completed"
)

// Match is one court's pairing within a tour. Scores are nil until entered;
// nil scores are coerced to 0 when the tour is finalized.
type Match struct {
	ID         string      `bson:"id"`
	Court      int         `bson:"court"`
	Team1      []string    `bson:"team1"`
	Team2      []string    `bson:"team2"`
	ScoreTeam1 *int        `bson:"score_team1"`
	ScoreTeam2 *int        `bson:"score_team2"`
	Status     MatchStatus `bson:"status"`
}

// Tour is one scheduled round: up to Courts simultaneous matches plus the
// rotation bookkeeping needed to generate the round after it. StartLabel and
// EndLabel are wall-clock display strings; ActualStart and ActualEnd are the
// timestamps drift correction recomputes from.
type Tour struct {
	Number        int             `bson:"number"`
	StartLabel    string          `bson:"start_label"`
	EndLabel      string          `bson:"end_label"`
	ActualStart   time.Time       `bson:"actual_start"`
	ActualEnd     time.Time       `bson:"actual_end"`
	Matches       []Match         `bson:"matches"`
	PlayersPlayed []roster.Player `bson:"players_played"`
	RemainingPool []roster.Player `bson:"remaining_pool"`
	Completed     bool            `bson:"completed"`
}

const displayTimeLayout = "15:04"

// setTiming stamps both the actual timestamps and the display labels.
func (t *Tour) setTiming(start, end time.Time) {
	t.ActualStart = start
	t.ActualEnd = end
	t.StartLabel = start.Format(displayTimeLayout)
	t.EndLabel = end.Format(displayTimeLayout)
}

// Bench returns the names of selected players not assigned to any match in
// this tour.
func (t *Tour) Bench(selected []roster.Player) []string {
	playing := make(map[string]bool)
	for _, m := range t.Matches {
		for _, name := range m.Team1 {
			playing[name] = true
		}
		for _, name := range m.Team2 {
			playing[name] = true
		}
	}

	var bench []string
	for _, p := range selected {
		if !playing[p.Name] {
			bench = append(bench, p.Name)
		}
	}
	return bench
}

// Generator produces tours from a rotating player pool.
type Generator struct {
	cfg      config.Tournament
	selected []roster.Player
	former   strategy.TeamFormer
	rng      *rand.Rand
}

// NewGenerator builds a generator for one tournament. selected is the full
// set of players the pool reshuffles from when it runs short.
func NewGenerator(cfg config.Tournament, selected []roster.Player, rng *rand.Rand) *Generator {
	return &Generator{
		cfg:      cfg,
		selected: selected,
		former:   strategy.ForConfig(cfg.BalanceByLevel),
		rng:      rng,
	}
}

// GenerateTour forms one tour from the pool and returns it together with the
// pool of players left over. The returned pool is not yet recycled: the
// caller appends the tour's players behind it (pool.Recycle) before the next
// round.
//
// A tour may hold fewer matches than courts, down to zero, when the pool and
// roster cannot fill them. That is a valid, schedulable tour, not an error.
func (g *Generator) GenerateTour(p pool.Pool, prevActualEnd time.Time, now time.Time) (Tour, pool.Pool) {
	matchSize := g.cfg.MatchSize()

	// A pool too small for even one match is rebuilt from the entire
	// selected set, resetting rotation order.
	if p.Len() < matchSize {
		p = pool.Reshuffle(g.selected, g.rng)
	}

	// Reserve players for all configured courts up front; whatever stays in
	// the pool is carried forward untouched.
	buffer, rest := p.Take(g.cfg.PlayersPerTour())

	var matches []Match
	var played []roster.Player
	for court := 1; court <= g.cfg.Courts; court++ {
		if len(buffer) < matchSize {
			break
		}
		matchPlayers := buffer[:matchSize]
		buffer = buffer[matchSize:]

		team1, team2 := g.former.FormTeams(matchPlayers, g.cfg.PlayersPerTeam)
		matches = append(matches, Match{
			ID:     newMatchID(g.rng),
			Court:  court,
			Team1:  roster.Names(team1),
			Team2:  roster.Names(team2),
			Status: StatusUpcoming,
		})
		played = append(played, matchPlayers...)
	}

	remaining := append(append([]roster.Player{}, buffer...), rest.Players()...)

	tour := Tour{
		Matches:       matches,
		PlayersPlayed: played,
		RemainingPool: remaining,
	}
	start, end := NextTourTiming(prevActualEnd, g.cfg, now)
	tour.setTiming(start, end)

	return tour, pool.New(remaining)
}

func newMatchID(rng *rand.Rand) string {
	buf := make([]byte, 8)
	rng.Read(buf)
	return hex.EncodeToString(buf)
}
