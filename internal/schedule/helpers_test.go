package schedule

import (
	"fmt"
	"time"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
	"github.com/Wawaguigui/MatchPlanner/internal/roster"
)

// All schedule tests run against a fixed evening on 2026-08-28 UTC.
var testNow = time.Date(2026, 8, 28, 17, 30, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 28, hour, minute, 0, 0, time.UTC)
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func mkPlayers(n int) []roster.Player {
	players := make([]roster.Player, n)
	for i := range players {
		players[i] = roster.Player{
			ID:    fmt.Sprintf("p%d", i+1),
			Name:  fmt.Sprintf("Player %d", i+1),
			Level: i%10 + 1,
		}
	}
	return players
}

func playerIDs(players []roster.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

// eveningConfig is the canonical small fixture: 8 players, 1 court, teams of
// two, 18:00-18:30 window with 10 minute matches and no break. Exactly three
// tours fit.
func eveningConfig() config.Tournament {
	return config.Tournament{
		Name:            "Test Night",
		Courts:          1,
		PlayersPerTeam:  2,
		MatchDuration:   10,
		BreakDuration:   0,
		StartTime:       config.TimeOfDay{Hour: 18},
		EndTime:         config.TimeOfDay{Hour: 18, Minute: 30},
		SelectedPlayers: playerIDs(mkPlayers(8)),
	}
}

type scoreCall struct {
	matchID string
	team    Team
	score   *int
}

// memStore is an in-memory Store recording every persistence call.
type memStore struct {
	schedules    map[string][]Tour
	matches      map[string]MatchRecord
	scores       []scoreCall
	scheduleSave int
}

func newMemStore() *memStore {
	return &memStore{
		schedules: make(map[string][]Tour),
		matches:   make(map[string]MatchRecord),
	}
}

func (s *memStore) SaveSchedule(tournamentID string, tours []Tour) error {
	cp := make([]Tour, len(tours))
	copy(cp, tours)
	s.schedules[tournamentID] = cp
	s.scheduleSave++
	return nil
}

func (s *memStore) SaveMatches(tournamentID string, records []MatchRecord) error {
	for _, r := range records {
		s.matches[r.ID] = r
	}
	return nil
}

func (s *memStore) SaveMatchScore(tournamentID, matchID string, team Team, score *int) error {
	s.scores = append(s.scores, scoreCall{matchID: matchID, team: team, score: score})
	return nil
}

func (s *memStore) ReadSchedule(tournamentID string) ([]Tour, error) {
	return s.schedules[tournamentID], nil
}
