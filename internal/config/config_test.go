package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
tournament:
  name: "Thursday Night"
  courts: 2
  players_per_team: 2
  match_duration: 12
  break_duration: 3
  start_time: "18:00"
  end_time: "21:00"
  balance_by_level: true
  selected_players: [p1, p2, p3, p4, p5, p6, p7, p8]

roster:
  - { id: p1, name: Alice, level: 7 }
  - { id: p2, name: Bruno, level: 4 }
  - { id: p3, name: Chloé, level: 8 }
  - { id: p4, name: David, level: 3 }
  - { id: p5, name: Emma, level: 6 }
  - { id: p6, name: Farid, level: 5 }
  - { id: p7, name: Gaëlle, level: 9 }
  - { id: p8, name: Hugo, level: 2 }
  - { id: p9, name: Inès, level: 6 }
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	require.NoError(t, err)

	t.Run("tournament parameters", func(t *testing.T) {
		tn := cfg.Tournament
		assert.Equal(t, "Thursday Night", tn.Name)
		assert.Equal(t, 2, tn.Courts)
		assert.Equal(t, 2, tn.PlayersPerTeam)
		assert.Equal(t, 12, tn.MatchDuration)
		assert.Equal(t, 3, tn.BreakDuration)
		assert.Equal(t, TimeOfDay{18, 0}, tn.StartTime)
		assert.Equal(t, TimeOfDay{21, 0}, tn.EndTime)
		assert.True(t, tn.BalanceByLevel)
	})

	t.Run("derived sizes", func(t *testing.T) {
		assert.Equal(t, 4, cfg.Tournament.MatchSize())
		assert.Equal(t, 8, cfg.Tournament.PlayersPerTour())
		assert.Equal(t, 12*time.Minute, cfg.Tournament.MatchLength())
		assert.Equal(t, 3*time.Minute, cfg.Tournament.BreakLength())
	})

	t.Run("roster", func(t *testing.T) {
		require.Len(t, cfg.Roster, 9)
		assert.Equal(t, "Alice", cfg.Roster[0].Name)
		assert.Equal(t, 7, cfg.Roster[0].Level)
	})

	t.Run("selected roster resolves in order", func(t *testing.T) {
		selected, err := cfg.SelectedRoster()
		require.NoError(t, err)
		require.Len(t, selected, 8)
		assert.Equal(t, "Alice", selected[0].Name)
		assert.Equal(t, "Hugo", selected[7].Name)
	})
}

func TestTimeOfDay(t *testing.T) {
	t.Run("at anchors to calendar date", func(t *testing.T) {
		day := time.Date(2026, 8, 28, 3, 12, 45, 0, time.UTC)
		got := TimeOfDay{18, 30}.At(day)
		assert.Equal(t, time.Date(2026, 8, 28, 18, 30, 0, 0, time.UTC), got)
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "08:05", TimeOfDay{8, 5}.String())
	})

	t.Run("before", func(t *testing.T) {
		assert.True(t, TimeOfDay{18, 0}.Before(TimeOfDay{18, 1}))
		assert.False(t, TimeOfDay{18, 0}.Before(TimeOfDay{18, 0}))
		assert.False(t, TimeOfDay{19, 0}.Before(TimeOfDay{18, 59}))
	})
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(s string) string
		wantErr string
	}{
		{
			name:    "zero courts",
			mutate:  func(s string) string { return strings.Replace(s, "courts: 2", "courts: 0", 1) },
			wantErr: "courts must be at least 1",
		},
		{
			name:    "zero players per team",
			mutate:  func(s string) string { return strings.Replace(s, "players_per_team: 2", "players_per_team: 0", 1) },
			wantErr: "players_per_team must be at least 1",
		},
		{
			name:    "zero match duration",
			mutate:  func(s string) string { return strings.Replace(s, "match_duration: 12", "match_duration: 0", 1) },
			wantErr: "match_duration",
		},
		{
			name:    "negative break",
			mutate:  func(s string) string { return strings.Replace(s, "break_duration: 3", "break_duration: -1", 1) },
			wantErr: "break_duration cannot be negative",
		},
		{
			name:    "end before start",
			mutate:  func(s string) string { return strings.Replace(s, `end_time: "21:00"`, `end_time: "17:00"`, 1) },
			wantErr: "must be after start time",
		},
		{
			name:    "end equals start",
			mutate:  func(s string) string { return strings.Replace(s, `end_time: "21:00"`, `end_time: "18:00"`, 1) },
			wantErr: "must be after start time",
		},
		{
			name:    "level out of range",
			mutate:  func(s string) string { return strings.Replace(s, "name: Alice, level: 7", "name: Alice, level: 11", 1) },
			wantErr: "level must be 1-10",
		},
		{
			name:    "duplicate id",
			mutate:  func(s string) string { return strings.Replace(s, "id: p9", "id: p1", 1) },
			wantErr: "duplicate player id",
		},
		{
			name:    "duplicate selection",
			mutate:  func(s string) string { return strings.Replace(s, "p7, p8]", "p7, p7]", 1) },
			wantErr: "selected more than once",
		},
		{
			name:    "invalid time format",
			mutate:  func(s string) string { return strings.Replace(s, `start_time: "18:00"`, `start_time: "6pm"`, 1) },
			wantErr: "invalid time",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tc.mutate(testConfigYAML)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidationRejectsInsufficientPlayers(t *testing.T) {
	// 2 courts with 4 players per team need 16 players; only 8 selected.
	yaml := strings.Replace(testConfigYAML, "players_per_team: 2", "players_per_team: 4", 1)

	_, err := LoadFromBytes([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough players selected")
	assert.Contains(t, err.Error(), "need 16 players, got 8")
}

func TestValidationSuggestsClosePlayerID(t *testing.T) {
	yaml := strings.Replace(testConfigYAML, "selected_players: [p1,", "selected_players: [Alic,", 1)

	_, err := LoadFromBytes([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown selected player")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestTournamentEqual(t *testing.T) {
	base := func() Tournament {
		cfg, err := LoadFromBytes([]byte(testConfigYAML))
		require.NoError(t, err)
		return cfg.Tournament
	}

	t.Run("identical", func(t *testing.T) {
		assert.True(t, base().Equal(base()))
	})

	t.Run("selected players order does not matter", func(t *testing.T) {
		other := base()
		other.SelectedPlayers = []string{"p8", "p7", "p6", "p5", "p4", "p3", "p2", "p1"}
		assert.True(t, base().Equal(other))
	})

	t.Run("different selected set", func(t *testing.T) {
		other := base()
		other.SelectedPlayers[0] = "p9"
		assert.False(t, base().Equal(other))
	})

	t.Run("different balance flag", func(t *testing.T) {
		other := base()
		other.BalanceByLevel = false
		assert.False(t, base().Equal(other))
	})

	t.Run("different window", func(t *testing.T) {
		other := base()
		other.EndTime = TimeOfDay{22, 0}
		assert.False(t, base().Equal(other))
	})
}
