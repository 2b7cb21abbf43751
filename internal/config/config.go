package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Wawaguigui/MatchPlanner/internal/roster"
)

// TimeOfDay is a wrapper around a wall-clock "HH:MM" time for YAML parsing.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t *TimeOfDay) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.Parse("15:04", value.Value)
	if err != nil {
		return fmt.Errorf("invalid time %q (want HH:MM): %w", value.Value, err)
	}
	t.Hour = parsed.Hour()
	t.Minute = parsed.Minute()
	return nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// At anchors the time-of-day to the calendar date of the given instant.
func (t TimeOfDay) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// Tournament holds the parameters one event is scheduled against.
type Tournament struct {
	Name            string    `yaml:"name"`
	Courts          int       `yaml:"courts"`
	PlayersPerTeam  int       `yaml:"players_per_team"`
	MatchDuration   int       `yaml:"match_duration"` // minutes
	BreakDuration   int       `yaml:"break_duration"` // minutes
	StartTime       TimeOfDay `yaml:"start_time"`
	EndTime         TimeOfDay `yaml:"end_time"`
	BalanceByLevel  bool      `yaml:"balance_by_level"`
	SelectedPlayers []string  `yaml:"selected_players"` // ordered player ids
}

// MatchSize is the number of players one match consumes.
func (t Tournament) MatchSize() int {
	return t.PlayersPerTeam * 2
}

// PlayersPerTour is the number of players a full tour (all courts) consumes.
func (t Tournament) PlayersPerTour() int {
	return t.Courts * t.MatchSize()
}

// MatchLength returns the match duration as a time.Duration.
func (t Tournament) MatchLength() time.Duration {
	return time.Duration(t.MatchDuration) * time.Minute
}

// BreakLength returns the break duration as a time.Duration.
func (t Tournament) BreakLength() time.Duration {
	return time.Duration(t.BreakDuration) * time.Minute
}

// Equal reports whether two tournament configurations are the same by value.
// Selected players are compared as an unordered set: a schedule generated for
// the same ids in a different order is still current.
func (t Tournament) Equal(other Tournament) bool {
	if t.Name != other.Name ||
		t.Courts != other.Courts ||
		t.PlayersPerTeam != other.PlayersPerTeam ||
		t.MatchDuration != other.MatchDuration ||
		t.BreakDuration != other.BreakDuration ||
		t.StartTime != other.StartTime ||
		t.EndTime != other.EndTime ||
		t.BalanceByLevel != other.BalanceByLevel {
		return false
	}
	if len(t.SelectedPlayers) != len(other.SelectedPlayers) {
		return false
	}
	ids := make(map[string]bool, len(other.SelectedPlayers))
	for _, id := range other.SelectedPlayers {
		ids[id] = true
	}
	for _, id := range t.SelectedPlayers {
		if !ids[id] {
			return false
		}
	}
	return true
}

// Config is the top-level YAML document: one tournament plus the roster it
// draws players from.
type Config struct {
	Tournament Tournament      `yaml:"tournament"`
	Roster     []roster.Player `yaml:"roster"`
}

// SelectedRoster resolves the tournament's selected player ids against the
// roster, preserving the configured order.
func (c *Config) SelectedRoster() ([]roster.Player, error) {
	return roster.Select(c.Roster, c.Tournament.SelectedPlayers)
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// validate rejects configurations the engine must never see. Degenerate
// tours (not enough players left in the pool) are the engine's business;
// invalid parameters are not.
func (c *Config) validate() error {
	t := c.Tournament

	if t.Courts < 1 {
		return fmt.Errorf("courts must be at least 1, got %d", t.Courts)
	}
	if t.PlayersPerTeam < 1 {
		return fmt.Errorf("players_per_team must be at least 1, got %d", t.PlayersPerTeam)
	}
	if t.MatchDuration < 1 {
		return fmt.Errorf("match_duration must be at least 1 minute, got %d", t.MatchDuration)
	}
	if t.BreakDuration < 0 {
		return fmt.Errorf("break_duration cannot be negative, got %d", t.BreakDuration)
	}
	if !t.StartTime.Before(t.EndTime) {
		return fmt.Errorf("end time %s must be after start time %s", t.EndTime, t.StartTime)
	}

	if len(c.Roster) == 0 {
		return fmt.Errorf("roster cannot be empty")
	}

	// Duplicate ids or names make match listings ambiguous.
	seenID := make(map[string]bool)
	seenName := make(map[string]bool)
	for _, p := range c.Roster {
		if p.ID == "" {
			return fmt.Errorf("roster player %q has no id", p.Name)
		}
		if p.Name == "" {
			return fmt.Errorf("roster player %q has no name", p.ID)
		}
		if p.Level < 1 || p.Level > 10 {
			return fmt.Errorf("player %q level must be 1-10, got %d", p.Name, p.Level)
		}
		if seenID[p.ID] {
			return fmt.Errorf("duplicate player id %q", p.ID)
		}
		if seenName[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seenID[p.ID] = true
		seenName[p.Name] = true
	}

	selected, err := c.SelectedRoster()
	if err != nil {
		return err
	}
	seenSel := make(map[string]bool)
	for _, p := range selected {
		if seenSel[p.ID] {
			return fmt.Errorf("player %q selected more than once", p.ID)
		}
		seenSel[p.ID] = true
	}

	if len(selected) < t.PlayersPerTour() {
		return fmt.Errorf("not enough players selected: %d courts with %d players per team need %d players, got %d",
			t.Courts, t.PlayersPerTeam, t.PlayersPerTour(), len(selected))
	}

	return nil
}
