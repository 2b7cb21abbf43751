package roster

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Player is a roster entry. Players are immutable during scheduling; the
// engine only reads them.
type Player struct {
	ID    string `yaml:"id" bson:"id"`
	Name  string `yaml:"name" bson:"name"`
	Level int    `yaml:"level" bson:"level"`
	Group string `yaml:"group,omitempty" bson:"group,omitempty"`
}

// Select resolves an ordered list of player ids against the full roster,
// preserving the id order. Unknown ids are an error; the message suggests
// the closest roster name when one is reasonably close.
func Select(all []Player, ids []string) ([]Player, error) {
	byID := make(map[string]Player, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	selected := make([]Player, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			if suggestion := closest(id, all); suggestion != "" {
				return nil, fmt.Errorf("unknown selected player %q (did you mean %q?)", id, suggestion)
			}
			return nil, fmt.Errorf("unknown selected player %q", id)
		}
		selected = append(selected, p)
	}
	return selected, nil
}

// Names returns the display names of players, preserving order.
func Names(players []Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}

// closest returns the roster id whose id or name best fuzzy-matches the
// given id, or "" when nothing matches.
func closest(id string, all []Player) string {
	candidates := make([]string, 0, len(all)*2)
	for _, p := range all {
		candidates = append(candidates, p.ID, p.Name)
	}

	ranks := fuzzy.RankFindNormalizedFold(id, candidates)
	if len(ranks) == 0 {
		return ""
	}

	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

// LevelSum is the total skill level of a list of players. Used by the
// balancing strategy and by reporting.
func LevelSum(players []Player) int {
	sum := 0
	for _, p := range players {
		sum += p.Level
	}
	return sum
}

// String implements fmt.Stringer for debug output.
func (p Player) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	fmt.Fprintf(&b, " (level %d)", p.Level)
	return b.String()
}
