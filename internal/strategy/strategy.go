package strategy

import (
	"fmt"
	"sort"

	"github.com/Wawaguigui/MatchPlanner/internal/roster"
)

// TeamFormer splits the players of one match into two teams. Input is always
// exactly 2*perTeam players; both returned teams have exactly perTeam
// members.
type TeamFormer interface {
	FormTeams(players []roster.Player, perTeam int) (team1, team2 []roster.Player)
}

// Get returns a TeamFormer by name.
func Get(name string) (TeamFormer, error) {
	switch name {
	case "pool_order":
		return &PoolOrder{}, nil
	case "level_balanced":
		return &LevelBalanced{}, nil
	default:
		return nil, fmt.Errorf("unknown team formation strategy: %q", name)
	}
}

// ForConfig maps the balance-by-level flag to a strategy.
func ForConfig(balanceByLevel bool) TeamFormer {
	if balanceByLevel {
		return &LevelBalanced{}
	}
	return &PoolOrder{}
}

// PoolOrder splits the match players down the middle: first half against
// second half. Fairness comes from the pool's prior randomization, not from
// this step.
type PoolOrder struct{}

func (s *PoolOrder) FormTeams(players []roster.Player, perTeam int) ([]roster.Player, []roster.Player) {
	team1 := make([]roster.Player, perTeam)
	team2 := make([]roster.Player, perTeam)
	copy(team1, players[:perTeam])
	copy(team2, players[perTeam:perTeam*2])
	return team1, team2
}

// LevelBalanced interleaves players by skill level: sort ascending, even
// index to team 1, odd index to team 2, so that high- and low-level players
// spread across both teams. With an odd perTeam the alternation can
// over-allocate one team; the highest-level surplus player is moved over
// until both teams are even. A greedy heuristic, not an optimal level-sum
// equalization.
type LevelBalanced struct{}

func (s *LevelBalanced) FormTeams(players []roster.Player, perTeam int) ([]roster.Player, []roster.Player) {
	sorted := make([]roster.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})

	var team1, team2 []roster.Player
	for i, p := range sorted {
		if i%2 == 0 {
			team1 = append(team1, p)
		} else {
			team2 = append(team2, p)
		}
	}

	// Surplus players are at the end of the sorted order, so popping the
	// last element moves the highest-level player across.
	for len(team1) > perTeam {
		team2 = append(team2, team1[len(team1)-1])
		team1 = team1[:len(team1)-1]
	}
	for len(team2) > perTeam {
		team1 = append(team1, team2[len(team2)-1])
		team2 = team2[:len(team2)-1]
	}

	return team1, team2
}
