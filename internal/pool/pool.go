// Package pool implements the rotation queue players wait in between tours.
//
// The pool is a value type: every operation returns a new pool instead of
// mutating in place, so callers can keep a snapshot per tour and replay or
// inspect rotation state without aliasing surprises.
package pool

import (
	"math/rand"

	"github.com/Wawaguigui/MatchPlanner/internal/roster"
)

// Pool is a FIFO rotation queue of players awaiting assignment.
type Pool struct {
	players []roster.Player
}

// New builds a pool over the given players, front first. The slice is copied.
func New(players []roster.Player) Pool {
	cp := make([]roster.Player, len(players))
	copy(cp, players)
	return Pool{players: cp}
}

// Len reports how many players are waiting.
func (p Pool) Len() int {
	return len(p.players)
}

// Players returns a copy of the queue, front first.
func (p Pool) Players() []roster.Player {
	cp := make([]roster.Player, len(p.players))
	copy(cp, p.players)
	return cp
}

// Take removes up to n players from the front, preserving order, and returns
// them together with the remaining pool.
func (p Pool) Take(n int) ([]roster.Player, Pool) {
	if n > len(p.players) {
		n = len(p.players)
	}
	taken := make([]roster.Player, n)
	copy(taken, p.players[:n])
	return taken, New(p.players[n:])
}

// Recycle builds the pool for the next tour: players who did not play keep
// their place at the front, players who just played join at the back. Absent
// reshuffles, no player plays twice before every other selected player has
// played once.
func Recycle(played, remaining []roster.Player) Pool {
	next := make([]roster.Player, 0, len(played)+len(remaining))
	next = append(next, remaining...)
	next = append(next, played...)
	return Pool{players: next}
}

// Reshuffle discards the current ordering and builds a fresh random
// permutation of the entire selected-player set. This deliberately resets
// rotation fairness: whoever already played this cycle is reshuffled in with
// everyone else.
func Reshuffle(fullRoster []roster.Player, rng *rand.Rand) Pool {
	shuffled := make([]roster.Player, len(fullRoster))
	copy(shuffled, fullRoster)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return Pool{players: shuffled}
}
