package validator

import (
	"fmt"
	"time"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
	"github.com/Wawaguigui/MatchPlanner/internal/roster"
	"github.com/Wawaguigui/MatchPlanner/internal/schedule"
)

// Violation represents a schedule property violation found during validation.
type Violation struct {
	Tour    int
	Type    string // "error" or "warning"
	Message string
}

// Validate checks a generated schedule against the engine's invariants:
// player conservation per tour, non-overlapping tour times, window respect,
// exact team sizes, court numbering, and score presence on completed tours.
// now anchors the window check to the calendar date the schedule was built
// for.
func Validate(cfg config.Tournament, selected []roster.Player, tours []schedule.Tour, now time.Time) []Violation {
	var violations []Violation

	violations = append(violations, checkConservation(selected, tours)...)
	violations = append(violations, checkNonOverlap(tours)...)
	violations = append(violations, checkWindowRespect(cfg, tours, now)...)
	violations = append(violations, checkTeamSizes(cfg, tours)...)
	violations = append(violations, checkCourts(cfg, tours)...)
	violations = append(violations, checkCompletedScores(tours)...)

	return violations
}

// checkConservation verifies that no player is created, duplicated, or
// dropped: playersPlayed plus remainingPool must equal the selected set.
func checkConservation(selected []roster.Player, tours []schedule.Tour) []Violation {
	var violations []Violation

	selectedIDs := make(map[string]bool, len(selected))
	for _, p := range selected {
		selectedIDs[p.ID] = true
	}

	for _, t := range tours {
		total := len(t.PlayersPlayed) + len(t.RemainingPool)
		if total != len(selected) {
			violations = append(violations, Violation{
				Tour: t.Number,
				Type: "error",
				Message: fmt.Sprintf("tour %d accounts for %d players (played %d + pooled %d), want %d",
					t.Number, total, len(t.PlayersPlayed), len(t.RemainingPool), len(selected)),
			})
			continue
		}

		seen := make(map[string]bool, total)
		for _, p := range append(append([]roster.Player{}, t.PlayersPlayed...), t.RemainingPool...) {
			if !selectedIDs[p.ID] {
				violations = append(violations, Violation{
					Tour:    t.Number,
					Type:    "error",
					Message: fmt.Sprintf("tour %d references %q who is not in the selected set", t.Number, p.Name),
				})
			}
			if seen[p.ID] {
				violations = append(violations, Violation{
					Tour:    t.Number,
					Type:    "error",
					Message: fmt.Sprintf("tour %d duplicates player %q", t.Number, p.Name),
				})
			}
			seen[p.ID] = true
		}
	}

	return violations
}

// checkNonOverlap verifies tours are ordered by non-decreasing time and never
// overlap: each tour's actual end must not pass the next tour's actual start.
func checkNonOverlap(tours []schedule.Tour) []Violation {
	var violations []Violation
	for i := 1; i < len(tours); i++ {
		prev, cur := tours[i-1], tours[i]
		if prev.ActualEnd.After(cur.ActualStart) {
			violations = append(violations, Violation{
				Tour: cur.Number,
				Type: "error",
				Message: fmt.Sprintf("tour %d starts at %s before tour %d ends at %s",
					cur.Number, cur.StartLabel, prev.Number, prev.EndLabel),
			})
		}
	}
	return violations
}

// checkWindowRespect verifies no committed tour ends after the configured
// event end time.
func checkWindowRespect(cfg config.Tournament, tours []schedule.Tour, now time.Time) []Violation {
	var violations []Violation
	endOfDay := cfg.EndTime.At(now)
	for _, t := range tours {
		if t.ActualEnd.After(endOfDay) {
			violations = append(violations, Violation{
				Tour: t.Number,
				Type: "error",
				Message: fmt.Sprintf("tour %d ends at %s, after the event end %s",
					t.Number, t.EndLabel, cfg.EndTime),
			})
		}
	}
	return violations
}

// checkTeamSizes verifies both teams of every match hold exactly
// playersPerTeam members.
func checkTeamSizes(cfg config.Tournament, tours []schedule.Tour) []Violation {
	var violations []Violation
	for _, t := range tours {
		for _, m := range t.Matches {
			if len(m.Team1) != cfg.PlayersPerTeam || len(m.Team2) != cfg.PlayersPerTeam {
				violations = append(violations, Violation{
					Tour: t.Number,
					Type: "error",
					Message: fmt.Sprintf("tour %d court %d has team sizes %d/%d, want %d",
						t.Number, m.Court, len(m.Team1), len(m.Team2), cfg.PlayersPerTeam),
				})
			}
		}
	}
	return violations
}

// checkCourts verifies court numbers are within 1..courts and unique per
// tour. A tour with fewer matches than courts is fine.
func checkCourts(cfg config.Tournament, tours []schedule.Tour) []Violation {
	var violations []Violation
	for _, t := range tours {
		seen := make(map[int]bool)
		for _, m := range t.Matches {
			if m.Court < 1 || m.Court > cfg.Courts {
				violations = append(violations, Violation{
					Tour:    t.Number,
					Type:    "error",
					Message: fmt.Sprintf("tour %d has match on court %d, want 1-%d", t.Number, m.Court, cfg.Courts),
				})
			}
			if seen[m.Court] {
				violations = append(violations, Violation{
					Tour:    t.Number,
					Type:    "error",
					Message: fmt.Sprintf("tour %d has two matches on court %d", t.Number, m.Court),
				})
			}
			seen[m.Court] = true
		}
		if len(t.Matches) == 0 {
			violations = append(violations, Violation{
				Tour:    t.Number,
				Type:    "warning",
				Message: fmt.Sprintf("tour %d has no matches (pool could not fill a court)", t.Number),
			})
		}
	}
	return violations
}

// checkCompletedScores verifies finalized tours carry concrete scores: a
// completed match with a missing score means finalization was skipped.
func checkCompletedScores(tours []schedule.Tour) []Violation {
	var violations []Violation
	for _, t := range tours {
		if !t.Completed {
			continue
		}
		for _, m := range t.Matches {
			if m.ScoreTeam1 == nil || m.ScoreTeam2 == nil {
				violations = append(violations, Violation{
					Tour:    t.Number,
					Type:    "error",
					Message: fmt.Sprintf("tour %d court %d is completed but has no score", t.Number, m.Court),
				})
			}
		}
	}
	return violations
}
