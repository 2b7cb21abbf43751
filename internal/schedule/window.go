package schedule

import (
	"time"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
)

// NextTourTiming computes the start and end instants for a prospective tour.
// The first tour of a schedule (zero prevActualEnd) starts at the configured
// start time-of-day anchored to now's calendar date; every later tour starts
// at the previous tour's actual end plus the break. The end is always start
// plus the match duration.
func NextTourTiming(prevActualEnd time.Time, cfg config.Tournament, now time.Time) (start, end time.Time) {
	if prevActualEnd.IsZero() {
		start = cfg.StartTime.At(now)
	} else {
		start = prevActualEnd.Add(cfg.BreakLength())
	}
	return start, start.Add(cfg.MatchLength())
}

// FitsWithinWindow reports whether a tour ending at tourEnd still fits inside
// the configured window, anchored to now's calendar date. A tour that would
// end exactly at the configured end time fits.
func FitsWithinWindow(tourEnd time.Time, cfg config.Tournament, now time.Time) bool {
	return !tourEnd.After(cfg.EndTime.At(now))
}

// EventExhausted reports whether no further tour can be played: either now is
// already past today's configured end time, or the window cannot hold more
// tours than have already been reached. currentTourIndex is zero-based.
//
// The result depends on wall-clock now and must be re-evaluated on every
// tick or advance, never cached.
func EventExhausted(now time.Time, cfg config.Tournament, currentTourIndex int) bool {
	endToday := cfg.EndTime.At(now)
	if now.After(endToday) {
		return true
	}

	window := endToday.Sub(cfg.StartTime.At(now))
	if window <= 0 {
		return true
	}

	perTour := cfg.MatchLength() + cfg.BreakLength()
	maxTours := int(window / perTour)
	return currentTourIndex+1 > maxTours
}
