// Package insights derives presentation state from sessions: HRV status,
// dashboard aggregates and report figures.
package insights

import (
	"math"

	"salon-wellness-backend/models"
)

type Status string

const (
	StatusImproved Status = "improved"
	StatusStable   Status = "stable"
	StatusTired    Status = "tired"
)

const (
	improvedDelta = 10
	tiredDelta    = -5
)

// HRVDelta returns hrvAfter - hrvBefore, and false when either is missing.
func HRVDelta(s models.Session) (float64, bool) {
	if s.HRVBefore == nil || s.HRVAfter == nil {
		return 0, false
	}
	return *s.HRVAfter - *s.HRVBefore, true
}

// Classify maps a session to its recovery status. A session without both
// readings is stable.
func Classify(s models.Session) Status {
	delta, ok := HRVDelta(s)
	switch {
	case !ok:
		return StatusStable
	case delta >= improvedDelta:
		return StatusImproved
	case delta <= tiredDelta:
		return StatusTired
	default:
		return StatusStable
	}
}

// AverageHRVChange is the mean of all defined deltas rounded to one decimal,
// along with the number of sessions that had both readings. The mean is nil
// when there are none.
func AverageHRVChange(sessions []models.Session) (*float64, int) {
	var sum float64
	n := 0
	for _, s := range sessions {
		if d, ok := HRVDelta(s); ok {
			sum += d
			n++
		}
	}
	if n == 0 {
		return nil, 0
	}
	avg := RoundTenth(sum / float64(n))
	return &avg, n
}

// RoundTenth rounds to one decimal place, halves toward positive infinity.
func RoundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
