package scoring

import (
	"fmt"
	"math"
)

// Totals summarizes a full 18-hole result sequence. Recomputed from scratch
// on every change; there is no incremental state to drift.
type Totals struct {
	Completed   int     `json:"completed"`
	TeamAPoints float64 `json:"teamAPoints"`
	TeamBPoints float64 `json:"teamBPoints"`
	Status      string  `json:"status"`
}

// Summarize tallies points over complete holes and renders the status line.
func Summarize(results []HoleResult, teamAName, teamBName string) Totals {
	t := Totals{}
	for _, r := range results {
		if !r.Complete {
			continue
		}
		t.Completed++
		t.TeamAPoints += r.TeamAPoints
		t.TeamBPoints += r.TeamBPoints
	}

	switch {
	case t.Completed == 0:
		t.Status = "no scores yet"
	case t.TeamAPoints == t.TeamBPoints:
		t.Status = "all square"
	case t.TeamAPoints > t.TeamBPoints:
		t.Status = fmt.Sprintf("%s up by %.1f", teamAName, t.TeamAPoints-t.TeamBPoints)
	default:
		t.Status = fmt.Sprintf("%s up by %.1f", teamBName, t.TeamBPoints-t.TeamAPoints)
	}
	return t
}

// AllComplete reports whether every hole in the sequence is complete.
func AllComplete(results []HoleResult) bool {
	for _, r := range results {
		if !r.Complete {
			return false
		}
	}
	return len(results) > 0
}

// Leader returns 1 if team A leads, -1 if team B leads, 0 on a dead heat.
func (t Totals) Leader() int {
	switch {
	case t.TeamAPoints > t.TeamBPoints:
		return 1
	case t.TeamBPoints > t.TeamAPoints:
		return -1
	default:
		return 0
	}
}

// Margin is the absolute points gap between the sides.
func (t Totals) Margin() float64 {
	return math.Abs(t.TeamAPoints - t.TeamBPoints)
}
