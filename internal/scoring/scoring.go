// Package scoring is the pure computation core: given a game mode and raw
// stroke entries for two teams it decides per-hole points, carry-over for
// skins, match totals and trip-wide records. Nothing in here performs I/O or
// touches shared state; every function is total over its inputs and reports
// missing data as an incomplete result instead of an error.
package scoring

import (
	"fmt"
	"strconv"

	"github.com/chaigney/golftrip/internal/models"
)

// ScoreLookup resolves a player's stroke count for a hole. The second return
// is false when no score is recorded.
type ScoreLookup func(player models.PlayerID, hole int) (int, bool)

// ParLookup resolves the par for a hole.
type ParLookup func(hole int) int

// Side is the engine's view of one team: a display name and two ordered
// player slots. Slot order matters for captain & mate.
type Side struct {
	Name    string
	Players [2]models.PlayerID
}

// SideOf adapts a live team. A nil team maps to a nil side, which the engine
// reports as "awaiting team selection".
func SideOf(t *models.Team) *Side {
	if t == nil {
		return nil
	}
	return &Side{Name: t.Name, Players: t.PlayerSlots}
}

// SideOfSnapshot adapts an archived team snapshot.
func SideOfSnapshot(s models.TeamSnapshot) *Side {
	if s.ID == "" {
		return nil
	}
	return &Side{Name: s.Name, Players: s.PlayerIDs}
}

func (s *Side) filled() bool {
	return s.Players[0] != "" && s.Players[1] != ""
}

// HoleResult is the outcome of one hole. An incomplete hole always carries
// zero points for both sides, whatever partial data was available.
type HoleResult struct {
	TeamAPoints float64 `json:"teamAPoints"`
	TeamBPoints float64 `json:"teamBPoints"`
	Description string  `json:"description"`
	Complete    bool    `json:"complete"`
}

func incomplete(reason string) HoleResult {
	return HoleResult{Description: reason}
}

// ComputeHole scores a single hole. Gating is checked in order: team
// selection, roster completeness, then all four stroke entries; the first
// missing piece yields an incomplete zero-point result. An unrecognized mode
// also yields an incomplete result so one bad match never halts a render.
func ComputeHole(mode models.Mode, hole int, teamA, teamB *Side, lookup ScoreLookup, par int) HoleResult {
	if teamA == nil || teamB == nil {
		return incomplete("awaiting team selection")
	}
	if !teamA.filled() || !teamB.filled() {
		return incomplete("awaiting full roster")
	}

	a0, okA0 := lookup(teamA.Players[0], hole)
	a1, okA1 := lookup(teamA.Players[1], hole)
	b0, okB0 := lookup(teamB.Players[0], hole)
	b1, okB1 := lookup(teamB.Players[1], hole)
	if !okA0 || !okA1 || !okB0 || !okB1 {
		return incomplete("awaiting scores")
	}

	switch mode {
	case models.ModeBestBall:
		return lowerWins("best ball", teamA.Name, teamB.Name, min(a0, a1), min(b0, b1))
	case models.ModeAggregate:
		return lowerWins("aggregate", teamA.Name, teamB.Name, a0+a1, b0+b1)
	case models.ModeHighLow:
		low := categoryResult("low", teamA.Name, teamB.Name, min(a0, a1), min(b0, b1))
		high := categoryResult("high", teamA.Name, teamB.Name, max(a0, a1), max(b0, b1))
		return HoleResult{
			TeamAPoints: low.TeamAPoints + high.TeamAPoints,
			TeamBPoints: low.TeamBPoints + high.TeamBPoints,
			Description: low.Description + "; " + high.Description,
			Complete:    true,
		}
	case models.ModeCaptainMate:
		captain := categoryResult("captain", teamA.Name, teamB.Name, a0, b0)
		mate := categoryResult("mate", teamA.Name, teamB.Name, a1, b1)
		return HoleResult{
			TeamAPoints: captain.TeamAPoints + mate.TeamAPoints,
			TeamBPoints: captain.TeamBPoints + mate.TeamBPoints,
			Description: captain.Description + "; " + mate.Description,
			Complete:    true,
		}
	case models.ModeStableford:
		ptsA := StablefordPoints(a0, par) + StablefordPoints(a1, par)
		ptsB := StablefordPoints(b0, par) + StablefordPoints(b1, par)
		// Stableford is the one mode where higher is better.
		switch {
		case ptsA > ptsB:
			return HoleResult{TeamAPoints: 1, Description: fmt.Sprintf("%s wins the hole, stableford %d vs %d", teamA.Name, ptsA, ptsB), Complete: true}
		case ptsB > ptsA:
			return HoleResult{TeamBPoints: 1, Description: fmt.Sprintf("%s wins the hole, stableford %d vs %d", teamB.Name, ptsB, ptsA), Complete: true}
		default:
			return HoleResult{TeamAPoints: 0.5, TeamBPoints: 0.5, Description: fmt.Sprintf("halved, stableford %d apiece", ptsA), Complete: true}
		}
	case models.ModeSkins:
		bbA, bbB := min(a0, a1), min(b0, b1)
		switch {
		case bbA < bbB:
			return HoleResult{TeamAPoints: 1, Description: fmt.Sprintf("skin to %s, %d vs %d", teamA.Name, bbA, bbB), Complete: true}
		case bbB < bbA:
			return HoleResult{TeamBPoints: 1, Description: fmt.Sprintf("skin to %s, %d vs %d", teamB.Name, bbB, bbA), Complete: true}
		default:
			return HoleResult{Description: fmt.Sprintf("halved at %d, skin carries", bbA), Complete: true}
		}
	default:
		return incomplete("unknown game mode")
	}
}

// lowerWins awards one point to the side with the lower team value.
func lowerWins(basis, nameA, nameB string, valA, valB int) HoleResult {
	switch {
	case valA < valB:
		return HoleResult{TeamAPoints: 1, Description: fmt.Sprintf("%s wins the hole, %s %d vs %d", nameA, basis, valA, valB), Complete: true}
	case valB < valA:
		return HoleResult{TeamBPoints: 1, Description: fmt.Sprintf("%s wins the hole, %s %d vs %d", nameB, basis, valB, valA), Complete: true}
	default:
		return HoleResult{TeamAPoints: 0.5, TeamBPoints: 0.5, Description: fmt.Sprintf("halved, %s %d", basis, valA), Complete: true}
	}
}

// categoryResult scores one independent point category (low/high ball or
// captain/mate) where lower strokes win the category.
func categoryResult(category, nameA, nameB string, valA, valB int) HoleResult {
	switch {
	case valA < valB:
		return HoleResult{TeamAPoints: 1, Description: fmt.Sprintf("%s: %s %d vs %d", category, nameA, valA, valB), Complete: true}
	case valB < valA:
		return HoleResult{TeamBPoints: 1, Description: fmt.Sprintf("%s: %s %d vs %d", category, nameB, valB, valA), Complete: true}
	default:
		return HoleResult{TeamAPoints: 0.5, TeamBPoints: 0.5, Description: fmt.Sprintf("%s: halved at %d", category, valA), Complete: true}
	}
}

// StablefordPoints converts a stroke count against par into stableford
// points: 3 or more under scores 5, eagle 4, birdie 3, par 2, bogey 1,
// anything worse 0.
func StablefordPoints(strokes, par int) int {
	switch diff := strokes - par; {
	case diff <= -3:
		return 5
	case diff == -2:
		return 4
	case diff == -1:
		return 3
	case diff == 0:
		return 2
	case diff == 1:
		return 1
	default:
		return 0
	}
}

// TeamValue renders the value a team is compared on for a hole, for display
// and cell coloring. It returns "-" when either player's score is missing and
// must stay consistent with the comparison basis ComputeHole uses.
func TeamValue(mode models.Mode, hole int, team *Side, lookup ScoreLookup, par int) string {
	if team == nil || !team.filled() {
		return "-"
	}
	s0, ok0 := lookup(team.Players[0], hole)
	s1, ok1 := lookup(team.Players[1], hole)
	if !ok0 || !ok1 {
		return "-"
	}

	switch mode {
	case models.ModeBestBall, models.ModeSkins:
		return strconv.Itoa(min(s0, s1))
	case models.ModeAggregate:
		return strconv.Itoa(s0 + s1)
	case models.ModeHighLow:
		return fmt.Sprintf("%d/%d", min(s0, s1), max(s0, s1))
	case models.ModeCaptainMate:
		return fmt.Sprintf("%d/%d", s0, s1)
	case models.ModeStableford:
		return strconv.Itoa(StablefordPoints(s0, par) + StablefordPoints(s1, par))
	default:
		return "-"
	}
}
