package scoring

import "github.com/chaigney/golftrip/internal/models"

// Scorecard is the full engine output for one match: all 18 hole results
// (post carry-over for skins) plus the running totals.
type Scorecard struct {
	Mode     models.Mode  `json:"mode"`
	TeamA    string       `json:"teamA"`
	TeamB    string       `json:"teamB"`
	Holes    []HoleResult `json:"holes"`
	TeamVals [][2]string  `json:"teamValues"`
	Totals   Totals       `json:"totals"`
}

// Compute scores all 18 holes for a mode and applies the skins carry when the
// mode calls for it. Team names default to placeholders when a side is
// missing so status text stays renderable.
func Compute(mode models.Mode, teamA, teamB *Side, lookup ScoreLookup, par ParLookup) Scorecard {
	results := make([]HoleResult, models.Holes)
	values := make([][2]string, models.Holes)
	for hole := 0; hole < models.Holes; hole++ {
		results[hole] = ComputeHole(mode, hole, teamA, teamB, lookup, par(hole))
		values[hole] = [2]string{
			TeamValue(mode, hole, teamA, lookup, par(hole)),
			TeamValue(mode, hole, teamB, lookup, par(hole)),
		}
	}
	if mode == models.ModeSkins {
		results = ApplySkinsCarry(results)
	}

	nameA, nameB := "Team A", "Team B"
	if teamA != nil {
		nameA = teamA.Name
	}
	if teamB != nil {
		nameB = teamB.Name
	}
	return Scorecard{
		Mode:     mode,
		TeamA:    nameA,
		TeamB:    nameB,
		Holes:    results,
		TeamVals: values,
		Totals:   Summarize(results, nameA, nameB),
	}
}

// LiveLookup reads strokes from a trip's score rows for one course.
func LiveLookup(trip *models.Trip, courseKey string) ScoreLookup {
	return func(player models.PlayerID, hole int) (int, bool) {
		return trip.ScoreRow(courseKey, player).At(hole)
	}
}

// ComputeMatch scores a live match against the trip's current rosters and
// score rows. Missing team references are tolerated and surface as
// incomplete holes.
func ComputeMatch(trip *models.Trip, match models.Match, courseKey string, par ParLookup) Scorecard {
	return Compute(
		match.Mode,
		SideOf(trip.Team(match.TeamAID)),
		SideOf(trip.Team(match.TeamBID)),
		LiveLookup(trip, courseKey),
		par,
	)
}
