package scoring

import "github.com/chaigney/golftrip/internal/models"

// ArchiveLookup reads strokes from an archive's captured score rows, never
// from live state. A renamed player or overwritten live score cannot change
// what an archived scorecard recomputes to.
func ArchiveLookup(a models.ArchiveEntry) ScoreLookup {
	return func(player models.PlayerID, hole int) (int, bool) {
		return a.Scores[player].At(hole)
	}
}

// ComputeArchive replays the engine over an archive snapshot with the same
// rule table as live play, skins carry included.
func ComputeArchive(a models.ArchiveEntry, par ParLookup) Scorecard {
	return Compute(
		a.Mode,
		SideOfSnapshot(a.TeamA),
		SideOfSnapshot(a.TeamB),
		ArchiveLookup(a),
		par,
	)
}

// Record is a team's win/loss/tie tally over archived matches.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// ParByCourse resolves the par sequence for an archive's course key.
type ParByCourse func(courseKey string) ParLookup

// Records replays every archive and tallies results per team. Only archives
// with all 18 holes complete count; a partial archive contributes nothing to
// either side. Live matches never contribute.
func Records(history []models.ArchiveEntry, parFor ParByCourse) map[models.TeamID]Record {
	records := make(map[models.TeamID]Record)
	for _, a := range history {
		card := ComputeArchive(a, parFor(a.CourseKey))
		if !AllComplete(card.Holes) {
			continue
		}
		recA := records[a.TeamA.ID]
		recB := records[a.TeamB.ID]
		switch card.Totals.Leader() {
		case 1:
			recA.Wins++
			recB.Losses++
		case -1:
			recB.Wins++
			recA.Losses++
		default:
			recA.Ties++
			recB.Ties++
		}
		records[a.TeamA.ID] = recA
		records[a.TeamB.ID] = recB
	}
	return records
}
