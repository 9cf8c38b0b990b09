package scoring

import (
	"testing"
	"time"

	"github.com/chaigney/golftrip/internal/models"
)

func flatPar(int) int { return 4 }

func fullRow(strokes int) models.HoleScores {
	var row models.HoleScores
	for i := range row {
		row[i] = models.Strokes(strokes)
	}
	return row
}

func testArchive(mode models.Mode) models.ArchiveEntry {
	return models.ArchiveEntry{
		ID:        "arch-1",
		SavedAt:   time.Date(2026, 6, 12, 18, 30, 0, 0, time.UTC),
		Label:     "Saturday round",
		CourseKey: "pineridge",
		Mode:      mode,
		TeamA: models.TeamSnapshot{
			ID: "team-a", Name: "Sharks",
			PlayerIDs:   [2]models.PlayerID{"p1", "p2"},
			PlayerNames: [2]string{"Ana", "Bo"},
		},
		TeamB: models.TeamSnapshot{
			ID: "team-b", Name: "Jets",
			PlayerIDs:   [2]models.PlayerID{"p3", "p4"},
			PlayerNames: [2]string{"Cy", "Di"},
		},
		Scores: map[models.PlayerID]models.HoleScores{
			"p1": fullRow(4),
			"p2": fullRow(6),
			"p3": fullRow(5),
			"p4": fullRow(5),
		},
	}
}

func TestComputeArchiveReplaysSnapshot(t *testing.T) {
	card := ComputeArchive(testArchive(models.ModeBestBall), flatPar)
	if !AllComplete(card.Holes) {
		t.Fatalf("expected a fully complete archive scorecard")
	}
	// Sharks' best ball 4 beats Jets' 5 on every hole.
	if card.Totals.TeamAPoints != 18 || card.Totals.TeamBPoints != 0 {
		t.Fatalf("expected 18-0 replay, got %+v", card.Totals)
	}
	if card.TeamA != "Sharks" || card.TeamB != "Jets" {
		t.Fatalf("scorecard should carry snapshot names, got %q vs %q", card.TeamA, card.TeamB)
	}
}

// Mutating live roster and score state after archiving must not change what
// the archive recomputes to.
func TestArchiveImmuneToLiveMutation(t *testing.T) {
	arch := testArchive(models.ModeBestBall)
	before := ComputeArchive(arch, flatPar)

	trip := &models.Trip{
		Players: []models.Player{{ID: "p1", Name: "Ana"}},
		ScoresByCourse: map[string]map[models.PlayerID]models.HoleScores{
			"pineridge": {"p1": fullRow(4)},
		},
	}
	trip.Players[0].Name = "Renamed"
	trip.SetScore("pineridge", "p1", 0, models.Strokes(11))
	trip.RemovePlayer("p1")

	after := ComputeArchive(arch, flatPar)
	if len(before.Holes) != len(after.Holes) {
		t.Fatalf("hole count changed")
	}
	for i := range before.Holes {
		if before.Holes[i] != after.Holes[i] {
			t.Fatalf("hole %d changed after live mutation: %+v vs %+v", i+1, before.Holes[i], after.Holes[i])
		}
	}
}

func TestComputeArchiveAppliesSkinsCarry(t *testing.T) {
	arch := testArchive(models.ModeSkins)
	// Halve holes 1 and 2, let Sharks take hole 3.
	rowP3 := fullRow(5)
	rowP3[0] = models.Strokes(4)
	rowP3[1] = models.Strokes(4)
	arch.Scores["p3"] = rowP3

	card := ComputeArchive(arch, flatPar)
	if card.Holes[0].TeamAPoints != 0 || card.Holes[1].TeamAPoints != 0 {
		t.Fatalf("halved skins holes should hold zero, got %+v %+v", card.Holes[0], card.Holes[1])
	}
	if card.Holes[2].TeamAPoints != 3 {
		t.Fatalf("expected 3 skins on the first decisive hole, got %+v", card.Holes[2])
	}
}

func parFor(string) ParLookup { return flatPar }

func TestRecords(t *testing.T) {
	win := testArchive(models.ModeBestBall) // Sharks win 18-0
	lossRow := map[models.PlayerID]models.HoleScores{
		"p1": fullRow(6), "p2": fullRow(6), "p3": fullRow(4), "p4": fullRow(5),
	}
	loss := testArchive(models.ModeBestBall)
	loss.ID = "arch-2"
	loss.Scores = lossRow

	tie := testArchive(models.ModeBestBall)
	tie.ID = "arch-3"
	tie.Scores = map[models.PlayerID]models.HoleScores{
		"p1": fullRow(4), "p2": fullRow(6), "p3": fullRow(4), "p4": fullRow(5),
	}

	records := Records([]models.ArchiveEntry{win, loss, tie}, parFor)
	sharks := records["team-a"]
	jets := records["team-b"]
	if sharks != (Record{Wins: 1, Losses: 1, Ties: 1}) {
		t.Fatalf("sharks record wrong: %+v", sharks)
	}
	if jets != (Record{Wins: 1, Losses: 1, Ties: 1}) {
		t.Fatalf("jets record wrong: %+v", jets)
	}
}

// An archive with 17 complete holes and 1 incomplete hole contributes zero
// credit to either team.
func TestRecordsExcludePartialArchives(t *testing.T) {
	partial := testArchive(models.ModeBestBall)
	row := partial.Scores["p1"]
	row[17] = models.ScoreEntry{}
	partial.Scores["p1"] = row

	records := Records([]models.ArchiveEntry{partial}, parFor)
	if len(records) != 0 {
		t.Fatalf("partial archive must not contribute, got %+v", records)
	}
}

func TestComputeMatchToleratesDanglingTeamRefs(t *testing.T) {
	trip := &models.Trip{
		Matches: []models.Match{{ID: "m1", TeamAID: "ghost-a", TeamBID: "ghost-b", Mode: models.ModeBestBall}},
	}
	card := ComputeMatch(trip, trip.Matches[0], "pineridge", flatPar)
	if card.Totals.Completed != 0 {
		t.Fatalf("dangling team refs should compute as incomplete, got %+v", card.Totals)
	}
	for _, h := range card.Holes {
		if h.Description != "awaiting team selection" {
			t.Fatalf("expected team-selection gate, got %q", h.Description)
		}
	}
}
