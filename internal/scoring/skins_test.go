package scoring

import (
	"strings"
	"testing"

	"github.com/chaigney/golftrip/internal/models"
)

func skinsSequence(t *testing.T, holes [][4]int) []HoleResult {
	t.Helper()
	a, b := sides()
	results := make([]HoleResult, len(holes))
	for i, s := range holes {
		results[i] = ComputeHole(models.ModeSkins, 0, a, b, holeScores(s[0], s[1], s[2], s[3]), 4)
	}
	return results
}

// The documented carry example: best balls 3 vs 3, 4 vs 4, then 5 vs 3.
// Two halves bank two skins and the decisive third hole claims all three.
func TestSkinsCarryAccumulates(t *testing.T) {
	results := ApplySkinsCarry(skinsSequence(t, [][4]int{
		{3, 9, 3, 9},
		{4, 9, 4, 9},
		{5, 9, 3, 9},
	}))

	for i := 0; i < 2; i++ {
		if results[i].TeamAPoints != 0 || results[i].TeamBPoints != 0 {
			t.Fatalf("hole %d: halved hole must award nothing, got %+v", i+1, results[i])
		}
	}
	if results[2].TeamBPoints != 3 || results[2].TeamAPoints != 0 {
		t.Fatalf("decisive hole should claim carry+1 = 3 skins, got %+v", results[2])
	}
	if !strings.Contains(results[2].Description, "3 skins") {
		t.Fatalf("description should state the haul, got %q", results[2].Description)
	}
}

func TestSkinsCarryResetsAfterDecisiveHole(t *testing.T) {
	results := ApplySkinsCarry(skinsSequence(t, [][4]int{
		{4, 9, 4, 9}, // halved, carry 1
		{3, 9, 5, 9}, // A claims 2
		{2, 9, 4, 9}, // A claims 1, no stale carry
	}))

	if results[1].TeamAPoints != 2 {
		t.Fatalf("hole 2 should be worth 2 skins, got %+v", results[1])
	}
	if results[2].TeamAPoints != 1 {
		t.Fatalf("carry must reset after a decisive hole, got %+v", results[2])
	}
}

// An incomplete hole leaves the bank untouched: the carry flows across it to
// the next decisive hole.
func TestSkinsCarrySkipsIncompleteHoles(t *testing.T) {
	seq := skinsSequence(t, [][4]int{
		{4, 9, 4, 9}, // halved, carry 1
		{0, 0, 0, 0}, // replaced below with an incomplete hole
		{5, 9, 3, 9}, // B claims 2
	})
	seq[1] = HoleResult{Description: "awaiting scores"}

	results := ApplySkinsCarry(seq)
	if results[1].Complete || results[1].TeamAPoints != 0 || results[1].TeamBPoints != 0 {
		t.Fatalf("incomplete hole must stay 0/0, got %+v", results[1])
	}
	if !strings.Contains(results[1].Description, "(carry 1)") {
		t.Fatalf("incomplete hole should note the pending carry, got %q", results[1].Description)
	}
	if results[2].TeamBPoints != 2 {
		t.Fatalf("carry should survive the gap, got %+v", results[2])
	}
}

// Halving every hole through 18 forfeits the bank entirely.
func TestSkinsAllHalvedAwardsNothing(t *testing.T) {
	holes := make([][4]int, models.Holes)
	for i := range holes {
		holes[i] = [4]int{4, 9, 4, 9}
	}
	results := ApplySkinsCarry(skinsSequence(t, holes))

	var total float64
	for _, r := range results {
		total += r.TeamAPoints + r.TeamBPoints
	}
	if total != 0 {
		t.Fatalf("a fully halved round must award zero skins, got %v", total)
	}
}

// Conservation: total skins awarded over a full round equals the number of
// holes absorbed into decisive wins (decided holes plus their banked ties).
func TestSkinsCarryConservation(t *testing.T) {
	holes := make([][4]int, models.Holes)
	// Pattern: two halves then a decisive hole, repeated six times.
	for i := range holes {
		switch i % 3 {
		case 0, 1:
			holes[i] = [4]int{4, 9, 4, 9}
		default:
			holes[i] = [4]int{3, 9, 5, 9}
		}
	}
	results := ApplySkinsCarry(skinsSequence(t, holes))

	var total float64
	for _, r := range results {
		total += r.TeamAPoints + r.TeamBPoints
	}
	// Each decisive hole claims itself plus the two preceding halves.
	if total != float64(models.Holes) {
		t.Fatalf("expected all %d holes absorbed, got %v", models.Holes, total)
	}
	for i := 2; i < models.Holes; i += 3 {
		if results[i].TeamAPoints != 3 {
			t.Fatalf("hole %d should be worth 3 skins, got %+v", i+1, results[i])
		}
	}
}

func TestSummarizeStatus(t *testing.T) {
	none := make([]HoleResult, models.Holes)
	if got := Summarize(none, "Sharks", "Jets").Status; got != "no scores yet" {
		t.Fatalf("expected 'no scores yet', got %q", got)
	}

	results := []HoleResult{
		{TeamAPoints: 1, Complete: true},
		{TeamAPoints: 0.5, TeamBPoints: 0.5, Complete: true},
		{TeamBPoints: 1, Complete: true},
		{Description: "awaiting scores"},
	}
	tot := Summarize(results, "Sharks", "Jets")
	if tot.Completed != 3 {
		t.Fatalf("expected 3 complete holes, got %d", tot.Completed)
	}
	if tot.Status != "all square" {
		t.Fatalf("expected 'all square', got %q", tot.Status)
	}

	results = append(results, HoleResult{TeamAPoints: 1, TeamBPoints: 0, Complete: true},
		HoleResult{TeamAPoints: 0.5, TeamBPoints: 0.5, Complete: true})
	tot = Summarize(results, "Sharks", "Jets")
	if tot.Status != "Sharks up by 1.0" {
		t.Fatalf("expected 'Sharks up by 1.0', got %q", tot.Status)
	}

	// Incomplete holes contribute nothing to totals even if points leaked in.
	leaky := []HoleResult{{TeamAPoints: 5, Complete: false}}
	if got := Summarize(leaky, "A", "B"); got.TeamAPoints != 0 || got.Status != "no scores yet" {
		t.Fatalf("incomplete hole leaked into totals: %+v", got)
	}
}

func TestSummarizeHalfPointMargin(t *testing.T) {
	results := []HoleResult{
		{TeamAPoints: 0.5, TeamBPoints: 0.5, Complete: true},
		{TeamBPoints: 1, Complete: true},
		{TeamAPoints: 0.5, TeamBPoints: 0.5, Complete: true},
	}
	tot := Summarize(results, "Sharks", "Jets")
	if tot.Status != "Jets up by 0.5" {
		t.Fatalf("expected half-point margin with one decimal, got %q", tot.Status)
	}
}
