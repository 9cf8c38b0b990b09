package scoring

import (
	"strings"
	"testing"

	"github.com/chaigney/golftrip/internal/models"
)

// lookupFrom builds a ScoreLookup from literal rows; -1 marks a missing entry.
func lookupFrom(scores map[models.PlayerID][]int) ScoreLookup {
	return func(p models.PlayerID, hole int) (int, bool) {
		row, ok := scores[p]
		if !ok || hole < 0 || hole >= len(row) || row[hole] < 0 {
			return 0, false
		}
		return row[hole], true
	}
}

func sides() (*Side, *Side) {
	return &Side{Name: "Sharks", Players: [2]models.PlayerID{"a0", "a1"}},
		&Side{Name: "Jets", Players: [2]models.PlayerID{"b0", "b1"}}
}

func holeScores(a0, a1, b0, b1 int) ScoreLookup {
	return lookupFrom(map[models.PlayerID][]int{
		"a0": {a0}, "a1": {a1}, "b0": {b0}, "b1": {b1},
	})
}

func TestComputeHoleGating(t *testing.T) {
	a, b := sides()
	full := holeScores(4, 5, 4, 4)

	t.Run("missing team", func(t *testing.T) {
		r := ComputeHole(models.ModeBestBall, 0, nil, b, full, 4)
		assertIncomplete(t, r, "awaiting team selection")
		r = ComputeHole(models.ModeBestBall, 0, a, nil, full, 4)
		assertIncomplete(t, r, "awaiting team selection")
	})

	t.Run("unfilled roster slot", func(t *testing.T) {
		short := &Side{Name: "Sharks", Players: [2]models.PlayerID{"a0", ""}}
		r := ComputeHole(models.ModeBestBall, 0, short, b, full, 4)
		assertIncomplete(t, r, "awaiting full roster")
	})

	t.Run("missing stroke entry", func(t *testing.T) {
		r := ComputeHole(models.ModeBestBall, 0, a, b, holeScores(4, -1, 4, 4), 4)
		assertIncomplete(t, r, "awaiting scores")
	})

	t.Run("unknown mode", func(t *testing.T) {
		r := ComputeHole(models.Mode("wolfhammer"), 0, a, b, full, 4)
		assertIncomplete(t, r, "unknown game mode")
	})
}

func assertIncomplete(t *testing.T, r HoleResult, wantDesc string) {
	t.Helper()
	if r.Complete {
		t.Fatalf("expected incomplete result, got %+v", r)
	}
	if r.TeamAPoints != 0 || r.TeamBPoints != 0 {
		t.Fatalf("incomplete hole must carry zero points, got %+v", r)
	}
	if r.Description != wantDesc {
		t.Fatalf("expected description %q, got %q", wantDesc, r.Description)
	}
}

// Any single missing entry forces an incomplete zero-point result, whatever
// the other three entries hold, for every mode.
func TestCompletenessMonotonicity(t *testing.T) {
	a, b := sides()
	players := []models.PlayerID{"a0", "a1", "b0", "b1"}

	for _, mode := range models.Modes() {
		for _, missing := range players {
			rows := map[models.PlayerID][]int{
				"a0": {2}, "a1": {9}, "b0": {3}, "b1": {7},
			}
			rows[missing] = []int{-1}
			r := ComputeHole(mode, 0, a, b, lookupFrom(rows), 4)
			if r.Complete || r.TeamAPoints != 0 || r.TeamBPoints != 0 {
				t.Errorf("mode %s, missing %s: expected incomplete 0/0, got %+v", mode, missing, r)
			}
		}
	}
}

func TestBestBall(t *testing.T) {
	a, b := sides()
	tests := []struct {
		name           string
		a0, a1, b0, b1 int
		wantA, wantB   float64
	}{
		{"team A lower ball wins", 3, 6, 4, 4, 1, 0},
		{"team B lower ball wins", 5, 5, 6, 4, 0, 1},
		{"equal best balls halve", 4, 7, 4, 9, 0.5, 0.5},
		{"zero strokes accepted", 0, 8, 3, 3, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeHole(models.ModeBestBall, 0, a, b, holeScores(tt.a0, tt.a1, tt.b0, tt.b1), 4)
			if !r.Complete || r.TeamAPoints != tt.wantA || r.TeamBPoints != tt.wantB {
				t.Fatalf("got %+v, want %v/%v complete", r, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	a, b := sides()
	tests := []struct {
		name           string
		a0, a1, b0, b1 int
		wantA, wantB   float64
	}{
		{"lower sum wins", 4, 4, 4, 5, 1, 0},
		{"higher sum loses", 6, 5, 5, 5, 0, 1},
		{"equal sums halve", 3, 6, 4, 5, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeHole(models.ModeAggregate, 0, a, b, holeScores(tt.a0, tt.a1, tt.b0, tt.b1), 4)
			if !r.Complete || r.TeamAPoints != tt.wantA || r.TeamBPoints != tt.wantB {
				t.Fatalf("got %+v, want %v/%v", r, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestHighLow(t *testing.T) {
	a, b := sides()
	tests := []struct {
		name           string
		a0, a1, b0, b1 int
		wantA, wantB   float64
	}{
		{"sweep both categories", 3, 4, 5, 6, 2, 0},
		{"split categories", 3, 7, 4, 5, 1, 1},
		{"low won high halved", 3, 6, 4, 6, 1.5, 0.5},
		{"both halved", 4, 6, 4, 6, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeHole(models.ModeHighLow, 0, a, b, holeScores(tt.a0, tt.a1, tt.b0, tt.b1), 4)
			if !r.Complete || r.TeamAPoints != tt.wantA || r.TeamBPoints != tt.wantB {
				t.Fatalf("got %+v, want %v/%v", r, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestCaptainMate(t *testing.T) {
	a, b := sides()

	// Slot order decides the matchup: captain faces captain, mate faces mate.
	r := ComputeHole(models.ModeCaptainMate, 0, a, b, holeScores(3, 6, 4, 5), 4)
	if r.TeamAPoints != 1 || r.TeamBPoints != 1 {
		t.Fatalf("expected split 1/1, got %+v", r)
	}

	// Same strokes in swapped slots flips both categories.
	r = ComputeHole(models.ModeCaptainMate, 0, a, b, holeScores(6, 3, 4, 5), 4)
	if r.TeamAPoints != 1 || r.TeamBPoints != 1 {
		t.Fatalf("expected split 1/1, got %+v", r)
	}

	r = ComputeHole(models.ModeCaptainMate, 0, a, b, holeScores(3, 4, 4, 5), 4)
	if r.TeamAPoints != 2 || r.TeamBPoints != 0 {
		t.Fatalf("expected sweep 2/0, got %+v", r)
	}

	r = ComputeHole(models.ModeCaptainMate, 0, a, b, holeScores(4, 5, 4, 5), 4)
	if r.TeamAPoints != 1 || r.TeamBPoints != 1 {
		t.Fatalf("expected both categories halved 1/1, got %+v", r)
	}
}

// The table has exactly the documented breakpoints and no others.
func TestStablefordPointsTable(t *testing.T) {
	par := 4
	tests := []struct {
		strokes int
		want    int
	}{
		{0, 5}, {1, 5}, // 3+ under caps at 5
		{2, 4},
		{3, 3},
		{4, 2},
		{5, 1},
		{6, 0},
		{12, 0}, // nothing below zero
	}
	for _, tt := range tests {
		if got := StablefordPoints(tt.strokes, par); got != tt.want {
			t.Errorf("StablefordPoints(%d, %d) = %d, want %d", tt.strokes, par, got, tt.want)
		}
	}
}

func TestStablefordHole(t *testing.T) {
	a, b := sides()

	// A: par+birdie = 2+3 = 5 points, B: two pars = 4 points. Higher wins.
	r := ComputeHole(models.ModeStableford, 0, a, b, holeScores(4, 3, 4, 4), 4)
	if !r.Complete || r.TeamAPoints != 1 || r.TeamBPoints != 0 {
		t.Fatalf("expected stableford win for A, got %+v", r)
	}

	// Equal point sums halve even with different strokes.
	r = ComputeHole(models.ModeStableford, 0, a, b, holeScores(3, 5, 4, 4), 4)
	if r.TeamAPoints != 0.5 || r.TeamBPoints != 0.5 {
		t.Fatalf("expected halve, got %+v", r)
	}
}

func TestSkinsPreCarry(t *testing.T) {
	a, b := sides()

	r := ComputeHole(models.ModeSkins, 0, a, b, holeScores(3, 5, 4, 4), 4)
	if r.TeamAPoints != 1 || r.TeamBPoints != 0 {
		t.Fatalf("expected skin for A, got %+v", r)
	}

	// A halved skins hole is complete but awards nothing yet.
	r = ComputeHole(models.ModeSkins, 0, a, b, holeScores(4, 5, 4, 6), 4)
	if !r.Complete || r.TeamAPoints != 0 || r.TeamBPoints != 0 {
		t.Fatalf("expected complete 0/0 halve, got %+v", r)
	}
	if !strings.Contains(r.Description, "carries") {
		t.Fatalf("halved skin should mention the carry, got %q", r.Description)
	}
}

// Swapping which side is A and which is B swaps the point assignment exactly.
func TestSideSwapSymmetry(t *testing.T) {
	a, b := sides()
	strokes := [][4]int{
		{3, 6, 4, 4},
		{4, 4, 4, 4},
		{5, 3, 3, 5},
		{2, 7, 6, 3},
	}
	for _, mode := range models.Modes() {
		for _, s := range strokes {
			fwd := ComputeHole(mode, 0, a, b, holeScores(s[0], s[1], s[2], s[3]), 4)
			rev := ComputeHole(mode, 0, b, a, holeScores(s[2], s[3], s[0], s[1]), 4)
			if fwd.TeamAPoints != rev.TeamBPoints || fwd.TeamBPoints != rev.TeamAPoints {
				t.Errorf("mode %s strokes %v: swap changed outcome, fwd %+v rev %+v", mode, s, fwd, rev)
			}
		}
	}
}

func TestTeamValue(t *testing.T) {
	a, _ := sides()
	lookup := holeScores(3, 5, 4, 4)

	tests := []struct {
		mode models.Mode
		want string
	}{
		{models.ModeBestBall, "3"},
		{models.ModeSkins, "3"},
		{models.ModeAggregate, "8"},
		{models.ModeHighLow, "3/5"},
		{models.ModeCaptainMate, "3/5"},
		{models.ModeStableford, "4"}, // birdie 3 + bogey 1 at par 4
	}
	for _, tt := range tests {
		if got := TeamValue(tt.mode, 0, a, lookup, 4); got != tt.want {
			t.Errorf("TeamValue(%s) = %q, want %q", tt.mode, got, tt.want)
		}
	}

	if got := TeamValue(models.ModeBestBall, 0, a, holeScores(3, -1, 4, 4), 4); got != "-" {
		t.Errorf("missing score should render as dash, got %q", got)
	}
	if got := TeamValue(models.ModeBestBall, 0, nil, lookup, 4); got != "-" {
		t.Errorf("missing team should render as dash, got %q", got)
	}

	// High-low slot order must not matter for the display pair.
	if got := TeamValue(models.ModeHighLow, 0, a, holeScores(5, 3, 4, 4), 4); got != "3/5" {
		t.Errorf("high-low pair should order lo/hi, got %q", got)
	}
}
