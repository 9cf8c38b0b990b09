package scoring

import "fmt"

// ApplySkinsCarry folds the carry-over rule over a sequence of per-hole skins
// results. It is a strict left-to-right pass with a single integer
// accumulator: a halved hole banks one more skin, the next decisive hole
// claims the bank plus its own skin, and an incomplete hole leaves the bank
// untouched. Hole order is significant; never reorder or skip.
//
// A sequence that halves through the final hole forfeits the bank: no skins
// are won and the total awarded stays at the number of decided holes' worth.
func ApplySkinsCarry(results []HoleResult) []HoleResult {
	out := make([]HoleResult, len(results))
	carry := 0
	for i, r := range results {
		out[i] = r
		if !r.Complete {
			if carry > 0 {
				out[i].Description = fmt.Sprintf("%s (carry %d)", r.Description, carry)
			}
			continue
		}
		if r.TeamAPoints == 0 && r.TeamBPoints == 0 {
			carry++
			out[i].Description = fmt.Sprintf("%s (%d waiting)", r.Description, carry)
			continue
		}
		worth := carry + 1
		if r.TeamAPoints > r.TeamBPoints {
			out[i].TeamAPoints = float64(worth)
			out[i].TeamBPoints = 0
		} else {
			out[i].TeamAPoints = 0
			out[i].TeamBPoints = float64(worth)
		}
		if carry > 0 {
			out[i].Description = fmt.Sprintf("%s, worth %d skins", r.Description, worth)
		}
		carry = 0
	}
	return out
}
