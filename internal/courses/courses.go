package courses

import "github.com/chaigney/golftrip/internal/models"

// Course is static reference data: a display name and a fixed 18-hole par
// sequence. Courses are compiled in and never mutated.
type Course struct {
	Key  string              `json:"key"`
	Name string              `json:"name"`
	Par  [models.Holes]int   `json:"par"`
}

// ParOf returns the par for a hole, 0 if the hole index is out of range.
func (c Course) ParOf(hole int) int {
	if hole < 0 || hole >= models.Holes {
		return 0
	}
	return c.Par[hole]
}

// DefaultKey is the course a new trip starts on.
const DefaultKey = "pineridge"

var all = []Course{
	{
		Key:  "pineridge",
		Name: "Pine Ridge",
		Par:  [models.Holes]int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 4, 5},
	},
	{
		Key:  "lakeview",
		Name: "Lakeview National",
		Par:  [models.Holes]int{4, 5, 4, 3, 4, 4, 5, 3, 4, 4, 4, 3, 5, 4, 4, 4, 3, 5},
	},
	{
		Key:  "dunes",
		Name: "The Dunes",
		Par:  [models.Holes]int{5, 4, 4, 3, 4, 5, 4, 3, 4, 4, 5, 4, 3, 4, 4, 3, 4, 5},
	},
}

// All returns every known course in display order.
func All() []Course {
	out := make([]Course, len(all))
	copy(out, all)
	return out
}

// Lookup returns the course for a key. Unknown keys fall back to the default
// course so a trip document with a stale key still renders.
func Lookup(key string) Course {
	for _, c := range all {
		if c.Key == key {
			return c
		}
	}
	return all[0]
}

// Known reports whether a key names a real course.
func Known(key string) bool {
	for _, c := range all {
		if c.Key == key {
			return true
		}
	}
	return false
}
