package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Holes is the number of holes in a round. Every score row, par sequence and
// scorecard in the system is indexed 0..Holes-1.
const Holes = 18

type PlayerID string

type TeamID string

// Mode identifies one of the six supported game modes.
type Mode string

const (
	ModeBestBall    Mode = "bestball"
	ModeHighLow     Mode = "highlow"
	ModeCaptainMate Mode = "captainmate"
	ModeAggregate   Mode = "aggregate"
	ModeStableford  Mode = "stableford"
	ModeSkins       Mode = "skins"
)

// Modes lists every supported mode in display order.
func Modes() []Mode {
	return []Mode{ModeBestBall, ModeHighLow, ModeCaptainMate, ModeAggregate, ModeStableford, ModeSkins}
}

func (m Mode) Valid() bool {
	switch m {
	case ModeBestBall, ModeHighLow, ModeCaptainMate, ModeAggregate, ModeStableford, ModeSkins:
		return true
	}
	return false
}

func (m Mode) Label() string {
	switch m {
	case ModeBestBall:
		return "Best Ball"
	case ModeHighLow:
		return "High-Low"
	case ModeCaptainMate:
		return "Captain & Mate"
	case ModeAggregate:
		return "Aggregate"
	case ModeStableford:
		return "Stableford"
	case ModeSkins:
		return "Skins"
	default:
		return string(m)
	}
}

func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m
	}
	return Mode(s)
}

type Player struct {
	ID   PlayerID `json:"id" firestore:"id"`
	Name string   `json:"name" firestore:"name"`
}

// Team pairs exactly two player slots. An empty slot holds the zero PlayerID.
type Team struct {
	ID          TeamID      `json:"id" firestore:"id"`
	Name        string      `json:"name" firestore:"name"`
	PlayerSlots [2]PlayerID `json:"playerIds" firestore:"playerIds"`
}

// Complete reports whether both slots are filled.
func (t Team) Complete() bool {
	return t.PlayerSlots[0] != "" && t.PlayerSlots[1] != ""
}

func (t Team) HasPlayer(id PlayerID) bool {
	return id != "" && (t.PlayerSlots[0] == id || t.PlayerSlots[1] == id)
}

type Match struct {
	ID      string `json:"id" firestore:"id"`
	TeamAID TeamID `json:"teamAId" firestore:"teamAId"`
	TeamBID TeamID `json:"teamBId" firestore:"teamBId"`
	Mode    Mode   `json:"mode" firestore:"mode"`
}

// ScoreEntry is a raw per-hole stroke entry: either unset or a non-negative
// stroke count. The JSON form is a bare number when set and "" when unset,
// matching the document shape the web clients write.
type ScoreEntry struct {
	Strokes int  `firestore:"strokes"`
	Set     bool `firestore:"set"`
}

func Strokes(n int) ScoreEntry {
	if n < 0 {
		return ScoreEntry{}
	}
	return ScoreEntry{Strokes: n, Set: true}
}

func (e ScoreEntry) MarshalJSON() ([]byte, error) {
	if !e.Set {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(e.Strokes)), nil
}

// UnmarshalJSON accepts a number, a numeric string, "" or null. Anything
// non-numeric or negative coerces to unset rather than erroring, so a
// malformed cell in an old document degrades to "no score recorded".
func (e *ScoreEntry) UnmarshalJSON(data []byte) error {
	*e = ScoreEntry{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return nil
	}
	*e = ScoreEntry{Strokes: int(f), Set: true}
	return nil
}

// HoleScores is one player's ordered 18-entry score row on one course.
type HoleScores [Holes]ScoreEntry

// At returns the stroke count for a hole and whether one is recorded.
// Out-of-range holes read as unset.
func (h HoleScores) At(hole int) (int, bool) {
	if hole < 0 || hole >= Holes {
		return 0, false
	}
	e := h[hole]
	return e.Strokes, e.Set
}

// TeamSnapshot captures a team by value at archive time. Later renames or
// deletions of the live roster must not reach into it.
type TeamSnapshot struct {
	ID          TeamID      `json:"id" firestore:"id"`
	Name        string      `json:"name" firestore:"name"`
	PlayerIDs   [2]PlayerID `json:"playerIds" firestore:"playerIds"`
	PlayerNames [2]string   `json:"playerNames" firestore:"playerNames"`
}

// ArchiveEntry is an immutable snapshot of a finished match: teams, mode,
// course and every captured score row. Results are recomputed from it alone.
type ArchiveEntry struct {
	ID        string                  `json:"id" firestore:"id"`
	SavedAt   time.Time               `json:"savedAt" firestore:"savedAt"`
	Label     string                  `json:"label" firestore:"label"`
	CourseKey string                  `json:"courseKey" firestore:"courseKey"`
	Mode      Mode                    `json:"mode" firestore:"mode"`
	TeamA     TeamSnapshot            `json:"teamASnapshot" firestore:"teamASnapshot"`
	TeamB     TeamSnapshot            `json:"teamBSnapshot" firestore:"teamBSnapshot"`
	Scores    map[PlayerID]HoleScores `json:"scoresSnapshot" firestore:"scoresSnapshot"`
}

// Trip is the shared document one room of devices edits together.
type Trip struct {
	ID             string                             `json:"id" firestore:"id"`
	Name           string                             `json:"name" firestore:"name"`
	Players        []Player                           `json:"players" firestore:"players"`
	Teams          []Team                             `json:"teams" firestore:"teams"`
	Matches        []Match                            `json:"matches" firestore:"matches"`
	History        []ArchiveEntry                     `json:"history" firestore:"history"`
	CourseKey      string                             `json:"courseKey" firestore:"courseKey"`
	ScoresByCourse map[string]map[PlayerID]HoleScores `json:"scoresByCourse" firestore:"scoresByCourse"`
	OwnerDeviceID  string                             `json:"ownerDeviceId" firestore:"ownerDeviceId"`
	PinEnabled     bool                               `json:"pinEnabled" firestore:"pinEnabled"`
	// PinHash holds the bcrypt hash of the room PIN, never the PIN itself.
	PinHash   string    `json:"pin" firestore:"pin"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (t *Trip) Player(id PlayerID) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}

func (t *Trip) Team(id TeamID) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == id {
			return &t.Teams[i]
		}
	}
	return nil
}

func (t *Trip) Match(id string) *Match {
	for i := range t.Matches {
		if t.Matches[i].ID == id {
			return &t.Matches[i]
		}
	}
	return nil
}

func (t *Trip) Archive(id string) *ArchiveEntry {
	for i := range t.History {
		if t.History[i].ID == id {
			return &t.History[i]
		}
	}
	return nil
}

// ScoreRow returns the player's score row for a course, zero if none exists.
func (t *Trip) ScoreRow(courseKey string, player PlayerID) HoleScores {
	if rows, ok := t.ScoresByCourse[courseKey]; ok {
		return rows[player]
	}
	return HoleScores{}
}

// SetScore records (or clears) one player's stroke entry on a course.
func (t *Trip) SetScore(courseKey string, player PlayerID, hole int, entry ScoreEntry) {
	if hole < 0 || hole >= Holes {
		return
	}
	if t.ScoresByCourse == nil {
		t.ScoresByCourse = make(map[string]map[PlayerID]HoleScores)
	}
	rows, ok := t.ScoresByCourse[courseKey]
	if !ok {
		rows = make(map[PlayerID]HoleScores)
		t.ScoresByCourse[courseKey] = rows
	}
	row := rows[player]
	row[hole] = entry
	rows[player] = row
}

// AssignPlayer places a player in a team slot, clearing any slot on any team
// that currently holds the player. A player belongs to at most one team.
func (t *Trip) AssignPlayer(teamID TeamID, slot int, player PlayerID) {
	if slot < 0 || slot > 1 {
		return
	}
	if player != "" {
		for i := range t.Teams {
			for s := range t.Teams[i].PlayerSlots {
				if t.Teams[i].PlayerSlots[s] == player {
					t.Teams[i].PlayerSlots[s] = ""
				}
			}
		}
	}
	if team := t.Team(teamID); team != nil {
		team.PlayerSlots[slot] = player
	}
}

// RemovePlayer deletes a player, clears any team slot holding it and purges
// its score rows on every course.
func (t *Trip) RemovePlayer(id PlayerID) bool {
	idx := -1
	for i := range t.Players {
		if t.Players[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)
	for i := range t.Teams {
		for s := range t.Teams[i].PlayerSlots {
			if t.Teams[i].PlayerSlots[s] == id {
				t.Teams[i].PlayerSlots[s] = ""
			}
		}
	}
	for _, rows := range t.ScoresByCourse {
		delete(rows, id)
	}
	return true
}

// RemoveMatch drops a match from the active set.
func (t *Trip) RemoveMatch(id string) bool {
	for i := range t.Matches {
		if t.Matches[i].ID == id {
			t.Matches = append(t.Matches[:i], t.Matches[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot captures a live team by value for archiving.
func (t *Trip) Snapshot(teamID TeamID) TeamSnapshot {
	team := t.Team(teamID)
	if team == nil {
		return TeamSnapshot{}
	}
	snap := TeamSnapshot{ID: team.ID, Name: team.Name, PlayerIDs: team.PlayerSlots}
	for i, pid := range team.PlayerSlots {
		if p := t.Player(pid); p != nil {
			snap.PlayerNames[i] = p.Name
		}
	}
	return snap
}

// Clone returns a deep copy so stores can hand out trips without aliasing
// their internal state.
func (t *Trip) Clone() *Trip {
	if t == nil {
		return nil
	}
	out := *t
	out.Players = append([]Player(nil), t.Players...)
	out.Teams = append([]Team(nil), t.Teams...)
	out.Matches = append([]Match(nil), t.Matches...)
	out.History = make([]ArchiveEntry, len(t.History))
	for i, a := range t.History {
		out.History[i] = a
		out.History[i].Scores = cloneScores(a.Scores)
	}
	if t.ScoresByCourse != nil {
		out.ScoresByCourse = make(map[string]map[PlayerID]HoleScores, len(t.ScoresByCourse))
		for key, rows := range t.ScoresByCourse {
			out.ScoresByCourse[key] = cloneScores(rows)
		}
	}
	return &out
}

func cloneScores(rows map[PlayerID]HoleScores) map[PlayerID]HoleScores {
	if rows == nil {
		return nil
	}
	out := make(map[PlayerID]HoleScores, len(rows))
	for id, row := range rows {
		out[id] = row
	}
	return out
}

// Normalize repairs a trip decoded from an older document: nil maps become
// empty and slices are never nil, so handlers can mutate without nil checks.
func (t *Trip) Normalize() {
	if t.Players == nil {
		t.Players = []Player{}
	}
	if t.Teams == nil {
		t.Teams = []Team{}
	}
	if t.Matches == nil {
		t.Matches = []Match{}
	}
	if t.History == nil {
		t.History = []ArchiveEntry{}
	}
	if t.ScoresByCourse == nil {
		t.ScoresByCourse = make(map[string]map[PlayerID]HoleScores)
	}
}

var _ json.Marshaler = ScoreEntry{}
var _ json.Unmarshaler = (*ScoreEntry)(nil)
