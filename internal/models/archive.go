package models

import (
	"fmt"
	"time"
)

// ArchiveMatch moves a match out of the active set into history, capturing
// teams, player names and score rows by value. Callers supply the new
// archive id and timestamp so the model stays clock-free.
func (t *Trip) ArchiveMatch(matchID, archiveID, label string, now time.Time) (*ArchiveEntry, error) {
	match := t.Match(matchID)
	if match == nil {
		return nil, fmt.Errorf("match %s not found", matchID)
	}

	snapA := t.Snapshot(match.TeamAID)
	snapB := t.Snapshot(match.TeamBID)
	scores := make(map[PlayerID]HoleScores)
	for _, snap := range []TeamSnapshot{snapA, snapB} {
		for _, pid := range snap.PlayerIDs {
			if pid != "" {
				scores[pid] = t.ScoreRow(t.CourseKey, pid)
			}
		}
	}

	if label == "" {
		label = fmt.Sprintf("%s vs %s", snapA.Name, snapB.Name)
	}

	entry := ArchiveEntry{
		ID:        archiveID,
		SavedAt:   now,
		Label:     label,
		CourseKey: t.CourseKey,
		Mode:      match.Mode,
		TeamA:     snapA,
		TeamB:     snapB,
		Scores:    scores,
	}
	t.History = append(t.History, entry)
	t.RemoveMatch(matchID)
	return &t.History[len(t.History)-1], nil
}

// RestoreArchive re-creates live players, teams and a match from a snapshot,
// re-using the original ids, and merges the snapshot's scores into the live
// rows for that course. Live scores for those players on that course are
// overwritten by the snapshot.
func (t *Trip) RestoreArchive(archiveID, newMatchID string) (*Match, error) {
	arch := t.Archive(archiveID)
	if arch == nil {
		return nil, fmt.Errorf("archive %s not found", archiveID)
	}

	for _, snap := range []TeamSnapshot{arch.TeamA, arch.TeamB} {
		for i, pid := range snap.PlayerIDs {
			if pid == "" {
				continue
			}
			if t.Player(pid) == nil {
				t.Players = append(t.Players, Player{ID: pid, Name: snap.PlayerNames[i]})
			}
		}
		if snap.ID == "" {
			continue
		}
		if team := t.Team(snap.ID); team != nil {
			team.Name = snap.Name
			team.PlayerSlots = snap.PlayerIDs
		} else {
			t.Teams = append(t.Teams, Team{ID: snap.ID, Name: snap.Name, PlayerSlots: snap.PlayerIDs})
		}
		// Restored players may still sit in other teams' slots.
		for i := range t.Teams {
			if t.Teams[i].ID == snap.ID {
				continue
			}
			for s := range t.Teams[i].PlayerSlots {
				for _, pid := range snap.PlayerIDs {
					if pid != "" && t.Teams[i].PlayerSlots[s] == pid {
						t.Teams[i].PlayerSlots[s] = ""
					}
				}
			}
		}
	}

	for pid, row := range arch.Scores {
		if t.ScoresByCourse == nil {
			t.ScoresByCourse = make(map[string]map[PlayerID]HoleScores)
		}
		rows, ok := t.ScoresByCourse[arch.CourseKey]
		if !ok {
			rows = make(map[PlayerID]HoleScores)
			t.ScoresByCourse[arch.CourseKey] = rows
		}
		rows[pid] = row
	}

	match := Match{ID: newMatchID, TeamAID: arch.TeamA.ID, TeamBID: arch.TeamB.ID, Mode: arch.Mode}
	t.Matches = append(t.Matches, match)
	t.CourseKey = arch.CourseKey
	t.RemoveArchive(archiveID)
	return t.Match(newMatchID), nil
}

// RemoveArchive deletes a history entry.
func (t *Trip) RemoveArchive(archiveID string) bool {
	for i := range t.History {
		if t.History[i].ID == archiveID {
			t.History = append(t.History[:i], t.History[i+1:]...)
			return true
		}
	}
	return false
}
