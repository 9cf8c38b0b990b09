// Package export renders archived matches into portable formats: CSV for
// spreadsheets, JSON for backup and re-import, and printable HTML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/chaigney/golftrip/internal/courses"
	"github.com/chaigney/golftrip/internal/models"
	"github.com/chaigney/golftrip/internal/scoring"
)

// WriteJSON emits the archive document itself. The output unmarshals back
// into an identical ArchiveEntry, so it doubles as a backup format.
func WriteJSON(w io.Writer, a models.ArchiveEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// ReadJSON parses an archive previously written by WriteJSON.
func ReadJSON(r io.Reader) (models.ArchiveEntry, error) {
	var a models.ArchiveEntry
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return models.ArchiveEntry{}, fmt.Errorf("decode archive: %w", err)
	}
	return a, nil
}

// WriteCSV emits one row per hole: par, each player's strokes, the per-hole
// team values and the points awarded, followed by a totals row.
func WriteCSV(w io.Writer, a models.ArchiveEntry) error {
	course := courses.Lookup(a.CourseKey)
	card := scoring.ComputeArchive(a, course.ParOf)

	cw := csv.NewWriter(w)
	header := []string{
		"hole", "par",
		playerHeader(a.TeamA, 0), playerHeader(a.TeamA, 1),
		playerHeader(a.TeamB, 0), playerHeader(a.TeamB, 1),
		card.TeamA, card.TeamB,
		"result",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for hole := 0; hole < models.Holes; hole++ {
		row := []string{
			fmt.Sprintf("%d", hole+1),
			fmt.Sprintf("%d", course.ParOf(hole)),
			strokeCell(a, a.TeamA.PlayerIDs[0], hole),
			strokeCell(a, a.TeamA.PlayerIDs[1], hole),
			strokeCell(a, a.TeamB.PlayerIDs[0], hole),
			strokeCell(a, a.TeamB.PlayerIDs[1], hole),
			card.TeamVals[hole][0],
			card.TeamVals[hole][1],
			card.Holes[hole].Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	totals := []string{
		"total", "", "", "", "", "",
		fmt.Sprintf("%.1f", card.Totals.TeamAPoints),
		fmt.Sprintf("%.1f", card.Totals.TeamBPoints),
		card.Totals.Status,
	}
	if err := cw.Write(totals); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func playerHeader(snap models.TeamSnapshot, slot int) string {
	if snap.PlayerNames[slot] != "" {
		return snap.PlayerNames[slot]
	}
	return fmt.Sprintf("%s slot %d", snap.Name, slot+1)
}

func strokeCell(a models.ArchiveEntry, player models.PlayerID, hole int) string {
	n, ok := a.Scores[player].At(hole)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

var htmlTmpl = template.Must(template.New("scorecard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Label}}</title>
<style>
body { font-family: Georgia, serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 10px; text-align: center; }
caption { font-size: 1.3em; margin-bottom: 0.5em; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<table>
<caption>{{.Label}} &mdash; {{.ModeLabel}} at {{.CourseName}}</caption>
<thead>
<tr><th>Hole</th><th>Par</th><th>{{.Card.TeamA}}</th><th>{{.Card.TeamB}}</th><th>Result</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Hole}}</td><td>{{.Par}}</td><td>{{.ValA}}</td><td>{{.ValB}}</td><td>{{.Description}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="2">Total</td><td>{{printf "%.1f" .Card.Totals.TeamAPoints}}</td><td>{{printf "%.1f" .Card.Totals.TeamBPoints}}</td><td>{{.Card.Totals.Status}}</td></tr>
</tfoot>
</table>
</body>
</html>
`))

type htmlRow struct {
	Hole        int
	Par         int
	ValA        string
	ValB        string
	Description string
}

type htmlPage struct {
	Label      string
	ModeLabel  string
	CourseName string
	Card       scoring.Scorecard
	Rows       []htmlRow
}

// WriteHTML renders a printable single-page scorecard for an archive.
func WriteHTML(w io.Writer, a models.ArchiveEntry) error {
	course := courses.Lookup(a.CourseKey)
	card := scoring.ComputeArchive(a, course.ParOf)

	page := htmlPage{
		Label:      a.Label,
		ModeLabel:  a.Mode.Label(),
		CourseName: course.Name,
		Card:       card,
	}
	for hole := 0; hole < models.Holes; hole++ {
		page.Rows = append(page.Rows, htmlRow{
			Hole:        hole + 1,
			Par:         course.ParOf(hole),
			ValA:        card.TeamVals[hole][0],
			ValB:        card.TeamVals[hole][1],
			Description: card.Holes[hole].Description,
		})
	}
	return htmlTmpl.Execute(w, page)
}
