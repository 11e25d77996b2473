// Package report renders pipeline state as terminal tables: segments,
// room clusters, assignment and marker summaries, and ingest run reports.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pagetrace/internal/roomgraph"
	"pagetrace/internal/segment"
	"pagetrace/internal/store"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// Segments renders the segment relation.
func Segments(segments []segment.Segment) string {
	if len(segments) == 0 {
		return "no segments (run `pagetrace segment` after ingest)"
	}
	rows := make([][]string, 0, len(segments))
	for _, seg := range segments {
		rows = append(rows, []string{
			strconv.FormatInt(seg.ID, 10),
			seg.Location,
			formatShoot(seg.Shoot),
			seg.Marker,
			fmt.Sprintf("%s .. %s", seg.StartFileID, seg.EndFileID),
			strconv.Itoa(seg.FileCount),
			fmt.Sprintf("%.2f", seg.Confidence),
			string(seg.Reason),
		})
	}
	return renderTable(
		[]string{"SEG", "LOCATION", "SHOOT", "MARKER", "RANGE", "FILES", "CONF", "ENDED BY"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

// Clusters renders the similarity-graph result.
func Clusters(res roomgraph.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d pages, %d pairs scored, %d edges, %d clusters\n",
		res.Nodes, res.Pairs, res.Edges, len(res.Clusters))

	rows := make([][]string, 0, len(res.Clusters))
	for i, c := range res.Clusters {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(c.Size()),
			formatIDRanges(c.PageIDs),
		})
	}
	b.WriteString(renderTable(
		[]string{"CLUSTER", "PAGES", "PAGE IDS"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft},
	))
	return b.String()
}

// Assignments renders the per-(location, shoot) page counts.
func Assignments(groups []store.AssignmentGroup) string {
	if len(groups) == 0 {
		return "no assignments"
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		loc := g.Location
		if loc == "" {
			loc = segment.UnknownLocation
		}
		rows = append(rows, []string{loc, formatShoot(g.Shoot), strconv.Itoa(g.Files)})
	}
	return renderTable(
		[]string{"LOCATION", "SHOOT", "FILES"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}

// Markers renders the most frequent detected markers.
func Markers(counts []store.MarkerCount) string {
	if len(counts) == 0 {
		return "no markers detected"
	}
	rows := make([][]string, 0, len(counts))
	for _, mc := range counts {
		rows = append(rows, []string{mc.Marker, strconv.Itoa(mc.Count)})
	}
	return renderTable(
		[]string{"MARKER", "FILES"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

// Run renders an ingest run summary, including its failure counts.
func Run(run store.RunRecord) string {
	rows := [][]string{
		{"run id", run.RunID},
		{"finished", run.FinishedAt.Local().Format(time.RFC3339)},
		{"elapsed", run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()},
		{"files ingested", strconv.Itoa(run.Files)},
		{"malformed filenames", strconv.Itoa(run.Unmatched)},
		{"failed pages", strconv.Itoa(run.Failed)},
		{"slates", strconv.Itoa(run.Slates)},
		{"no marker", strconv.Itoa(run.NoMarker)},
		{"no features", strconv.Itoa(run.NoFeatures)},
	}
	return renderTable([]string{"LAST RUN", ""}, rows, []columnAlignment{alignLeft, alignLeft})
}

func formatShoot(shoot *int) string {
	if shoot == nil {
		return "-"
	}
	return strconv.Itoa(*shoot)
}

// formatIDRanges compacts a sorted ID list into range notation
// ("1-5, 9, 12-13").
func formatIDRanges(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	var parts []string
	start, prev := ids[0], ids[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.FormatInt(start, 10))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, id := range ids[1:] {
		if id == prev+1 {
			prev = id
			continue
		}
		flush()
		start, prev = id, id
	}
	flush()
	return strings.Join(parts, ", ")
}
