package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"dvdenrich/internal/enrich"
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
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
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

// renderSummary prints run totals followed by every row whose director was
// found, written or not.
func renderSummary(summary enrich.Summary) string {
	resolvedLabel := "Updated"
	if summary.DryRun {
		resolvedLabel = "Would update"
	}
	totals := [][]string{
		{"Fetched", strconv.Itoa(summary.Fetched)},
		{"Processed", strconv.Itoa(summary.Processed())},
		{"Skipped", strconv.Itoa(summary.Skipped)},
		{"Not found", strconv.Itoa(summary.NotFound)},
		{resolvedLabel, strconv.Itoa(resolvedCount(summary))},
		{"Update failed", strconv.Itoa(summary.Failed)},
	}
	out := renderTable([]string{"Rows", "Count"}, totals, []columnAlignment{alignLeft, alignRight})

	var changes [][]string
	for _, result := range summary.Results {
		if result.Director == "" {
			continue
		}
		changes = append(changes, []string{
			strconv.FormatInt(result.Key, 10),
			result.Title,
			result.Previous,
			result.Director,
			string(result.Outcome),
		})
	}
	if len(changes) > 0 {
		out += "\n" + renderTable(
			[]string{"Key", "Title", "Previous", "Director", "Outcome"},
			changes,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
		)
	}
	return out
}

func resolvedCount(summary enrich.Summary) int {
	if summary.DryRun {
		return summary.Resolved
	}
	return summary.Updated
}
