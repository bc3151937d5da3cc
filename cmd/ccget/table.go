package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable prints a rounded-border table. Columns named in rightAligned
// get right-aligned cells with left-aligned headers.
func renderTable(w io.Writer, headers []string, rows [][]string, rightAligned ...string) {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleRounded)

	headerRow := make(table.Row, len(headers))
	for i, header := range headers {
		headerRow[i] = header
	}
	writer.AppendHeader(headerRow)

	for _, row := range rows {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			tableRow[i] = cell
		}
		writer.AppendRow(tableRow)
	}

	if len(rightAligned) > 0 {
		configs := make([]table.ColumnConfig, 0, len(rightAligned))
		for _, name := range rightAligned {
			configs = append(configs, table.ColumnConfig{
				Name:        name,
				Align:       text.AlignRight,
				AlignHeader: text.AlignLeft,
			})
		}
		writer.SetColumnConfigs(configs)
	}

	writer.Render()
}
