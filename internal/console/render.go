package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/airbooking-console/internal/repository"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	FormatTSV   = "tsv"
	FormatTable = "table"
)

// Renderer prints a query result. An empty result prints nothing.
type Renderer interface {
	Render(w io.Writer, res *repository.Result)
}

func NewRenderer(format string) Renderer {
	if format == FormatTable {
		return tableRenderer{}
	}
	return tsvRenderer{}
}

type tsvRenderer struct{}

func (tsvRenderer) Render(w io.Writer, res *repository.Result) {
	if res == nil || len(res.Rows) == 0 {
		return
	}
	fmt.Fprintln(w, tsvLine(res.Columns))
	for _, row := range res.Rows {
		fmt.Fprintln(w, tsvLine(row))
	}
}

func tsvLine(values []string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(v)
		b.WriteByte('\t')
	}
	return b.String()
}

type tableRenderer struct{}

func (tableRenderer) Render(w io.Writer, res *repository.Result) {
	if res == nil || len(res.Rows) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(toRow(res.Columns))
	for _, row := range res.Rows {
		t.AppendRow(toRow(row))
	}
	t.Render()
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
