package console

import (
	"bytes"
	"testing"

	"github.com/Domenick1991/airbooking-console/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestTSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(FormatTSV).Render(&buf, &repository.Result{
		Columns: []string{"flightnum", "origin"},
		Rows:    [][]string{{"AA100", "Riverside"}, {"AA200", "NULL"}},
	})
	assert.Equal(t, "flightnum\torigin\t\nAA100\tRiverside\t\nAA200\tNULL\t\n", buf.String())
}

func TestRenderer_EmptyPrintsNothing(t *testing.T) {
	for _, format := range []string{FormatTSV, FormatTable} {
		var buf bytes.Buffer
		NewRenderer(format).Render(&buf, &repository.Result{Columns: []string{"a"}})
		assert.Empty(t, buf.String(), format)
	}
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(FormatTable).Render(&buf, &repository.Result{
		Columns: []string{"airid", "name"},
		Rows:    [][]string{{"1", "United"}},
	})
	out := buf.String()
	assert.Contains(t, out, "AIRID")
	assert.Contains(t, out, "United")
}
