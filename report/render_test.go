package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestRenderDelimitedCSV(t *testing.T) {
	tables := Build(fixtureFiles(), false)

	var buf bytes.Buffer
	if err := RenderDelimited(&buf, tables, ','); err != nil {
		t.Fatalf("RenderDelimited error: %v", err)
	}

	r := csv.NewReader(strings.NewReader(buf.String()))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-read CSV: %v", err)
	}
	// Three title rows, two 3-row summary tables, one 7-row readings table.
	if got := len(rows); got != 16 {
		t.Fatalf("expected 16 CSV rows, got %d", got)
	}
	if rows[0][0] != "Maximum power" {
		t.Fatalf("unexpected first title row %v", rows[0])
	}
	if rows[2][0] != "Interval 1" || rows[2][1] != "300" {
		t.Fatalf("unexpected max power row %v", rows[2])
	}
}

func TestRenderDelimitedTSV(t *testing.T) {
	tables := Build(fixtureFiles(), false)

	var buf bytes.Buffer
	if err := RenderDelimited(&buf, tables, '\t'); err != nil {
		t.Fatalf("RenderDelimited error: %v", err)
	}
	if !strings.Contains(buf.String(), "Interval 1\t300\t310") {
		t.Fatalf("TSV output missing tab-delimited row:\n%s", buf.String())
	}
}

func TestRenderTextIncludesTitlesAndCells(t *testing.T) {
	tables := Build(fixtureFiles(), true)

	var buf bytes.Buffer
	if err := RenderText(&buf, tables); err != nil {
		t.Fatalf("RenderText error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Maximum power", "Average power", "Power readings", "Interval 1", "2026-03-08", "330.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}
