package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

func sections(t Tables) []struct {
	Title string
	Data  [][]string
} {
	return []struct {
		Title string
		Data  [][]string
	}{
		{"Maximum power", t.MaxPower},
		{"Average power", t.AvgPower},
		{"Power readings", t.Readings},
	}
}

// RenderText writes the three tables as titled text tables.
func RenderText(w io.Writer, t Tables) error {
	for _, sec := range sections(t) {
		fmt.Fprintln(w, sec.Title)
		if err := renderTable(w, sec.Data); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func renderTable(w io.Writer, data [][]string) error {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	_, err = fmt.Fprintln(w, str)
	return err
}

// RenderDelimited writes the three tables with the given delimiter, comma
// for CSV or tab for TSV, each preceded by its title row.
func RenderDelimited(w io.Writer, t Tables, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	for _, sec := range sections(t) {
		if err := cw.Write([]string{sec.Title}); err != nil {
			return fmt.Errorf("write delimited table: %w", err)
		}
		if err := cw.WriteAll(sec.Data); err != nil {
			return fmt.Errorf("write delimited table: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
