// Package report renders detection results as cross-session comparison
// tables, delimited output, an HTML chart and a columnar export.
package report

import (
	"fmt"
	"time"

	"fit-intervals/detect"
)

const dateLayout = "2006-01-02"

// separator fills marker rows between intervals in the plain-text
// readings table.
const separator = "---"

// Tables holds the three comparison tables as rows of cells: peak power
// and average power per interval, plus the raw per-sample readings. One
// column (one column pair, for readings) per processed trace.
type Tables struct {
	MaxPower [][]string
	AvgPower [][]string
	Readings [][]string
}

// Build constructs the comparison tables for a batch of results. Every
// trace is assumed to follow the same plan, so the first trace's interval
// names label the rows. separators enables `---` marker rows between
// intervals in the readings table for plain-text output.
func Build(files []detect.FileData, separators bool) Tables {
	t := Tables{}
	if len(files) == 0 {
		return t
	}

	ref := files[0]
	rows := len(ref.Intervals) + 1
	cols := len(files) + 1
	t.MaxPower = blankTable(rows, cols)
	t.AvgPower = blankTable(rows, cols)

	for y, iv := range ref.Intervals {
		t.MaxPower[y+1][0] = iv.Name
		t.AvgPower[y+1][0] = iv.Name
	}
	for x, fd := range files {
		date := fd.StartTime.Format(dateLayout)
		t.MaxPower[0][x+1] = date
		t.AvgPower[0][x+1] = date
		for y, iv := range fd.Intervals {
			if y+1 >= rows {
				break
			}
			t.MaxPower[y+1][x+1] = fmt.Sprintf("%d", iv.MaxPower)
			t.AvgPower[y+1][x+1] = fmt.Sprintf("%.1f", iv.AvgPower)
		}
	}

	t.Readings = buildReadings(files, separators)
	return t
}

func buildReadings(files []detect.FileData, separators bool) [][]string {
	ref := files[0]
	rows := 1
	for _, iv := range ref.Intervals {
		rows += len(iv.Readings)
		if separators {
			rows++
		}
	}
	cols := len(files)*2 + 1

	table := blankTable(rows, cols)
	for ix, fd := range files {
		x0 := ix*2 + 1
		x1 := x0 + 1
		date := fd.StartTime.Format(dateLayout)
		table[0][x0] = date + " offset"
		table[0][x1] = date + " reading"

		y := 1
		for _, iv := range fd.Intervals {
			for i, r := range iv.Readings {
				if y >= rows {
					break
				}
				table[y][0] = fmt.Sprintf("%d", i+1)
				table[y][x0] = fmt.Sprintf("%d", int(r.Time.Sub(fd.StartTime)/time.Second))
				table[y][x1] = fmt.Sprintf("%d", r.Power)
				y++
			}
			if separators && y < rows {
				table[y][x0] = separator
				table[y][x1] = separator
				y++
			}
		}
	}
	return table
}

func blankTable(rows, cols int) [][]string {
	t := make([][]string, rows)
	for i := range t {
		t[i] = make([]string, cols)
	}
	return t
}
