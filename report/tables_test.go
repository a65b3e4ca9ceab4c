package report

import (
	"testing"
	"time"

	"fit-intervals/detect"
	"fit-intervals/trace"
)

func fixtureFiles() []detect.FileData {
	mk := func(start time.Time, base int) detect.FileData {
		iv := func(name string, offset, n, power int) detect.Interval {
			readings := make([]trace.PowerReading, n)
			for i := range readings {
				readings[i] = trace.PowerReading{
					Time:  start.Add(time.Duration(offset+i) * time.Second),
					Power: power,
				}
			}
			return detect.Interval{
				Name:     name,
				Start:    readings[0].Time,
				End:      readings[n-1].Time,
				MaxPower: power,
				AvgPower: float64(power),
				Readings: readings,
			}
		}
		return detect.FileData{
			StartTime: start,
			Intervals: []detect.Interval{
				iv("Interval 1", 60, 3, base),
				iv("Interval 2", 120, 3, base+20),
			},
		}
	}

	return []detect.FileData{
		mk(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), 300),
		mk(time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC), 310),
	}
}

func TestBuildSummaryTables(t *testing.T) {
	tables := Build(fixtureFiles(), false)

	if got := len(tables.MaxPower); got != 3 {
		t.Fatalf("max power table has %d rows, want 3", got)
	}
	if got := len(tables.MaxPower[0]); got != 3 {
		t.Fatalf("max power table has %d columns, want 3", got)
	}

	if tables.MaxPower[0][1] != "2026-03-01" || tables.MaxPower[0][2] != "2026-03-08" {
		t.Fatalf("unexpected date headers %q, %q", tables.MaxPower[0][1], tables.MaxPower[0][2])
	}
	if tables.MaxPower[1][0] != "Interval 1" || tables.MaxPower[2][0] != "Interval 2" {
		t.Fatalf("unexpected row labels %q, %q", tables.MaxPower[1][0], tables.MaxPower[2][0])
	}
	if tables.MaxPower[1][1] != "300" || tables.MaxPower[2][2] != "330" {
		t.Fatalf("unexpected max power cells %q, %q", tables.MaxPower[1][1], tables.MaxPower[2][2])
	}
	if tables.AvgPower[1][1] != "300.0" || tables.AvgPower[2][2] != "330.0" {
		t.Fatalf("unexpected avg power cells %q, %q", tables.AvgPower[1][1], tables.AvgPower[2][2])
	}
}

func TestBuildReadingsTable(t *testing.T) {
	tables := Build(fixtureFiles(), false)

	// Header row plus 3 readings per interval, two intervals.
	if got := len(tables.Readings); got != 7 {
		t.Fatalf("readings table has %d rows, want 7", got)
	}
	if got := len(tables.Readings[0]); got != 5 {
		t.Fatalf("readings table has %d columns, want 5", got)
	}
	if tables.Readings[0][1] != "2026-03-01 offset" || tables.Readings[0][2] != "2026-03-01 reading" {
		t.Fatalf("unexpected readings headers %q, %q", tables.Readings[0][1], tables.Readings[0][2])
	}
	if tables.Readings[1][0] != "1" || tables.Readings[1][1] != "60" || tables.Readings[1][2] != "300" {
		t.Fatalf("unexpected first reading row %v", tables.Readings[1])
	}
	// Second interval of the second file starts at offset 120.
	if tables.Readings[4][3] != "120" || tables.Readings[4][4] != "330" {
		t.Fatalf("unexpected second interval row %v", tables.Readings[4])
	}
}

func TestBuildReadingsTableWithSeparators(t *testing.T) {
	tables := Build(fixtureFiles(), true)

	if got := len(tables.Readings); got != 9 {
		t.Fatalf("readings table has %d rows, want 9", got)
	}
	if tables.Readings[4][1] != separator || tables.Readings[4][2] != separator {
		t.Fatalf("expected separator row, got %v", tables.Readings[4])
	}
	if tables.Readings[8][1] != separator {
		t.Fatalf("expected trailing separator row, got %v", tables.Readings[8])
	}
}

func TestBuildEmptyBatch(t *testing.T) {
	tables := Build(nil, true)
	if tables.MaxPower != nil || tables.AvgPower != nil || tables.Readings != nil {
		t.Fatalf("empty batch must produce empty tables, got %+v", tables)
	}
}
