package trace

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/tormoder/fit"
)

func TestReadFITKeepsOrderedPowerRecords(t *testing.T) {
	start := time.Date(2026, 2, 26, 23, 0, 0, 0, time.UTC)
	data := buildTestFIT(t, func(activity *fit.ActivityFile) {
		// Out of order on purpose; the reader must sort by timestamp.
		for _, offset := range []int{2, 0, 1} {
			rec := fit.NewRecordMsg()
			rec.Timestamp = start.Add(time.Duration(offset) * time.Second)
			rec.Power = uint16(200 + offset)
			activity.Records = append(activity.Records, rec)
		}

		noPower := fit.NewRecordMsg()
		noPower.Timestamp = start.Add(10 * time.Second)
		noPower.Power = math.MaxUint16
		activity.Records = append(activity.Records, noPower)
	})

	readings, err := ReadFIT(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFIT error: %v", err)
	}

	if len(readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(readings))
	}
	for i, want := range []int{200, 201, 202} {
		if readings[i].Power != want {
			t.Errorf("reading %d: power %d, want %d", i, readings[i].Power, want)
		}
		if i > 0 && readings[i].Time.Before(readings[i-1].Time) {
			t.Errorf("reading %d out of order", i)
		}
	}
}

func TestReadFITRejectsGarbage(t *testing.T) {
	if _, err := ReadFIT(bytes.NewReader([]byte("not a fit file"))); err == nil {
		t.Fatal("expected decode error")
	}
}

func buildTestFIT(t *testing.T, fill func(*fit.ActivityFile)) []byte {
	t.Helper()

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}

	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}
	fill(activity)

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}
