package trace

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/tormoder/fit"
)

// ReadFIT decodes a FIT activity stream into the power series the
// detection engine consumes: record messages carrying a valid power value
// and timestamp, ordered by time ascending.
func ReadFIT(r io.Reader) ([]PowerReading, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}

	readings := make([]PowerReading, 0, len(activity.Records))
	for _, rec := range activity.Records {
		if rec == nil || rec.Power == math.MaxUint16 {
			continue
		}
		if rec.Timestamp.IsZero() || fit.IsBaseTime(rec.Timestamp) {
			continue
		}
		readings = append(readings, PowerReading{Time: rec.Timestamp, Power: int(rec.Power)})
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Time.Before(readings[j].Time)
	})
	return readings, nil
}

// ReadFITFile decodes one recorded session from a .fit file on disk.
func ReadFITFile(path string) ([]PowerReading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	readings, err := ReadFIT(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return readings, nil
}
