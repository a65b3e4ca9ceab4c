package session

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// picaveStep mirrors one entry of a PiCave session definition file.
type picaveStep struct {
	Type     string `json:"type"`
	Effort   string `json:"effort"`
	Duration string `json:"duration"`
}

// ParsePiCave builds a session from a PiCave session definition. Steps
// typed "MAX" are efforts; "%FTP" steps classify as Effort when their
// effort percentage is at or above effortThreshold and as Recovery below
// it.
func ParsePiCave(data []byte, effortThreshold int) (*SessionDefinition, error) {
	var steps []picaveStep
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("%w: parse PiCave session: %v", ErrInvalidPlan, err)
	}

	defn := &SessionDefinition{}
	effortCount := 0
	for i, step := range steps {
		var typ SegmentType
		switch step.Type {
		case "MAX":
			typ = Effort
		case "%FTP":
			pct, err := parseEffortPct(step.Effort)
			if err != nil {
				return nil, fmt.Errorf("%w: step %d: %v", ErrInvalidPlan, i+1, err)
			}
			if pct >= effortThreshold {
				typ = Effort
			} else {
				typ = Recovery
			}
		default:
			return nil, fmt.Errorf("%w: step %d: unknown step type %q", ErrInvalidPlan, i+1, step.Type)
		}

		seconds, err := ParseDuration(step.Duration)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrInvalidPlan, i+1, err)
		}
		if seconds <= 0 {
			return nil, fmt.Errorf("%w: step %d: duration must be positive", ErrInvalidPlan, i+1)
		}

		if typ == Recovery {
			defn.Append(seconds, Recovery, recoveryName)
			continue
		}
		if _, ok := defn.LastType(); !ok {
			defn.AppendAuto(recoveryName)
		}
		effortCount++
		defn.Append(seconds, Effort, fmt.Sprintf(effortNameFormat, effortCount))
	}
	return defn, nil
}

// ParsePiCaveFile reads and parses a PiCave session definition file.
func ParsePiCaveFile(path string, effortThreshold int) (*SessionDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read PiCave session: %w", err)
	}
	return ParsePiCave(data, effortThreshold)
}

func parseEffortPct(spec string) (int, error) {
	v, ok := strings.CutSuffix(spec, "%")
	if !ok {
		return 0, fmt.Errorf("effort %q: expected a percentage", spec)
	}
	pct, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("effort %q: %w", spec, err)
	}
	return pct, nil
}
