package session

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	recoveryName     = "Recovery"
	effortNameFormat = "Interval %d"
)

// ParseDuration converts a compact duration spec such as "30s", "1m" or
// "2m 30s" into whole seconds.
func ParseDuration(spec string) (int, error) {
	rest := strings.TrimSpace(spec)
	if rest == "" {
		return 0, fmt.Errorf("empty duration")
	}

	total := 0
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 {
			return 0, fmt.Errorf("duration %q: expected a number", spec)
		}
		if i >= len(rest) {
			return 0, fmt.Errorf("duration %q: missing unit", spec)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, fmt.Errorf("duration %q: %w", spec, err)
		}
		switch rest[i] {
		case 'm':
			total += n * 60
		case 's':
			total += n
		default:
			return 0, fmt.Errorf("duration %q: unknown unit %q", spec, string(rest[i]))
		}
		rest = strings.TrimSpace(rest[i+1:])
	}
	return total, nil
}

// ParseReps builds a session from repetition specs such as "20s", "3x1m"
// or "-30s". A leading '-' marks a Recovery block; everything else is an
// Effort. When the plan does not yet start with a Recovery, an automatic
// Recovery placeholder of unknown duration is inserted first, so detection
// always begins by skipping to the first effort. Back-to-back efforts with
// no recovery between them merge into one block whose subparts keep the
// original rep identities.
func ParseReps(specs []string) (*SessionDefinition, error) {
	defn := &SessionDefinition{}
	effortCount := 0

	for _, raw := range specs {
		spec := strings.TrimSpace(raw)
		typ := Effort
		if strings.HasPrefix(spec, "-") {
			spec = spec[1:]
			typ = Recovery
		}

		count := 1
		durSpec := spec
		if prefix, rest, ok := strings.Cut(spec, "x"); ok {
			n, err := strconv.Atoi(prefix)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: rep %q: invalid repetition count", ErrInvalidPlan, raw)
			}
			count = n
			durSpec = rest
		}

		seconds, err := ParseDuration(durSpec)
		if err != nil {
			return nil, fmt.Errorf("%w: rep %q: %v", ErrInvalidPlan, raw, err)
		}
		if seconds <= 0 {
			return nil, fmt.Errorf("%w: rep %q: duration must be positive", ErrInvalidPlan, raw)
		}

		for rep := 0; rep < count; rep++ {
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
	}
	return defn, nil
}
