// Package session models a planned workout as an ordered list of typed
// segments and builds that list from the two supported plan sources: the
// compact repetition grammar and PiCave session definition files.
package session

import "errors"

// ErrInvalidPlan marks a malformed or logically impossible session plan.
// Plan errors surface before any trace is processed.
var ErrInvalidPlan = errors.New("invalid session plan")

// SegmentType classifies a planned segment.
type SegmentType int

const (
	// Effort is a segment where the rider sustains high power.
	Effort SegmentType = iota
	// Recovery is a low-power segment whose exact boundary may need
	// detection.
	Recovery
)

func (t SegmentType) String() string {
	if t == Effort {
		return "Effort"
	}
	return "Recovery"
}

// DefaultNameLimit is the display width beyond which merged segment names
// are truncated with an ellipsis marker.
const DefaultNameLimit = 28

// Subpart records one pre-merge constituent of a segment. An unmerged
// segment carries exactly one subpart equal to its own duration and name.
type Subpart struct {
	Seconds int
	Name    string
}

// SegmentDefinition is one planned block of the workout. Auto marks a
// Recovery whose duration is unknown and must be detected from the trace;
// Seconds is zero in that case and must not be read.
type SegmentDefinition struct {
	Seconds  int
	Auto     bool
	Type     SegmentType
	Name     string
	Subparts []Subpart
}

// SessionDefinition is the ordered plan of segments for one workout.
// Appending a segment whose type matches the current last entry merges the
// two, so no two adjacent segments ever share a type. The definition is
// built once by a plan parser and read-only afterwards.
type SessionDefinition struct {
	Segments []SegmentDefinition

	// NameLimit overrides the merged-name display width. Zero means
	// DefaultNameLimit.
	NameLimit int
}

// Append inserts a fixed-duration segment, merging it into the last entry
// when the types match.
func (s *SessionDefinition) Append(seconds int, typ SegmentType, name string) {
	s.append(SegmentDefinition{
		Seconds:  seconds,
		Type:     typ,
		Name:     name,
		Subparts: []Subpart{{Seconds: seconds, Name: name}},
	})
}

// AppendAuto inserts a Recovery segment of unknown duration.
func (s *SessionDefinition) AppendAuto(name string) {
	s.append(SegmentDefinition{
		Auto:     true,
		Type:     Recovery,
		Name:     name,
		Subparts: []Subpart{{Name: name}},
	})
}

func (s *SessionDefinition) append(seg SegmentDefinition) {
	if len(s.Segments) == 0 || s.Segments[len(s.Segments)-1].Type != seg.Type {
		s.Segments = append(s.Segments, seg)
		return
	}

	last := &s.Segments[len(s.Segments)-1]
	if last.Auto || seg.Auto {
		// A merged block containing a stretch of unknown length has an
		// unknown total length. AUTO is never combined arithmetically.
		last.Auto = true
		last.Seconds = 0
	} else {
		last.Seconds += seg.Seconds
	}
	last.Name = truncateName(last.Name+"/"+seg.Name, s.nameLimit())
	last.Subparts = append(last.Subparts, seg.Subparts...)
}

// LastType reports the type of the most recently appended segment. The
// second return is false while the plan is empty.
func (s *SessionDefinition) LastType() (SegmentType, bool) {
	if len(s.Segments) == 0 {
		return 0, false
	}
	return s.Segments[len(s.Segments)-1].Type, true
}

func (s *SessionDefinition) nameLimit() int {
	if s.NameLimit > 0 {
		return s.NameLimit
	}
	return DefaultNameLimit
}

func truncateName(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	if limit <= 3 {
		return name[:limit]
	}
	return name[:limit-3] + "..."
}
