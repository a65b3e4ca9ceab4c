// Package detect locates a session plan's segments inside a recorded power
// trace and extracts per-interval statistics. One run walks the plan's
// segment list strictly in order: recovery segments advance the trace
// cursor, effort segments are located with a best-fit window search and
// reported, and consumed samples are never revisited.
package detect

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"fit-intervals/session"
	"fit-intervals/trace"
)

// Config carries the detection tuning values. The engine receives plain
// values; flag handling lives with the caller.
type Config struct {
	// EffortPowerThreshold is the minimum watts every sample of a
	// detection window must reach for the window to count as an effort.
	EffortPowerThreshold int

	// EffortDetectionWindow is the number of consecutive samples that must
	// clear the threshold to mark an effort boundary. It doubles as the
	// look-back margin left unconsumed before a fixed recovery boundary.
	EffortDetectionWindow int

	// RecoveryDurationSlack widens the effort search range by this many
	// samples to tolerate early or late starts.
	RecoveryDurationSlack int

	// LongestRecoveryBound caps how many samples the automatic
	// recovery-boundary scan may examine.
	LongestRecoveryBound int

	// MergeIntervals reports back-to-back efforts as one merged interval.
	// When false, merged efforts are split back into their original reps.
	MergeIntervals bool
}

// DefaultConfig returns the tuning values the command-line tool defaults
// to.
func DefaultConfig() Config {
	return Config{
		EffortPowerThreshold:  250,
		EffortDetectionWindow: 10,
		RecoveryDurationSlack: 10,
		LongestRecoveryBound:  600,
		MergeIntervals:        true,
	}
}

// Interval is one detected effort, or one rep of a split merged effort,
// with its statistics and the raw readings it covers. Never mutated after
// creation.
type Interval struct {
	Name     string
	Start    time.Time
	End      time.Time
	MaxPower int
	AvgPower float64
	Readings []trace.PowerReading
}

// FileData holds the detection result for one trace.
type FileData struct {
	StartTime time.Time
	Intervals []Interval
}

// TraceSource names one recorded session's power series for batch
// processing.
type TraceSource struct {
	Name     string
	Readings []trace.PowerReading
}

// Detector runs a session plan against recorded power traces.
type Detector struct {
	cfg Config
	log *zap.SugaredLogger
}

// New returns a Detector. A nil logger disables logging.
func New(cfg Config, logger *zap.SugaredLogger) *Detector {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Detector{cfg: cfg, log: logger}
}

// Run walks the plan in order over one trace, consuming buf as each
// segment is resolved, and returns the detected intervals. The buffer must
// be exclusively owned by this call.
func (d *Detector) Run(defn *session.SessionDefinition, buf *trace.Buffer) (FileData, error) {
	out := FileData{StartTime: buf.TimeAt(0)}

	for i := range defn.Segments {
		seg := defn.Segments[i]
		d.log.Debugw("locating segment",
			"segment", seg.Name,
			"type", seg.Type.String(),
			"consumed", buf.Consumed(),
		)
		switch seg.Type {
		case session.Recovery:
			if err := d.skipRecovery(seg, buf); err != nil {
				return FileData{}, fmt.Errorf("segment %q: %w", seg.Name, err)
			}
		case session.Effort:
			intervals, err := d.locateEffort(seg, buf)
			if err != nil {
				return FileData{}, fmt.Errorf("segment %q: %w", seg.Name, err)
			}
			out.Intervals = append(out.Intervals, intervals...)
		}
	}
	return out, nil
}

// RunBatch processes each trace independently. A trace whose plan cannot
// be located is logged and skipped; the batch fails only when every trace
// failed.
func (d *Detector) RunBatch(defn *session.SessionDefinition, sources []TraceSource) ([]FileData, error) {
	results := make([]FileData, 0, len(sources))
	for _, src := range sources {
		fd, err := d.Run(defn, trace.NewBuffer(src.Readings))
		if err != nil {
			d.log.Warnw("skipping trace", "trace", src.Name, "error", err)
			continue
		}
		results = append(results, fd)
	}
	if len(sources) > 0 && len(results) == 0 {
		return nil, ErrNoUsableTraces
	}
	return results, nil
}

// skipRecovery advances the cursor to just before the end of a recovery
// segment, leaving EffortDetectionWindow samples of look-back so the
// effort search can still see a slightly early start.
func (d *Detector) skipRecovery(seg session.SegmentDefinition, buf *trace.Buffer) error {
	if seg.Auto {
		boundary, err := d.findEffortBoundary(buf)
		if err != nil {
			return err
		}
		buf.Advance(boundary)
		return nil
	}

	skip := seg.Seconds - d.cfg.EffortDetectionWindow
	if skip < 0 {
		skip = 0
	}
	buf.Advance(skip)
	return nil
}

// findEffortBoundary scans forward for the first offset where every sample
// of the detection window clears the effort power threshold. The
// every-sample test keeps a momentary spike from triggering a false
// boundary.
func (d *Detector) findEffortBoundary(buf *trace.Buffer) (int, error) {
	if buf.Len() == 0 {
		return 0, ErrTraceExhausted
	}

	bound := buf.Len()
	if d.cfg.LongestRecoveryBound < bound {
		bound = d.cfg.LongestRecoveryBound
	}
	for s := 0; s < bound; s++ {
		if d.sustainedEffortAt(buf, s) {
			d.log.Debugw("effort boundary found", "offset", s)
			return s, nil
		}
	}
	return 0, ErrBoundaryNotFound
}

func (d *Detector) sustainedEffortAt(buf *trace.Buffer, start int) bool {
	for i := start; i < start+d.cfg.EffortDetectionWindow; i++ {
		// Out-of-range lookups read as 0 W and fail the threshold, so a
		// window can never match past the end of the trace.
		if buf.PowerAt(i) < d.cfg.EffortPowerThreshold {
			return false
		}
	}
	return true
}

// locateEffort finds the best-fit window for an effort segment, emits its
// interval(s), and consumes the entire window regardless of split or
// merged reporting.
func (d *Detector) locateEffort(seg session.SegmentDefinition, buf *trace.Buffer) ([]Interval, error) {
	if buf.Len() == 0 {
		return nil, ErrTraceExhausted
	}

	start, total := d.bestWindow(buf, seg.Seconds)
	d.log.Debugw("effort window located",
		"segment", seg.Name,
		"offset", start,
		"length", seg.Seconds,
		"total_power", total,
	)

	intervals := d.extract(seg, buf, start)
	buf.Advance(start + seg.Seconds)
	return intervals, nil
}

// bestWindow returns the start offset whose fixed-length window
// accumulates the most power within the search range. The comparison is
// strict, so exact ties keep the earliest offset.
func (d *Detector) bestWindow(buf *trace.Buffer, length int) (int, int64) {
	searchRange := d.cfg.EffortDetectionWindow + d.cfg.RecoveryDurationSlack
	if searchRange < 1 {
		searchRange = 1
	}

	best := 0
	bestTotal := int64(-1)
	for s := 0; s < searchRange; s++ {
		total := d.windowTotal(buf, s, length)
		if total > bestTotal {
			best, bestTotal = s, total
		}
	}
	return best, bestTotal
}

func (d *Detector) windowTotal(buf *trace.Buffer, start, length int) int64 {
	var total int64
	for i := start; i < start+length; i++ {
		total += int64(buf.PowerAt(i))
	}
	return total
}

// extract emits the intervals for a located window. Merged reporting emits
// one interval covering the whole window; split reporting walks the
// segment's subparts, which exactly tile the window.
func (d *Detector) extract(seg session.SegmentDefinition, buf *trace.Buffer, start int) []Interval {
	if d.cfg.MergeIntervals || len(seg.Subparts) <= 1 {
		return []Interval{d.makeInterval(seg.Name, buf, start, seg.Seconds)}
	}

	intervals := make([]Interval, 0, len(seg.Subparts))
	offset := start
	for _, part := range seg.Subparts {
		intervals = append(intervals, d.makeInterval(part.Name, buf, offset, part.Seconds))
		offset += part.Seconds
	}
	return intervals
}

// makeInterval snapshots the readings in [start, start+length) with their
// statistics. The average divides by the planned length; readings are
// clamped to what the buffer still holds.
func (d *Detector) makeInterval(name string, buf *trace.Buffer, start, length int) Interval {
	readings := make([]trace.PowerReading, 0, length)
	maxPower := 0
	var total int64
	for i := start; i < start+length; i++ {
		if i < buf.Len() {
			readings = append(readings, buf.ReadingAt(i))
		}
		p := buf.PowerAt(i)
		total += int64(p)
		if p > maxPower {
			maxPower = p
		}
	}

	iv := Interval{
		Name:     name,
		MaxPower: maxPower,
		AvgPower: float64(total) / float64(length),
		Readings: readings,
	}
	if len(readings) > 0 {
		iv.Start = readings[0].Time
		iv.End = readings[len(readings)-1].Time
	}
	return iv
}
