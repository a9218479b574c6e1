package modeltime

// Era is one of the three successive year ranges of the schedule.
type Era struct {
	Index int `json:"index"`
	From  int `json:"from"`
	To    int `json:"to"`
	Step  int `json:"step"`
}

// Span returns the number of calendar years the era covers.
func (e Era) Span() int {
	return e.To - e.From
}

// EraSummary is an era together with its period counts.
type EraSummary struct {
	Era

	// Full is the number of whole steps (numberOfPeriodsN)
	Full int `json:"full"`

	// WithRemainder is Full plus one when a remainder period exists (numberOfPeriodsNa)
	WithRemainder int `json:"with_remainder"`

	// Remainder is the length of the remainder period, 0 if none
	Remainder int `json:"remainder"`
}

// Uneven reports whether the era needed a remainder period.
func (s EraSummary) Uneven() bool {
	return s.Remainder != 0
}

// SegmentKind classifies a run of periods.
type SegmentKind int

const (
	// SegmentBase is the single period representing the start year
	SegmentBase SegmentKind = iota
	// SegmentFull is a run of nominal-step periods
	SegmentFull
	// SegmentRemainder is the short period absorbing an era's leftover years
	SegmentRemainder
)

// String returns the kind name
func (k SegmentKind) String() string {
	switch k {
	case SegmentBase:
		return "base"
	case SegmentFull:
		return "full"
	case SegmentRemainder:
		return "remainder"
	default:
		return "unknown"
	}
}

// Segment is a run of Count consecutive periods sharing one step length.
type Segment struct {
	Kind  SegmentKind
	Era   int
	Count int
	Step  int
}

// summarize computes the period counts of an era.
func summarize(e Era) EraSummary {
	s := EraSummary{
		Era:       e,
		Full:      e.Span() / e.Step,
		Remainder: e.Span() % e.Step,
	}
	s.WithRemainder = s.Full
	if s.Remainder != 0 {
		s.WithRemainder++
	}
	return s
}

// segments lays out the schedule as an ordered list of descriptors:
// the base period, then per era its full steps followed by its remainder.
// Empty runs are omitted.
func segments(baseStep int, eras []EraSummary) []Segment {
	out := []Segment{{Kind: SegmentBase, Era: 1, Count: 1, Step: baseStep}}
	for _, e := range eras {
		if e.Full > 0 {
			out = append(out, Segment{Kind: SegmentFull, Era: e.Index, Count: e.Full, Step: e.Step})
		}
		if e.Remainder != 0 {
			out = append(out, Segment{Kind: SegmentRemainder, Era: e.Index, Count: 1, Step: e.Remainder})
		}
	}
	return out
}

// periodCount returns the total number of periods the segments describe.
func periodCount(segs []Segment) int {
	n := 0
	for _, s := range segs {
		n += s.Count
	}
	return n
}

// expand turns segments into the per-period schedule, assigning years by
// walking forward from startYear. The base period does not advance the year.
func expand(startYear int, segs []Segment) []Period {
	periods := make([]Period, 0, periodCount(segs))
	year := startYear
	for _, s := range segs {
		for j := 0; j < s.Count; j++ {
			if s.Kind != SegmentBase {
				year += s.Step
			}
			periods = append(periods, Period{
				Index:     len(periods),
				Year:      year,
				Step:      s.Step,
				Era:       s.Era,
				Remainder: s.Kind == SegmentRemainder,
			})
		}
	}
	return periods
}
