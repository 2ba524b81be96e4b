package cleaner

import "fmt"

// Stats contains the counters for one cleaning run. Counters only ever
// increase during a pass; the struct is returned by value from Run, so
// repeated runs never share state.
type Stats struct {
	TotalLines        int `json:"total_lines"`
	ValidEntries      int `json:"valid_entries"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	TooLongRemoved    int `json:"too_long_removed"`
	MalformedRemoved  int `json:"malformed_removed"`
	IgnoredKept       int `json:"ignored_kept"`
	AllowedRemoved    int `json:"allowed_removed"`
	PatternRemoved    int `json:"pattern_removed"`
	FinalEntries      int `json:"final_entries"`
}

// count increments the counter matching a decision reason. Kept
// entries are tallied through FinalEntries at the end of the run;
// empty commands count as pattern removals.
func (s *Stats) count(r Reason) {
	switch r {
	case ReasonEmpty, ReasonRepetitive:
		s.PatternRemoved++
	case ReasonAllowRule:
		s.AllowedRemoved++
	case ReasonIgnoreRule:
		s.IgnoredKept++
	case ReasonTooLong:
		s.TooLongRemoved++
	case ReasonDuplicate:
		s.DuplicatesRemoved++
	case ReasonMalformed:
		s.MalformedRemoved++
	}
}

// ReductionPercent returns how much of the input was removed, as a
// percentage of total physical lines. Zero-line inputs report 0.
func (s Stats) ReductionPercent() float64 {
	if s.TotalLines == 0 {
		return 0
	}
	return float64(s.TotalLines-s.FinalEntries) / float64(s.TotalLines) * 100
}

// String returns a human-readable multi-line summary of the run.
func (s Stats) String() string {
	return fmt.Sprintf(
		"Total lines processed:     %d\n"+
			"Valid entries found:       %d\n"+
			"Kept by ignore rules:      %d\n"+
			"Removed by allow rules:    %d\n"+
			"Duplicates removed:        %d\n"+
			"Too long commands removed: %d\n"+
			"Pattern/malformed removed: %d\n"+
			"Final entries kept:        %d\n"+
			"Size reduction:            %.1f%%",
		s.TotalLines,
		s.ValidEntries,
		s.IgnoredKept,
		s.AllowedRemoved,
		s.DuplicatesRemoved,
		s.TooLongRemoved,
		s.PatternRemoved+s.MalformedRemoved,
		s.FinalEntries,
		s.ReductionPercent(),
	)
}
