package transcript

import (
	"fmt"
	"strings"
)

// MalformedTranscriptError reports an adapter that emitted segments out of
// recording order. It is a correctness guard against upstream bugs, not a
// silent fixer.
type MalformedTranscriptError struct {
	Index    int
	Previous float64
	Current  float64
}

func (e *MalformedTranscriptError) Error() string {
	return fmt.Sprintf("malformed transcript: segment %d starts at %.3fs before previous segment start %.3fs",
		e.Index, e.Current, e.Previous)
}

// Normalize maps raw adapter segments onto the canonical sequence: segment
// text is trimmed, segments whose trimmed text is empty are dropped, and
// segment starts must be non-decreasing across the sequence.
func Normalize(segments []Segment) ([]Segment, error) {
	out := make([]Segment, 0, len(segments))
	prev := -1.0

	for i, seg := range segments {
		if seg.Start < prev {
			return nil, &MalformedTranscriptError{Index: i, Previous: prev, Current: seg.Start}
		}
		prev = seg.Start

		seg.Text = strings.TrimSpace(seg.Text)
		if seg.Text == "" {
			continue
		}
		out = append(out, seg)
	}

	return out, nil
}
