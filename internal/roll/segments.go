package roll

import (
	"fmt"
	"math"
)

// BuildSegments merges contiguous frames sharing a role into timecoded
// segments. Segments partition [0, len(frames)) exactly: each segment's
// EndIndex is the next segment's StartIndex. An empty frame sequence yields
// an empty segment list.
func BuildSegments(frames []FrameClassification, fps float64) ([]Segment, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidInput, fps)
	}
	if len(frames) == 0 {
		return nil, nil
	}

	var segments []Segment
	start := 0
	for i := 1; i <= len(frames); i++ {
		if i < len(frames) && frames[i].Role == frames[start].Role {
			continue
		}
		segments = append(segments, closeSegment(frames, start, i, fps))
		start = i
	}
	return segments, nil
}

func closeSegment(frames []FrameClassification, start, end int, fps float64) Segment {
	var sumA, sumB float64
	for _, f := range frames[start:end] {
		sumA += f.ARollRatio
		sumB += f.BRollRatio
	}
	n := float64(end - start)
	return Segment{
		StartIndex: start,
		EndIndex:   end,
		Start:      Timecode(float64(start) / fps),
		End:        Timecode(float64(end) / fps),
		Role:       frames[start].Role,
		ARollRatio: round3(sumA / n),
		BRollRatio: round3(sumB / n),
	}
}

// Timecode renders seconds as MM:SS. Sub-second remainders are truncated, not
// rounded, so adjacent segment boundaries stay consistent and non-overlapping.
func Timecode(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
