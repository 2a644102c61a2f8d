package roll

// SelectExplanations annotates segments with the description of each
// segment's first frame, in temporal order, stopping after max segments.
// Segments past the cap get no entry. max <= 0 disables explanations.
func SelectExplanations(frames []FrameClassification, segments []Segment, max int) map[int]string {
	if max <= 0 || len(segments) == 0 {
		return nil
	}
	out := make(map[int]string, max)
	for i, seg := range segments {
		if i >= max {
			break
		}
		out[i] = frames[seg.StartIndex].Description
	}
	return out
}
