package roll

import "fmt"

// Request carries the inputs for one analysis run. Frames must already be in
// playback order; the engine never re-sorts them.
type Request struct {
	VideoID             string
	Frames              []FrameClassification
	FPS                 float64
	IncludeFrameDetails bool
	MaxExplanations     int
	Detector            DetectorConfig
}

// Analyze validates the request, runs the talking-head detector and the
// segment builder over the frames, attaches explanations to the leading
// segments and composes the result. IncludeFrameDetails only shapes the
// output; every computation runs over the full frame list regardless.
func Analyze(req Request) (*AnalysisResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	verdict := DetectTalkingHead(req.Frames, req.Detector)
	segments, err := BuildSegments(req.Frames, req.FPS)
	if err != nil {
		return nil, err
	}
	for i, text := range SelectExplanations(req.Frames, segments, req.MaxExplanations) {
		segments[i].Explanation = text
	}

	res := &AnalysisResult{
		VideoID:               req.VideoID,
		IsTalkingHead:         verdict.IsTalkingHead,
		TalkingHeadConfidence: verdict.Confidence,
		TalkingHeadEvidence:   verdict.Evidence,
		Roles:                 segments,
		Confidence:            ConfidenceByRole(req.Frames),
	}
	if req.IncludeFrameDetails {
		res.Frames = req.Frames
	}
	return res, nil
}

// ConfidenceByRole returns the mean frame confidence grouped by role. Roles
// with no frames are omitted from the map.
func ConfidenceByRole(frames []FrameClassification) map[Role]float64 {
	sums := make(map[Role]float64)
	counts := make(map[Role]int)
	for _, f := range frames {
		sums[f.Role] += f.Confidence
		counts[f.Role]++
	}
	out := make(map[Role]float64, len(counts))
	for role, n := range counts {
		out[role] = round3(sums[role] / float64(n))
	}
	return out
}

func (req Request) validate() error {
	if req.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidInput, req.FPS)
	}
	if req.MaxExplanations < 0 {
		return fmt.Errorf("%w: max_explanations must be non-negative, got %d", ErrInvalidInput, req.MaxExplanations)
	}
	if t := req.Detector.OccupancyThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("%w: occupancy_threshold must be in (0,1], got %v", ErrInvalidInput, t)
	}
	for i, f := range req.Frames {
		if !f.Role.Valid() {
			return fmt.Errorf("%w: frame %d (%s) has unknown role %q", ErrInvalidInput, i, f.Frame, f.Role)
		}
		if f.Confidence < 0 || f.Confidence > 1 {
			return fmt.Errorf("%w: frame %d (%s) confidence %v outside [0,1]", ErrInvalidInput, i, f.Frame, f.Confidence)
		}
		if f.ARollRatio < 0 || f.ARollRatio > 1 {
			return fmt.Errorf("%w: frame %d (%s) a_role_ratio %v outside [0,1]", ErrInvalidInput, i, f.Frame, f.ARollRatio)
		}
		if f.BRollRatio < 0 || f.BRollRatio > 1 {
			return fmt.Errorf("%w: frame %d (%s) b_role_ratio %v outside [0,1]", ErrInvalidInput, i, f.Frame, f.BRollRatio)
		}
	}
	return nil
}
