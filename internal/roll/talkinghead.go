package roll

import "sort"

// DetectorConfig fixes the talking-head heuristic. The weights and thresholds
// are deterministic design constants, not tunables learned per clip.
type DetectorConfig struct {
	// OccupancyThreshold is the minimum a_role_ratio for a frame to qualify
	// as a strong A-roll frame.
	OccupancyThreshold float64
	// MinConfidence is the minimum classifier confidence for a qualifying frame.
	MinConfidence float64
	// MinConsecutive qualifying frames in a row decide the verdict on their own.
	MinConsecutive int
	// CoverageFloor is the alternative decision path: at least MinConsecutive
	// qualifying frames covering this share of the clip.
	CoverageFloor float64
	// EvidenceCap bounds the number of evidence frames returned.
	EvidenceCap int
	// CoverageWeight and RunWeight blend the qualifying-frame proportion and
	// the normalized longest run into the confidence score.
	CoverageWeight float64
	RunWeight      float64
}

// DefaultDetectorConfig returns the stock heuristic: occupancy 0.35,
// confidence 0.55, three consecutive frames decisive, confidence blended
// 0.6 coverage / 0.4 longest run.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		OccupancyThreshold: 0.35,
		MinConfidence:      0.55,
		MinConsecutive:     3,
		CoverageFloor:      0.2,
		EvidenceCap:        3,
		CoverageWeight:     0.6,
		RunWeight:          0.4,
	}
}

// DetectTalkingHead scans the frame sequence once and decides whether the
// clip is a talking-head piece. A frame qualifies when its role is A-roll,
// its confidence is at least MinConfidence and its a_role_ratio is at least
// OccupancyThreshold. The verdict is positive when the longest run of
// qualifying frames reaches MinConsecutive, or when at least MinConsecutive
// qualifying frames cover CoverageFloor of the clip.
//
// Confidence is CoverageWeight*coverage + RunWeight*min(1, run/(MinConsecutive+1)),
// capped at 0.99; a negative verdict decays to coverage/2. Never errors: an
// empty sequence yields a zeroed verdict.
func DetectTalkingHead(frames []FrameClassification, cfg DetectorConfig) TalkingHeadVerdict {
	if len(frames) == 0 {
		return TalkingHeadVerdict{}
	}

	var qualified []int
	for i, f := range frames {
		if f.Role != RoleA {
			continue
		}
		if f.Confidence < cfg.MinConfidence {
			continue
		}
		if f.ARollRatio < cfg.OccupancyThreshold {
			continue
		}
		qualified = append(qualified, i)
	}

	coverage := float64(len(qualified)) / float64(len(frames))
	longest := longestRun(qualified)
	isTalking := longest >= cfg.MinConsecutive ||
		(len(qualified) >= cfg.MinConsecutive && coverage >= cfg.CoverageFloor)

	var confidence float64
	if isTalking {
		normRun := float64(longest) / float64(cfg.MinConsecutive+1)
		if normRun > 1 {
			normRun = 1
		}
		confidence = cfg.CoverageWeight*coverage + cfg.RunWeight*normRun
		if confidence > 0.99 {
			confidence = 0.99
		}
	} else {
		confidence = coverage * 0.5
	}

	return TalkingHeadVerdict{
		IsTalkingHead: isTalking,
		Confidence:    round3(confidence),
		Evidence:      pickEvidence(frames, qualified, cfg.EvidenceCap),
	}
}

// longestRun returns the length of the longest streak of consecutive frame
// indices in the (sorted) qualified list.
func longestRun(indices []int) int {
	if len(indices) == 0 {
		return 0
	}
	longest, streak := 1, 1
	for i := 1; i < len(indices); i++ {
		if indices[i] == indices[i-1]+1 {
			streak++
			if streak > longest {
				longest = streak
			}
		} else {
			streak = 1
		}
	}
	return longest
}

// pickEvidence selects up to cap qualifying frames, drawing from the longest
// runs first and presenting the chosen frames in original order.
func pickEvidence(frames []FrameClassification, qualified []int, limit int) []EvidenceFrame {
	if limit <= 0 || len(qualified) == 0 {
		return nil
	}

	type run struct{ start, length int } // offsets into qualified
	var runs []run
	cur := run{start: 0, length: 1}
	for i := 1; i < len(qualified); i++ {
		if qualified[i] == qualified[i-1]+1 {
			cur.length++
			continue
		}
		runs = append(runs, cur)
		cur = run{start: i, length: 1}
	}
	runs = append(runs, cur)

	// Longest runs first; stable keeps earlier runs ahead on ties.
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].length > runs[j].length })

	var picked []int
	for _, r := range runs {
		for k := 0; k < r.length && len(picked) < limit; k++ {
			picked = append(picked, qualified[r.start+k])
		}
		if len(picked) >= limit {
			break
		}
	}
	sort.Ints(picked)

	evidence := make([]EvidenceFrame, 0, len(picked))
	for _, idx := range picked {
		evidence = append(evidence, EvidenceFrame{
			Frame:       frames[idx].Frame,
			Description: frames[idx].Description,
		})
	}
	return evidence
}
