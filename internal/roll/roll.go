// Package roll implements the aggregation engine that turns per-frame role
// classifications into timecoded segments and an overall talking-head verdict.
//
// The package is a pure library: every function is a deterministic
// transformation of the frame sequence it is handed. Frame order is owned by
// the caller (natural sort of filenames happens upstream) and is never
// changed here.
package roll

import "errors"

// ErrInvalidInput reports a request that fails validation. It is returned
// before any aggregation runs; no partial result is produced.
var ErrInvalidInput = errors.New("invalid input")

// Role is the narrative role assigned to a frame or segment.
type Role string

const (
	RoleA Role = "A-roll"
	RoleB Role = "B-roll"
	RoleC Role = "C-roll"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleA, RoleB, RoleC:
		return true
	}
	return false
}

// FrameClassification is the record the vision classifier produces for one
// frame. The slice index of a frame is its implicit sequence number: frame k
// spans playback time [k/fps, (k+1)/fps).
type FrameClassification struct {
	Frame       string  `json:"frame"`
	Role        Role    `json:"role"`
	Confidence  float64 `json:"confidence"`
	ARollRatio  float64 `json:"a_role_ratio"`
	BRollRatio  float64 `json:"b_role_ratio"`
	Description string  `json:"description,omitempty"`
}

// Segment is a maximal run of contiguous frames sharing one role. StartIndex
// is inclusive, EndIndex exclusive. Ratios are the arithmetic mean over the
// member frames.
type Segment struct {
	StartIndex  int     `json:"-"`
	EndIndex    int     `json:"-"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Role        Role    `json:"role"`
	ARollRatio  float64 `json:"a_role_ratio"`
	BRollRatio  float64 `json:"b_role_ratio"`
	Explanation string  `json:"explanation,omitempty"`
}

// EvidenceFrame pairs a qualifying frame with the classifier's description of
// it. Description is empty when the classifier produced none.
type EvidenceFrame struct {
	Frame       string `json:"frame"`
	Description string `json:"description"`
}

// TalkingHeadVerdict is the detector's decision for one clip.
type TalkingHeadVerdict struct {
	IsTalkingHead bool
	Confidence    float64
	Evidence      []EvidenceFrame
}

// AnalysisResult is the assembled output for one run.
type AnalysisResult struct {
	VideoID               string                `json:"video_id"`
	IsTalkingHead         bool                  `json:"is_talkinghead"`
	TalkingHeadConfidence float64               `json:"talkinghead_confidence"`
	TalkingHeadEvidence   []EvidenceFrame       `json:"talkinghead_evidence,omitempty"`
	Roles                 []Segment             `json:"roles"`
	Frames                []FrameClassification `json:"frames,omitempty"`
	Confidence            map[Role]float64      `json:"confidence"`
}
