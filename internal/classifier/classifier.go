// Package classifier calls a vision-capable model to assign a narrative role
// to a single frame image. The model is instructed to answer with strict
// JSON; replies that wrap the JSON in prose are recovered by slicing between
// the outermost braces, and anything unparseable falls back to a neutral
// B-roll record rather than failing the run.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agent-api/core/agent"

	"github.com/rekreate/rollanalyzer/internal/roll"
)

// FrameFunc classifies one frame image. The pipeline and its tests depend on
// this signature, not on the model behind it.
type FrameFunc func(ctx context.Context, imagePath string) (roll.FrameClassification, error)

// New returns a FrameFunc backed by the given vision agent.
func New(a *agent.Agent) FrameFunc {
	return func(ctx context.Context, imagePath string) (roll.FrameClassification, error) {
		response, err := a.Run(
			ctx,
			agent.WithInput("Classify this frame and include a one-sentence explanation in JSON only."),
			agent.WithImagePath(imagePath),
		)
		if err != nil {
			return roll.FrameClassification{}, err
		}
		if response == nil || len(response.Messages) == 0 {
			return roll.FrameClassification{}, fmt.Errorf("no response messages received from model")
		}

		// The model's reply is the last message, after the prompt.
		content := response.Messages[len(response.Messages)-1].Content

		fc := parseClassification(content)
		fc.Frame = filepath.Base(imagePath)
		return fc, nil
	}
}

// Fallback is the record substituted when classification fails outright.
func Fallback(frame string) roll.FrameClassification {
	return roll.FrameClassification{
		Frame:      frame,
		Role:       roll.RoleB,
		Confidence: 0.5,
		BRollRatio: 1,
	}
}

type replyPayload struct {
	Role        string  `json:"role"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
	ARollRatio  float64 `json:"a_role_ratio"`
	BRollRatio  float64 `json:"b_role_ratio"`
}

func parseClassification(content string) roll.FrameClassification {
	payload := replyPayload{Confidence: 0.5}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		// Recover if the model added text around the JSON object.
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return Fallback("")
		}
		payload = replyPayload{Confidence: 0.5}
		if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
			return Fallback("")
		}
	}

	role := roll.Role(payload.Role)
	if !role.Valid() {
		role = roll.RoleB
	}
	return roll.FrameClassification{
		Role:        role,
		Confidence:  clamp01(payload.Confidence),
		ARollRatio:  clamp01(payload.ARollRatio),
		BRollRatio:  clamp01(payload.BRollRatio),
		Description: strings.TrimSpace(payload.Explanation),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
