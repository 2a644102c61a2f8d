package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/agent-api/core"
	"github.com/agent-api/core/agent"
	"github.com/agent-api/core/agent/bootstrap"
	"github.com/agent-api/ollama"
	"github.com/go-logr/logr"
)

// Config holds the connection details for the Ollama-served vision model.
type Config struct {
	BaseURL string
	Port    int
	Model   string
}

const systemPrompt = `Classify a single video frame as exactly one of: A-roll, B-roll, C-roll.
Definitions:
- A-roll: primary narrative track: person facing camera (talking head), narrator, vlog. Indicators: visible face, likely speaking, addressing viewer.
- B-roll: supporting visuals without a speaking face: screen/UI/phone, product close-ups, scenery, cutaways, captions on plain background.
- C-roll: very short decorative inserts (memes/reactions/micro-cutaways/motion design).
If a smartphone UI or interface dominates the frame, prefer B-roll.
Estimate how much of the frame area the speaking subject occupies (a_role_ratio) versus supporting visuals (b_role_ratio); the two should roughly sum to 1.
Respond ONLY with strict JSON: {"role": "A-roll|B-roll|C-roll", "confidence": number 0..1, "explanation": "short reason", "a_role_ratio": number 0..1, "b_role_ratio": number 0..1}.`

// NewAgent initializes and returns a new vision agent
func NewAgent(ctx context.Context, logger *slog.Logger, cfg Config) (*agent.Agent, error) {
	// Check if Ollama is running
	tagsURL := fmt.Sprintf("%s:%d/api/tags", cfg.BaseURL, cfg.Port)
	if _, err := exec.Command("curl", "-s", tagsURL).Output(); err != nil {
		return nil, fmt.Errorf("ollama not reachable at %s: %w", tagsURL, err)
	}

	// Set up Ollama provider
	logrLogger := logr.FromSlogHandler(logger.Handler())
	opts := &ollama.ProviderOpts{
		Logger:  &logrLogger,
		BaseURL: cfg.BaseURL,
		Port:    cfg.Port,
	}
	provider := ollama.NewProvider(opts)

	model := &core.Model{
		ID: cfg.Model,
	}
	provider.UseModel(ctx, model)

	return agent.NewAgent(
		bootstrap.WithProvider(provider),
		bootstrap.WithSystemPrompt(systemPrompt),
	)
}
