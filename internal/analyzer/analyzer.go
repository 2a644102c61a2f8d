// Package analyzer runs the frame-classification pipeline: it discovers the
// frame images for a clip, classifies each frame through the vision model on
// a bounded worker pool, and hands the ordered classifications to the
// aggregation engine.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rekreate/rollanalyzer/internal/classifier"
	"github.com/rekreate/rollanalyzer/internal/frames"
	"github.com/rekreate/rollanalyzer/internal/roll"
)

const defaultWorkers = 4 // Adjust based on your CPU cores

// ErrNoFrames reports a frames directory that exists but contains no
// .jpg/.jpeg/.png files.
var ErrNoFrames = errors.New("no frame images found")

type workItem struct {
	index int
	name  string
}

// Request describes one directory-analysis run.
type Request struct {
	FramesDir           string
	FPS                 float64
	IncludeFrameDetails bool
	IncludeExplanations bool
	MaxExplanations     int
	OccupancyThreshold  float64
}

// Processor classifies frames and aggregates the results.
type Processor struct {
	classify classifier.FrameFunc
	logger   *slog.Logger
	workers  int
}

func NewProcessor(classify classifier.FrameFunc, logger *slog.Logger, workers int) *Processor {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Processor{
		classify: classify,
		logger:   logger,
		workers:  workers,
	}
}

// AnalyzeDirectory classifies every frame image in the request's directory
// and aggregates the results. Classification runs concurrently, but results
// are reassembled in original frame order before the aggregation engine sees
// them. A frame whose classification fails gets the neutral fallback record
// instead of aborting the run.
func (p *Processor) AnalyzeDirectory(ctx context.Context, req Request) (*roll.AnalysisResult, error) {
	names, err := frames.List(req.FramesDir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoFrames
	}

	p.logger.Info("analyzing frames", "dir", req.FramesDir, "count", len(names))

	classified := p.classifyAll(ctx, req.FramesDir, names)

	detector := roll.DefaultDetectorConfig()
	if req.OccupancyThreshold != 0 {
		detector.OccupancyThreshold = req.OccupancyThreshold
	}

	maxExplanations := req.MaxExplanations
	if !req.IncludeExplanations {
		maxExplanations = 0
	}

	return roll.Analyze(roll.Request{
		VideoID:             frames.VideoIDFromPath(req.FramesDir),
		Frames:              classified,
		FPS:                 req.FPS,
		IncludeFrameDetails: req.IncludeFrameDetails,
		MaxExplanations:     maxExplanations,
		Detector:            detector,
	})
}

// classifyAll fans the frames out to the worker pool. Each result lands in
// the slot matching its input index, so the returned slice is in the same
// order as names regardless of which worker finished first.
func (p *Processor) classifyAll(ctx context.Context, dir string, names []string) []roll.FrameClassification {
	results := make([]roll.FrameClassification, len(names))
	workChan := make(chan workItem, len(names))

	var wg sync.WaitGroup

	remaining := atomic.Int64{}
	remaining.Store(int64(len(names)))

	// Start worker pool
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workChan {
				fc, err := p.classify(ctx, filepath.Join(dir, work.name))
				if err != nil {
					p.logger.Warn("frame classification failed, using fallback",
						"frame", work.name, "err", err)
					fc = classifier.Fallback(work.name)
				}
				results[work.index] = fc

				p.logger.Debug("classified frame",
					"frame", work.name,
					"role", fc.Role,
					"remaining", remaining.Add(-1))
			}
		}()
	}

	// Send work to workers
	for i, name := range names {
		workChan <- workItem{index: i, name: name}
	}
	close(workChan)

	wg.Wait()
	return results
}
