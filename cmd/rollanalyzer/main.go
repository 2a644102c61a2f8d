package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"log/slog"

	"github.com/lmittmann/tint"

	"github.com/rekreate/rollanalyzer/internal/analyzer"
	"github.com/rekreate/rollanalyzer/internal/classifier"
	"github.com/rekreate/rollanalyzer/internal/config"
)

type cliArgs struct {
	framesDir  string
	outputPath string
	fps        float64
}

func parseArgs(args []string) cliArgs {
	var parsed cliArgs
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--frames":
			if i+1 < len(args) {
				parsed.framesDir = args[i+1]
				i++
			}
		case "--fps":
			if i+1 < len(args) {
				if v, err := strconv.ParseFloat(args[i+1], 64); err == nil {
					parsed.fps = v
				} else {
					log.Printf("Ignoring invalid --fps value %q, falling back to config default", args[i+1])
				}
				i++
			}
		case "--output":
			if i+1 < len(args) {
				parsed.outputPath = args[i+1]
				i++
			}
		}
	}
	return parsed
}

func main() {
	ctx := context.Background()

	// Configure logger
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	)

	// Parse command line arguments
	args := parseArgs(os.Args[1:])
	framesDir := args.framesDir
	outputPath := args.outputPath
	fps := args.fps

	if framesDir == "" {
		fmt.Println("Usage: rollanalyzer --frames path/to/frames [--fps 30] [--output result.json]")
		os.Exit(1)
	}

	conf, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if fps <= 0 {
		fps = conf.Analyze.FPS
	}

	// Initialize agent
	visionAgent, err := classifier.NewAgent(ctx, logger, classifier.Config{
		BaseURL: conf.Model.BaseURL,
		Port:    conf.Model.Port,
		Model:   conf.Model.ID,
	})
	if err != nil {
		log.Fatalf("Failed to initialize vision agent: %v", err)
	}

	processor := analyzer.NewProcessor(classifier.New(visionAgent), logger, conf.Analyze.Workers)

	result, err := processor.AnalyzeDirectory(ctx, analyzer.Request{
		FramesDir:           framesDir,
		FPS:                 fps,
		IncludeFrameDetails: true,
		IncludeExplanations: true,
		MaxExplanations:     conf.Analyze.MaxExplanations,
	})
	if err != nil {
		log.Printf("Error analyzing frames: %v", err)
		os.Exit(1)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
