// Package web exposes the analysis pipeline over HTTP.
package web

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/rekreate/rollanalyzer/internal/analyzer"
	"github.com/rekreate/rollanalyzer/internal/config"
	"github.com/rekreate/rollanalyzer/internal/roll"
)

// API wires the HTTP handlers to the pipeline.
type API struct {
	processor *analyzer.Processor
	conf      *config.Config
	logger    *slog.Logger
}

func NewAPI(processor *analyzer.Processor, conf *config.Config, logger *slog.Logger) *API {
	return &API{
		processor: processor,
		conf:      conf,
		logger:    logger,
	}
}

// Router builds the gin engine with recovery, CORS and gzip middleware.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, err any) {
			slog.ErrorContext(c.Request.Context(), "panic", "err", err, "stack", string(debug.Stack()))
			c.AbortWithStatus(http.StatusInternalServerError)
		}),
		cors.Default(),
		gzip.Gzip(gzip.DefaultCompression),
	)

	r.GET("/", a.root)
	r.GET("/healthz", a.healthz)
	r.POST("/analyze-rolls", a.analyzeRolls)
	return r
}

func (a *API) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Roll Analyzer API"})
}

func (a *API) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// analyzeRequest mirrors the public request document. Pointer fields
// distinguish "absent" from zero so defaults can apply.
type analyzeRequest struct {
	FramesPath          string  `json:"frames_path" binding:"required"`
	FPS                 float64 `json:"fps"`
	IncludeFrameDetails *bool   `json:"include_frame_details"`
	IncludeExplanations bool    `json:"include_explanations"`
	MaxExplanations     *int    `json:"max_explanations"`
	OccupancyThreshold  float64 `json:"occupancy_threshold"`
}

func (a *API) analyzeRolls(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}

	fps := req.FPS
	if fps <= 0 {
		fps = a.conf.Analyze.FPS
	}
	includeFrameDetails := true
	if req.IncludeFrameDetails != nil {
		includeFrameDetails = *req.IncludeFrameDetails
	}
	maxExplanations := a.conf.Analyze.MaxExplanations
	if req.MaxExplanations != nil {
		maxExplanations = *req.MaxExplanations
	}

	result, err := a.processor.AnalyzeDirectory(c.Request.Context(), analyzer.Request{
		FramesDir:           req.FramesPath,
		FPS:                 fps,
		IncludeFrameDetails: includeFrameDetails,
		IncludeExplanations: req.IncludeExplanations,
		MaxExplanations:     maxExplanations,
		OccupancyThreshold:  req.OccupancyThreshold,
	})
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.JSON(http.StatusNotFound, gin.H{"code": 1, "msg": "frames path does not exist: " + req.FramesPath})
		return
	case errors.Is(err, analyzer.ErrNoFrames):
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "no .jpg/.jpeg/.png files found in provided path"})
		return
	case errors.Is(err, roll.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	case err != nil:
		a.logger.Error("analysis failed", "dir", req.FramesPath, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
