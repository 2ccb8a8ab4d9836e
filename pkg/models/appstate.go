package models

import (
	"context"

	"github.com/deepcare-ai/deepcare/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	Analyzer  Analyzer
	Extractor EntityExtractor
	Profiler  DrugProfiler
	Config    *config.Config
}

// Analyzer runs the full analysis pipeline for one request.
type Analyzer interface {
	Analyze(ctx context.Context, raw []Entity) *AnalysisResult
}

// ReactionCount is one reaction term with its registry report count.
type ReactionCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// DrugProfiler returns the most commonly reported adverse reactions for a
// drug.
type DrugProfiler interface {
	DrugProfile(ctx context.Context, drug string) ([]ReactionCount, error)
}
