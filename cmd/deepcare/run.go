package cmd

import (
	"time"

	"github.com/deepcare-ai/deepcare/config"
	"github.com/deepcare-ai/deepcare/pkg/analysis"
	"github.com/deepcare-ai/deepcare/pkg/faers"
	"github.com/deepcare-ai/deepcare/pkg/models"
	"github.com/deepcare-ai/deepcare/pkg/nlp"
	"github.com/deepcare-ai/deepcare/pkg/riskml"
	"github.com/deepcare-ai/deepcare/pkg/server"
)

// run is the entrypoint for the deepcare server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring deepcare: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting deepcare server version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState := NewAppState(cfg)

	srv := server.Create(appState)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV,
// wiring the registry client, the correlation engine, the analysis
// pipeline, and the optional collaborators.
func NewAppState(cfg *config.Config) *models.AppState {
	registry := faers.NewClient(
		cfg.FAERS.BaseURL,
		time.Duration(cfg.FAERS.TimeoutSeconds)*time.Second,
	)

	engine, err := analysis.NewEngine(
		registry,
		cfg.FAERS.MaxConcurrency,
		time.Duration(cfg.FAERS.TimeoutSeconds)*time.Second,
		cfg.FAERS.CacheSize,
	)
	if err != nil {
		log.Fatalf("Error creating correlation engine: %s", err)
	}

	appState := &models.AppState{
		Analyzer: analysis.NewPipeline(engine, loadClassifier(cfg)),
		Profiler: registry,
		Config:   cfg,
	}

	if cfg.NLP.ServerURL != "" {
		appState.Extractor = nlp.NewClient(cfg.NLP.ServerURL, cfg.Analysis.MinConfidence)
		log.Info("Using NLP server: ", cfg.NLP.ServerURL)
	} else {
		log.Warn("No NLP server configured; analyze requests must supply entities")
	}

	return appState
}

// loadClassifier loads the pretrained risk classifier when enabled. The
// classifier is advisory, so a missing or unreadable artifact downgrades
// to running without it.
func loadClassifier(cfg *config.Config) models.RiskClassifier {
	if !cfg.ML.Enabled || cfg.ML.ModelPath == "" {
		return nil
	}
	model, err := riskml.Load(cfg.ML.ModelPath)
	if err != nil {
		log.Warnf("Risk classifier unavailable: %s", err)
		return nil
	}
	return model
}
