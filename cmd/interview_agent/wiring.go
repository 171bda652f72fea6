package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/analysis"
	"github.com/jordan/interview-copilot/internal/config"
	"github.com/jordan/interview-copilot/internal/db"
	"github.com/jordan/interview-copilot/internal/evaluation"
	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/logger"
	"github.com/jordan/interview-copilot/internal/questions"
	"github.com/jordan/interview-copilot/internal/ranking"
	"github.com/jordan/interview-copilot/internal/tagging"
)

// app bundles the wired pipeline for a single command invocation.
// database is nil when no database URL was provided; the pipeline
// degrades to the built-in catalog and generated questions.
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	client     llm.Client
	classifier *tagging.Classifier
	service    *analysis.Service
	evaluator  *evaluation.Evaluator
	searcher   *questions.Searcher
	database   *db.DB
}

// loadAppConfig merges an optional config file with environment variables
// and applies defaults. Flag values are resolved per command on top of this.
func loadAppConfig(configPath string) (*config.Config, error) {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
	}

	env := config.FromEnv()
	if cfg.APIKey == "" {
		cfg.APIKey = env.APIKey
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = env.DatabaseURL
	}
	cfg.ApplyDefaults()

	return cfg, nil
}

// buildApp wires the full pipeline. apiKey and dbURL come from command
// flags and override the config file and environment.
func buildApp(ctx context.Context, configPath, apiKey, dbURL string, verbose bool) (*app, error) {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	log, err := logger.New(cfg.JSONLogs, verbose || cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	classifier := tagging.NewClassifier(client, log, tagging.ClassifierConfig{
		Attempts: cfg.ClassifierRetries,
		Timeout:  time.Duration(cfg.ClassifierTimeout) * time.Second,
	})

	a := &app{
		cfg:        cfg,
		log:        log,
		client:     client,
		classifier: classifier,
		evaluator:  evaluation.NewEvaluator(classifier, log),
	}

	var questionStore questions.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.database = database
		questionStore = database
	}

	tagger := tagging.NewTagger(classifier, log)
	backfiller := ranking.NewBackfiller(classifier, log)
	recommender := questions.NewRecommender(questionStore, log)
	a.searcher = questions.NewSearcher(questionStore, classifier, log)

	serviceCfg := analysis.Config{
		Tagger:      tagger,
		Backfiller:  backfiller,
		Recommender: recommender,
		Workers:     cfg.Workers,
	}
	if a.database != nil {
		serviceCfg.CatalogStore = a.database
	}
	a.service = analysis.NewService(serviceCfg, log)

	return a, nil
}

func (a *app) close() {
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close LLM client: %v\n", err)
		}
	}
	if a.database != nil {
		a.database.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
