package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/brandeval/brandeval/internal/api"
	"github.com/brandeval/brandeval/internal/config"
	"github.com/brandeval/brandeval/internal/engine"
	"github.com/brandeval/brandeval/internal/imaging"
	"github.com/brandeval/brandeval/internal/store"
	"github.com/brandeval/brandeval/internal/worker"
)

func main() {
	cfg := config.Load()

	// Open SQLite.
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// Initialize store.
	s, err := store.New(db)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	// Build the evaluation pipeline.
	sizeAgent := engine.NewSizeAgent(imaging.NewReader(cfg.ImageDir))
	subject, expression := buildScoringAgents(cfg)
	recorder := engine.NewRecorder(s)
	pipeline := engine.NewPipeline(s, sizeAgent, subject, expression, recorder)

	// Start the background sweeper.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := worker.New(s, pipeline, cfg.WorkerInterval)
	go sweeper.Start(ctx)

	// Start API server.
	srv := api.New(s, pipeline, api.Options{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		CORSOrigin: cfg.CORSOrigin,
	})
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Handler(),
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down...")
		cancel()
		httpServer.Shutdown(context.Background())
	}()

	fmt.Printf("brandeval server listening on http://localhost:%s\n", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// buildScoringAgents selects the subject/expression strategies from config.
// The local heuristics are the default; the model-backed agents are used
// when requested, falling back to the deterministic stub client when the
// selected provider has no key configured.
func buildScoringAgents(cfg config.Config) (engine.SubjectScorer, engine.ExpressionScorer) {
	if cfg.ScoreStrategy != "model" {
		slog.Info("using heuristic scoring agents")
		return &engine.LexicalSubjectAgent{}, &engine.HeuristicExpressionAgent{}
	}

	mc := newModelClient(cfg)
	return engine.NewModelSubjectAgent(mc, cfg.ModelTimeout),
		engine.NewModelExpressionAgent(mc, cfg.ModelTimeout)
}

func newModelClient(cfg config.Config) engine.ModelClient {
	if !cfg.UseModelScoring() {
		slog.Warn("no API key for selected provider, using stub model client", "provider", cfg.LLMProvider)
		return &engine.StubModelClient{}
	}

	switch cfg.LLMProvider {
	case "claude":
		slog.Info("using Claude model client", "model", cfg.AnthropicModel)
		return engine.NewClaudeClient(cfg.AnthropicKey, engine.WithClaudeModel(cfg.AnthropicModel))
	case "gemini":
		slog.Info("using Gemini model client", "model", cfg.GeminiModel)
		return engine.NewGeminiClient(cfg.GeminiKey, engine.WithGeminiModel(cfg.GeminiModel))
	case "ollama":
		slog.Info("using Ollama model client", "model", cfg.OllamaModel)
		return engine.NewOllamaClient(cfg.OllamaURL, engine.WithOllamaModel(cfg.OllamaModel))
	default:
		slog.Info("using OpenAI model client", "model", cfg.OpenAIModel)
		return engine.NewOpenAIClient(cfg.OpenAIKey, engine.WithModel(cfg.OpenAIModel))
	}
}
