package main

import (
	"context"
	"log"
	"net/http"
	"time"

	appAnalysis "ai-chart-analyst/internal/application/analysis"
	"ai-chart-analyst/internal/infrastructure/ai"
	"ai-chart-analyst/internal/infrastructure/config"
	"ai-chart-analyst/internal/infrastructure/db"
	httpapi "ai-chart-analyst/internal/interface/http"
)

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		log.Fatalf("CRITICAL: load config failed: %v", err)
	}
	log.Printf("configuration loaded (HTTP_ADDR=%s model=%s)", cfg.HTTP.Addr, cfg.AI.Model)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("testing database connection...")
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		log.Printf("warning: database connection failed, falling back to in-memory store: %v", err)
		pool = nil
	} else if pool == nil {
		log.Printf("no DB_DSN provided; running with in-memory store only")
	} else {
		defer pool.Close()
		log.Printf("database connected successfully")
	}

	var provider appAnalysis.CompletionProvider
	gemini, err := ai.NewGeminiProvider(cfg.AI.Keys,
		ai.WithGeminiModel(cfg.AI.Model),
		ai.WithGeminiHTTPClient(&http.Client{Timeout: cfg.AI.Timeout}),
		ai.WithGeminiAttemptDelay(cfg.AI.AttemptDelay),
	)
	if err != nil {
		log.Printf("warning: no Gemini API key configured; analyze endpoint will fail until one is set")
	} else {
		provider = gemini
	}

	apiServer := httpapi.NewServer(cfg, pool, provider)
	addr := cfg.HTTP.Addr
	log.Printf("starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, apiServer.Handler()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
