// Command analyze runs the full filing analysis pipeline for one 10-K:
// fact extraction, metrics, section index, and (with -price) valuation.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"filinglens/pkg/core/config"
	"filinglens/pkg/core/pipeline"
	"filinglens/pkg/core/report"
	"filinglens/pkg/core/store"
)

func main() {
	var (
		filePath   = flag.String("file", "", "path to the 10-K HTML/iXBRL filing (required)")
		configPath = flag.String("config", "", "path to an Hjson config file")
		price      = flag.Float64("price", 0, "current market price; enables valuation when > 0")
		query      = flag.String("query", "", "free-text query to route against the section index")
		intents    = flag.String("intents", "", "comma-separated intents (risks,mdna,financials)")
		markdown   = flag.Bool("markdown", false, "emit a Markdown report instead of JSON")
		noCache    = flag.Bool("no-cache", false, "disable the analysis cache")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var cache *store.AnalysisCache
	if !*noCache {
		if cfg.DatabaseURL != "" {
			if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
				logger.Warn("database unavailable, using file cache", zap.Error(err))
			}
			defer store.Close()
		}
		cache = store.NewAnalysisCache(store.GetPool(), cfg.CacheDir)
	}

	orch, err := pipeline.NewOrchestrator(cache, logger)
	if err != nil {
		logger.Fatal("pipeline init failed", zap.Error(err))
	}

	var currentPrice *float64
	if *price > 0 {
		currentPrice = price
	}

	fa, err := orch.RunFile(ctx, *filePath, currentPrice)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	if *query != "" || *intents != "" {
		var intentList []string
		if *intents != "" {
			intentList = strings.Split(*intents, ",")
		}
		hits := orch.Retrieve(fa, intentList, *query, cfg.Retrieval.TopK, cfg.Retrieval.MinScore)
		fmt.Fprintf(os.Stderr, "Matched sections:\n")
		for _, s := range hits {
			fmt.Fprintf(os.Stderr, "  - %s [%s]\n", s.Label, s.SectionType)
		}
	}

	if *markdown {
		md := report.RenderMarkdown(fa)
		if !report.ValidateMarkdown(md) {
			logger.Warn("rendered report failed markdown validation")
		}
		fmt.Print(md)
		return
	}

	out, err := json.MarshalIndent(fa, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode analysis", zap.Error(err))
	}
	fmt.Println(string(out))
}
