package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"credit_appraisal/pkg/core/agent"
	"credit_appraisal/pkg/core/config"
	"credit_appraisal/pkg/core/ingest"
	"credit_appraisal/pkg/core/pipeline"
	"credit_appraisal/pkg/core/store"
)

func main() {
	dataDir := flag.String("data", "", "company data directory (contains Standalone/<year-block>/)")
	customer := flag.String("customer", "", "customer name for the memo header")
	leadID := flag.String("lead", "", "lead ID; generated when empty")
	configPath := flag.String("config", "config/appraisal.yaml", "appraisal config file")
	modelsPath := flag.String("models", "config/models.yaml", "LLM routing config file")
	format := flag.String("format", "pdf", "statement format: pdf or html")
	flag.Parse()

	if *dataDir == "" || *customer == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	var agentCfg agent.Config
	if data, err := os.ReadFile(*modelsPath); err == nil {
		if err := yaml.Unmarshal(data, &agentCfg); err != nil {
			log.Fatalf("Models config error: %v", err)
		}
	}
	agents := agent.NewManager(agentCfg)

	var source ingest.TextSource
	switch *format {
	case "pdf":
		source = ingest.NewPDFSource(*dataDir)
	case "html":
		source = ingest.NewHTMLSource(*dataDir)
	default:
		log.Fatalf("Unknown format %q (want pdf or html)", *format)
	}

	ctx := context.Background()

	// Postgres when DATABASE_URL is set, otherwise JSON files next to the
	// statements.
	var repo pipeline.Repository
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := store.Connect(ctx, dbURL)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer pool.Close()
		repo = store.NewPostgresRepo(pool)
	} else {
		log.Println("DATABASE_URL not set, writing artifacts to the data directory.")
		repo = store.NewFileRepo(*dataDir)
	}

	orch := pipeline.NewOrchestrator(source, agents, repo, cfg)
	lead, err := orch.Run(ctx, pipeline.Request{CustomerName: *customer, LeadID: *leadID})
	if err != nil {
		log.Fatalf("Pipeline failed (lead %s): %v", lead, err)
	}
	fmt.Printf("Done. Lead ID: %s\n", lead)
}
