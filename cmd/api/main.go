package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"credit_appraisal/pkg/api/appraisal"
	"credit_appraisal/pkg/core/agent"
	"credit_appraisal/pkg/core/config"
	"credit_appraisal/pkg/core/pipeline"
	"credit_appraisal/pkg/core/store"
)

func main() {
	dataRoot := flag.String("data", "data", "root directory with one subdirectory per customer")
	configPath := flag.String("config", "config/appraisal.yaml", "appraisal config file")
	modelsPath := flag.String("models", "config/models.yaml", "LLM routing config file")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize manager from config
	var agentCfg agent.Config
	if data, err := os.ReadFile(*modelsPath); err == nil {
		if err := yaml.Unmarshal(data, &agentCfg); err != nil {
			log.Fatalf("Models config error: %v", err)
		}
	}
	agentMgr := agent.NewManager(agentCfg)

	ctx := context.Background()
	var repo pipeline.Repository
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := store.Connect(ctx, dbURL)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer pool.Close()
		repo = store.NewPostgresRepo(pool)
	} else {
		log.Println("DATABASE_URL not set, writing artifacts to the data root.")
		repo = store.NewFileRepo(*dataRoot)
	}

	// Appraisal endpoints
	handler := appraisal.NewHandler(*dataRoot, agentMgr, repo, cfg)
	http.HandleFunc("/api/appraisal/run", handler.HandleRun)
	http.HandleFunc("/api/appraisal/document", handler.HandleDocument)
	http.HandleFunc("/api/appraisal/memo", handler.HandleMemo)

	fmt.Printf("API server starting on %s...\n", *addr)
	fmt.Println("  - POST /api/appraisal/run")
	fmt.Println("  - GET  /api/appraisal/document?lead=<id>&kind=<kind>")
	fmt.Println("  - GET  /api/appraisal/memo?lead=<id>&format=markdown|html")

	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
