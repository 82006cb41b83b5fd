// Package appraisal exposes the pipeline over HTTP for the loan-desk UI.
package appraisal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"credit_appraisal/pkg/core/agent"
	"credit_appraisal/pkg/core/config"
	"credit_appraisal/pkg/core/ingest"
	"credit_appraisal/pkg/core/memo"
	"credit_appraisal/pkg/core/pipeline"
	"credit_appraisal/pkg/core/store"
)

// Handler holds dependencies for the appraisal endpoints.
type Handler struct {
	DataRoot string
	AgentMgr *agent.Manager
	Repo     pipeline.Repository
	Cfg      config.Config
}

// NewHandler creates a new appraisal handler. dataRoot is the directory
// holding one subdirectory per customer.
func NewHandler(dataRoot string, agentMgr *agent.Manager, repo pipeline.Repository, cfg config.Config) *Handler {
	return &Handler{DataRoot: dataRoot, AgentMgr: agentMgr, Repo: repo, Cfg: cfg}
}

type runRequest struct {
	CustomerName string `json:"customer_name"`
	LeadID       string `json:"lead_id"`
	CompanyDir   string `json:"company_dir"`
	Format       string `json:"format"`
}

type runResponse struct {
	LeadID string `json:"lead_id"`
	Status string `json:"status"`
}

// HandleRun executes the full pipeline for one lead, synchronously. The
// caller gets the lead ID back and fetches artifacts by kind afterwards.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CustomerName == "" || req.CompanyDir == "" {
		http.Error(w, "customer_name and company_dir are required", http.StatusBadRequest)
		return
	}
	// Keep the lookup inside the data root.
	companyDir := filepath.Join(h.DataRoot, filepath.Clean("/"+req.CompanyDir))

	var source ingest.TextSource
	switch req.Format {
	case "", "pdf":
		source = ingest.NewPDFSource(companyDir)
	case "html":
		source = ingest.NewHTMLSource(companyDir)
	default:
		http.Error(w, fmt.Sprintf("unknown format %q", req.Format), http.StatusBadRequest)
		return
	}

	orch := pipeline.NewOrchestrator(source, h.AgentMgr, h.Repo, h.Cfg)
	leadID, err := orch.Run(r.Context(), pipeline.Request{
		CustomerName: req.CustomerName,
		LeadID:       req.LeadID,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("pipeline failed: %v", err), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(runResponse{LeadID: leadID, Status: "complete"})
}

// HandleDocument serves one persisted artifact verbatim:
// GET /api/appraisal/document?lead=<id>&kind=<kind>
func (h *Handler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	leadID := r.URL.Query().Get("lead")
	kind := r.URL.Query().Get("kind")
	if leadID == "" || !validKind(kind) {
		http.Error(w, "lead and a valid kind are required", http.StatusBadRequest)
		return
	}

	var doc json.RawMessage
	if err := h.Repo.LoadDocument(r.Context(), leadID, kind, &doc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(doc)
}

// HandleMemo renders the persisted memo as a document:
// GET /api/appraisal/memo?lead=<id>&customer=<name>&format=markdown|html
func (h *Handler) HandleMemo(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	leadID := r.URL.Query().Get("lead")
	if leadID == "" {
		http.Error(w, "lead is required", http.StatusBadRequest)
		return
	}
	customer := r.URL.Query().Get("customer")

	var m memo.Memo
	if err := h.Repo.LoadDocument(r.Context(), leadID, store.KindSummaries, &m); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, m.RenderMarkdown(customer))
	case "html":
		html, err := m.RenderHTML(customer)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	default:
		http.Error(w, "format must be markdown or html", http.StatusBadRequest)
	}
}

func validKind(kind string) bool {
	switch kind {
	case store.KindExtractedValues, store.KindRatios, store.KindRiskRating, store.KindSummaries:
		return true
	}
	return false
}

// cors adds headers for local dev.
func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
