// Package pipeline wires the appraisal stages end to end: ingest the
// statement text, extract and canonicalize values, compute ratios, grade
// risk, generate the memo, and persist each artifact as it completes.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"credit_appraisal/pkg/core/agent"
	"credit_appraisal/pkg/core/canonical"
	"credit_appraisal/pkg/core/config"
	"credit_appraisal/pkg/core/extract"
	"credit_appraisal/pkg/core/ingest"
	"credit_appraisal/pkg/core/memo"
	"credit_appraisal/pkg/core/normalize"
	"credit_appraisal/pkg/core/ratio"
	"credit_appraisal/pkg/core/risk"
	"credit_appraisal/pkg/core/store"
)

// Repository persists and retrieves the per-lead artifacts. Satisfied by
// store.PostgresRepo and store.FileRepo.
type Repository interface {
	SaveDocument(ctx context.Context, leadID, customerName, kind string, doc interface{}) error
	LoadDocument(ctx context.Context, leadID, kind string, out interface{}) error
}

// Request identifies one appraisal run. LeadID may be empty; the
// orchestrator assigns one so reruns of the same lead overwrite in place.
type Request struct {
	CustomerName string
	LeadID       string
}

// Orchestrator manages the end-to-end appraisal flow for one lead.
type Orchestrator struct {
	source ingest.TextSource
	agents *agent.Manager
	repo   Repository
	cfg    config.Config
}

// NewOrchestrator creates an orchestrator with all required dependencies.
func NewOrchestrator(source ingest.TextSource, agents *agent.Manager, repo Repository, cfg config.Config) *Orchestrator {
	return &Orchestrator{source: source, agents: agents, repo: repo, cfg: cfg}
}

// Run executes every stage in order for one lead and returns the assigned
// lead ID. Each artifact is persisted as soon as its stage completes, so a
// downstream failure leaves the upstream documents queryable.
func (o *Orchestrator) Run(ctx context.Context, req Request) (string, error) {
	leadID := o.resolveLead(req)
	fmt.Printf("Starting appraisal for %s (lead %s)...\n", req.CustomerName, leadID)
	start := time.Now()

	snapshot, err := o.ExtractStage(ctx, leadID, req.CustomerName)
	if err != nil {
		return leadID, err
	}
	if _, err := o.RatioStage(ctx, leadID, req.CustomerName, snapshot); err != nil {
		return leadID, err
	}
	if _, err := o.RiskStage(ctx, leadID, req.CustomerName); err != nil {
		return leadID, err
	}
	if _, err := o.MemoStage(ctx, leadID, req.CustomerName); err != nil {
		return leadID, err
	}

	fmt.Printf("Appraisal completed for %s in %v\n", req.CustomerName, time.Since(start))
	return leadID, nil
}

func (o *Orchestrator) resolveLead(req Request) string {
	if strings.TrimSpace(req.LeadID) != "" {
		return req.LeadID
	}
	return uuid.NewString()
}

// ExtractStage builds the canonical snapshot: current-pair extraction from
// the latest statements, historical backfill from the prior block, then
// finalization. The result is persisted as the extracted_values document.
func (o *Orchestrator) ExtractStage(ctx context.Context, leadID, customerName string) (canonical.Snapshot, error) {
	extractor := extract.New(
		o.agents.ProviderFor(agent.TaskExtraction),
		o.agents.ModelFor(agent.TaskExtraction),
		o.cfg.Years,
		o.cfg.NormalizeOptions(),
	)

	current, err := o.readBlock(ctx, o.cfg.CurrentBlock)
	if err != nil {
		return nil, err
	}
	if current[ingest.SectionBalanceSheet] == "" && current[ingest.SectionProfitLoss] == "" {
		return nil, fmt.Errorf("no statement text for block %s", o.cfg.CurrentBlock)
	}

	fmt.Printf("Extracting current pair from %s...\n", o.cfg.CurrentBlock)
	snapshot, err := extractor.CurrentPair(ctx,
		current[ingest.SectionBalanceSheet],
		current[ingest.SectionProfitLoss],
		current[ingest.SectionCashFlow])
	if err != nil {
		return nil, fmt.Errorf("current-pair extraction: %w", err)
	}

	if err := o.backfillHistorical(ctx, extractor, snapshot); err != nil {
		return nil, err
	}

	canonical.Finalize(snapshot, o.cfg.DefaultUnit, o.cfg.Years)

	if err := o.repo.SaveDocument(ctx, leadID, customerName, store.KindExtractedValues, snapshot); err != nil {
		return nil, err
	}
	fmt.Printf("Extraction complete: %d line items across %d years\n", len(snapshot), len(o.cfg.Years))
	return snapshot, nil
}

// backfillHistorical injects the earliest tracked year from the prior
// statement block. BS/PL labels come from the statements pass, cash-flow
// labels from a separate pass; either pass is skipped when its text is
// missing, leaving the sentinel column from injection of the other.
func (o *Orchestrator) backfillHistorical(ctx context.Context, extractor *extract.Extractor, snapshot canonical.Snapshot) error {
	year := o.cfg.HistoricalYear()
	prior, err := o.readBlock(ctx, o.cfg.PriorBlock)
	if err != nil {
		return err
	}

	if prior[ingest.SectionBalanceSheet] != "" || prior[ingest.SectionProfitLoss] != "" {
		fmt.Printf("Backfilling %s statements from %s...\n", year, o.cfg.PriorBlock)
		fragment, err := extractor.HistoricalStatements(ctx,
			prior[ingest.SectionBalanceSheet], prior[ingest.SectionProfitLoss], snapshot, year)
		if err != nil {
			return fmt.Errorf("historical statements extraction: %w", err)
		}
		canonical.InjectYear(snapshot, fragment, year, normalize.SourceBalanceSheet, normalize.SourceProfitLoss)
	}

	if prior[ingest.SectionCashFlow] != "" {
		fmt.Printf("Backfilling %s cash flow from %s...\n", year, o.cfg.PriorBlock)
		fragment, err := extractor.HistoricalCashFlow(ctx, prior[ingest.SectionCashFlow], snapshot, year)
		if err != nil {
			return fmt.Errorf("historical cash-flow extraction: %w", err)
		}
		canonical.InjectYear(snapshot, fragment, year, normalize.SourceCashFlow)
	}
	return nil
}

func (o *Orchestrator) readBlock(ctx context.Context, yearBlock string) (map[string]string, error) {
	texts := make(map[string]string, len(ingest.Sections))
	for _, section := range ingest.Sections {
		text, err := o.source.StatementText(ctx, yearBlock, section)
		if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", yearBlock, section, err)
		}
		texts[section] = text
	}
	return texts, nil
}

// RatioStage computes the ratios document. When snapshot is nil it is
// loaded from the repository, so the stage can rerun standalone; a lead
// that never ran extraction fails with store.ErrNotFound.
func (o *Orchestrator) RatioStage(ctx context.Context, leadID, customerName string, snapshot canonical.Snapshot) (map[string]*ratio.MultiYear, error) {
	if snapshot == nil {
		snapshot = canonical.Snapshot{}
		if err := o.repo.LoadDocument(ctx, leadID, store.KindExtractedValues, &snapshot); err != nil {
			return nil, fmt.Errorf("ratio stage: %w", err)
		}
	}
	ratios := ratio.ComputeAll(snapshot, o.cfg.Years, o.cfg.RatioConfig())
	if err := o.repo.SaveDocument(ctx, leadID, customerName, store.KindRatios, ratios); err != nil {
		return nil, err
	}
	fmt.Printf("Ratio analysis complete: %d ratios\n", len(ratios))
	return ratios, nil
}

// RiskStage grades the lead from the persisted ratios document.
func (o *Orchestrator) RiskStage(ctx context.Context, leadID, customerName string) (*risk.Report, error) {
	ratios := map[string]*ratio.MultiYear{}
	if err := o.repo.LoadDocument(ctx, leadID, store.KindRatios, &ratios); err != nil {
		return nil, fmt.Errorf("risk stage: %w", err)
	}
	report := risk.Compute(ratios, o.cfg.Years, o.cfg.RiskConfig())
	if err := o.repo.SaveDocument(ctx, leadID, customerName, store.KindRiskRating, report); err != nil {
		return nil, err
	}
	for _, year := range o.cfg.Years {
		fmt.Printf("Risk rating %s: %.2f (%s)\n", year, report.TotalScore[year], report.RiskBucket[year])
	}
	return report, nil
}

// MemoStage generates the narrative memo from the three persisted
// documents. All three must exist; a partial run fails here rather than
// producing a memo over incomplete inputs.
func (o *Orchestrator) MemoStage(ctx context.Context, leadID, customerName string) (*memo.Memo, error) {
	snapshot := canonical.Snapshot{}
	if err := o.repo.LoadDocument(ctx, leadID, store.KindExtractedValues, &snapshot); err != nil {
		return nil, fmt.Errorf("memo stage: %w", err)
	}
	ratios := map[string]*ratio.MultiYear{}
	if err := o.repo.LoadDocument(ctx, leadID, store.KindRatios, &ratios); err != nil {
		return nil, fmt.Errorf("memo stage: %w", err)
	}
	var report risk.Report
	if err := o.repo.LoadDocument(ctx, leadID, store.KindRiskRating, &report); err != nil {
		return nil, fmt.Errorf("memo stage: %w", err)
	}

	generator := memo.NewGenerator(
		o.agents.ProviderFor(agent.TaskMemo),
		o.agents.ModelFor(agent.TaskMemo),
	)
	m, err := generator.Generate(ctx, snapshot, ratios, &report)
	if err != nil {
		return nil, err
	}
	if err := o.repo.SaveDocument(ctx, leadID, customerName, store.KindSummaries, m); err != nil {
		return nil, err
	}
	fmt.Printf("Memo generated for %s\n", customerName)
	return m, nil
}
