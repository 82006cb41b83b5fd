package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFSource reads statement PDFs from the on-disk company layout:
//
//	<company>/Standalone/<year-block>/{BS,PL,CF}.pdf
//
// Extracted text is cached next to the PDFs under text_extractions/ so a
// rerun skips the PDF pass entirely.
type PDFSource struct {
	companyDir string
}

var _ TextSource = (*PDFSource)(nil)

// NewPDFSource roots a source at a company data directory.
func NewPDFSource(companyDir string) *PDFSource {
	return &PDFSource{companyDir: companyDir}
}

// StatementText returns the section text for a year block, extracting from
// the PDF on first use. A missing PDF yields empty text, not an error.
func (s *PDFSource) StatementText(ctx context.Context, yearBlock, section string) (string, error) {
	scopeDir := filepath.Join(s.companyDir, "Standalone", yearBlock)
	txtPath := filepath.Join(scopeDir, "text_extractions", section+".txt")

	if data, err := os.ReadFile(txtPath); err == nil {
		return string(data), nil
	}

	pdfPath := filepath.Join(scopeDir, section+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", nil
	}

	text, err := extractPDFText(ctx, pdfPath)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", pdfPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(txtPath), 0o755); err == nil {
		// Cache write failures are non-fatal; next run re-extracts.
		_ = os.WriteFile(txtPath, []byte(text), 0o644)
	}
	return text, nil
}

// extractPDFText pulls per-page content through pdfcpu and stitches it into
// one page-marked text blob.
func extractPDFText(ctx context.Context, pdfPath string) (string, error) {
	pdfCtx, err := api.ReadContextFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir, err := os.MkdirTemp("", "appraisal-pdf-*")
	if err != nil {
		return "", fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(pdfPath, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}

	pageTexts := make(map[int]string, pageCount)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("read extraction dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		var pageNum int
		name := entry.Name()
		if _, err := fmt.Sscanf(name, "Content_page_%d", &pageNum); err != nil {
			if _, err := fmt.Sscanf(name, "page_%d", &pageNum); err != nil {
				continue
			}
		}
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = string(data)
	}

	var b strings.Builder
	for page := 1; page <= pageCount; page++ {
		fmt.Fprintf(&b, "\n\n===== PAGE %d / %d =====\n", page, pageCount)
		b.WriteString(pageTexts[page])
	}
	return b.String(), nil
}
