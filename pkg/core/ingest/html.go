package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLSource handles annual reports published as HTML pages instead of
// PDFs: <company>/Standalone/<year-block>/{BS,PL,CF}.html. Markup is
// stripped down to the visible text, with table rows flattened one per
// line so the statement columns survive.
type HTMLSource struct {
	companyDir string
}

var _ TextSource = (*HTMLSource)(nil)

// NewHTMLSource roots a source at a company data directory.
func NewHTMLSource(companyDir string) *HTMLSource {
	return &HTMLSource{companyDir: companyDir}
}

// StatementText returns the visible text of a section page; a missing
// file yields empty text.
func (s *HTMLSource) StatementText(ctx context.Context, yearBlock, section string) (string, error) {
	path := filepath.Join(s.companyDir, "Standalone", yearBlock, section+".html")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return FlattenHTML(string(data))
}

// FlattenHTML reduces statement HTML to plain text: scripts and styles
// removed, table cells joined with a column separator, rows one per line.
func FlattenHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			b.WriteString(strings.Join(cells, " | "))
			b.WriteString("\n")
		}
	})
	// Non-tabular narrative text after the tables.
	doc.Find("table").Remove()
	body := strings.TrimSpace(doc.Find("body").Text())
	if body != "" {
		b.WriteString("\n")
		b.WriteString(strings.Join(strings.Fields(body), " "))
		b.WriteString("\n")
	}
	return b.String(), nil
}
