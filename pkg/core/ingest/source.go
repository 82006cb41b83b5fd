// Package ingest supplies plain statement text to the extraction passes.
// PDF and HTML handling live here at the pipeline boundary; nothing
// downstream ever sees the source documents.
package ingest

import "context"

// Statement sections a reporting period ships with.
const (
	SectionBalanceSheet = "BS"
	SectionProfitLoss   = "PL"
	SectionCashFlow     = "CF"
)

// Sections lists them in processing order.
var Sections = []string{SectionBalanceSheet, SectionProfitLoss, SectionCashFlow}

// TextSource yields the plain text of one statement section for one year
// block. A missing section returns empty text and no error; the extraction
// pass simply skips it.
type TextSource interface {
	StatementText(ctx context.Context, yearBlock, section string) (string, error)
}
