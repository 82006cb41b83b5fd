// Package extract drives the LLM statement-extraction passes and turns
// their raw JSON payloads into canonical snapshots.
package extract

import "fmt"

// systemPrompt pins the response to a single JSON object.
const systemPrompt = "Return only a single valid JSON object."

// currentPairPrompt transcribes the Balance Sheet and Profit & Loss for the
// two most recent fiscal years.
func currentPairPrompt(bsText, plText, currentYear, priorYear string) string {
	return fmt.Sprintf(`You are a meticulous extraction agent. The inputs are plain-text exports of the company's standalone financial statements:
[BS] Balance Sheet, [PL] Statement of Profit and Loss.

STRICT RULES (must follow all):
1) Extract ONLY values explicitly present in the texts below. DO NOT guess or derive.
2) Years are exactly %[1]s and %[2]s (financial year ended March 31). If a value is missing or unreadable for a year, set it to the string "null".
3) Monetary amounts (units like "₹ crore", "₹ lakhs") must be integers (strip commas and symbols).
   Per-share / per-unit measures (e.g., EPS "₹ per share") must preserve decimals exactly as printed.
4) Use the 'source' field to indicate which statement the value came from: "bs" or "pl".
5) Preserve the printed unit (e.g., "₹ crore", "₹ lakhs", "₹ per share") verbatim for that line item. If no unit is shown, use an empty string.
6) Extract every individual line item and subtotal exactly as written, even if it is part of a breakdown.
7) Do NOT sum, average, or compute. Pure transcription by line item label.
8) If a line item appears in multiple statements, pick the statement where the numeric values are tabulated for both years.
9) Include breakdown rows, subtotals, totals, EPS, other/total comprehensive income, and weighted average shares.
10) Append section context in parentheses when necessary to avoid label collisions.
11) If the source shows a value in parentheses (e.g., (3,699)), you MUST return it as a STRING with parentheses preserved and commas removed.
12) If a line item sits under a sub-heading, include the full sub-heading in the line item name.

TARGET JSON SHAPE:
{"<Line Item>": {"value_%[1]s": <int/float/"null">, "value_%[2]s": <int/float/"null">, "source": "bs"|"pl", "unit": "<unit>"}}

-----BEGIN [BS]-----
%[3]s
-----END [BS]-----

-----BEGIN [PL]-----
%[4]s
-----END [PL]-----`, currentYear, priorYear, bsText, plText)
}

// cashFlowPrompt transcribes the Statement of Cash Flows for the current
// reporting pair.
func cashFlowPrompt(cfText, currentYear, priorYear string) string {
	return fmt.Sprintf(`You are a meticulous extraction agent. Input is the plain-text export of the company's standalone Statement of Cash Flows.

STRICT RULES (must follow all):
1) Extract ONLY values explicitly present. DO NOT guess or derive.
2) Years are exactly %[1]s and %[2]s. If a value is missing or unreadable for a year, set it to "null".
3) Monetary amounts must be integers (strip commas/symbols).
4) Use 'source' = "cf".
5) Preserve the printed unit verbatim for that line item, else empty string.
6) Extract EVERY individual line item and subtotal exactly as written, including operating adjustments, working-capital changes, investing, financing, and cash/FX totals.
7) Do NOT compute; pure transcription by label.
8) Preserve parentheses as strings like "(3699)".

TARGET JSON SHAPE:
{"<Exact Line Item>": {"value_%[1]s": <int|"null">, "value_%[2]s": <int|"null">, "source": "cf", "unit": "<unit>"}}

-----BEGIN [CF]-----
%[3]s
-----END [CF]-----`, currentYear, priorYear, cfText)
}

// historicalStatementsPrompt backfills one historical year into the
// existing canonical schema from a prior-period BS/PL export.
func historicalStatementsPrompt(bsText, plText, baseSchema, year string) string {
	return fmt.Sprintf(`You are a meticulous extraction agent. The inputs are:
1. The company's standalone Balance Sheet (BS) for the prior period
2. The company's standalone Profit & Loss (PL) for the prior period
3. The extracted values JSON built from the current period (with values, source, and unit).

TASK:
- Add ONLY "value_%[1]s" for each line item present in the base JSON schema.
- Do not change or remove any keys, sources, or units.
- If a %[1]s value is not present in the text, set "value_%[1]s": "-".
- If you find a line item in the prior-period text that is NOT in the base JSON, ignore it.

OUTPUT: A JSON object in the SAME schema as the base JSON, but with "value_%[1]s" fields filled in.

BASE JSON SCHEMA:
%[2]s

-----BEGIN [BS]-----
%[3]s
-----END [BS]-----

-----BEGIN [PL]-----
%[4]s
-----END [PL]-----`, year, baseSchema, bsText, plText)
}

// historicalCashFlowPrompt backfills one historical year for the cash-flow
// labels that already exist in the canonical schema.
func historicalCashFlowPrompt(cfText, cfSchema, year string) string {
	return fmt.Sprintf(`You are a careful cash-flow extractor.

INPUTS:
A) A prior-period Statement of Cash Flows text (two year columns; pick FY %[1]s).
B) A base JSON schema listing the EXACT cash-flow line items (keys) you must fill.

RULES:
- Extract ONLY the FY %[1]s numbers and fill ONLY the keys shown in the schema below.
- Do NOT add new keys, do NOT edit 'source' or 'unit' (the caller preserves them).
- If a requested line is present but unreadable, output "value_%[1]s": "-".
- Preserve parentheses as strings like "(3699)" and remove commas; otherwise return plain integers.
- Return a single JSON object mapping each key to: {"value_%[1]s": <int or "(...)" or "-">}.

CF KEYS TO FILL (from base):
%[2]s

-----BEGIN [CF]-----
%[3]s
-----END [CF]-----`, year, cfSchema, cfText)
}
