// Package utils holds small shared helpers for LLM output handling.
package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// StripCodeFence removes a wrapping markdown code fence (```json ... ```)
// that chat models frequently add around JSON responses.
func StripCodeFence(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```")
	if idx := strings.Index(out, "\n"); idx >= 0 && !strings.HasPrefix(out, "\n") {
		// Drop the language tag on the opening fence line.
		out = out[idx+1:]
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

// RepairJSON fixes common LLM JSON defects (single quotes, trailing commas,
// unclosed brackets, bare literals) and returns valid JSON text.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// DecodeModelJSON unmarshals an LLM response into v, tolerating the usual
// defects: code fences first, then strict JSON, then json-repair, then an
// hjson parse as the last resort.
func DecodeModelJSON(response string, v interface{}) error {
	cleaned := StripCodeFence(response)
	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}
	if repaired, err := RepairJSON(cleaned); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}
	if err := hjson.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("model response is not decodable JSON: %w", err)
	}
	return nil
}
