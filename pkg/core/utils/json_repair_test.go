package utils

import (
	"strings"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\": 1}":                   "{\"a\": 1}",
		"```json\n{\"a\": 1}\n```":     "{\"a\": 1}",
		"```\n{\"a\": 1}\n```":         "{\"a\": 1}",
		"  ```json\n{\"a\": 1}\n```  ": "{\"a\": 1}",
		"no fence, just text":          "no fence, just text",
	}
	for in, want := range cases {
		if got := StripCodeFence(in); got != want {
			t.Errorf("StripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeModelJSON(t *testing.T) {
	type doc struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	// Strict JSON.
	var a doc
	if err := DecodeModelJSON(`{"name": "x", "score": 3}`, &a); err != nil {
		t.Fatalf("strict: %v", err)
	}
	if a.Name != "x" || a.Score != 3 {
		t.Errorf("strict: %+v", a)
	}

	// Fenced response.
	var b doc
	if err := DecodeModelJSON("```json\n{\"name\": \"y\", \"score\": 7}\n```", &b); err != nil {
		t.Fatalf("fenced: %v", err)
	}
	if b.Name != "y" {
		t.Errorf("fenced: %+v", b)
	}

	// Broken JSON a repair pass can fix: trailing comma, unclosed brace.
	var c doc
	if err := DecodeModelJSON(`{"name": "z", "score": 9,`, &c); err != nil {
		t.Fatalf("repairable: %v", err)
	}
	if c.Name != "z" || c.Score != 9 {
		t.Errorf("repairable: %+v", c)
	}

	// Unquoted keys survive via the lenient parse.
	var d doc
	if err := DecodeModelJSON(`{name: "w", score: 2}`, &d); err != nil {
		t.Fatalf("hjson-style: %v", err)
	}
	if d.Name != "w" || d.Score != 2 {
		t.Errorf("hjson-style: %+v", d)
	}
}

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{"<h1>", "Title", "<strong>bold</strong>"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q:\n%s", want, html)
		}
	}
	if !ValidMarkdown("# anything") {
		t.Error("ValidMarkdown rejected plain markdown")
	}
}
