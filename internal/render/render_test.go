// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, nil)
	if got := buf.String(); got != "No results found.\n" {
		t.Errorf("Table(nil) = %q", got)
	}
}

func TestTableRows(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []types.Record{
		{
			ID:              "2401.00001",
			Title:           "A Short Title",
			Authors:         []string{"Ada Lovelace", "Charles Babbage"},
			Published:       "2024-01-15",
			PrimaryCategory: "cs.LG",
		},
	})

	out := buf.String()
	for _, want := range []string{"2401.00001", "A Short Title", "Ada Lovelace et al.", "cs.LG", "1 results"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestDetailedOmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	Detailed(&buf, []types.Record{{
		ID:        "2401.00001",
		Title:     "A Paper",
		Published: "2024-01-15",
		ArxivURL:  "https://arxiv.org/abs/2401.00001",
	}})

	out := buf.String()
	if strings.Contains(out, "DOI:") || strings.Contains(out, "Journal:") {
		t.Errorf("detailed output has empty optional fields:\n%s", out)
	}
	if !strings.Contains(out, "URL:       https://arxiv.org/abs/2401.00001") {
		t.Errorf("detailed output missing URL:\n%s", out)
	}
}

func TestOneLine(t *testing.T) {
	got := OneLine(types.Record{Published: "2024-01-15", Title: "A Paper"})
	if got != "[2024-01-15] A Paper" {
		t.Errorf("OneLine = %q", got)
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name, in, term, want string
	}{
		{"case insensitive", "Deep Transformer nets", "transformer", "Deep **Transformer** nets"},
		{"multiple matches", "graph on a graph", "graph", "**graph** on a **graph**"},
		{"empty term", "unchanged", "", "unchanged"},
		{"regex metacharacters", "a c++ paper", "c++", "a **c++** paper"},
		{"no match", "nothing here", "quantum", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(tt.in, tt.term, "**"); got != tt.want {
				t.Errorf("Highlight(%q, %q) = %q, want %q", tt.in, tt.term, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 70)
	if got := truncate(long, 60); len(got) != 60 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate = %q (len %d)", got, len(got))
	}
	if got := truncate("short", 60); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
}

func TestTruncateMultiByte(t *testing.T) {
	accented := strings.Repeat("é", 70)
	got := truncate(accented, 60)
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 60 {
		t.Errorf("truncate rune count = %d, want 60", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate = %q, want ... suffix", got)
	}
}
