// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats records for terminal output.
package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

// Table writes records as a human-readable table to w.
func Table(w io.Writer, records []types.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-14s  %-60s  %-20s  %-10s  %s\n",
		"Rank", "ID", "Title", "Authors", "Published", "Category")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range records {
		fmt.Fprintf(w, "%-4d  %-14s  %-60s  %-20s  %-10s  %s\n",
			i+1, r.ID, truncate(r.Title, 60), formatAuthors(r.Authors),
			r.Published, r.PrimaryCategory)
	}

	fmt.Fprintf(w, "\n%d results\n", len(records))
}

// Detailed writes one multi-line block per record.
func Detailed(w io.Writer, records []types.Record) {
	for i, r := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%d] %s\n", i+1, r.Title)
		fmt.Fprintf(w, "    ID:        %s\n", r.ID)
		fmt.Fprintf(w, "    Authors:   %s\n", strings.Join(r.Authors, ", "))
		fmt.Fprintf(w, "    Published: %s", r.Published)
		if r.Updated != "" && r.Updated != r.Published {
			fmt.Fprintf(w, " (updated %s)", r.Updated)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "    Category:  %s\n", r.PrimaryCategory)
		if r.DOI != "" {
			fmt.Fprintf(w, "    DOI:       %s\n", r.DOI)
		}
		if r.JournalRef != "" {
			fmt.Fprintf(w, "    Journal:   %s\n", r.JournalRef)
		}
		fmt.Fprintf(w, "    URL:       %s\n", r.ArxivURL)
		if r.Abstract != "" {
			fmt.Fprintf(w, "    %s\n", truncate(r.Abstract, 300))
		}
	}
}

// OneLine returns a single-line summary for a record.
func OneLine(r types.Record) string {
	return fmt.Sprintf("[%s] %s", r.Published, truncate(r.Title, 80))
}

// Highlight wraps case-insensitive occurrences of term in marker pairs,
// preserving the original casing of the matched text. Empty terms return
// s unchanged.
func Highlight(s, term, marker string) string {
	if term == "" {
		return s
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
	return re.ReplaceAllStringFunc(s, func(m string) string {
		return marker + m + marker
	})
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to max characters, counting runes so accented
// names never split mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
