// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes normalized records in interchange formats:
// JSON, CSV, and BibTeX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []types.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// csvHeader fixes the column order for CSV export.
var csvHeader = []string{
	"id", "title", "authors", "published", "updated",
	"primary_category", "categories", "abstract",
	"doi", "journal_ref", "comment", "arxiv_url", "pdf_url",
}

// WriteCSV writes a header row and one flattened row per record.
// Multi-valued fields are joined with "; ".
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Title,
			strings.Join(r.Authors, "; "),
			r.Published,
			r.Updated,
			r.PrimaryCategory,
			strings.Join(r.Categories, "; "),
			r.Abstract,
			r.DOI,
			r.JournalRef,
			r.Comment,
			r.ArxivURL,
			r.PDFURL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBibTeX writes one BibTeX entry per record, blank-line separated.
func WriteBibTeX(w io.Writer, records []types.Record) error {
	entries := make([]string, len(records))
	for i, r := range records {
		entries[i] = BibTeX(r)
	}
	_, err := io.WriteString(w, strings.Join(entries, "\n\n")+"\n")
	return err
}

// BibTeX renders one record as an @article entry. Braces in free-text
// fields are escaped so the output stays parseable.
func BibTeX(rec types.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", CitationKey(rec))
	fmt.Fprintf(&b, "  title = {{%s}},\n", escapeBraces(rec.Title))
	fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(rec.Authors, " and "))
	fmt.Fprintf(&b, "  year = {%s},\n", yearString(rec))
	fmt.Fprintf(&b, "  eprint = {%s},\n", rec.ID)
	b.WriteString("  archivePrefix = {arXiv},\n")
	fmt.Fprintf(&b, "  primaryClass = {%s},\n", rec.PrimaryCategory)
	if rec.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", rec.DOI)
	}
	if rec.JournalRef != "" {
		fmt.Fprintf(&b, "  journal = {%s},\n", escapeBraces(rec.JournalRef))
	}
	fmt.Fprintf(&b, "  url = {%s},\n", rec.ArxivURL)
	fmt.Fprintf(&b, "  abstract = {%s}\n", escapeBraces(rec.Abstract))
	b.WriteString("}")
	return b.String()
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// CitationKey derives "surname + year + first title word", lowercased
// with non-alphanumerics stripped (e.g. "vaswani2017attention").
func CitationKey(rec types.Record) string {
	surname := "unknown"
	if len(rec.Authors) > 0 {
		if fields := strings.Fields(rec.Authors[0]); len(fields) > 0 {
			surname = fields[len(fields)-1]
		}
	}
	word := "paper"
	if fields := strings.Fields(rec.Title); len(fields) > 0 {
		word = fields[0]
	}
	key := strings.ToLower(surname + yearString(rec) + word)
	return nonAlnum.ReplaceAllString(key, "")
}

// yearString returns the four-digit publication year, "0000" when unknown.
func yearString(rec types.Record) string {
	if y := rec.Year(); y > 0 {
		return fmt.Sprintf("%04d", y)
	}
	return "0000"
}

func escapeBraces(s string) string {
	s = strings.ReplaceAll(s, "{", `\{`)
	return strings.ReplaceAll(s, "}", `\}`)
}
