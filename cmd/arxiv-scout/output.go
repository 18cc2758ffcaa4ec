// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/arxiv-scout/internal/export"
	"github.com/pdiddy/arxiv-scout/internal/render"
	"github.com/pdiddy/arxiv-scout/pkg/types"
)

// highlightMarker wraps matched query terms in terminal output.
const highlightMarker = "**"

// writeRecords renders records in the requested format. When outPath is
// empty the output goes to stdout.
func writeRecords(records []types.Record, format, outPath, highlight string) error {
	w := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "table", "":
		if highlight != "" {
			records = highlightRecords(records, highlight)
		}
		render.Table(w, records)
		return nil
	case "detail":
		if highlight != "" {
			records = highlightRecords(records, highlight)
		}
		render.Detailed(w, records)
		return nil
	case "json":
		return export.WriteJSON(w, records)
	case "csv":
		return export.WriteCSV(w, records)
	case "bibtex":
		return export.WriteBibTeX(w, records)
	default:
		return fmt.Errorf("unknown format %q (want table, detail, json, csv, or bibtex)", format)
	}
}

func highlightRecords(records []types.Record, term string) []types.Record {
	out := make([]types.Record, len(records))
	for i, r := range records {
		r.Title = render.Highlight(r.Title, term, highlightMarker)
		r.Abstract = render.Highlight(r.Abstract, term, highlightMarker)
		out[i] = r
	}
	return out
}
