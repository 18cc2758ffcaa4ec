// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-scout/internal/arxiv"
	"github.com/pdiddy/arxiv-scout/internal/export"
	"github.com/pdiddy/arxiv-scout/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search arXiv with a field-tagged query",
	Long: `Search queries the arXiv API with a field-tagged query string. Field
prefixes (ti:, au:, abs:, cat:, all:) combine with AND, OR, NOT, and
parentheses; the query is passed to the API verbatim.

With --all the search pages through the complete result set, respecting
the configured request delay between pages.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 10, "maximum number of results (capped at 2000)")
	searchCmd.Flags().String("sort-by", "relevance", "sort field: relevance, submittedDate, lastUpdatedDate")
	searchCmd.Flags().String("sort-order", "descending", "sort order: ascending, descending")
	searchCmd.Flags().Int("start", 0, "result offset for manual pagination")
	searchCmd.Flags().Bool("all", false, "fetch every matching result across pages")
	searchCmd.Flags().Int("page-size", 100, "page size for --all")
	searchCmd.Flags().Int("max-total", 0, "cap on total results for --all (0 = no cap)")
	searchCmd.Flags().String("format", "table", "output format: table, detail, json, csv, bibtex")
	searchCmd.Flags().String("output", "", "write output to a file instead of stdout")
	searchCmd.Flags().String("results-file", "", "also save query, parameters, and records to a YAML result file")
	searchCmd.Flags().Bool("save", false, "save results to the local library")
	searchCmd.Flags().String("highlight", "", "highlight a term in table and detail output")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	client, err := clientFromConfig()
	if err != nil {
		return err
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	sortBy, _ := cmd.Flags().GetString("sort-by")
	sortOrder, _ := cmd.Flags().GetString("sort-order")
	start, _ := cmd.Flags().GetInt("start")
	fetchAll, _ := cmd.Flags().GetBool("all")

	ctx := context.Background()

	var recs []types.Record
	if fetchAll {
		pageSize, _ := cmd.Flags().GetInt("page-size")
		maxTotal, _ := cmd.Flags().GetInt("max-total")
		recs, err = client.PaginateAll(ctx, query, arxiv.PaginateOptions{
			MaxTotal:  maxTotal,
			PageSize:  pageSize,
			SortBy:    arxiv.SortBy(sortBy),
			SortOrder: arxiv.SortOrder(sortOrder),
		})
	} else {
		recs, err = client.Search(ctx, query, arxiv.SearchOptions{
			MaxResults: maxResults,
			SortBy:     arxiv.SortBy(sortBy),
			SortOrder:  arxiv.SortOrder(sortOrder),
			Start:      start,
		})
	}
	if err != nil {
		return err
	}

	if resultsFile, _ := cmd.Flags().GetString("results-file"); resultsFile != "" {
		rf := export.NewResultFile(query, export.ResultParams{
			MaxResults: maxResults,
			SortBy:     sortBy,
			SortOrder:  sortOrder,
			Start:      start,
		}, recs)
		if err := export.WriteResultFile(resultsFile, rf); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved result file: %s\n", resultsFile)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveToLibrary(ctx, recs); err != nil {
			return err
		}
	}

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	highlight, _ := cmd.Flags().GetString("highlight")
	return writeRecords(recs, format, outPath, highlight)
}

func saveToLibrary(ctx context.Context, recs []types.Record) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Save(ctx, recs)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %d new paper(s) to library\n", n)
	return nil
}
