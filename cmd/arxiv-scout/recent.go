// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-scout/internal/arxiv"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent arXiv submissions",
	Long: `Recent lists the newest submissions, optionally restricted to a
category, a query, or both. With neither set it shows the newest
submissions across all of arXiv.`,
	RunE: runRecent,
}

func init() {
	recentCmd.Flags().String("category", "", "arXiv category (e.g. cs.LG, quant-ph)")
	recentCmd.Flags().String("query", "", "field-tagged query combined with the category")
	recentCmd.Flags().Int("days-back", 0, "only show papers published in the last N days")
	recentCmd.Flags().Int("max-results", 50, "maximum number of results")
	recentCmd.Flags().String("format", "table", "output format: table, detail, json, csv, bibtex")
	recentCmd.Flags().String("output", "", "write output to a file instead of stdout")
	recentCmd.Flags().String("highlight", "", "highlight a term in table and detail output")

	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	client, err := clientFromConfig()
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	query, _ := cmd.Flags().GetString("query")
	daysBack, _ := cmd.Flags().GetInt("days-back")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	recs, err := client.Recent(context.Background(), arxiv.RecentOptions{
		Category:   category,
		Query:      query,
		MaxResults: maxResults,
		DaysBack:   daysBack,
	})
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	highlight, _ := cmd.Flags().GetString("highlight")
	return writeRecords(recs, format, outPath, highlight)
}
