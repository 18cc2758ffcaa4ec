// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Fetch papers by arXiv identifier",
	Long: `Get fetches one or more papers by identifier. Identifiers may be bare
IDs (2301.12345), versioned IDs (2301.12345v2), old-style IDs
(quant-ph/0201082), or abs/pdf URLs; all forms are normalized before
querying.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().String("format", "detail", "output format: table, detail, json, csv, bibtex")
	getCmd.Flags().String("output", "", "write output to a file instead of stdout")
	getCmd.Flags().Bool("save", false, "save fetched papers to the local library")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := clientFromConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var recs []types.Record
	if len(args) == 1 {
		rec, err := client.ByID(ctx, args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no paper found for %q", args[0])
		}
		recs = []types.Record{*rec}
	} else {
		recs, err = client.ByIDs(ctx, args)
		if err != nil {
			return err
		}
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveToLibrary(ctx, recs); err != nil {
			return err
		}
	}

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")
	return writeRecords(recs, format, outPath, "")
}
