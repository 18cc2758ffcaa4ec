// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-scout/internal/export"
	"github.com/pdiddy/arxiv-scout/internal/library"
	"github.com/pdiddy/arxiv-scout/internal/render"
	"github.com/pdiddy/arxiv-scout/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local paper library",
	Long: `Library manages papers saved to the local SQLite database. Use
subcommands to list saved papers, search them with full-text search,
mark them read, or show totals.`,
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <result-file.yaml>",
	Short: "Import records from a saved result file",
	Long: `Save imports the records of a YAML result file (written by
search --results-file) into the library. Papers already present are left
untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibrarySave,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved papers, newest first",
	RunE:  runLibraryList,
}

var librarySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over saved titles and abstracts",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibrarySearch,
}

var libraryReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a saved paper as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRead,
}

var libraryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library totals",
	RunE:  runLibraryStats,
}

func init() {
	libraryListCmd.Flags().Bool("unread", false, "only list unread papers")
	libraryListCmd.Flags().Int("limit", 0, "maximum entries to list (0 = all)")
	libraryListCmd.Flags().String("format", "table", "output format: table, detail, json, csv, bibtex")

	librarySearchCmd.Flags().Int("limit", 20, "maximum matches to show")
	librarySearchCmd.Flags().String("format", "table", "output format: table, detail, json, csv, bibtex")

	libraryCmd.AddCommand(librarySaveCmd, libraryListCmd, librarySearchCmd, libraryReadCmd, libraryStatsCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibrarySave(cmd *cobra.Command, args []string) error {
	rf, err := export.ReadResultFile(args[0])
	if err != nil {
		return err
	}
	return saveToLibrary(context.Background(), rf.Records)
}

func openLibrary() (*library.Store, error) {
	return library.Open(types.LibraryConfig{Path: viper.GetString("library.path")})
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	unread, _ := cmd.Flags().GetBool("unread")
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := store.List(context.Background(), unread, limit)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return writeRecords(savedRecords(entries), format, "", "")
}

func runLibrarySearch(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.SearchText(context.Background(), args[0], limit)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return writeRecords(savedRecords(entries), format, "", args[0])
}

func runLibraryRead(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	ok, err := store.MarkRead(context.Background(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no saved paper with id %q", args[0])
	}

	entry, err := store.Get(context.Background(), args[0])
	if err == nil && entry != nil {
		fmt.Fprintf(os.Stderr, "Marked read: %s\n", render.OneLine(entry.Record))
	}
	return nil
}

func runLibraryStats(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("papers: %d\nunread: %d\n", stats.Total, stats.Unread)
	return nil
}

func savedRecords(entries []library.Saved) []types.Record {
	recs := make([]types.Record, len(entries))
	for i, e := range entries {
		recs[i] = e.Record
	}
	return recs
}
