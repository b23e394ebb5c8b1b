package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"scripture-tui/internal/history"
	"scripture-tui/internal/schema"
)

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently read chapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd, flags)
			if err != nil {
				return err
			}

			var entries []schema.ChapterHistory
			if search != "" {
				entries, err = store.Search(cmd.Context(), search, limit)
			} else {
				entries, err = store.List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), historyTable(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (max 100)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only entries whose book or version matches")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all reading history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd, flags)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	})
	return cmd
}

func openHistory(cmd *cobra.Command, flags *globalFlags) (*history.Store, error) {
	e, err := flags.load(cmd)
	if err != nil {
		return nil, err
	}
	return history.Open(e.cfg.HistoryDir, history.WithLogger(e.logger.Named("history")))
}

func historyTable(entries []schema.ChapterHistory) *uitable.Table {
	bold := color.New(color.Bold).SprintFunc()
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow(bold("WHEN"), bold("REFERENCE"), bold("VERSION"))
	for _, e := range entries {
		ref := fmt.Sprintf("%s %d", e.BookName, e.Chapter)
		if e.Verse != nil {
			ref += fmt.Sprintf(":%d", *e.Verse)
		}
		when := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
		table.AddRow(when, ref, e.VersionName)
	}
	return table
}
