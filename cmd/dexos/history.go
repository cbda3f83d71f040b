package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dexos/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show pages loaded in the browser",
	Long: `Display the most recent pages loaded in the DexOS browser.

Examples:
  dexos history
  dexos history --limit 5
  dexos history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of entries to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the whole history")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearHistory(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	}

	visits, err := store.RecentVisits(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("retrieving history: %w", err)
	}

	fmt.Println("Browser History")
	fmt.Println()

	if len(visits) == 0 {
		fmt.Println("No pages visited yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %s\n", "Date", "Status", "Address")
	fmt.Printf("  %-16s  %-6s  %s\n", "----", "------", "-------")

	for _, v := range visits {
		status := "-"
		if v.Status > 0 {
			status = fmt.Sprint(v.Status)
		}
		fmt.Printf("  %-16s  %-6s  %s\n", v.CreatedAt.Local().Format("2006-01-02 15:04"), status, v.URL)
		if v.Title != "" {
			fmt.Printf("  %-16s  %-6s  %s\n", "", "", v.Title)
		}
	}
	return nil
}
