package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dexos/internal/shell"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the desktop applications",
	Long:  `Shows the applications available on the DexOS desktop.`,
	Args:  cobra.NoArgs,
	Run:   runApps,
}

func runApps(_ *cobra.Command, _ []string) {
	apps := shell.Apps()

	fmt.Println("Desktop applications:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, a := range apps {
		maxIDLen = max(maxIDLen, len(a.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-12s  %s\n", "Key", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-3s  %-*s  %-12s  %s\n", "---", maxIDLen, "--", "-----", "-----------")

	for i, a := range apps {
		fmt.Printf("  F%-2d  %-*s  %-12s  %s\n", i+1, maxIDLen, a.ID, a.Title, a.Description)
	}

	fmt.Println()
	fmt.Println("Run 'dexos run --open <id>' to start with an app open.")
}
