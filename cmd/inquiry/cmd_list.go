package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/tracker"
)

var listPhase string

// listCmd prints the feature catalog
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all features in the catalog",
	Long: `Lists every feature from features.yaml with its size and phase.
The feature currently in progress is marked with an arrow.

Examples:
  inquiry list
  inquiry list --phase 1`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listPhase, "phase", "", "only show features in this phase")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	current, err := newTracker(ws).Load()
	if err != nil && !errors.Is(err, tracker.ErrNoCurrent) {
		return err
	}

	fmt.Println()
	fmt.Println(ui.HeaderStyle.Render("INQUIRY FRAMEWORK FEATURES"))
	fmt.Println()
	fmt.Printf("   %-8s %-50s %-12s %s\n", "ID", "Title", "Size", "Phase")
	fmt.Println(ui.Rule(90))

	shown := 0
	for _, id := range cfg.Features.IDs() {
		f, _ := cfg.Features.Get(id)
		if listPhase != "" && f.PhaseNumber() != listPhase && f.Phase != "phase:"+listPhase {
			continue
		}
		shown++

		line := fmt.Sprintf("%-8s %-50s %-12s %s", id, f.Title, f.SizeValue(), f.PhaseNumber())
		if id == current.FeatureID {
			fmt.Println(ui.CurrentStyle.Render("→  " + line))
		} else {
			fmt.Println("   " + line)
		}
	}

	if shown == 0 {
		fmt.Println(ui.MutedStyle.Render("   (no features)"))
	}
	fmt.Println()
	if current.FeatureID != "" {
		fmt.Printf("Current: %s (Issue #%d)\n\n", current.FeatureID, current.Issue)
	}
	return nil
}
