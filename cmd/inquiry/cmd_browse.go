package main

import (
	"errors"

	"github.com/spf13/cobra"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/tracker"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the feature catalog interactively",
	Long: `Opens a full-screen list of every feature in features.yaml.
Enter shows a detail pane, / filters, q quits. Read-only; use
'inquiry start' to begin work on a feature.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	var currentID string
	current, err := newTracker(ws).Load()
	if err == nil {
		currentID = current.FeatureID
	} else if !errors.Is(err, tracker.ErrNoCurrent) {
		return err
	}

	return ui.RunBrowser(cfg, currentID)
}
