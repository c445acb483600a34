package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/gitops"
	"inquiry/internal/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current feature and working tree state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	track := newTracker(ws)
	current, err := track.Load()
	if errors.Is(err, tracker.ErrNoCurrent) {
		fmt.Println("No feature in progress.")
		fmt.Println("Run 'inquiry list' to see available features, then 'inquiry start <id>'.")
		return nil
	} else if err != nil {
		return err
	}

	fmt.Println(ui.HeaderStyle.Render("Current Feature"))
	fmt.Println(ui.Rule(40))

	if f, ok := cfg.Features.Get(current.FeatureID); ok {
		fmt.Printf("  %s  %s\n", f.ID, f.Title)
		fmt.Printf("  Phase:     %s\n", orNA(f.Phase))
		fmt.Printf("  Component: %s\n", orNA(f.Component))
		fmt.Printf("  Size:      %s\n", orNA(f.Size))
	} else {
		fmt.Printf("  %s  %s\n", current.FeatureID, ui.MutedStyle.Render("(not in features.yaml)"))
	}
	fmt.Printf("  Issue:     #%d\n", current.Issue)

	ctx, cancel := opContext()
	defer cancel()

	git := gitops.New(nil, logger)
	short, err := git.ShortStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.HeaderStyle.Render("Working Tree"))
	fmt.Println(ui.Rule(40))
	if short == "" {
		fmt.Println("  " + ui.Checkmark("clean"))
	} else {
		fmt.Println(short)
	}

	fmt.Println()
	fmt.Println("When finished: inquiry done")
	return nil
}
