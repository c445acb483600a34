package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/config"
	"inquiry/internal/githubcli"
	"inquiry/internal/issuegen"
	"inquiry/internal/ledger"
	"inquiry/internal/tracker"
)

// startCmd opens a GitHub issue for a feature and shows its prompt
var startCmd = &cobra.Command{
	Use:   "start [feature-id]",
	Short: "Create a GitHub issue for a feature and show its prompt",
	Long: `Starts work on a feature: creates a labeled GitHub issue from the
feature entry, records it as the current feature, and prints the feature's
prompt file.

Only one feature can be in progress at a time; finish it with 'inquiry done'
or abandon it with 'inquiry abort' first.`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	track := newTracker(ws)
	if current, err := track.Load(); err == nil {
		return fmt.Errorf("already working on %s (Issue #%d): run 'inquiry done' to complete it or 'inquiry abort' to abandon it",
			current.FeatureID, current.Issue)
	} else if !errors.Is(err, tracker.ErrNoCurrent) {
		return err
	}

	f, err := cfg.Feature(args[0])
	if err != nil {
		return err
	}

	promptRel := filepath.ToSlash(ws.PromptFile(f.ID))
	body := issuegen.FeatureBody(f, promptRel)

	gh := githubcli.New(cfg.Project.Repo, nil, logger)
	ctx, cancel := opContext()
	defer cancel()

	// Make sure the feature's labels exist; a label that cannot be created is
	// dropped from the issue rather than failing the start.
	var labels []string
	for _, name := range issuegen.FeatureLabels(f) {
		if err := gh.EnsureLabel(ctx, name, config.DefaultLabelColor); err != nil {
			logger.Warn("skipping label", zap.String("label", name), zap.Error(err))
			continue
		}
		labels = append(labels, name)
	}

	issue, err := gh.CreateIssue(ctx, githubcli.IssueRequest{
		Title:  issuegen.FeatureTitle(f),
		Body:   body,
		Labels: labels,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.Checkmark(fmt.Sprintf("Created Issue #%d: %s", issue.Number, f.Title)))
	fmt.Printf("  %s\n\n", ui.MutedStyle.Render(issue.URL))

	if err := track.Set(f.ID, issue.Number); err != nil {
		return err
	}

	led := openLedger(ws)
	if led != nil {
		defer led.Close()
	}
	recordIssue(ctx, led, ledger.Entry{
		Kind:   "feature",
		Ref:    f.ID,
		Title:  f.Title,
		Number: issue.Number,
		URL:    issue.URL,
		Labels: labels,
	})

	promptFile := ws.PromptFile(f.ID)
	if content, err := os.ReadFile(promptFile); err == nil {
		fmt.Println(ui.Rule(60))
		fmt.Println(ui.HeaderStyle.Render("PROMPT"))
		fmt.Println(ui.Rule(60))
		fmt.Println()
		fmt.Println(ui.RenderMarkdown(string(content)))
	} else {
		fmt.Println(ui.Warnmark(fmt.Sprintf("No prompt file at: %s", promptFile)))
		fmt.Println("  Create it or use the acceptance criteria above.")
		fmt.Println()
	}

	fmt.Println(ui.Rule(60))
	fmt.Println("When done, run: inquiry done")
	fmt.Println(ui.Rule(60))
	fmt.Println()
	return nil
}
