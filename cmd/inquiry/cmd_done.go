package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/config"
	"inquiry/internal/githubcli"
	"inquiry/internal/gitops"
	"inquiry/internal/issuegen"
	"inquiry/internal/tracker"
)

// doneCmd commits the work and closes the current issue
var doneCmd = &cobra.Command{
	Use:   "done [message...]",
	Short: "Commit, push, and close the current feature's issue",
	Long: `Completes the feature in progress: stages and commits all changes
(deriving a conventional commit message from the feature unless one is
given), pushes, then closes the GitHub issue with a completion comment.

With a clean working tree the command asks before closing the issue.`,
	RunE: runDone,
}

// abortCmd abandons the current feature without closing its issue
var abortCmd = &cobra.Command{
	Use:   "abort",
	Short: "Abandon the current feature, leaving its issue open",
	RunE:  runAbort,
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(abortCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	track := newTracker(ws)
	current, err := track.Load()
	if errors.Is(err, tracker.ErrNoCurrent) {
		return fmt.Errorf("no current feature: run 'inquiry start <id>' first")
	} else if err != nil {
		return err
	}

	// The feature may have been removed from the catalog since it was
	// started; fall back to its id.
	f, ok := cfg.Features.Get(current.FeatureID)
	if !ok {
		f = config.Feature{ID: current.FeatureID}
	}

	git := gitops.New(nil, logger)
	ctx, cancel := opContext()
	defer cancel()

	dirty, err := git.HasChanges(ctx)
	if err != nil {
		return err
	}

	var sha string
	if !dirty {
		fmt.Println(ui.Warnmark("No changes to commit"))
		if !confirm(os.Stdin, os.Stdout, "Close issue anyway?") {
			return nil
		}
	} else {
		message := issuegen.CommitMessage(f, strings.Join(args, " "))
		full := fmt.Sprintf("%s\n\nCloses #%d", message, current.Issue)

		fmt.Println("Staging changes...")
		if err := git.StageAll(ctx); err != nil {
			return err
		}

		fmt.Printf("Committing: %s\n", message)
		if err := git.Commit(ctx, full); err != nil {
			return err
		}

		sha, err = git.ShortHead(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Pushing...")
		if err := git.Push(ctx); err != nil {
			return err
		}
	}

	// Close via gh as a backup in case the commit trailer did not auto-close.
	gh := githubcli.New(cfg.Project.Repo, nil, logger)
	state, err := gh.IssueState(ctx, current.Issue)
	if err != nil {
		logger.Warn("could not check issue state", zap.Error(err))
	} else if strings.EqualFold(state, "open") {
		if sha != "" {
			if err := gh.Comment(ctx, current.Issue, fmt.Sprintf("Completed in commit %s", sha)); err != nil {
				logger.Warn("could not comment on issue", zap.Error(err))
			}
		}
		if err := gh.CloseIssue(ctx, current.Issue); err != nil {
			return err
		}
		fmt.Println(ui.Checkmark(fmt.Sprintf("Closed Issue #%d", current.Issue)))
	}

	if err := track.Clear(); err != nil {
		return err
	}

	fmt.Printf("\nFeature %s complete!\n\n", current.FeatureID)
	return nil
}

func runAbort(cmd *cobra.Command, args []string) error {
	_, ws, err := loadConfig()
	if err != nil {
		return err
	}

	track := newTracker(ws)
	current, err := track.Load()
	if errors.Is(err, tracker.ErrNoCurrent) {
		fmt.Println("No current feature")
		return nil
	} else if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Abandon %s (Issue #%d)? Issue will remain open.", current.FeatureID, current.Issue)
	if !confirm(os.Stdin, os.Stdout, prompt) {
		return nil
	}

	if err := track.Clear(); err != nil {
		return err
	}
	fmt.Printf("Abandoned %s. Issue #%d still open.\n", current.FeatureID, current.Issue)
	return nil
}
