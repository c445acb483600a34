package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"inquiry/internal/config"
	"inquiry/internal/ledger"
	"inquiry/internal/tracker"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "inquiry",
	Short: "inquiry - Inquiry Framework workflow manager",
	Long: `inquiry manages the Inquiry Framework research and development workflow.

It reads a YAML feature catalog (features.yaml), turns features and research
tasks into GitHub issues via the gh CLI, tracks the single feature currently
in progress, scaffolds markdown prompt files and research documents, and
combines prompts for batch execution.

Typical flow:
  inquiry list                 # see the feature catalog
  inquiry start 1.1.1          # open an issue, show the prompt
  inquiry done                 # commit, push, close the issue`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "features.yaml", "path to the features YAML file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "timeout for git and gh calls")
}

// loadConfig reads the features file named by --config.
func loadConfig() (*config.Config, config.Workspace, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Workspace{}, err
	}
	return cfg, config.NewWorkspace(configPath), nil
}

// newTracker returns the current-feature tracker for the workspace.
func newTracker(ws config.Workspace) *tracker.Tracker {
	return tracker.New(ws.CurrentFile())
}

// openLedger opens the issue ledger. The ledger is best-effort: on failure it
// logs and returns nil, and callers must tolerate a nil ledger.
func openLedger(ws config.Workspace) *ledger.Ledger {
	l, err := ledger.Open(ws.LedgerPath(), logger)
	if err != nil {
		logger.Warn("issue ledger unavailable", zap.Error(err))
		return nil
	}
	return l
}

// recordIssue appends to the ledger when it is open.
func recordIssue(ctx context.Context, l *ledger.Ledger, e ledger.Entry) {
	if l == nil {
		return
	}
	if err := l.Record(ctx, e); err != nil {
		logger.Warn("failed to record issue in ledger", zap.Error(err))
	}
}

// opContext returns the context used for a single git/gh invocation.
func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// confirm prompts [y/N] and reports whether the user agreed.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
