package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/config"
	"inquiry/internal/promptgen"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Scaffold, list, and combine prompt files",
}

var promptsCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Scaffold a prompt file for one feature",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsCreate,
}

var promptsCreateAllOverwrite bool

var promptsCreateAllCmd = &cobra.Command{
	Use:   "create-all",
	Short: "Scaffold prompt files for every feature",
	RunE:  runPromptsCreateAll,
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing prompt files grouped by type",
	RunE:  runPromptsList,
}

var (
	combineTypes  []string
	combineIDs    []string
	combinePhase  int
	combineOutput string
	combineStdout bool
)

var promptsCombineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge prompt files into a single markdown document",
	Long: `Concatenates the selected prompt files, newest scan order, into one
document under generated/. Filters compose: --type narrows by prefix
(R, S, V, P, or a phase number), --ids picks exact files, --phase keeps
one phase. With no filters every prompt is included.`,
	RunE: runPromptsCombine,
}

var promptsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-combine prompts whenever a file under prompts/ changes",
	RunE:  runPromptsWatch,
}

func init() {
	promptsCreateAllCmd.Flags().BoolVar(&promptsCreateAllOverwrite, "overwrite", false, "replace prompt files that already exist")

	promptsCombineCmd.Flags().StringSliceVar(&combineTypes, "type", nil, "prompt types to include (R, S, V, P, 1-5)")
	promptsCombineCmd.Flags().StringSliceVar(&combineIDs, "ids", nil, "exact prompt ids to include")
	promptsCombineCmd.Flags().IntVar(&combinePhase, "phase", 0, "only prompts for this phase")
	promptsCombineCmd.Flags().StringVarP(&combineOutput, "output", "o", "", "output path (default generated/<derived name>)")
	promptsCombineCmd.Flags().BoolVar(&combineStdout, "stdout", false, "print the combined document instead of writing it")

	promptsCmd.AddCommand(promptsCreateCmd)
	promptsCmd.AddCommand(promptsCreateAllCmd)
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsCombineCmd)
	promptsCmd.AddCommand(promptsWatchCmd)
	rootCmd.AddCommand(promptsCmd)
}

func runPromptsCreate(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := cfg.Feature(args[0])
	if err != nil {
		return err
	}

	path := ws.PromptFile(f.ID)
	created, err := promptgen.Scaffold(path, f, false)
	if err != nil {
		return err
	}
	if !created {
		fmt.Println(ui.Warnmark("Already exists: " + path))
		return nil
	}
	fmt.Println(ui.Checkmark("Created " + path))
	return nil
}

func runPromptsCreateAll(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	var created, skipped int
	for _, id := range cfg.Features.IDs() {
		f, _ := cfg.Features.Get(id)
		ok, err := promptgen.Scaffold(ws.PromptFile(id), f, promptsCreateAllOverwrite)
		if err != nil {
			return err
		}
		if ok {
			created++
			fmt.Println(ui.Checkmark(id))
		} else {
			skipped++
		}
	}

	fmt.Printf("\n%d created, %d skipped\n", created, skipped)
	if skipped > 0 && !promptsCreateAllOverwrite {
		fmt.Println(ui.MutedStyle.Render("Use --overwrite to regenerate existing prompts."))
	}
	return nil
}

func runPromptsList(cmd *cobra.Command, args []string) error {
	_, ws, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := promptgen.Scan(ws.PromptsDir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No prompts yet. Run 'inquiry prompts create-all' to scaffold them.")
		return nil
	}

	byType := map[string][]promptgen.File{}
	for _, f := range files {
		byType[f.Type] = append(byType[f.Type], f)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		name := promptgen.TypeNames[t]
		if name == "" {
			name = t
		}
		fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("%s (%d)", name, len(byType[t]))))
		for _, f := range byType[t] {
			fmt.Printf("  %s\n", f.ID)
		}
		fmt.Println()
	}
	fmt.Printf("Total: %d prompt(s)\n", len(files))
	return nil
}

// combineFilter builds the prompt filter from the combine flags. Phase zero
// is a valid filter, so the flag counts whenever it was set explicitly.
func combineFilter(cmd *cobra.Command) promptgen.Filter {
	filter := promptgen.Filter{Types: combineTypes, IDs: combineIDs}
	if cmd.Flags().Changed("phase") {
		phase := combinePhase
		filter.Phase = &phase
	}
	return filter
}

// combineOutputPath resolves the combined document's destination. A relative
// --output lands under generated/ like the derived default names.
func combineOutputPath(ws config.Workspace, filter promptgen.Filter, output string) string {
	if output == "" {
		return filepath.Join(ws.GeneratedDir(), filter.OutputName())
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(ws.GeneratedDir(), output)
}

// combineOnce scans, filters, and writes (or prints) the combined document.
func combineOnce(ws config.Workspace, filter promptgen.Filter, toStdout bool) error {
	files, err := promptgen.Scan(ws.PromptsDir())
	if err != nil {
		return err
	}

	selected := filter.Apply(files)
	if len(selected) == 0 {
		return fmt.Errorf("no prompts match the given filters")
	}

	doc, err := promptgen.Combine(selected, time.Now())
	if err != nil {
		return err
	}

	if toStdout {
		fmt.Print(doc)
		return nil
	}

	out := combineOutputPath(ws, filter, combineOutput)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		return err
	}

	fmt.Println(ui.Checkmark(fmt.Sprintf("Combined %d prompt(s) into %s", len(selected), out)))
	return nil
}

func runPromptsCombine(cmd *cobra.Command, args []string) error {
	_, ws, err := loadConfig()
	if err != nil {
		return err
	}
	return combineOnce(ws, combineFilter(cmd), combineStdout)
}

func runPromptsWatch(cmd *cobra.Command, args []string) error {
	_, ws, err := loadConfig()
	if err != nil {
		return err
	}

	filter := combineFilter(cmd)
	if err := combineOnce(ws, filter, false); err != nil {
		logger.Warn("initial combine failed", zap.Error(err))
	}

	watcher, err := promptgen.NewWatcher(ws.PromptsDir(), func() {
		if err := combineOnce(ws, filter, false); err != nil {
			logger.Warn("combine failed", zap.Error(err))
		}
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", ws.PromptsDir())
	return watcher.Run(ctx)
}
