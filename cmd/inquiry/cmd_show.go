package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inquiry/cmd/inquiry/ui"
)

// showCmd prints the details of one feature
var showCmd = &cobra.Command{
	Use:   "show [feature-id]",
	Short: "Show feature details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := cfg.Feature(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'inquiry list' to see all features)", err)
	}

	fmt.Println()
	fmt.Println(ui.Rule(60))
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("FEATURE %s: %s", f.ID, f.Title)))
	fmt.Println(ui.Rule(60))
	fmt.Println()

	fmt.Printf("Phase:     %s\n", orNA(f.Phase))
	fmt.Printf("Component: %s\n", orNA(f.Component))
	fmt.Printf("Size:      %s\n\n", orNA(f.Size))

	fmt.Println(ui.HeaderStyle.Render("DESCRIPTION:"))
	if f.Description != "" {
		fmt.Println(strings.TrimSpace(f.Description))
	} else {
		fmt.Println("No description")
	}
	fmt.Println()

	fmt.Println(ui.HeaderStyle.Render("ACCEPTANCE CRITERIA:"))
	for _, c := range f.AcceptanceCriteria {
		fmt.Printf("  • %s\n", c)
	}
	fmt.Println()

	fmt.Println(ui.HeaderStyle.Render("FILES TO CREATE:"))
	for _, file := range f.Files {
		fmt.Printf("  • %s\n", file)
	}
	fmt.Println()

	promptFile := ws.PromptFile(f.ID)
	if _, err := os.Stat(promptFile); err == nil {
		fmt.Printf("PROMPT: %s\n\n", promptFile)
	} else {
		fmt.Printf("PROMPT: Not yet created at %s\n\n", promptFile)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
