package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Scaffold and inspect the research document tree",
}

var researchInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the research/ folder structure",
	RunE:  runResearchInit,
}

var researchNewCmd = &cobra.Command{
	Use:   "new <domain|spec|eval|pilot|interview|finding> <name> [version]",
	Short: "Scaffold a new research document",
	Long: `Creates a pre-filled markdown document of the given type:

  domain    <topic>            regulatory domain research doc
  spec      <agent>            agent specification plus a sample test case
  eval      <agent> <version>  dated evaluation report
  pilot     <agency>           pilot brief, feedback log, and README
  interview <agency>           interview notes
  finding   <topic>            dated finding write-up`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runResearchNew,
}

var researchListCmd = &cobra.Command{
	Use:   "list [type]",
	Short: "Show the research document tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResearchList,
}

var researchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Count research documents per category",
	RunE:  runResearchStatus,
}

func init() {
	researchCmd.AddCommand(researchInitCmd)
	researchCmd.AddCommand(researchNewCmd)
	researchCmd.AddCommand(researchListCmd)
	researchCmd.AddCommand(researchStatusCmd)
	rootCmd.AddCommand(researchCmd)
}

func newScaffolder() (*research.Scaffolder, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return research.NewScaffolder(research.FindRepoRoot(cwd), logger), nil
}

func runResearchInit(cmd *cobra.Command, args []string) error {
	s, err := newScaffolder()
	if err != nil {
		return err
	}

	created, err := s.Init()
	if err != nil {
		return err
	}

	if len(created) == 0 {
		fmt.Println(ui.Checkmark("Research structure already in place at " + s.Dir()))
		return nil
	}
	for _, dir := range created {
		fmt.Println(ui.Checkmark(dir))
	}
	fmt.Printf("\n%d folder(s) created under %s\n", len(created), s.Dir())
	return nil
}

func runResearchNew(cmd *cobra.Command, args []string) error {
	s, err := newScaffolder()
	if err != nil {
		return err
	}

	docType, name := args[0], args[1]

	var paths []string
	switch docType {
	case "domain":
		p, err := s.NewDomain(name)
		if err != nil {
			return newDocErr(err)
		}
		paths = []string{p}
	case "spec":
		paths, err = s.NewSpec(name)
		if err != nil {
			return newDocErr(err)
		}
	case "eval":
		if len(args) < 3 {
			return fmt.Errorf("eval requires a version, e.g. 'inquiry research new eval verification-agent 1.0.0'")
		}
		p, err := s.NewEval(name, args[2])
		if err != nil {
			return newDocErr(err)
		}
		paths = []string{p}
	case "pilot":
		paths, err = s.NewPilot(name)
		if err != nil {
			return newDocErr(err)
		}
	case "interview":
		p, err := s.NewInterview(name)
		if err != nil {
			return newDocErr(err)
		}
		paths = []string{p}
	case "finding":
		p, err := s.NewFinding(name)
		if err != nil {
			return newDocErr(err)
		}
		paths = []string{p}
	default:
		return fmt.Errorf("unknown document type %q (want domain, spec, eval, pilot, interview, or finding)", docType)
	}

	for _, p := range paths {
		fmt.Println(ui.Checkmark("Created " + s.Rel(p)))
	}
	return nil
}

func newDocErr(err error) error {
	if errors.Is(err, research.ErrExists) {
		return fmt.Errorf("%w (pick another name or remove the existing file)", err)
	}
	return err
}

func runResearchList(cmd *cobra.Command, args []string) error {
	s, err := newScaffolder()
	if err != nil {
		return err
	}

	var docType string
	if len(args) == 1 && args[0] != "all" {
		docType = args[0]
	}

	tree, err := s.List(docType)
	if err != nil {
		return err
	}

	if strings.TrimSpace(tree) == "" {
		fmt.Println("No documents yet. Run 'inquiry research new' to create one.")
		return nil
	}
	fmt.Print(tree)
	return nil
}

func runResearchStatus(cmd *cobra.Command, args []string) error {
	s, err := newScaffolder()
	if err != nil {
		return err
	}

	ctx, cancel := opContext()
	defer cancel()

	entries, err := s.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Println(ui.HeaderStyle.Render("Research Status"))
	fmt.Println(ui.Rule(48))

	total := 0
	for _, e := range entries {
		total += e.Count
		fmt.Printf("  %-18s %3d  %s\n", e.Category, e.Count, ui.Bar(e.Count))
	}

	fmt.Println(ui.Rule(48))
	fmt.Printf("  %-18s %3d\n", "Total", total)
	return nil
}
