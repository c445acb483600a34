package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/config"
	"inquiry/internal/githubcli"
	"inquiry/internal/issuegen"
	"inquiry/internal/ledger"
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Batch-create research issues from features.yaml",
}

var (
	issuesDryRun bool
	issuesType   string
)

var issuesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create research issues for domains, industries, agents, and pilots",
	Long: `Generates one GitHub issue per entry in the selected sections of
features.yaml. Use --dry-run to preview titles, labels, and body excerpts
without touching GitHub.`,
	RunE: runIssuesCreate,
}

var issuesLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show issues recorded in the local ledger",
	RunE:  runIssuesLog,
}

func init() {
	issuesCreateCmd.Flags().BoolVar(&issuesDryRun, "dry-run", false, "preview without creating issues")
	issuesCreateCmd.Flags().StringVar(&issuesType, "type", "all", "which section to create: all, domains, industries, agents, pilots")
	issuesCmd.AddCommand(issuesCreateCmd)
	issuesCmd.AddCommand(issuesLogCmd)
	rootCmd.AddCommand(issuesCmd)
}

// plannedIssue is one issue to create, regardless of section.
type plannedIssue struct {
	kind   string
	ref    string
	title  string
	body   string
	labels []string
}

func planIssues(cfg *config.Config, section string) ([]plannedIssue, error) {
	var out []plannedIssue
	want := func(s string) bool { return section == "all" || section == s }

	switch section {
	case "all", "domains", "industries", "agents", "pilots":
	default:
		return nil, fmt.Errorf("unknown --type %q (want all, domains, industries, agents, or pilots)", section)
	}

	if want("domains") {
		for _, d := range cfg.Domains {
			out = append(out, plannedIssue{
				kind:   "domain",
				ref:    d.Slug,
				title:  issuegen.DomainTitle(d),
				body:   issuegen.DomainBody(d),
				labels: issuegen.DomainLabels(d),
			})
		}
	}
	if want("industries") {
		for _, i := range cfg.Industries {
			out = append(out, plannedIssue{
				kind:   "industry",
				ref:    i.Slug,
				title:  issuegen.IndustryTitle(i),
				body:   issuegen.IndustryBody(i),
				labels: issuegen.IndustryLabels(i),
			})
		}
	}
	if want("agents") {
		for _, a := range cfg.Agents {
			out = append(out, plannedIssue{
				kind:   "agent",
				ref:    a.Name,
				title:  issuegen.AgentTitle(a),
				body:   issuegen.AgentBody(a),
				labels: issuegen.AgentLabels(a),
			})
		}
	}
	if want("pilots") {
		for _, p := range cfg.Pilots {
			out = append(out, plannedIssue{
				kind:   "pilot",
				ref:    p.Name,
				title:  issuegen.PilotTitle(p),
				body:   issuegen.PilotBody(p),
				labels: issuegen.PilotLabels(p),
			})
		}
	}
	return out, nil
}

func runIssuesCreate(cmd *cobra.Command, args []string) error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	planned, err := planIssues(cfg, issuesType)
	if err != nil {
		return err
	}
	if len(planned) == 0 {
		fmt.Println("Nothing to create: no matching entries in features.yaml")
		return nil
	}

	if issuesDryRun {
		fmt.Printf("Dry run: %d issue(s) would be created\n\n", len(planned))
		for _, p := range planned {
			fmt.Println(ui.HeaderStyle.Render(p.title))
			fmt.Printf("Labels: %s\n", strings.Join(p.labels, ", "))
			fmt.Println(ui.Rule(60))
			fmt.Println(bodyPreview(p.body, 500))
			fmt.Println()
		}
		return nil
	}

	gh := githubcli.New(cfg.Project.Repo, nil, logger)
	led := openLedger(ws)
	if led != nil {
		defer led.Close()
	}

	ctx, cancel := opContext()
	defer cancel()

	created, failed := createPlannedIssues(ctx, gh, led, planned)

	fmt.Printf("\n%d issue(s) created", created)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
	return nil
}

// createPlannedIssues creates each planned issue, skipping entries that fail
// so one bad entry does not abort the batch. Labels are ensured first; a
// label that cannot be created is dropped from its issues.
func createPlannedIssues(ctx context.Context, gh *githubcli.Client, led *ledger.Ledger, planned []plannedIssue) (created, failed int) {
	usable := map[string]bool{}
	for _, p := range planned {
		for _, name := range p.labels {
			if _, seen := usable[name]; seen {
				continue
			}
			err := gh.EnsureLabel(ctx, name, config.DefaultLabelColor)
			if err != nil {
				logger.Warn("skipping label", zap.String("label", name), zap.Error(err))
			}
			usable[name] = err == nil
		}
	}

	for _, p := range planned {
		var labels []string
		for _, name := range p.labels {
			if usable[name] {
				labels = append(labels, name)
			}
		}

		issue, err := gh.CreateIssue(ctx, githubcli.IssueRequest{
			Title:  p.title,
			Body:   p.body,
			Labels: labels,
		})
		if err != nil {
			failed++
			fmt.Println(ui.Warnmark("Failed: " + p.title))
			fmt.Println("   " + ui.MutedStyle.Render(err.Error()))
			continue
		}
		created++
		fmt.Println(ui.Checkmark(fmt.Sprintf("#%d %s", issue.Number, p.title)))
		fmt.Println("   " + ui.MutedStyle.Render(issue.URL))

		recordIssue(ctx, led, ledger.Entry{
			Kind:   p.kind,
			Ref:    p.ref,
			Title:  p.title,
			Number: issue.Number,
			URL:    issue.URL,
			Labels: labels,
		})
	}
	return created, failed
}

func runIssuesLog(cmd *cobra.Command, args []string) error {
	_, ws, err := loadConfig()
	if err != nil {
		return err
	}

	led := openLedger(ws)
	if led == nil {
		return fmt.Errorf("open ledger at %s", ws.LedgerPath())
	}
	defer led.Close()

	ctx, cancel := opContext()
	defer cancel()

	entries, err := led.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Ledger is empty. Issues appear here after 'inquiry start' or 'inquiry issues create'.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  #%-5d %-9s %s\n",
			e.CreatedAt.Format("2006-01-02"), e.Number, e.Kind, e.Title)
	}
	return nil
}

// bodyPreview truncates the body to at most n runes for dry-run output.
func bodyPreview(body string, n int) string {
	r := []rune(body)
	if len(r) <= n {
		return body
	}
	return string(r[:n]) + "\n" + ui.MutedStyle.Render("... (truncated)")
}
