// Package issuegen renders GitHub issue titles, bodies, and label sets from
// the research tracking entries in features.yaml. The markdown bodies are
// baked into the binary with go:embed.
package issuegen

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"inquiry/internal/config"
)

//go:embed templates
var templates embed.FS

var bodyTemplates = template.Must(template.New("issuegen").Funcs(template.FuncMap{
	"orDef":        orDefault,
	"join":         strings.Join,
	"trim":         strings.TrimSpace,
	"bullets":      bulletList,
	"bulletsOr":    bulletListOr,
	"numbered":     numberedList,
	"resources":    resourceList,
	"categoryRows": categoryRows,
	"claimRows":    claimTypeRows,
	"pilotRows":    pilotRows,
	"errorRows":    errorRows,
}).ParseFS(templates, "templates/*.md"))

func render(name string, data any) string {
	var sb strings.Builder
	if err := bodyTemplates.ExecuteTemplate(&sb, name, data); err != nil {
		// Templates are embedded and parsed at init; execution only fails on
		// a programming error.
		panic(fmt.Sprintf("issuegen: render %s: %v", name, err))
	}
	return sb.String()
}

// DomainBody renders the issue body for a domain research entry.
func DomainBody(d config.Domain) string { return render("domain.md", d) }

// DomainTitle returns the issue title for a domain research entry.
func DomainTitle(d config.Domain) string {
	return fmt.Sprintf("[Research] Domain: %s", orDefault(d.Name, "Unknown"))
}

// DomainLabels returns the label set for a domain issue.
func DomainLabels(d config.Domain) []string {
	return append([]string{"research", "domain"}, d.Labels...)
}

// IndustryBody renders the issue body for an industry research entry.
func IndustryBody(i config.Industry) string { return render("industry.md", i) }

// IndustryTitle returns the issue title for an industry research entry.
func IndustryTitle(i config.Industry) string {
	return fmt.Sprintf("[Research] Industry: %s", orDefault(i.Name, "Unknown"))
}

// IndustryLabels returns the label set for an industry issue.
func IndustryLabels(i config.Industry) []string {
	return append([]string{"research", "industry"}, i.Labels...)
}

// AgentBody renders the issue body for an agent specification entry.
func AgentBody(a config.Agent) string { return render("agent.md", a) }

// AgentTitle returns the issue title for an agent specification entry.
func AgentTitle(a config.Agent) string {
	return fmt.Sprintf("[Agent] Spec: %s", orDefault(a.Name, "Unknown"))
}

// AgentLabels returns the label set for an agent issue.
func AgentLabels(a config.Agent) []string {
	return append([]string{"agent", "specification"}, a.Labels...)
}

// PilotBody renders the issue body for a pilot task entry.
func PilotBody(p config.Pilot) string { return render("pilot.md", p) }

// PilotTitle returns the issue title for a pilot task entry.
func PilotTitle(p config.Pilot) string {
	return fmt.Sprintf("[Pilot] %s", orDefault(p.Name, "Unknown"))
}

// PilotLabels returns the label set for a pilot issue.
func PilotLabels(p config.Pilot) []string {
	return append([]string{"pilot", "testing"}, p.Labels...)
}

// FeatureBody renders the issue body for a feature started from the catalog.
// promptPath is the repo-relative location of the feature's prompt file.
func FeatureBody(f config.Feature, promptPath string) string {
	return render("feature.md", struct {
		Feature    config.Feature
		PromptPath string
	}{f, promptPath})
}

// FeatureTitle returns the issue title for a catalog feature.
func FeatureTitle(f config.Feature) string {
	return fmt.Sprintf("[%s] %s", f.ID, f.Title)
}

// FeatureLabels returns the phase/component/size labels set on the feature,
// skipping any that are unset.
func FeatureLabels(f config.Feature) []string {
	var labels []string
	for _, name := range []string{f.Phase, f.Component, f.Size} {
		if name != "" {
			labels = append(labels, name)
		}
	}
	return labels
}

// CommitMessage derives the conventional commit subject for a completed
// feature, "feat(<component>): <title>", unless a custom message is given.
func CommitMessage(f config.Feature, custom string) string {
	if custom != "" {
		return custom
	}
	title := f.Title
	if title == "" {
		title = f.ID
	}
	return fmt.Sprintf("feat(%s): %s", f.ComponentValue(), title)
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- TBD"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func bulletListOr(items []string, fallback string) string {
	if len(items) == 0 {
		return "- " + fallback
	}
	return bulletList(items)
}

func numberedList(items []string) string {
	if len(items) == 0 {
		return "1. TBD"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func resourceList(items []config.Resource) string {
	if len(items) == 0 {
		return "- TBD"
	}
	lines := make([]string, len(items))
	for i, r := range items {
		if r.Scalar {
			lines[i] = "- " + r.Text
			continue
		}
		lines[i] = fmt.Sprintf("- [%s](%s)", orDefault(r.Title, "Link"), orDefault(r.URL, "#"))
	}
	return strings.Join(lines, "\n")
}

func categoryRows(items []config.TableItem) string {
	if len(items) == 0 {
		return "| TBD | TBD | TBD |"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		if item.Scalar {
			lines[i] = fmt.Sprintf("| %s | TBD | Medium |", item.Name)
			continue
		}
		lines[i] = fmt.Sprintf("| %s | %s | %s |", item.Name, item.Description, orDefault(item.Priority, "Medium"))
	}
	return strings.Join(lines, "\n")
}

func claimTypeRows(items []config.ClaimType) string {
	if len(items) == 0 {
		return "| TBD | TBD | TBD | TBD |"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		if item.Scalar {
			lines[i] = fmt.Sprintf("| %s | TBD | Medium | TBD |", item.Type)
			continue
		}
		lines[i] = fmt.Sprintf("| %s | %s | %s | %s |", item.Type, item.Example, orDefault(item.Risk, "Medium"), item.Regulation)
	}
	return strings.Join(lines, "\n")
}

func pilotRows(items []config.TableItem) string {
	if len(items) == 0 {
		return "| TBD | TBD | TBD |"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		if item.Scalar {
			lines[i] = fmt.Sprintf("| %s | TBD | Medium |", item.Name)
			continue
		}
		lines[i] = fmt.Sprintf("| %s | %s | %s |", item.Name, item.Reason, orDefault(item.Priority, "Medium"))
	}
	return strings.Join(lines, "\n")
}

func errorRows(items []config.ErrorRule) string {
	if len(items) == 0 {
		return "| TBD | TBD |"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		if item.Scalar {
			lines[i] = fmt.Sprintf("| %s | TBD |", item.Error)
			continue
		}
		lines[i] = fmt.Sprintf("| %s | %s |", item.Error, item.Strategy)
	}
	return strings.Join(lines, "\n")
}
