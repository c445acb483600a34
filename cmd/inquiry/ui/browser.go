package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inquiry/internal/config"
)

// featureItem adapts a catalog feature to the bubbles list.
type featureItem struct {
	feature config.Feature
	current bool
}

func (i featureItem) Title() string {
	title := fmt.Sprintf("%s  %s", i.feature.ID, i.feature.Title)
	if i.current {
		return CurrentStyle.Render("→ " + title)
	}
	return title
}

func (i featureItem) Description() string {
	parts := []string{}
	if s := i.feature.SizeValue(); s != "" {
		parts = append(parts, s)
	}
	if p := i.feature.PhaseNumber(); p != "" {
		parts = append(parts, "phase "+p)
	}
	if c := i.feature.ComponentValue(); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, " · ")
}

func (i featureItem) FilterValue() string {
	return i.feature.ID + " " + i.feature.Title
}

// browserModel is the read-only feature browser. Enter toggles a detail pane
// for the selected feature; q quits.
type browserModel struct {
	list       list.Model
	detail     string
	showDetail bool
}

var detailStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Accent).
	Padding(1, 2)

func newBrowserModel(cfg *config.Config, currentID string) browserModel {
	items := make([]list.Item, 0, cfg.Features.Len())
	for _, id := range cfg.Features.IDs() {
		f, _ := cfg.Features.Get(id)
		items = append(items, featureItem{feature: f, current: id == currentID})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Inquiry Features"
	l.SetShowStatusBar(false)

	return browserModel{list: l}
}

func (m browserModel) Init() tea.Cmd { return nil }

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(featureItem); ok {
				m.detail = featureDetail(item.feature)
				m.showDetail = !m.showDetail
			}
			return m, nil
		case "esc":
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) View() string {
	if m.showDetail {
		return detailStyle.Render(m.detail) + "\n" + MutedStyle.Render("enter/esc: back · q: quit")
	}
	return m.list.View()
}

func featureDetail(f config.Feature) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", HeaderStyle.Render(fmt.Sprintf("FEATURE %s: %s", f.ID, f.Title)))
	fmt.Fprintf(&sb, "Phase:     %s\n", orNA(f.Phase))
	fmt.Fprintf(&sb, "Component: %s\n", orNA(f.Component))
	fmt.Fprintf(&sb, "Size:      %s\n\n", orNA(f.Size))

	if f.Description != "" {
		fmt.Fprintf(&sb, "%s\n%s\n\n", HeaderStyle.Render("DESCRIPTION"), strings.TrimSpace(f.Description))
	}
	if len(f.AcceptanceCriteria) > 0 {
		sb.WriteString(HeaderStyle.Render("ACCEPTANCE CRITERIA") + "\n")
		for _, c := range f.AcceptanceCriteria {
			fmt.Fprintf(&sb, "  • %s\n", c)
		}
	}
	if len(f.Files) > 0 {
		sb.WriteString("\n" + HeaderStyle.Render("FILES") + "\n")
		for _, file := range f.Files {
			fmt.Fprintf(&sb, "  • %s\n", file)
		}
	}
	return sb.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// RunBrowser launches the interactive feature browser.
func RunBrowser(cfg *config.Config, currentID string) error {
	_, err := tea.NewProgram(newBrowserModel(cfg, currentID), tea.WithAltScreen()).Run()
	return err
}
