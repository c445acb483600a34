package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inquiry/cmd/inquiry/ui"
	"inquiry/internal/config"
	"inquiry/internal/githubcli"
)

var setupLabelsCmd = &cobra.Command{
	Use:   "setup-labels",
	Short: "Create or update the repository's workflow labels",
	Long: `Creates every label defined under labels: in features.yaml
(phases, components, sizes). Existing labels are updated in place so the
command is safe to re-run after editing colors or descriptions.`,
	RunE: runSetupLabels,
}

func init() {
	rootCmd.AddCommand(setupLabelsCmd)
}

func runSetupLabels(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	labels := cfg.Labels.All()
	if len(labels) == 0 {
		fmt.Println("No labels defined in features.yaml")
		return nil
	}

	gh := githubcli.New(cfg.Project.Repo, nil, logger)
	ctx, cancel := opContext()
	defer cancel()

	var created, updated int
	for _, l := range labels {
		color := l.Color
		if color == "" {
			color = config.DefaultLabelColor
		}
		wasCreated, err := gh.UpsertLabel(ctx, githubcli.Label{
			Name:        l.Name,
			Color:       color,
			Description: l.Description,
		})
		if err != nil {
			return fmt.Errorf("label %s: %w", l.Name, err)
		}
		if wasCreated {
			created++
			fmt.Println(ui.Checkmark("Created " + l.Name))
		} else {
			updated++
			fmt.Println(ui.Checkmark("Updated " + l.Name))
		}
	}

	fmt.Printf("\n%d created, %d updated\n", created, updated)
	return nil
}
