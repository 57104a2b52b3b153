package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vvka-141/codecleaner/internal/tui"
	"github.com/vvka-141/codecleaner/internal/validate"
	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

func newLanguagesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "languages [path]",
		Short: "List the extension to comment-syntax mapping",
		Long: `Languages prints every known extension, the comment syntax applied to it,
whether it is selected by default, and the checker used by --validate.

With a path, the "languages" overrides of that project's configuration are
included.`,
		Args:              OptionalTargetPath,
		ValidArgsFunction: completeDirectories,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := codecleaner.NewLanguageRegistry(nil)
			if len(args) == 1 || configPath != "" {
				root := "."
				if len(args) == 1 {
					root = args[0]
					if err := checkTargetRoot(root); err != nil {
						return err
					}
				}
				projectCfg, err := loadProjectConfig(root, configPath)
				if err != nil {
					return err
				}
				if projectCfg != nil {
					custom, err := projectCfg.LanguageRegistry()
					if err != nil {
						return err
					}
					if custom != nil {
						registry = custom
					}
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderLanguages(registry, colorFor(cmd.OutOrStdout())))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Project configuration file")
	return cmd
}

// renderLanguages builds the languages table.
func renderLanguages(registry *codecleaner.LanguageRegistry, color bool) string {
	defaults := make(map[string]bool)
	for _, ext := range codecleaner.DefaultExtensions() {
		defaults[ext] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("EXTENSION", "LANGUAGE", "DEFAULT", "VALIDATOR")

	if color {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tui.TitleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	} else {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}

	for _, ext := range registry.Extensions() {
		selected := "no"
		if defaults[ext] {
			selected = "yes"
		}
		checker := validate.Describe(ext)
		if checker == "" {
			checker = "-"
		}
		t = t.Row(ext, registry.ForExtension(ext).String(), selected, checker)
	}

	return t.String()
}
