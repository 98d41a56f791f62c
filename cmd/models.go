package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/modelcaps"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models and their context budgets",
	Long: `List every model in the capability registry with its token limits and the
context budget a pack would receive by default.

Examples:
  contextpack models
  contextpack models --models-file models.yaml`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	registry := modelcaps.Default()
	if cfg.ModelsFile != "" {
		if err := registry.LoadFile(cfg.ModelsFile); err != nil {
			return fmt.Errorf("failed to load model capabilities: %w", err)
		}
	}
	packer := contextpack.NewPacker(registry, cfg.PackConfig())

	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
		modelColor   = lipgloss.Color("#BD93F9") // Purple
		numberColor  = lipgloss.Color("#FF79C6") // Pink
		borderColor  = lipgloss.Color("#6272A4") // Muted purple
		currentColor = lipgloss.Color("#50FA7B") // Green
	)

	const (
		modelWidth  = 22
		numberWidth = 12
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true).
		Padding(0, 1)
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	headers := []string{
		headerStyle.Width(modelWidth).Render("MODEL"),
		headerStyle.Width(numberWidth).Render("INPUT"),
		headerStyle.Width(numberWidth).Render("OUTPUT"),
		headerStyle.Width(numberWidth).Render("BUDGET"),
	}
	fmt.Println(strings.Join(headers, borderStyle.Render("│")))
	fmt.Println(borderStyle.Render(strings.Join([]string{
		strings.Repeat("─", modelWidth),
		strings.Repeat("─", numberWidth),
		strings.Repeat("─", numberWidth),
		strings.Repeat("─", numberWidth),
	}, "┼")))

	numStyle := lipgloss.NewStyle().
		Foreground(numberColor).
		Padding(0, 1).
		Width(numberWidth).
		Align(lipgloss.Right)

	current := strings.ToLower(strings.TrimSpace(cfg.Model))
	for _, id := range registry.Models() {
		c := registry.Lookup(id)

		color := modelColor
		name := id
		if id == current {
			color = currentColor
			name = "* " + id
		}
		idStyle := lipgloss.NewStyle().
			Foreground(color).
			Padding(0, 1).
			Width(modelWidth)

		cells := []string{
			idStyle.Render(name),
			numStyle.Render(fmt.Sprintf("%d", c.MaxInputTokens)),
			numStyle.Render(fmt.Sprintf("%d", c.MaxOutputTokens)),
			numStyle.Render(fmt.Sprintf("%d", packer.Budget(contextpack.Options{Model: id}))),
		}
		fmt.Println(strings.Join(cells, borderStyle.Render("│")))
	}

	if !registry.Known(cfg.Model) {
		fmt.Println()
		fmt.Println(borderStyle.Render(fmt.Sprintf("%s is not registered; packs use the fallback budget of %d tokens",
			cfg.Model, packer.Budget(contextpack.Options{Model: cfg.Model}))))
	}

	return nil
}
