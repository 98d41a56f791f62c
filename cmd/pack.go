package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/manuscript"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/orchestrator"
)

var (
	maxContext    int
	reserveTokens int
	maxBlocks     int
	sourceTypes   string
	outputFormat  string
	exportFile    string
)

var packCmd = &cobra.Command{
	Use:   "pack [query]",
	Short: "Pack manuscript context for a query and display it",
	Long: `Rank the project's sources against a query and pack them into a token budget.

Each block shows:
- Position and source type
- Source id and label
- Relevance score
- Estimated tokens (and whether the block was truncated)

Examples:
  contextpack pack "Where does Aria hide the ship?"
  contextpack pack "dragon attack" --types codex,scene --max-blocks 5
  contextpack pack "chapter three" --format text
  contextpack pack "Aria" --format json --export pack.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)
	addPackFlags(packCmd)
	packCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format: table, text or json")
	packCmd.Flags().StringVar(&exportFile, "export", "", "Write the pack to a file instead of stdout: --export <filename>")
}

// addPackFlags registers the flags that shape a context pack.
func addPackFlags(c *cobra.Command) {
	c.Flags().IntVar(&maxContext, "max-context", 0, "Requested context budget in tokens (clamped to the model's limits)")
	c.Flags().IntVar(&reserveTokens, "reserve", 0, "Tokens reserved for the model's response")
	c.Flags().IntVar(&maxBlocks, "max-blocks", 0, "Maximum number of context blocks")
	c.Flags().StringVar(&sourceTypes, "types", "", "Comma-separated source types to include (codex,scene,chapter,act,outline,novel)")
}

// pipelineConfig builds the pipeline configuration from the environment and
// the command's flags.
func pipelineConfig(c *cobra.Command) (orchestrator.PipelineConfig, error) {
	config := orchestrator.DefaultPipelineConfig()
	config.ProjectDir = cfg.ProjectDir
	config.Model = cfg.Model
	config.ModelsFile = cfg.ModelsFile
	config.PackConfig = cfg.PackConfig()
	config.LLMConfig.Model = cfg.Model
	config.LLMConfig.APIKey = cfg.OpenAIKey

	if c.Flags().Changed("max-context") {
		config.MaxContextTokens = contextpack.Int(maxContext)
	}
	if c.Flags().Changed("reserve") {
		if reserveTokens < 0 {
			return config, fmt.Errorf("--reserve cannot be negative")
		}
		config.ReserveResponseTokens = contextpack.Int(reserveTokens)
	}
	if c.Flags().Changed("max-blocks") {
		if maxBlocks <= 0 {
			return config, fmt.Errorf("--max-blocks must be positive")
		}
		config.MaxBlocks = contextpack.Int(maxBlocks)
	}

	types, err := orchestrator.ParseSourceTypes(sourceTypes)
	if err != nil {
		return config, err
	}
	config.Sources = manuscript.SourceOptions{Types: types}
	return config, nil
}

func runPack(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	ctx := context.Background()

	config, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	pipeline, err := orchestrator.NewPipeline(config, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Close()

	result, err := pipeline.Assemble(ctx, query)
	if err != nil {
		return fmt.Errorf("packing failed: %w", err)
	}

	if exportFile != "" {
		return handleExport(result, exportFile)
	}

	switch strings.ToLower(outputFormat) {
	case "table":
		return outputTable(result)
	default:
		return contextpack.ExportResult(*result, outputFormat, os.Stdout)
	}
}

func handleExport(result *contextpack.Result, filename string) error {
	format := strings.ToLower(outputFormat)
	if format == "table" {
		format = string(contextpack.FormatJSON)
	}

	// Create output file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := contextpack.ExportResult(*result, format, file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Exported %d blocks to %s\n", len(result.Blocks), filename)
	return nil
}

func outputTable(result *contextpack.Result) error {
	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
		typeColor    = lipgloss.Color("#BD93F9") // Purple
		numberColor  = lipgloss.Color("#FF79C6") // Pink
		labelColor   = lipgloss.Color("#E9E9F4") // Light purple/white
		borderColor  = lipgloss.Color("#6272A4") // Muted purple
		summaryColor = lipgloss.Color("#8BE9FD") // Cyan accent
		warningColor = lipgloss.Color("#FFB86C") // Orange
	)

	// Column widths
	const (
		posWidth    = 5
		typeWidth   = 10
		idWidth     = 18
		labelWidth  = 30
		scoreWidth  = 9
		tokensWidth = 12
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true).
		Padding(0, 1)

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	headers := []string{
		headerStyle.Width(posWidth).Render("#"),
		headerStyle.Width(typeWidth).Render("TYPE"),
		headerStyle.Width(idWidth).Render("ID"),
		headerStyle.Width(labelWidth).Render("LABEL"),
		headerStyle.Width(scoreWidth).Render("SCORE"),
		headerStyle.Width(tokensWidth).Render("TOKENS"),
	}
	fmt.Println(strings.Join(headers, borderStyle.Render("│")))

	separatorParts := []string{
		strings.Repeat("─", posWidth),
		strings.Repeat("─", typeWidth),
		strings.Repeat("─", idWidth),
		strings.Repeat("─", labelWidth),
		strings.Repeat("─", scoreWidth),
		strings.Repeat("─", tokensWidth),
	}
	fmt.Println(borderStyle.Render(strings.Join(separatorParts, "┼")))

	cell := func(color lipgloss.Color, width int) lipgloss.Style {
		return lipgloss.NewStyle().
			Foreground(color).
			Padding(0, 1).
			Width(width)
	}

	for i, b := range result.Blocks {
		tokens := fmt.Sprintf("%d", b.Tokens)
		if b.Truncated {
			tokens += " (cut)"
		}

		cells := []string{
			cell(numberColor, posWidth).Align(lipgloss.Right).Render(fmt.Sprintf("%d", i+1)),
			cell(typeColor, typeWidth).Render(string(b.Type)),
			cell(labelColor, idWidth).Render(truncateCell(b.ID, idWidth-2)),
			cell(labelColor, labelWidth).Render(truncateCell(b.Label, labelWidth-2)),
			cell(numberColor, scoreWidth).Align(lipgloss.Right).Render(fmt.Sprintf("%.3f", b.Score)),
			cell(numberColor, tokensWidth).Align(lipgloss.Right).Render(tokens),
		}
		fmt.Println(strings.Join(cells, borderStyle.Render("│")))
	}

	fmt.Println()

	summaryStyle := lipgloss.NewStyle().
		Foreground(summaryColor).
		Italic(true)

	summary := fmt.Sprintf("Total: %d blocks, %d/%d tokens, signature %s",
		len(result.Blocks), result.TotalTokens, result.TokenBudget, result.Signature)
	fmt.Println(summaryStyle.Render(summary))

	warningStyle := lipgloss.NewStyle().Foreground(warningColor)
	if result.WarningMessage != nil {
		fmt.Println(warningStyle.Render("! " + *result.WarningMessage))
	}
	for _, ex := range result.Excluded {
		fmt.Println(borderStyle.Render("  excluded " + ex))
	}

	return nil
}

// truncateCell shortens s to width runes with an ellipsis.
func truncateCell(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 2 {
		return s
	}
	return string(r[:width-1]) + "…"
}
