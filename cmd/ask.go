package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/narrative"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/orchestrator"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/store"
)

var (
	refresh bool
	verbose bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your manuscript",
	Long: `Ask a natural language question about the novel project.

This command:
1. Loads the project's scenes, codex entries and story structure
2. Packs the most relevant material into the model's context budget
3. Reuses the stored answer if the packed context has not changed
4. Otherwise generates a fresh answer using an LLM (OpenAI) and stores it

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for the LLM

Examples:
  contextpack ask "What color are Aria's eyes?"
  contextpack ask "Summarize act one" --types act,chapter --verbose
  contextpack ask "Who knows about the ship?" --refresh`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	addPackFlags(askCmd)
	askCmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore any stored answer and ask the model again")
	askCmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed progress and context")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := context.Background()

	// Styling
	var (
		headerColor   = lipgloss.Color("#F780FF") // Bright pink
		questionColor = lipgloss.Color("#8BE9FD") // Cyan
		answerColor   = lipgloss.Color("#E9E9F4") // Light purple/white
		contextColor  = lipgloss.Color("#6272A4") // Muted purple
		errorColor    = lipgloss.Color("#FF5555") // Red
		successColor  = lipgloss.Color("#50FA7B") // Green
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true)

	questionStyle := lipgloss.NewStyle().
		Foreground(questionColor).
		Italic(true)

	answerStyle := lipgloss.NewStyle().
		Foreground(answerColor)

	contextStyle := lipgloss.NewStyle().
		Foreground(contextColor).
		Italic(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	successStyle := lipgloss.NewStyle().
		Foreground(successColor)

	if cfg.OpenAIKey == "" {
		return fmt.Errorf("%s OPENAI_API_KEY environment variable is required", errorStyle.Render("Error:"))
	}

	// Print question
	fmt.Println()
	fmt.Println(headerStyle.Render("Question:"))
	fmt.Println(questionStyle.Render(question))
	fmt.Println()

	config, err := pipelineConfig(cmd)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	if verbose {
		fmt.Println(contextStyle.Render("→ Initializing pipeline..."))
	}

	llm, err := narrative.NewOpenAILLM(config.LLMConfig)
	if err != nil {
		return fmt.Errorf("%s Failed to create LLM: %w", errorStyle.Render("Error:"), err)
	}

	answers, err := store.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("%s Failed to open answer store: %w", errorStyle.Render("Error:"), err)
	}

	pipeline, err := orchestrator.NewPipeline(config, llm, answers)
	if err != nil {
		_ = answers.Close()
		return fmt.Errorf("%s Failed to create pipeline: %w", errorStyle.Render("Error:"), err)
	}
	defer pipeline.Close()

	if verbose {
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Pipeline ready (model %s, budget %d tokens)", config.Model, pipeline.Budget())))
		fmt.Println(contextStyle.Render("→ Packing context and generating answer..."))
	}

	answer, err := pipeline.Ask(ctx, question, refresh)
	if err != nil {
		return fmt.Errorf("%s Failed to answer: %w", errorStyle.Render("Error:"), err)
	}

	if verbose {
		pack := answer.Pack
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Packed %d blocks (%d/%d tokens)", len(pack.Blocks), pack.TotalTokens, pack.TokenBudget)))
		for i, b := range pack.Blocks {
			fmt.Println(contextStyle.Render(fmt.Sprintf("  #%d %s:%s %s (%.3f)", i+1, b.Type, b.ID, b.Label, b.Score)))
		}
		if pack.WarningMessage != nil {
			fmt.Println(contextStyle.Render("  " + *pack.WarningMessage))
		}
		if answer.Reused {
			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Context unchanged since %s, reusing stored answer",
				answer.Narrative.GeneratedAt.Local().Format("Jan 02, 15:04"))))
		}
		fmt.Println()
	}

	// Print answer
	fmt.Println(headerStyle.Render("Answer:"))
	fmt.Println()

	answerText := strings.TrimSpace(answer.Narrative.Text)
	fmt.Println(answerStyle.Render(answerText))
	fmt.Println()

	return nil
}
