package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/config"
)

var (
	projectDir string
	modelID    string
	modelsFile string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "contextpack",
	Short: "Contextpack - manuscript context packing for AI writing help",
	Long: `Contextpack reads a novel project (scenes, codex entries and story structure),
ranks every piece against your question and packs the most relevant material
into a bounded, token-budgeted context bundle for a language model.

Configuration is read from the environment (and a .env file if present):
  OPENAI_API_KEY                   - OpenAI API key for the ask command
  CONTEXTPACK_MODEL                - model used for budgeting and answers (default: gpt-4o)
  CONTEXTPACK_PROJECT_DIR          - novel project directory (default: .)
  CONTEXTPACK_STORE_PATH           - answer store database (default: .contextpack.db)
  CONTEXTPACK_MODELS_FILE          - YAML file with model capability overrides
  CONTEXTPACK_MIN_BUDGET           - smallest context budget in tokens (default: 1500)
  CONTEXTPACK_MAX_BUDGET_CAP       - largest context budget in tokens (default: 16000)
  CONTEXTPACK_MIN_TRUNCATED_BLOCK  - smallest truncated block in tokens (default: 250)
  CONTEXTPACK_MAX_BLOCKS           - most blocks per pack (default: 12)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("project") {
			loaded.ProjectDir = projectDir
		}
		if cmd.Flags().Changed("model") {
			loaded.Model = modelID
		}
		if cmd.Flags().Changed("models-file") {
			loaded.ModelsFile = modelsFile
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "Novel project directory (overrides CONTEXTPACK_PROJECT_DIR)")
	rootCmd.PersistentFlags().StringVarP(&modelID, "model", "m", "", "Model identifier (overrides CONTEXTPACK_MODEL)")
	rootCmd.PersistentFlags().StringVar(&modelsFile, "models-file", "", "YAML file with model capability overrides")
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
