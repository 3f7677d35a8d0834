package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/propflow/propflow/internal/cli"
	"github.com/propflow/propflow/internal/llm"
	"github.com/propflow/propflow/internal/proposal"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Draft a proposal document for a parsed project",
		Long: `Generate reads one project record as JSON from a file or stdin and drafts
a structured proposal document through the configured LLM provider. The
proposal is printed as JSON.

Provider settings come from the config file or environment:
  llm.provider            openai or anthropic
  llm.openai_api_key      API key when provider is openai
  llm.anthropic_api_key   API key when provider is anthropic
  llm.model               optional model override`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 1 {
				data, err = os.ReadFile(args[0]) //nolint:gosec // user-supplied input path
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[0], err)
				}
			} else {
				data, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			projects, err := decodeProjects(data)
			if err != nil {
				return err
			}
			if len(projects) != 1 {
				return fmt.Errorf("generate expects exactly one project record, got %d", len(projects))
			}

			client, err := buildLLMClient()
			if err != nil {
				return err
			}

			doc, err := proposal.NewGenerator(client).Generate(cmd.Context(), projects[0])
			if err != nil {
				return err
			}

			cmd.PrintErrln(cli.FormatSuccess("Proposal drafted: " + doc.Title))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}

	return cmd
}

// buildLLMClient assembles the provider client from viper config.
func buildLLMClient() (llm.Client, error) {
	provider := strings.ToLower(viper.GetString("llm.provider"))
	if provider == "" {
		return nil, fmt.Errorf("llm.provider is not configured (set llm.provider to openai or anthropic)")
	}

	cfg := llm.Config{
		Provider:    provider,
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}

	switch provider {
	case "openai":
		cfg.APIKey = viper.GetString("llm.openai_api_key")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm.openai_api_key is not configured")
		}
	case "anthropic":
		cfg.APIKey = viper.GetString("llm.anthropic_api_key")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm.anthropic_api_key is not configured")
		}
	}

	return llm.NewClient(cfg)
}
