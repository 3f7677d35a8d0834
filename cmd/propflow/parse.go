package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/propflow/propflow/internal/cli"
	"github.com/propflow/propflow/internal/language"
	"github.com/propflow/propflow/internal/model"
	"github.com/propflow/propflow/internal/parser"
	"github.com/propflow/propflow/internal/storage"
)

type parseInput struct {
	name string
	data []byte
}

func parseCmd() *cobra.Command {
	var (
		sourceFlag   string
		langFlag     string
		mappingsFile string
		maxItems     int
		jsonOutput   bool
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse project data from files or stdin",
		Long: `Parse extracts project records from one or more payload files (or stdin
when no file is given), normalizes and validates them, and prints a scored
summary or the full JSON envelope.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			source, err := model.ParseSource(sourceFlag)
			if err != nil {
				return err
			}

			opts := parser.Options{MaxItems: maxItems}
			if langFlag != "" {
				lang, ok := language.Parse(langFlag)
				if !ok {
					return fmt.Errorf("unknown language: %s (expected en, de, uk, or ru)", langFlag)
				}
				opts.Language = lang
			}

			mapper := language.NewMapper()
			if mappingsFile != "" {
				mapper, err = language.NewMapperWithOverrides(mappingsFile)
				if err != nil {
					return fmt.Errorf("failed to load field mappings: %w", err)
				}
			}

			inputs, err := collectInputs(args)
			if err != nil {
				return err
			}

			p := parser.NewWithMapper(mapper)

			var bar *progressbar.ProgressBar
			if len(inputs) > 1 {
				bar = newParseBar(len(inputs))
			}

			responses := make([]model.ParseResponse, 0, len(inputs))
			for _, in := range inputs {
				resp := p.Parse(ctx, source, buildPayload(source, in.data), opts)
				responses = append(responses, resp)
				if bar != nil {
					_ = bar.Add(1)
				}
			}

			if save {
				if err := saveResponses(cmd, responses); err != nil {
					return err
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if len(responses) == 1 {
					return enc.Encode(responses[0])
				}
				return enc.Encode(responses)
			}

			failed := 0
			for i, resp := range responses {
				printParseSummary(cmd, inputs[i].name, resp)
				if !resp.Success {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d payloads failed to parse", failed, len(responses))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "payload source: database_export, tabular, record_store, card_board, free_text, generic_webhook")
	cmd.Flags().StringVarP(&langFlag, "language", "l", "", "force payload language instead of detecting it (en, de, uk, ru)")
	cmd.Flags().StringVarP(&mappingsFile, "mappings", "m", "", "YAML file with extra header-to-field synonyms")
	cmd.Flags().IntVar(&maxItems, "max-items", 0, "stop after this many records per payload (0 = unlimited)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full response envelope as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "record the run in local history")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

// collectInputs reads the payload files, or stdin when none were named.
func collectInputs(args []string) ([]parseInput, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []parseInput{{name: "stdin", data: data}}, nil
	}

	inputs := make([]parseInput, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path) //nolint:gosec // user-supplied input path
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs = append(inputs, parseInput{name: path, data: data})
	}
	return inputs, nil
}

// buildPayload places raw bytes in the payload slot the extractor for this
// source reads from: structured sources consume JSON, text sources consume
// the content string.
func buildPayload(source model.Source, data []byte) model.Payload {
	switch source {
	case model.SourceTabular, model.SourceFreeText:
		return model.Payload{Content: string(data)}
	default:
		return model.Payload{APIResponse: json.RawMessage(data)}
	}
}

func saveResponses(cmd *cobra.Command, responses []model.ParseResponse) error {
	dbPath, err := defaultDBPath()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return err
	}

	for _, resp := range responses {
		if !resp.Success {
			continue
		}
		run, err := store.SaveRun(cmd.Context(), resp)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		cmd.Println(cli.SubtleStyle.Render("saved run " + run.ID))
	}
	return nil
}

func printParseSummary(cmd *cobra.Command, name string, resp model.ParseResponse) {
	if !resp.Success {
		cmd.Println(cli.FormatError(fmt.Sprintf("%s: parse failed", name)))
		for _, msg := range resp.Errors {
			cmd.Println(cli.ErrorStyle.Render("  " + msg))
		}
		return
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("%s: %d record(s), language %s, confidence %.2f",
		name, resp.Metadata.ItemCount, resp.Metadata.Language, resp.Metadata.Confidence)))

	for _, project := range resp.Projects {
		line := "  • " + project.Title
		if project.ClientName != "" {
			line += cli.SubtleStyle.Render(" — " + project.ClientName)
		}
		cmd.Println(line)
	}
	for _, w := range resp.Warnings {
		cmd.Println(cli.FormatWarning("  " + w))
	}
}

func newParseBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Parsing payloads..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[cyan]=[reset]",
			SaucerHead:    "[cyan]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
