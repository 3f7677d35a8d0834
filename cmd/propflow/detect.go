package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/propflow/propflow/internal/cli"
	"github.com/propflow/propflow/internal/language"
)

func detectCmd() *cobra.Command {
	var (
		headersMode bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Detect the language of a text payload",
		Long: `Detect reads text from a file (or stdin) and reports the dominant
language with a relative confidence score. With --headers the input is
treated as a comma-separated header row instead of running text.`,
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

			text := strings.TrimSpace(string(data))
			if text == "" {
				return fmt.Errorf("input is empty")
			}

			var detection language.Detection
			if headersMode {
				headers := strings.Split(text, ",")
				for i := range headers {
					headers[i] = strings.TrimSpace(headers[i])
				}
				detection = language.DetectFromHeaders(headers)
			} else {
				detection = language.Detect(text)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(detection)
			}

			cmd.Println(cli.FormatInfo(fmt.Sprintf("Language: %s (confidence %.2f)",
				detection.Language, detection.Confidence)))
			for _, alt := range detection.Alternatives {
				cmd.Println(cli.SubtleStyle.Render(fmt.Sprintf("  also possible: %s (%.2f)",
					alt.Language, alt.Confidence)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&headersMode, "headers", false, "treat input as a comma-separated header row")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the detection result as JSON")

	return cmd
}
