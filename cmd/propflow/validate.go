package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/propflow/propflow/internal/cli"
	"github.com/propflow/propflow/internal/model"
	"github.com/propflow/propflow/internal/validation"
)

func validateCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate project records from a JSON file",
		Long: `Validate reads one project record (or an array of records) as JSON from a
file or stdin and reports validation errors, warnings, and the confidence,
completeness, and quality scores for each record.`,
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

			type scored struct {
				Project      model.ParsedProject    `json:"project"`
				Result       model.ValidationResult `json:"result"`
				Completeness float64                `json:"completeness"`
				Quality      float64                `json:"quality"`
			}

			results := make([]scored, 0, len(projects))
			invalid := 0
			for _, project := range projects {
				result := validation.ValidateProject(project)
				if !result.IsValid {
					invalid++
				}
				results = append(results, scored{
					Project:      project,
					Result:       result,
					Completeness: validation.CompletenessScore(project),
					Quality:      validation.QualityScore(project),
				})
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					printScored(cmd, r.Project, r.Result, r.Completeness, r.Quality)
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d records failed validation", invalid, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	return cmd
}

// decodeProjects accepts either a single record object or an array of them.
func decodeProjects(data []byte) ([]model.ParsedProject, error) {
	var projects []model.ParsedProject
	if err := json.Unmarshal(data, &projects); err == nil {
		return projects, nil
	}

	var single model.ParsedProject
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("input is neither a project record nor an array of records: %w", err)
	}
	return []model.ParsedProject{single}, nil
}

func printScored(cmd *cobra.Command, project model.ParsedProject, result model.ValidationResult, completeness, quality float64) {
	title := project.Title
	if title == "" {
		title = "(untitled)"
	}

	if result.IsValid {
		cmd.Println(cli.FormatSuccess(title))
	} else {
		cmd.Println(cli.FormatError(title))
	}
	cmd.Println(cli.SubtleStyle.Render(fmt.Sprintf("  confidence %.2f · completeness %.2f · quality %.2f",
		result.Confidence, completeness, quality)))

	for _, e := range result.Errors {
		cmd.Println(cli.ErrorStyle.Render("  " + cli.ErrorIcon + " " + e))
	}
	for _, w := range result.Warnings {
		cmd.Println(cli.WarningStyle.Render("  " + cli.WarningIcon + " " + w))
	}
}
