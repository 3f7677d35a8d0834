package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propflow/propflow/internal/cli"
	"github.com/propflow/propflow/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review saved parse runs",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent parse runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				cmd.Println(cli.FormatInfo("No saved runs yet. Use `propflow parse --save` to record one."))
				return nil
			}

			cmd.Println(cli.FormatTitle("Parse runs"))
			header := fmt.Sprintf("%-36s  %-16s  %-4s  %5s  %10s  %s",
				"ID", "SOURCE", "LANG", "ITEMS", "CONFIDENCE", "CREATED")
			cmd.Println(cli.TableHeaderStyle.Render(header))
			for _, run := range runs {
				cmd.Printf("%-36s  %-16s  %-4s  %5d  %10.2f  %s\n",
					run.ID, run.Source, run.Language, run.ItemCount, run.Confidence,
					run.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list")

	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the stored records of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, projects, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.PrintErrln(cli.FormatInfo(fmt.Sprintf("Run %s · %s · %d record(s)",
				run.ID, run.Source, run.ItemCount)))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(projects)
		},
	}
}

func openStorage(cmd *cobra.Command) (*storage.SQLiteStorage, error) {
	dbPath, err := defaultDBPath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
