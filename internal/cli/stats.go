package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"taskboard/internal/stats"
	"taskboard/internal/storage"
)

func newStatsCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print project and task counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx, app, false)
			if err != nil {
				return err
			}
			defer db.Close()

			summary, err := stats.New(storage.NewProjectRepository(db), storage.NewTaskRepository(db)).Summary(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			writeLine(out, "database:     %s", db.Type())
			writeLine(out, "projects:     %d", summary.TotalProjects)
			writeLine(out, "tasks:        %d", summary.Total)
			writeLine(out, "  todo:         %d", summary.Todo)
			writeLine(out, "  in progress:  %d", summary.InProgress)
			writeLine(out, "  done:         %d", summary.Done)
			writeLine(out, "  overdue:      %d", summary.Overdue)
			writeLine(out, "priority:     high %d, medium %d, low %d", summary.High, summary.Medium, summary.Low)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
