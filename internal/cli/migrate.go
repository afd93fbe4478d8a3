package cli

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and list the applied setup steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx, app, app.Config.Seed)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := db.AppliedMigrations(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range applied {
				writeLine(out, "%s\t%s", m.ExecutedAt.Format("2006-01-02 15:04:05"), m.Name)
			}
			writeLine(out, "%d migrations applied (%s)", len(applied), db.Type())
			return nil
		},
	}
}
