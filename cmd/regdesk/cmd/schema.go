package cmd

import (
	"fmt"

	"github.com/nfrund/regdesk/internal/app"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the store schema",
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create or migrate the schema of the configured store",
	Long: `Apply the schema of the store selected by DB_DRIVER.

  surreal   defines the user and event_registration tables, their unique
            indexes and fn::register_attendee
  postgres  runs the embedded migrations
  memory    nothing to do

Every step is idempotent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		store, err := app.OpenStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		if err := store.ApplySchema(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Schema applied (%s)\n", cfg.DBDriver)
		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaApplyCmd)
	rootCmd.AddCommand(schemaCmd)
}
