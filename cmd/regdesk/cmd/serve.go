package cmd

import (
	"github.com/nfrund/regdesk/internal/server"
	"github.com/spf13/cobra"
)

var serveApplySchema bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return server.Run(cmd.Context(), cfg, serveApplySchema)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveApplySchema, "apply-schema", true, "apply the store schema before listening")
	rootCmd.AddCommand(serveCmd)
}
