package main

import (
	"github.com/spf13/cobra"

	steeltui "github.com/Alvsch/steel-tui"
	"github.com/Alvsch/steel-tui/internal/appconfig"
	"github.com/Alvsch/steel-tui/internal/version"
)

func newRunCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the server and attach the console",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			app, err := steeltui.New(cfg, steeltui.Options{
				Version: version.Current(),
			})
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	return cmd
}
