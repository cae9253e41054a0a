package main

import (
	"github.com/spf13/cobra"

	"github.com/hongminglow/user-directory/internal/client"
	"github.com/hongminglow/user-directory/internal/console"
	"github.com/hongminglow/user-directory/internal/directory"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive client for a running users API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, zl, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer zl.Sync()

		baseURL, _ := cmd.Flags().GetString("api")
		if baseURL == "" {
			baseURL = cfg.APIBaseURL
		}
		api, err := client.New(baseURL)
		if err != nil {
			return err
		}

		con := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
		ctrl := directory.New(api, con,
			directory.WithNoticeTTL(cfg.NoticeTTL),
			directory.WithLogger(zl.Named("console")),
		)
		return con.Run(cmd.Context(), ctrl)
	},
}

func init() {
	consoleCmd.Flags().String("api", "", "API base URL (defaults to API_BASE_URL)")
	rootCmd.AddCommand(consoleCmd)
}
