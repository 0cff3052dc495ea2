/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adressbuch/apiserver/config"
	"github.com/adressbuch/apiserver/internal/server"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the address-book API server",
	Long: `Starts the address-book API server. Usage:

	adressbuch server
`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		cfg := config.LoadConfig()

		srv, err := server.New(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Error().Err(err).Msg("failed to start server")
			os.Exit(1)
		}

		logger.Info().Int("port", cfg.ServerPort).Msg("server listening")
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
