package cmd

import (
	"neurobeats/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the NeuroBeats HTTP server",
	Long:  `Start the NeuroBeats API server: authentication, profiles, catalog proxy and player state.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
