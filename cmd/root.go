package cmd

import (
	"fmt"
	"log"
	"os"

	"neurobeats/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "neurobeats",
	Short: "NeuroBeats is a music streaming backend.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting NeuroBeats server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
