// Command notesctl runs out-of-band maintenance tasks against the notes database.
package main

import (
	"fmt"
	"os"

	"notes/notes/config"
	"notes/notes/utils/color"
	"notes/notes/utils/logging"

	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "notesctl",
	Short:         "Maintenance commands for the notes backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()
		return logging.InitLogger(cfg.LogDir)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError("Error: "+err.Error()))
		os.Exit(1)
	}
}
