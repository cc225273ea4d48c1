package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/cliniquehq/clinique_backend/cmd/http"
	systemcmd "github.com/cliniquehq/clinique_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "clinique",
	Short: "Clinique backend for therapy practice management.",
	Long: `Clinique is the backend for a therapy practice management platform.
It handles patient and therapist accounts, appointment scheduling, clinical
notes, and prediction-assisted scheduling insights behind a single HTTP API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
