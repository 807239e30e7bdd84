package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/basudev-labs/folio-assistant/internal/cli"
	"github.com/basudev-labs/folio-assistant/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "folioai",
		Short: "Folio assistant CLI - Talk to the portfolio chatbot",
		Long: `Folio assistant CLI provides commands to query the portfolio chatbot API.

Environment variables:
  FOLIO_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.IntentCmd())
	rootCmd.AddCommand(client.KbCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
