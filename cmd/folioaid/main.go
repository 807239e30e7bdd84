package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/basudev-labs/folio-assistant/internal/cli"
	"github.com/basudev-labs/folio-assistant/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "folioaid",
		Short: "Folio assistant daemon",
		Long:  "Folio assistant daemon for running the chat API server",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
