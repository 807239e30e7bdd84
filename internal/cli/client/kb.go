package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// KnowledgeStats represents the knowledge stats API response.
type KnowledgeStats struct {
	Chunks     int      `json:"chunks"`
	Sources    []string `json:"sources"`
	Categories []string `json:"categories"`
}

// KbCmd creates the kb command group.
func KbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect the knowledge base",
	}

	cmd.AddCommand(kbStatsCmd())

	return cmd
}

func kbStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		Long:  "Shows chunk counts, source documents, and categories. Warms the store if it is cold.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runKbStats(outputJSON)
		},
	}
}

func runKbStats(outputJSON bool) error {
	api, err := NewAPIClient()
	if err != nil {
		return err
	}

	resp, err := api.Get("/knowledge/stats")
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	var stats KnowledgeStats
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		return fmt.Errorf("failed to parse stats: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Chunks:     %d\n", stats.Chunks)
		fmt.Printf("Sources:    %s\n", strings.Join(stats.Sources, ", "))
		fmt.Printf("Categories: %s\n", strings.Join(stats.Categories, ", "))
	}

	return nil
}
