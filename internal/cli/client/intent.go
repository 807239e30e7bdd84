package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// SuggestedAction represents a UI action suggested alongside the intent.
type SuggestedAction struct {
	Type   string            `json:"type"`
	Target string            `json:"target,omitempty"`
	Data   map[string]string `json:"data,omitempty"`
}

// IntentResult represents one classified intent.
type IntentResult struct {
	Intent          string           `json:"intent"`
	Confidence      float64          `json:"confidence"`
	SuggestedAction *SuggestedAction `json:"suggestedAction,omitempty"`
}

// IntentResponse represents the intent API response.
type IntentResponse struct {
	Intent IntentResult `json:"intent"`
}

// IntentCmd creates the intent command.
func IntentCmd() *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "intent <message>",
		Short: "Classify a message's intent",
		Long:  "Classifies the visitor intent of a message and prints the suggested action.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runIntent(args[0], page, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&page, "page", "p", "/", "Page the visitor is on")

	return cmd
}

func runIntent(message, page string, outputJSON bool) error {
	api, err := NewAPIClient()
	if err != nil {
		return err
	}

	req := ChatRequest{
		Messages:    []ChatMessage{{Role: "user", Content: message}},
		CurrentPath: page,
	}

	resp, err := api.Post("/chat/intent", req)
	if err != nil {
		return fmt.Errorf("intent detection failed: %w", err)
	}

	var intentResp IntentResponse
	if err := json.Unmarshal(resp.Data, &intentResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(intentResp, "", "  ")
		fmt.Println(string(output))
	} else {
		result := intentResp.Intent
		fmt.Printf("Intent: %s (%.2f)\n", result.Intent, result.Confidence)
		if result.SuggestedAction != nil && result.SuggestedAction.Type != "none" {
			fmt.Printf("Action: %s", result.SuggestedAction.Type)
			if result.SuggestedAction.Target != "" {
				fmt.Printf(" -> %s", result.SuggestedAction.Target)
			}
			fmt.Println()
		}
	}

	return nil
}
