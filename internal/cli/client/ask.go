package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ChatMessage represents one turn of the conversation sent to the API.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the chat API request.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	CurrentPath string        `json:"current_path,omitempty"`
}

// AskResponse represents the response generation API response.
type AskResponse struct {
	Response string `json:"response"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant a question",
		Long:  "Sends a message to the assistant and prints the grounded reply.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAsk(args[0], page, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&page, "page", "p", "/", "Page the visitor is on")

	return cmd
}

func runAsk(message, page string, outputJSON bool) error {
	api, err := NewAPIClient()
	if err != nil {
		return err
	}

	req := ChatRequest{
		Messages:    []ChatMessage{{Role: "user", Content: message}},
		CurrentPath: page,
	}

	resp, err := api.Post("/chat/response", req)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	var askResp AskResponse
	if err := json.Unmarshal(resp.Data, &askResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(askResp, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Println(askResp.Response)
	}

	return nil
}
