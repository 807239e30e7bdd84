package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	sub := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask a question",
		Run:   func(cmd *cobra.Command, args []string) {},
	}
	sub.Flags().StringP("page", "p", "/", "Page the visitor is on")

	root := &cobra.Command{
		Use:   "folioai",
		Short: "Client CLI",
	}
	root.AddCommand(sub)
	AddHelpJSONFlag(root)

	schema := GenerateSchema(root)

	assert.Equal(t, "folioai", schema.Name)
	require.Len(t, schema.Subcommands, 1)

	askSchema := schema.Subcommands[0]
	assert.Equal(t, "ask", askSchema.Name)
	assert.Equal(t, "Ask a question", askSchema.Description)
	require.Len(t, askSchema.Flags, 1)
	assert.Equal(t, "page", askSchema.Flags[0].Name)
	assert.Equal(t, "p", askSchema.Flags[0].Shorthand)
	assert.Equal(t, "/", askSchema.Flags[0].Default)
}

func TestGenerateSchema_SkipsHelpFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "folioai"}
	AddHelpJSONFlag(cmd)
	cmd.InitDefaultHelpFlag()

	schema := GenerateSchema(cmd)

	for _, f := range schema.Flags {
		assert.NotEqual(t, "help", f.Name)
		assert.NotEqual(t, "help-json", f.Name)
	}
}

func TestFindTargetCommand(t *testing.T) {
	sub := &cobra.Command{Use: "kb"}
	stats := &cobra.Command{Use: "stats"}
	sub.AddCommand(stats)

	root := &cobra.Command{Use: "folioai"}
	root.AddCommand(sub)

	assert.Equal(t, root, findTargetCommand(root, nil))
	assert.Equal(t, sub, findTargetCommand(root, []string{"kb"}))
	assert.Equal(t, stats, findTargetCommand(root, []string{"kb", "stats"}))
	assert.Equal(t, root, findTargetCommand(root, []string{"nope"}))
}
