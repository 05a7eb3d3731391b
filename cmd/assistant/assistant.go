// Package assistantcmder
package assistantcmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/ncuacg/assistant/cmd/assistant/ask"
	configcmder "github.com/ncuacg/assistant/cmd/assistant/config"
	personascmder "github.com/ncuacg/assistant/cmd/assistant/personas"
	seedcmder "github.com/ncuacg/assistant/cmd/assistant/seed"
	servecmder "github.com/ncuacg/assistant/cmd/assistant/serve"
)

const assistantLongDesc string = `Assistant is the club's knowledge chatbot.

It answers questions about club notices and events by retrieving the most
relevant upcoming items from a pre-embedded snapshot and asking an LLM in
one of several selectable personas.

Common commands:
  assistant serve       Run the API server
  assistant ask         Ask a one-shot question
  assistant seed        Build the snapshot from content files
  assistant personas    List available personas`

const assistantShortDesc string = "Assistant - club notice chatbot"

func NewAssistantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assistant",
		Short: assistantShortDesc,
		Long:  assistantLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory containing the .assistant/ config (default: auto-discover)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(personascmder.NewPersonasCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(seedcmder.NewSeedCmd())

	return cmd
}
