// Package personascmder provides the persona listing cobra command.
package personascmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ncuacg/assistant/pkg/cliui"
	"github.com/ncuacg/assistant/pkg/config"
	"github.com/ncuacg/assistant/pkg/logger"
	"github.com/ncuacg/assistant/pkg/persona"
)

const personasLongDesc string = `List the personas the assistant can answer as.

Shows the merged persona table: definitions from the persona JSON file
layered over the built-in defaults. The default persona is marked.

Examples:
  assistant personas
  assistant personas --all`

const personasShortDesc string = "List available personas"

type personasCommander struct {
	includeHidden bool
	configDir     string
	debug         bool
}

func NewPersonasCmd() *cobra.Command {
	cmder := &personasCommander{}

	cmd := &cobra.Command{
		Use:   "personas",
		Short: personasShortDesc,
		Long:  personasLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			return cmder.run()
		},
	}

	cmd.Flags().BoolVarP(&cmder.includeHidden, "all", "a", false, "Include hidden personas")

	return cmd
}

func (c *personasCommander) run() error {
	log := logger.NewLogger(c.debug)
	defer func() { _ = log.Sync() }()

	cfger, err := config.NewConfiger(c.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	paths := cfg.Persona.Paths
	if len(paths) == 0 {
		paths = persona.DefaultCandidatePaths
	}

	registry := persona.NewRegistry(persona.Config{
		Paths:     paths,
		DefaultID: cfg.Persona.Default,
	}, log)

	defaultID := registry.DefaultID()
	personas := registry.List(c.includeHidden)

	fmt.Println()
	for _, p := range personas {
		marker := " "
		if p.ID == defaultID {
			marker = cliui.SuccessMark
		}

		line := fmt.Sprintf("  %s %s %s",
			marker,
			cliui.NameStyle.Render(p.Name),
			cliui.DimStyle.Render(fmt.Sprintf("(%s)", p.ID)),
		)
		if p.Hidden {
			line += " " + cliui.DimStyle.Render("[hidden]")
		}
		fmt.Println(line)

		if p.Description != "" {
			fmt.Printf("      %s\n", cliui.DimStyle.Render(p.Description))
		}
	}
	fmt.Println()

	return nil
}
