// Package configcmder provides the config command for managing persistent
// assistant configuration stored in the .assistant/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent assistant configuration.

Configuration is stored as config.toml in the .assistant/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  storage.snapshot_path,
  retrieval.top_k, retrieval.pool_factor, retrieval.window_days,
  embedding.provider, embedding.target, embedding.model,
  embedding.dimensions, embedding.query_prefix, embedding.passage_prefix,
  llm.provider, llm.target, llm.model, llm.api_key_env, llm.temperature,
  persona.default, api.listen

Persona file paths and secret phrases are file-only settings; edit the
[persona] section of config.toml directly.

Use subcommands to get, set, or list configuration values:
  assistant config set <key> <value>    Set a configuration value
  assistant config get <key>            Get a configuration value
  assistant config list                 List all configuration values

Examples:
  assistant config set llm.provider groq
  assistant config set embedding.model multilingual-e5-base
  assistant config get retrieval.top_k
  assistant config list`

const configShortDesc string = "Manage persistent assistant configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
