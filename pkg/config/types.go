package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent assistant configuration stored as
// config.toml in the .assistant/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Storage   StorageConfig   `toml:"storage"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Persona   PersonaConfig   `toml:"persona"`
	API       APIConfig       `toml:"api"`
}

// StorageConfig holds the document snapshot location.
type StorageConfig struct {
	SnapshotPath string `toml:"snapshot_path,omitempty"`
}

// RetrievalConfig holds ranking and re-ranking settings.
type RetrievalConfig struct {
	// TopK is the number of documents returned per query.
	TopK int `toml:"top_k,omitempty"`

	// PoolFactor over-fetches similarity candidates before the temporal
	// filter runs. Pool size is max(top_k * pool_factor, top_k).
	PoolFactor int `toml:"pool_factor,omitempty"`

	// WindowDays bounds the future event window used for re-ranking.
	WindowDays int `toml:"window_days,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`

	// QueryPrefix and PassagePrefix implement the asymmetric embedding
	// convention of E5-family models. Queries and passages must be prefixed
	// consistently with how the snapshot was built, or cosine similarity is
	// meaningless.
	QueryPrefix   string `toml:"query_prefix,omitempty"`
	PassagePrefix string `toml:"passage_prefix,omitempty"`
}

// LLMConfig holds chat model settings.
type LLMConfig struct {
	Provider string `toml:"provider,omitempty"`
	Target   string `toml:"target,omitempty"`
	Model    string `toml:"model,omitempty"`

	// APIKeyEnv names the environment variable holding the API key for
	// hosted providers. The key itself never lives in the config file.
	APIKeyEnv string `toml:"api_key_env,omitempty"`

	Temperature float64 `toml:"temperature,omitempty"`
}

// PersonaConfig holds persona registry settings.
type PersonaConfig struct {
	// Paths are candidate persona JSON files tried in priority order.
	// When empty, the registry falls back to its built-in candidates.
	Paths []string `toml:"paths,omitempty"`

	// Default is the persona id used when a request carries no usable hint.
	Default string `toml:"default,omitempty"`

	// SecretPhrases maps case-insensitive regex patterns to persona ids.
	// A phrase match in user text overrides any explicit persona selection.
	SecretPhrases map[string]string `toml:"secret_phrases,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported scalar config keys.
// Keys use dotted notation matching the TOML section structure. List and
// table values (persona.paths, persona.secret_phrases) are file-only.
var configKeys = map[string]configKeyInfo{
	"storage.snapshot_path": {
		get: func(c *Config) string { return c.Storage.SnapshotPath },
		set: func(c *Config, v string) error { c.Storage.SnapshotPath = v; return nil },
	},
	"retrieval.top_k": {
		get: func(c *Config) string { return strconv.Itoa(c.Retrieval.TopK) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value for retrieval.top_k: %q", v)
			}
			c.Retrieval.TopK = n
			return nil
		},
	},
	"retrieval.pool_factor": {
		get: func(c *Config) string { return strconv.Itoa(c.Retrieval.PoolFactor) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value for retrieval.pool_factor: %q", v)
			}
			c.Retrieval.PoolFactor = n
			return nil
		},
	},
	"retrieval.window_days": {
		get: func(c *Config) string { return strconv.Itoa(c.Retrieval.WindowDays) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value for retrieval.window_days: %q", v)
			}
			c.Retrieval.WindowDays = n
			return nil
		},
	},
	"embedding.provider": {
		get: func(c *Config) string { return c.Embedding.Provider },
		set: func(c *Config, v string) error { c.Embedding.Provider = v; return nil },
	},
	"embedding.target": {
		get: func(c *Config) string { return c.Embedding.Target },
		set: func(c *Config, v string) error { c.Embedding.Target = v; return nil },
	},
	"embedding.model": {
		get: func(c *Config) string { return c.Embedding.Model },
		set: func(c *Config, v string) error { c.Embedding.Model = v; return nil },
	},
	"embedding.dimensions": {
		get: func(c *Config) string {
			if c.Embedding.Dimensions == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Embedding.Dimensions), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for embedding.dimensions: %w", err)
			}
			c.Embedding.Dimensions = uint(n)
			return nil
		},
	},
	"embedding.query_prefix": {
		get: func(c *Config) string { return c.Embedding.QueryPrefix },
		set: func(c *Config, v string) error { c.Embedding.QueryPrefix = v; return nil },
	},
	"embedding.passage_prefix": {
		get: func(c *Config) string { return c.Embedding.PassagePrefix },
		set: func(c *Config, v string) error { c.Embedding.PassagePrefix = v; return nil },
	},
	"llm.provider": {
		get: func(c *Config) string { return c.LLM.Provider },
		set: func(c *Config, v string) error { c.LLM.Provider = v; return nil },
	},
	"llm.target": {
		get: func(c *Config) string { return c.LLM.Target },
		set: func(c *Config, v string) error { c.LLM.Target = v; return nil },
	},
	"llm.model": {
		get: func(c *Config) string { return c.LLM.Model },
		set: func(c *Config, v string) error { c.LLM.Model = v; return nil },
	},
	"llm.api_key_env": {
		get: func(c *Config) string { return c.LLM.APIKeyEnv },
		set: func(c *Config, v string) error { c.LLM.APIKeyEnv = v; return nil },
	},
	"llm.temperature": {
		get: func(c *Config) string {
			return strconv.FormatFloat(c.LLM.Temperature, 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for llm.temperature: %w", err)
			}
			c.LLM.Temperature = f
			return nil
		},
	},
	"persona.default": {
		get: func(c *Config) string { return c.Persona.Default },
		set: func(c *Config, v string) error { c.Persona.Default = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
}
