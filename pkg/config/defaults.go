package config

const (
	defaultTopK       = 4
	defaultPoolFactor = 4
	defaultWindowDays = 30

	defaultEmbeddingProvider   = "ollama"
	defaultEmbeddingTarget     = "http://localhost:11434"
	defaultEmbeddingModel      = "multilingual-e5-base"
	defaultEmbeddingDimensions = 768
	defaultQueryPrefix         = "query: "
	defaultPassagePrefix       = "passage: "

	defaultLLMProvider    = "ollama"
	defaultLLMTarget      = "http://localhost:11434"
	defaultLLMModel       = "llama3.1"
	defaultLLMTemperature = 0.2

	defaultPersonaID = "weekend_curator"

	defaultAPIListen = ":8081"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Retrieval: RetrievalConfig{
			TopK:       defaultTopK,
			PoolFactor: defaultPoolFactor,
			WindowDays: defaultWindowDays,
		},
		Embedding: EmbeddingConfig{
			Provider:      defaultEmbeddingProvider,
			Target:        defaultEmbeddingTarget,
			Model:         defaultEmbeddingModel,
			Dimensions:    defaultEmbeddingDimensions,
			QueryPrefix:   defaultQueryPrefix,
			PassagePrefix: defaultPassagePrefix,
		},
		LLM: LLMConfig{
			Provider:    defaultLLMProvider,
			Target:      defaultLLMTarget,
			Model:       defaultLLMModel,
			Temperature: defaultLLMTemperature,
		},
		Persona: PersonaConfig{
			Default: defaultPersonaID,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
	}
}
