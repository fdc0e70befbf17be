package model

// ================ Config ================

type ConversationConfig struct {
	// TTL applied to each thread's persisted profile, refreshed on every save.
	TTL string `envconfig:"CONVERSATION_TTL" default:"24h"`
}

type CompletionModelConfig struct {
	Model     string `envconfig:"COMPLETION_MODEL" default:"gemini-2.5-flash"`
	MaxTokens int    `envconfig:"COMPLETION_MAX_TOKENS" default:"2000"`
}

// TemperatureConfig carries the per-purpose sampling temperatures for the
// single completion model: deterministic extraction, slightly creative
// clarification, and conversational answers.
type TemperatureConfig struct {
	Extract float32 `envconfig:"EXTRACT_TEMPERATURE" default:"0"`
	Clarify float32 `envconfig:"CLARIFY_TEMPERATURE" default:"0.3"`
	Answer  float32 `envconfig:"ANSWER_TEMPERATURE" default:"0.4"`
}

type PromptConfig struct {
	StoreName     string `envconfig:"PROMPT_STORE_NAME" default:"ForeverFurEver"`
	KnowledgePath string `envconfig:"PROMPT_KNOWLEDGE_PATH" default:"docs/01_store_knowledge.md"`
}

type StorefrontConfig struct {
	Domain     string `envconfig:"SHOPIFY_STORE_DOMAIN" required:"true"`
	Token      string `envconfig:"SHOPIFY_STOREFRONT_TOKEN" required:"true"`
	APIVersion string `envconfig:"SHOPIFY_API_VERSION" default:"2024-07"`
	TimeoutSec int    `envconfig:"SHOPIFY_TIMEOUT_SECONDS" default:"20"`
}
