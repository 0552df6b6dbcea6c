package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Assistant AssistantConfig `mapstructure:"assistant"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=0,lte=31"`
}

// LLMConfig contains the generative-language backend settings. Both keys are
// optional; the assistant falls back to lexical retrieval when neither backend
// is configured. When both are present the OpenAI-compatible backend wins.
type LLMConfig struct {
	OpenAIAPIKey  string  `mapstructure:"openai_api_key"`
	OpenAIBaseURL string  `mapstructure:"openai_base_url"`
	OpenAIModel   string  `mapstructure:"openai_model"`
	GeminiAPIKey  string  `mapstructure:"gemini_api_key"`
	GeminiModel   string  `mapstructure:"gemini_model"`
	Temperature   float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// SearchConfig contains the optional web search settings. An empty API key
// disables web search entirely.
type SearchConfig struct {
	TavilyAPIKey string `mapstructure:"tavily_api_key"`
	BaseURL      string `mapstructure:"base_url"`
	MaxResults   int    `mapstructure:"max_results" validate:"gte=0,lte=20"`
}

// AssistantConfig tunes the context builder budgets. Zero values fall back to
// the package defaults in internal/assistant.
type AssistantConfig struct {
	MaxPairs          int     `mapstructure:"max_pairs"           validate:"gte=0"`
	ContextChars      int     `mapstructure:"context_chars"       validate:"gte=0"`
	QuestionChars     int     `mapstructure:"question_chars"      validate:"gte=0"`
	AnswerChars       int     `mapstructure:"answer_chars"        validate:"gte=0"`
	WebSnippetChars   int     `mapstructure:"web_snippet_chars"   validate:"gte=0"`
	GibberishMinLen   int     `mapstructure:"gibberish_min_len"   validate:"gte=0"`
	GibberishMinRatio float64 `mapstructure:"gibberish_min_ratio" validate:"gte=0,lte=1"`
}
