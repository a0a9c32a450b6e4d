package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is everything the server binary reads from the environment.
// OPENAI_API_KEY is checked by the serve path, not here, so the offline
// review and rate modes work without it.
type Config struct {
	Addr          string `env:"JDR_ADDR" envDefault:":8080"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	Model         string `env:"JDR_MODEL"`
	MaxTokens     int64  `env:"JDR_MAX_TOKENS" envDefault:"1200"`
	NPCMaxTokens  int64  `env:"JDR_NPC_MAX_TOKENS" envDefault:"300"`
	TablesPath    string `env:"JDR_TABLES_PATH"`
	CompletionsDB string `env:"JDR_COMPLETIONS_DB" envDefault:"./completions.db"`
	CharactersDB  string `env:"JDR_CHARACTERS_DB" envDefault:"./characters.db"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"*"`
	Debug         bool   `env:"JDR_DEBUG" envDefault:"false"`
	DebugLogPath  string `env:"JDR_DEBUG_LOG" envDefault:"debug.log"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
