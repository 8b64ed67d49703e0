package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/logger"
	"github.com/abhisek/quizcraft/internal/quiz"
)

// Limits enforced by Validate.
const (
	MinQuestions   = 1
	MaxQuestions   = 12
	MinAttempts    = 1
	MaxAttemptsCap = 5
)

// EnvFiles are loaded, when present, before reading the environment.
// Variables already set in the process win.
var EnvFiles = []string{"a.env", ".env"}

// Config is the resolved application configuration.
type Config struct {
	LLM llm.Config

	// LLMConfigured is false when no provider was selected and no API key
	// was discovered.
	LLMConfigured bool

	Quiz   QuizConfig
	Log    logger.Config
	DBPath string // empty means store.DefaultDBPath

	// File is the config file that was read, if any.
	File string
}

// QuizConfig holds quiz generation settings.
type QuizConfig struct {
	Count       int
	Difficulty  quiz.Difficulty
	Model       string
	MaxAttempts int
	BaseWait    time.Duration
	MaxPages    int
	ShowRaw     bool
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"config":       "config",
	"provider":     "llm.provider",
	"model":        "llm.model",
	"ollama-url":   "llm.ollama_url",
	"timeout":      "llm.timeout",
	"count":        "quiz.count",
	"difficulty":   "quiz.difficulty",
	"max-attempts": "quiz.max_attempts",
	"base-wait":    "quiz.base_wait",
	"max-pages":    "quiz.max_pages",
	"show-raw":     "quiz.show_raw",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"log-file":     "log.file",
	"db":           "db",
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.ollama_url", d.Ollama.ServerURL)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("quiz.count", 5)
	v.SetDefault("quiz.difficulty", "medium")
	v.SetDefault("quiz.max_attempts", 3)
	v.SetDefault("quiz.base_wait", time.Second)
	v.SetDefault("quiz.max_pages", 10)
	v.SetDefault("quiz.show_raw", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("db", "")
}

// Load resolves configuration from, in increasing priority: defaults, the
// config file, the environment (QUIZCRAFT_ prefix, dots become
// underscores) and flags that were set on the command line. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	for _, f := range EnvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QUIZCRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	diff, err := quiz.ParseDifficulty(v.GetString("quiz.difficulty"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Quiz: QuizConfig{
			Count:       v.GetInt("quiz.count"),
			Difficulty:  diff,
			Model:       v.GetString("llm.model"),
			MaxAttempts: v.GetInt("quiz.max_attempts"),
			BaseWait:    v.GetDuration("quiz.base_wait"),
			MaxPages:    v.GetInt("quiz.max_pages"),
			ShowRaw:     v.GetBool("quiz.show_raw"),
		},
		Log: logger.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		DBPath: v.GetString("db"),
		File:   v.ConfigFileUsed(),
	}

	cfg.LLM, cfg.LLMConfigured = resolveLLM(v)

	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}

	v.SetConfigName("quizcraft")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "quizcraft"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// resolveLLM builds the provider configuration. Keys come from
// QUIZCRAFT_<PROVIDER>_API_KEY or the vendor's usual variable. Without an
// explicit provider the vendor variables are probed in priority order,
// then the prefixed ones.
func resolveLLM(v *viper.Viper) (llm.Config, bool) {
	provider := strings.ToLower(v.GetString("llm.provider"))
	if provider == "" {
		if d, ok := llm.DiscoverConfig(); ok {
			provider = d.Provider
		} else {
			for _, p := range discoveryOrder {
				if v.GetString(p+"_api_key") != "" {
					provider = p
					break
				}
			}
		}
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = provider
	cfg.Anthropic.APIKey = apiKey(v, llm.ProviderAnthropic, "ANTHROPIC_API_KEY")
	cfg.OpenAI.APIKey = apiKey(v, llm.ProviderOpenAI, "OPENAI_API_KEY")
	cfg.Gemini.APIKey = apiKey(v, llm.ProviderGemini, "GEMINI_API_KEY")
	cfg.OpenRouter.APIKey = apiKey(v, llm.ProviderOpenRouter, "OPENROUTER_API_KEY")
	cfg.Ollama.ServerURL = v.GetString("llm.ollama_url")
	cfg.Timeout = v.GetDuration("llm.timeout")
	cfg.SetModel(v.GetString("llm.model"))
	return cfg, provider != ""
}

var discoveryOrder = []string{
	llm.ProviderGemini,
	llm.ProviderOpenAI,
	llm.ProviderAnthropic,
	llm.ProviderOpenRouter,
}

func apiKey(v *viper.Viper, provider, vendorEnv string) string {
	if k := v.GetString(provider + "_api_key"); k != "" {
		return k
	}
	return os.Getenv(vendorEnv)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	q := c.Quiz
	if q.Count < MinQuestions || q.Count > MaxQuestions {
		return fmt.Errorf("question count must be between %d and %d, got %d", MinQuestions, MaxQuestions, q.Count)
	}
	if q.MaxAttempts < MinAttempts || q.MaxAttempts > MaxAttemptsCap {
		return fmt.Errorf("max attempts must be between %d and %d, got %d", MinAttempts, MaxAttemptsCap, q.MaxAttempts)
	}
	if q.BaseWait < 0 {
		return fmt.Errorf("base wait must not be negative, got %s", q.BaseWait)
	}
	if q.MaxPages < 1 {
		return fmt.Errorf("max pages must be at least 1, got %d", q.MaxPages)
	}
	return nil
}
