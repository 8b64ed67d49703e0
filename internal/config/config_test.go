package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/quiz"
)

var providerEnv = []string{
	"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	"QUIZCRAFT_GEMINI_API_KEY", "QUIZCRAFT_OPENAI_API_KEY",
	"QUIZCRAFT_ANTHROPIC_API_KEY", "QUIZCRAFT_OPENROUTER_API_KEY",
	"QUIZCRAFT_LLM_PROVIDER", "QUIZCRAFT_LLM_MODEL",
	"QUIZCRAFT_QUIZ_COUNT", "QUIZCRAFT_QUIZ_DIFFICULTY", "QUIZCRAFT_LOG_LEVEL",
}

// isolate runs the test in an empty directory with no provider keys set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range providerEnv {
		t.Setenv(k, "")
	}
	return dir
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("provider", "", "")
	fs.String("model", "", "")
	fs.Int("count", 5, "")
	fs.String("difficulty", "medium", "")
	fs.Int("max-attempts", 3, "")
	fs.Duration("base-wait", time.Second, "")
	fs.Bool("show-raw", true, "")
	fs.String("log-level", "info", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Quiz.Count)
	assert.Equal(t, quiz.Medium, cfg.Quiz.Difficulty)
	assert.Equal(t, 3, cfg.Quiz.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Quiz.BaseWait)
	assert.Equal(t, 10, cfg.Quiz.MaxPages)
	assert.True(t, cfg.Quiz.ShowRaw)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.File)
	assert.False(t, cfg.LLMConfigured)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZCRAFT_QUIZ_COUNT", "8")
	t.Setenv("QUIZCRAFT_QUIZ_DIFFICULTY", "Hard")
	t.Setenv("QUIZCRAFT_LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Quiz.Count)
	assert.Equal(t, quiz.Hard, cfg.Quiz.Difficulty)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_FlagsBeatEnv(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZCRAFT_QUIZ_COUNT", "8")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--count", "3", "--difficulty", "easy", "--base-wait", "250ms"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Quiz.Count)
	assert.Equal(t, quiz.Easy, cfg.Quiz.Difficulty)
	assert.Equal(t, 250*time.Millisecond, cfg.Quiz.BaseWait)
}

func TestLoad_UnsetFlagsKeepEnv(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZCRAFT_QUIZ_COUNT", "8")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Quiz.Count)
}

func TestLoad_InvalidDifficulty(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZCRAFT_QUIZ_DIFFICULTY", "impossible")

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	content := "quiz:\n  count: 7\n  show_raw: false\nlog:\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quizcraft.yaml"), []byte(content), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Quiz.Count)
	assert.False(t, cfg.Quiz.ShowRaw)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "quizcraft.yaml", filepath.Base(cfg.File))
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })
	// godotenv does not override variables that are already present.
	os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.True(t, cfg.LLMConfigured)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "from-dotenv", cfg.LLM.Gemini.APIKey)
}

func TestLoad_DiscoversProvider(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.True(t, cfg.LLMConfigured)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.Anthropic.APIKey)
}

func TestLoad_DiscoversPrefixedKey(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZCRAFT_OPENAI_API_KEY", "sk-prefixed")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-prefixed", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_ExplicitProviderAndModel(t *testing.T) {
	isolate(t)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--provider", "ollama", "--model", "qwen2.5"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.True(t, cfg.LLMConfigured)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5", cfg.LLM.Ollama.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Ollama.ServerURL)
	assert.Equal(t, "qwen2.5", cfg.Quiz.Model)
	assert.NoError(t, cfg.LLM.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Quiz: QuizConfig{Count: 5, MaxAttempts: 3, BaseWait: time.Second, MaxPages: 10}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"min count", func(c *Config) { c.Quiz.Count = 1 }, true},
		{"max count", func(c *Config) { c.Quiz.Count = 12 }, true},
		{"zero count", func(c *Config) { c.Quiz.Count = 0 }, false},
		{"too many questions", func(c *Config) { c.Quiz.Count = 13 }, false},
		{"zero attempts", func(c *Config) { c.Quiz.MaxAttempts = 0 }, false},
		{"too many attempts", func(c *Config) { c.Quiz.MaxAttempts = 6 }, false},
		{"zero wait", func(c *Config) { c.Quiz.BaseWait = 0 }, true},
		{"negative wait", func(c *Config) { c.Quiz.BaseWait = -time.Second }, false},
		{"zero pages", func(c *Config) { c.Quiz.MaxPages = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
