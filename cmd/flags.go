package cmd

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/abhisek/quizcraft/internal/source"
)

// addGlobalFlags registers flags shared by every command.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (default ./quizcraft.yaml or $XDG_CONFIG_HOME/quizcraft/quizcraft.yaml)")
	fs.String("db", "", "Path to SQLite database file (overrides QUIZCRAFT_DB)")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.String("log-format", "console", "Log format: console or json")
	fs.String("log-file", "", "Write logs to this file instead of stderr")
}

// addQuizFlags registers the source and generation flags of play and
// generate.
func addQuizFlags(fs *pflag.FlagSet) {
	fs.String("pdf", "", "PDF file to build the quiz from")
	fs.String("file", "", "Text file to build the quiz from (- for stdin)")
	fs.String("text", "", "Inline text to build the quiz from")
	fs.Int("max-pages", source.DefaultMaxPages, "Maximum PDF pages to read")

	fs.IntP("count", "n", 5, "Number of questions (1-12)")
	fs.StringP("difficulty", "d", "medium", "Difficulty: easy, medium or hard")
	fs.Int("max-attempts", 3, "Model attempts before falling back (1-5)")
	fs.Duration("base-wait", time.Second, "Backoff unit between attempts")
	fs.Bool("show-raw", true, "Show raw model output when generation fails")
	fs.Bool("fallback-only", false, "Skip the language model and use the local generator")

	fs.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter, ollama")
	fs.String("model", "", "Model name override for the selected provider")
	fs.String("ollama-url", "", "Ollama server URL")
	fs.Duration("timeout", 0, "Per-request timeout for the model (0 uses the default)")
}
