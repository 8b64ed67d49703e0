package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizcraft/internal/config"
	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/logger"
	"github.com/abhisek/quizcraft/internal/quizgen"
	"github.com/abhisek/quizcraft/internal/source"
	"github.com/abhisek/quizcraft/internal/store"
)

// errNoProvider is returned when generation needs a model but none is
// configured.
var errNoProvider = errors.New("no LLM provider configured: set GEMINI_API_KEY " +
	"(or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY), pass --provider ollama, " +
	"or use --fallback-only")

// loadConfig resolves and validates configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger. While the terminal UI owns the screen only a
// log file is written; without one logging is discarded.
func newLogger(cfg *config.Config, interactive bool) (*zap.Logger, error) {
	if interactive && cfg.Log.File == "" {
		return zap.NewNop(), nil
	}
	return logger.New(cfg.Log)
}

// openStore opens the event database at the configured path.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath := cfg.DBPath
	if dbPath != "" {
		if err := store.EnsureDir(dbPath); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// quizRun holds everything one play or generate invocation needs.
type quizRun struct {
	cfg        *config.Config
	log        *zap.Logger
	store      *store.Store
	pipeline   *quizgen.Pipeline
	request    quizgen.Request
	modelLabel string
}

func (r *quizRun) Close() {
	if r.store != nil {
		r.store.Close()
	}
	_ = r.log.Sync()
}

// newQuizRun loads the source text and wires config, logging, the event
// store, the provider and the generation pipeline.
func newQuizRun(cmd *cobra.Command, interactive bool) (*quizRun, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg, interactive)
	if err != nil {
		return nil, err
	}

	text, err := loadSource(ctx, cmd, cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	r := &quizRun{
		cfg: cfg,
		log: log,
		request: quizgen.Request{
			SourceText: text,
			Count:      cfg.Quiz.Count,
			Difficulty: cfg.Quiz.Difficulty,
		},
		pipeline: &quizgen.Pipeline{
			Fallback: quizgen.NewFallback(nil),
			Logger:   log,
		},
	}

	fallbackOnly, _ := cmd.Flags().GetBool("fallback-only")
	if fallbackOnly {
		return r, nil
	}
	if !cfg.LLMConfigured {
		return nil, errNoProvider
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	r.store = st

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		r.Close()
		return nil, err
	}

	genCfg := quizgen.DefaultConfig()
	genCfg.MaxAttempts = cfg.Quiz.MaxAttempts
	genCfg.BaseWait = cfg.Quiz.BaseWait

	r.pipeline.Generator = quizgen.New(provider, genCfg, quizgen.WithLogger(log))
	r.modelLabel = provider.ModelID()
	return r, nil
}

// loadSource reads the quiz source selected by flags. An unreadable PDF is
// reported on warn and skipped, so --file or --text can still supply text.
func loadSource(ctx context.Context, cmd *cobra.Command, cfg *config.Config, warn io.Writer) (string, error) {
	flags := cmd.Flags()
	opts := source.Options{MaxPages: cfg.Quiz.MaxPages, Stdin: cmd.InOrStdin()}
	opts.PDFPath, _ = flags.GetString("pdf")
	opts.TextPath, _ = flags.GetString("file")
	opts.Text, _ = flags.GetString("text")

	text, err := source.Load(ctx, opts)
	if err != nil && opts.PDFPath != "" && !errors.Is(err, source.ErrNoSource) {
		fmt.Fprintf(warn, "Warning: could not read PDF: %v\n", err)
		opts.PDFPath = ""
		text, err = source.Load(ctx, opts)
	}
	return text, err
}
