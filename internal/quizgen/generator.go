package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/quiz"
)

// Purpose labels quiz generation requests in the LLM event log.
const Purpose = "quiz-gen"

// rawPreviewLen bounds how much model output goes into a log line.
const rawPreviewLen = 200

// Config controls the retry loop and the provider request.
type Config struct {
	// MaxAttempts is the number of provider calls before giving up.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// BaseWait is the linear backoff unit: attempt n waits n*BaseWait.
	BaseWait time.Duration

	// MaxTokens is the token budget for the model response. Zero leaves
	// the provider default.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64

	// JSONMode asks providers that support it for a JSON response body.
	JSONMode bool
}

// DefaultConfig returns the settings the interactive app uses.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseWait:    time.Second,
		MaxTokens:   4096,
		JSONMode:    true,
	}
}

// Request is one quiz generation request.
type Request struct {
	SourceText string
	Count      int
	Difficulty quiz.Difficulty

	// Model overrides the provider's configured model when set.
	Model string
}

// Result is a successfully generated quiz.
type Result struct {
	Quiz     *quiz.Quiz
	Raw      string // model output the quiz was parsed from
	Attempts int    // provider calls made, including the successful one
	RunID    string
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleep is the default Sleeper.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Option configures a Generator.
type Option func(*Generator)

// WithSleeper replaces the backoff sleeper. Tests use it to skip waiting.
func WithSleeper(s Sleeper) Option {
	return func(g *Generator) { g.sleep = s }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// Generator turns source text into a quiz by calling the provider until a
// response survives extraction, validation and normalization.
// A Generator runs one request at a time per call and holds no state
// between calls.
type Generator struct {
	provider llm.Provider
	config   Config
	sleep    Sleeper
	logger   *zap.Logger
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		config:   cfg,
		sleep:    ContextSleep,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the retry loop. It returns either a Result or an
// *ExhaustedError; per-attempt failures never escape on their own.
// When ctx is done the loop stops early and the ExhaustedError wraps
// the context error.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	ctx = llm.WithRunID(llm.WithPurpose(ctx, Purpose), runID)
	log := g.logger.With(zap.String("run_id", runID))

	maxAttempts := max(1, g.config.MaxAttempts)
	prompt := BuildPrompt(req.SourceText, req.Count, req.Difficulty)

	var (
		lastRaw string
		lastErr error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &ExhaustedError{Attempts: attempt - 1, LastRaw: lastRaw, Err: err}
		}

		q, raw, err := g.attempt(ctx, prompt, req, attempt)
		lastRaw = raw
		if err == nil {
			if n := len(q.Questions); req.Count > 0 && n != req.Count {
				log.Debug("question count differs from request",
					zap.Int("requested", req.Count),
					zap.Int("returned", n))
			}
			log.Info("quiz generated",
				zap.Int("attempt", attempt),
				zap.Int("questions", len(q.Questions)))
			return &Result{Quiz: q, Raw: raw, Attempts: attempt, RunID: runID}, nil
		}

		lastErr = err
		g.logFailure(log, err, raw)

		if attempt == maxAttempts {
			break
		}
		if err := g.sleep(ctx, g.config.BaseWait*time.Duration(attempt)); err != nil {
			return nil, &ExhaustedError{Attempts: attempt, LastRaw: lastRaw, Err: err}
		}
	}

	return nil, &ExhaustedError{Attempts: maxAttempts, LastRaw: lastRaw, Err: lastErr}
}

// attempt performs one provider call and runs the parsing pipeline. raw is
// the model output, or the error text when the call failed.
func (g *Generator) attempt(ctx context.Context, prompt string, req Request, n int) (*quiz.Quiz, string, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Model:       req.Model,
		JSONMode:    g.config.JSONMode,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, err.Error(), &AttemptError{Attempt: n, Stage: StageProvider, Err: err}
	}

	raw := resp.Text
	cause := func(sentinel error) error {
		if resp.StopReason == "max_tokens" {
			return fmt.Errorf("%w: %w", sentinel, &llm.ErrMaxTokensExceeded{Text: raw})
		}
		return sentinel
	}

	v, ok := ExtractJSON(raw)
	if !ok {
		return nil, raw, &AttemptError{Attempt: n, Stage: StageExtract, Err: cause(ErrNoJSON)}
	}
	if !IsValidQuiz(v, req.Count) {
		return nil, raw, &AttemptError{Attempt: n, Stage: StageValidate, Err: cause(ErrSchemaMismatch)}
	}

	q := Normalize(v, req.Difficulty)
	if err := q.Validate(); err != nil {
		return nil, raw, &AttemptError{Attempt: n, Stage: StageNormalize, Err: err}
	}
	return q, raw, nil
}

func (g *Generator) logFailure(log *zap.Logger, err error, raw string) {
	var ae *AttemptError
	if !errors.As(err, &ae) {
		log.Warn("generation attempt failed", zap.Error(err))
		return
	}

	if ae.Stage == StageProvider {
		log.Warn("generation attempt failed",
			zap.Int("attempt", ae.Attempt),
			zap.String("error_type", fmt.Sprintf("%T", ae.Err)),
			zap.Error(ae.Err))
		return
	}

	log.Info("parsing failed or schema mismatch",
		zap.Int("attempt", ae.Attempt),
		zap.String("stage", string(ae.Stage)),
		zap.String("raw_preview", preview(raw, rawPreviewLen)),
		zap.Error(ae.Err))
}

// preview returns at most n runes of s.
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
