package quizgen

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/quizcraft/internal/quiz"
)

// Outcome is the quiz a caller presents and how it was obtained.
type Outcome struct {
	Quiz     *quiz.Quiz
	Fallback bool   // built locally instead of by the model
	Attempts int    // provider calls made
	RunID    string // set when the model produced the quiz
	Raw      string // last model output, empty when no model was called

	// Err is the generation failure that caused the fallback.
	Err error
}

// Pipeline asks the model first and falls back to the local generator
// when the model cannot produce a quiz. A nil Generator goes straight to
// the fallback.
type Pipeline struct {
	Generator *Generator
	Fallback  *Fallback
	Logger    *zap.Logger
}

// Run always yields a quiz unless ctx ends first, in which case the context
// error is returned.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Outcome, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fb := p.Fallback
	if fb == nil {
		fb = NewFallback(nil)
	}

	out := &Outcome{}
	if p.Generator != nil {
		res, err := p.Generator.Generate(ctx, req)
		if err == nil {
			out.Quiz = res.Quiz
			out.Attempts = res.Attempts
			out.RunID = res.RunID
			out.Raw = res.Raw
			return out, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var exhausted *ExhaustedError
		if errors.As(err, &exhausted) {
			out.Attempts = exhausted.Attempts
			out.Raw = exhausted.LastRaw
		}
		out.Err = err
		log.Warn("falling back to local quiz generator", zap.Error(err))
	}

	out.Quiz = fb.Generate(req.SourceText, req.Count, req.Difficulty)
	out.Fallback = true
	return out, nil
}
