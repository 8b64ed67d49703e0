package quizgen

import (
	"errors"
	"fmt"
)

var (
	// ErrNoJSON means no JSON value could be located in the model output.
	ErrNoJSON = errors.New("no JSON found in model output")

	// ErrSchemaMismatch means JSON was found but lacks the minimal quiz shape.
	ErrSchemaMismatch = errors.New("model output does not match the quiz schema")
)

// Stage identifies where in the pipeline an attempt failed.
type Stage string

const (
	StageProvider  Stage = "provider"
	StageExtract   Stage = "extract"
	StageValidate  Stage = "validate"
	StageNormalize Stage = "normalize"
)

// AttemptError is the failure of a single generation attempt.
type AttemptError struct {
	Attempt int
	Stage   Stage
	Err     error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("attempt %d failed at %s: %v", e.Attempt, e.Stage, e.Err)
}

func (e *AttemptError) Unwrap() error { return e.Err }

// ExhaustedError is returned by Generator.Generate when no attempt produced
// a canonical quiz. LastRaw holds the last model output, or the provider
// error text when the last call itself failed.
type ExhaustedError struct {
	Attempts int
	LastRaw  string
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("quiz generation failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }
