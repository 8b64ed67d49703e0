package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/quizcraft/internal/store"
)

type recordingEventRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingEventRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMRequestEventRecord, error) {
	return nil, nil
}

func (r *recordingEventRepo) GetLLMEvent(context.Context, int) (*store.LLMRequestEventRecord, error) {
	return nil, nil
}

func (r *recordingEventRepo) LLMUsageByPurpose(context.Context) ([]store.LLMUsageStats, error) {
	return nil, nil
}

func (r *recordingEventRepo) LLMUsageByModel(context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

func (r *recordingEventRepo) PruneLLMEvents(context.Context, int) (int64, error) {
	return 0, nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{Text: "raw output", Usage: Usage{InputTokens: 7, OutputTokens: 3}})
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithRunID(WithPurpose(context.Background(), "quiz-gen"), "run-42")
	req := UserPrompt("make a quiz")
	req.JSONMode = true
	resp, err := p.Generate(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "raw output" {
		t.Fatalf("response altered: %q", resp.Text)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Purpose != "quiz-gen" || ev.RunID != "run-42" {
		t.Fatalf("unexpected purpose/run id: %q/%q", ev.Purpose, ev.RunID)
	}
	if !ev.Success || ev.InputTokens != 7 || ev.OutputTokens != 3 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.ResponseBody != "raw output" {
		t.Fatalf("expected response body, got %q", ev.ResponseBody)
	}
	if ev.RequestBody != "[user]\nmake a quiz\n\n[json mode]\n" {
		t.Fatalf("unexpected request body %q", ev.RequestBody)
	}
}

func TestLoggingProvider_RecordsFailureAndIgnoresRepoErrors(t *testing.T) {
	repo := &recordingEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	p := WithLogging(mock, "mock", repo, nil)

	_, err := p.Generate(context.Background(), UserPrompt("x"))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", repo.events)
	}
	if repo.events[0].ErrorMessage == "" {
		t.Fatal("expected error message to be recorded")
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", nil, nil)
	resp, err := p.Generate(context.Background(), UserPrompt("x"))
	if err != nil || resp.Text != "ok" {
		t.Fatalf("unexpected result: %v %v", resp, err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected model id passthrough, got %q", p.ModelID())
	}
}
