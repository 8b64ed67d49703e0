package generating

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/quizgen"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
)

const source = "Photosynthesis converts light energy into chemical energy in plants. " +
	"Chlorophyll absorbs mostly blue and red wavelengths of light. " +
	"Oxygen is released as a by-product of splitting water molecules."

type nextScreen struct{ outcome *quizgen.Outcome }

func (n *nextScreen) Init() tea.Cmd                            { return nil }
func (n *nextScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return n, nil }
func (n *nextScreen) View(int, int) string                    { return "next" }
func (n *nextScreen) Title() string                           { return "next" }

func noWait(context.Context, time.Duration) error { return nil }

func newScreen(p *quizgen.Pipeline, showRaw bool) *GeneratingScreen {
	return New(Config{
		Pipeline: p,
		Request:  quizgen.Request{SourceText: source, Count: 2, Difficulty: quiz.Easy},
		ShowRaw:  showRaw,
		Next:     func(o *quizgen.Outcome) screen.Screen { return &nextScreen{outcome: o} },
	})
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// runPipeline executes the generation command synchronously.
func runPipeline(t *testing.T, g *GeneratingScreen) doneMsg {
	t.Helper()
	msg, ok := g.run()().(doneMsg)
	if !ok {
		t.Fatal("expected doneMsg from run command")
	}
	return msg
}

func TestGenerating_ModelSuccessHandsOver(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `{"quiz_title":"Plants","questions":[{"question":"Q?","options":["a","b","c","d"],"answer_index":1}]}`,
	})
	g := newScreen(&quizgen.Pipeline{
		Generator: quizgen.New(mock, quizgen.DefaultConfig(), quizgen.WithSleeper(noWait)),
	}, true)

	_, cmd := g.Update(runPipeline(t, g))
	if cmd == nil {
		t.Fatal("expected hand-over command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	next := replace.Screen.(*nextScreen)
	if next.outcome.Fallback {
		t.Error("expected model quiz, got fallback")
	}
	if next.outcome.Quiz.Title != "Plants" {
		t.Errorf("title = %q, want Plants", next.outcome.Quiz.Title)
	}
}

func TestGenerating_FallbackShowsNoticeAndRaw(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "I cannot do that"})
	cfg := quizgen.DefaultConfig()
	cfg.MaxAttempts = 1
	g := newScreen(&quizgen.Pipeline{
		Generator: quizgen.New(mock, cfg, quizgen.WithSleeper(noWait)),
	}, true)

	_, cmd := g.Update(runPipeline(t, g))
	if cmd != nil {
		t.Error("fallback should wait for the user before handing over")
	}

	view := g.View(100, 30)
	for _, want := range []string{"Falling back", "I cannot do that", "1 attempt"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	_, cmd = g.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected hand-over on Enter")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg after Enter")
	}
}

func TestGenerating_RawHiddenWhenDisabled(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "secret raw"})
	cfg := quizgen.DefaultConfig()
	cfg.MaxAttempts = 1
	g := newScreen(&quizgen.Pipeline{
		Generator: quizgen.New(mock, cfg, quizgen.WithSleeper(noWait)),
	}, false)

	g.Update(runPipeline(t, g))
	if strings.Contains(g.View(100, 30), "secret raw") {
		t.Error("raw output should be hidden")
	}
}

func TestGenerating_NoModel(t *testing.T) {
	g := newScreen(&quizgen.Pipeline{}, true)
	g.Update(runPipeline(t, g))

	if !strings.Contains(g.View(100, 30), "No language model configured") {
		t.Error("expected no-model notice")
	}
}

func TestGenerating_CancelQuits(t *testing.T) {
	g := newScreen(&quizgen.Pipeline{}, true)
	g.run()
	_, cmd := g.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestGenerating_ErrorView(t *testing.T) {
	g := newScreen(&quizgen.Pipeline{}, true)
	g.Update(doneMsg{Err: errors.New("context canceled")})
	if !strings.Contains(g.View(80, 24), "context canceled") {
		t.Error("expected error in view")
	}
	if len(g.KeyHints()) != 1 {
		t.Error("expected a single quit hint")
	}
}

func TestGenerating_LoadingView(t *testing.T) {
	g := newScreen(&quizgen.Pipeline{}, true)
	view := g.View(80, 24)
	if !strings.Contains(view, "Generating quiz") {
		t.Error("expected loading text")
	}
	if !strings.Contains(view, "2 questions, Easy") {
		t.Error("expected request summary")
	}
}
