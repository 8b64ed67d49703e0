package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizcraft/internal/play"
	"github.com/abhisek/quizcraft/internal/quizgen"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/screens/generating"
	quizscreen "github.com/abhisek/quizcraft/internal/screens/quiz"
	"github.com/abhisek/quizcraft/internal/screens/results"
	"github.com/abhisek/quizcraft/internal/ui/layout"
)

// Options configures an interactive run.
type Options struct {
	Context  context.Context
	Pipeline *quizgen.Pipeline
	Request  quizgen.Request
	ShowRaw  bool

	// ModelLabel names the model in the header. Empty when no model is
	// configured.
	ModelLabel string

	Logger *zap.Logger
}

// flow builds the screens of one run and links them together:
// generating, then quiz, then results, then back to either.
type flow struct {
	opts Options
	log  *zap.Logger
}

func newFlow(opts Options) *flow {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &flow{opts: opts, log: log}
}

func (f *flow) generating() screen.Screen {
	return generating.New(generating.Config{
		Context:  f.opts.Context,
		Pipeline: f.opts.Pipeline,
		Request:  f.opts.Request,
		ShowRaw:  f.opts.ShowRaw,
		Next:     f.quiz,
	})
}

func (f *flow) quiz(out *quizgen.Outcome) screen.Screen {
	return f.quizFor(play.New(out.Quiz), out)
}

func (f *flow) quizFor(st *play.State, out *quizgen.Outcome) screen.Screen {
	return quizscreen.New(st, f.status(out), func(st *play.State) screen.Screen {
		f.log.Info("quiz completed",
			zap.String("run_id", out.RunID),
			zap.Bool("fallback", out.Fallback),
			zap.Int("score", st.Score),
			zap.Int("questions", st.Total()))
		return results.New(st, results.Actions{
			NewQuiz: f.generating,
			Retake: func() screen.Screen {
				st.Restart()
				return f.quizFor(st, out)
			},
		})
	})
}

func (f *flow) status(out *quizgen.Outcome) string {
	source := "local"
	if !out.Fallback && f.opts.ModelLabel != "" {
		source = f.opts.ModelLabel
	}
	return fmt.Sprintf("%s · %s", out.Quiz.Difficulty, source)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(newFlow(opts).generating()),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
