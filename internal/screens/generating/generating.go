package generating

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/quizgen"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/ui/layout"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// rawLimit bounds the model output shown after a failed generation.
const rawLimit = 4000

// Config wires the screen to the generation pipeline.
type Config struct {
	Context  context.Context // parent for the generation run; defaults to Background
	Pipeline *quizgen.Pipeline
	Request  quizgen.Request
	ShowRaw  bool

	// Next builds the screen that presents the quiz.
	Next func(*quizgen.Outcome) screen.Screen
}

// doneMsg carries the pipeline result back to the UI loop.
type doneMsg struct {
	Outcome *quizgen.Outcome
	Err     error
}

// GeneratingScreen runs the pipeline while showing a spinner. When the
// model fails it explains the fallback before handing over.
type GeneratingScreen struct {
	cfg     Config
	spinner spinner.Model
	cancel  context.CancelFunc

	outcome *quizgen.Outcome
	err     error
}

var _ screen.Screen = (*GeneratingScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratingScreen)(nil)

// New creates a GeneratingScreen.
func New(cfg Config) *GeneratingScreen {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	return &GeneratingScreen{
		cfg: cfg,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (g *GeneratingScreen) Title() string {
	return "Generating"
}

func (g *GeneratingScreen) KeyHints() []layout.KeyHint {
	switch {
	case g.err != nil:
		return []layout.KeyHint{{Key: "q", Description: "Quit"}}
	case g.outcome != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start quiz"},
			{Key: "q", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
}

func (g *GeneratingScreen) Init() tea.Cmd {
	return tea.Batch(g.spinner.Tick, g.run())
}

func (g *GeneratingScreen) run() tea.Cmd {
	ctx, cancel := context.WithCancel(g.cfg.Context)
	g.cancel = cancel
	pipeline, req := g.cfg.Pipeline, g.cfg.Request
	return func() tea.Msg {
		defer cancel()
		out, err := pipeline.Run(ctx, req)
		return doneMsg{Outcome: out, Err: err}
	}
}

func (g *GeneratingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		return g.handleDone(msg)

	case spinner.TickMsg:
		if g.outcome != nil || g.err != nil {
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return g, cmd

	case tea.KeyPressMsg:
		return g.handleKey(msg)
	}
	return g, nil
}

func (g *GeneratingScreen) handleDone(msg doneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		g.err = msg.Err
		return g, nil
	}
	g.outcome = msg.Outcome
	if !g.outcome.Fallback {
		return g, g.handOver()
	}
	// Stay on screen so the fallback notice and raw output can be read.
	return g, nil
}

func (g *GeneratingScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch {
	case g.outcome == nil && g.err == nil:
		if key == "esc" || key == "q" {
			if g.cancel != nil {
				g.cancel()
			}
			return g, tea.Quit
		}
	case g.err != nil:
		if key == "q" || key == "esc" || key == "enter" {
			return g, tea.Quit
		}
	default:
		switch key {
		case "enter", "space", " ":
			return g, g.handOver()
		case "q", "esc":
			return g, tea.Quit
		}
	}
	return g, nil
}

func (g *GeneratingScreen) handOver() tea.Cmd {
	next := g.cfg.Next(g.outcome)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (g *GeneratingScreen) View(width, height int) string {
	switch {
	case g.err != nil:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Generation stopped: "+g.err.Error()))
	case g.outcome != nil:
		return g.renderFallback(width, height)
	}

	req := g.cfg.Request
	lines := []string{
		g.spinner.View() + " " + theme.Body.Render("Generating quiz..."),
		"",
		theme.Hint.Render(fmt.Sprintf("%d questions, %s", req.Count, req.Difficulty)),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

func (g *GeneratingScreen) renderFallback(width, height int) string {
	inner := max(20, width-4)

	var b strings.Builder
	if g.outcome.Err != nil {
		b.WriteString(theme.Incorrect.Render(
			fmt.Sprintf("Failed to generate a valid quiz after %d attempt(s).", g.outcome.Attempts)))
		b.WriteString("\n")
	} else {
		b.WriteString(theme.Warning.Render("No language model configured."))
		b.WriteString("\n")
	}
	b.WriteString(theme.Body.Render("Falling back to a simple local generator so you can still take a quiz."))
	b.WriteString("\n\n")

	if g.cfg.ShowRaw && g.outcome.Raw != "" {
		b.WriteString(theme.Hint.Render("Raw model output (for debugging)"))
		b.WriteString("\n")

		// Leave room for the notice above and the prompt below.
		maxLines := max(1, height-8)
		b.WriteString(theme.Raw.Width(inner).MaxHeight(maxLines).Render(truncateRunes(g.outcome.Raw, rawLimit)))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Hint.Render("Press Enter to start the quiz"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
