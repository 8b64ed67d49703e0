package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/play"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/ui/layout"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// Actions are the ways out of the results screen. A nil action disables
// its key.
type Actions struct {
	// NewQuiz builds a screen that generates a fresh quiz.
	NewQuiz func() screen.Screen

	// Retake builds a screen for another pass over the same quiz.
	Retake func() screen.Screen
}

// ResultsScreen shows the score and a per-question breakdown.
type ResultsScreen struct {
	state   *play.State
	actions Actions

	vp     viewport.Model
	width  int
	height int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for a completed session.
func New(state *play.State, actions Actions) *ResultsScreen {
	return &ResultsScreen{state: state, actions: actions, vp: viewport.New()}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if r.actions.NewQuiz != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "New quiz"})
	}
	if r.actions.Retake != nil {
		hints = append(hints, layout.KeyHint{Key: "t", Description: "Try again"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "q", "esc":
			return r, tea.Quit
		case "r":
			return r, replaceWith(r.actions.NewQuiz)
		case "t":
			return r, replaceWith(r.actions.Retake)
		}
	}

	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return r, cmd
}

func replaceWith(build func() screen.Screen) tea.Cmd {
	if build == nil {
		return nil
	}
	next := build()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (r *ResultsScreen) View(width, height int) string {
	inner := min(max(20, width-8), 100)

	score := theme.Title.Width(inner).Render(
		fmt.Sprintf("Your score: %d/%d", r.state.Score, r.state.Total()))

	bodyHeight := max(1, height-lipgloss.Height(score)-3)
	if width != r.width || height != r.height {
		r.width, r.height = width, height
		r.vp.SetWidth(inner)
		r.vp.SetHeight(bodyHeight)
	}
	r.vp.SetContent(renderFeedback(r.state.Feedback(), inner))

	body := lipgloss.JoinVertical(lipgloss.Left,
		score,
		"",
		theme.Subtitle.Width(inner).Render("Detailed feedback"),
		r.vp.View(),
	)
	return lipgloss.NewStyle().Padding(0, 4).Render(body)
}

func renderFeedback(rows []play.FeedbackRow, width int) string {
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(theme.Body.Bold(true).Width(width).Render(fmt.Sprintf("Q%d. %s", row.Number, row.Question)))
		b.WriteString("\n")

		answerStyle := theme.Incorrect
		if row.IsCorrect {
			answerStyle = theme.Correct
		}
		b.WriteString(answerStyle.Render("- Your answer: " + row.YourAnswer))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("- Correct answer: " + row.Correct))
		b.WriteString("\n")
		if row.Explanation != "" {
			b.WriteString(theme.Hint.Width(width).Render("- Explanation: " + row.Explanation))
			b.WriteString("\n")
		}
		b.WriteString(rule)
		b.WriteString("\n")
	}
	return b.String()
}
