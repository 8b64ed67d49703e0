package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/play"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/ui/components"
	"github.com/abhisek/quizcraft/internal/ui/layout"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// QuizScreen lets the user answer the questions of one quiz.
type QuizScreen struct {
	state  *play.State
	status string

	// onSubmit builds the results screen.
	onSubmit func(*play.State) screen.Screen
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. status is shown in the header.
func New(state *play.State, status string, onSubmit func(*play.State) screen.Screen) *QuizScreen {
	return &QuizScreen{state: state, status: status, onSubmit: onSubmit}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.state.Quiz.Title
}

func (s *QuizScreen) Status() string {
	return s.status
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "e", Description: "Explanation"},
		{Key: "s", Description: "Submit"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	st := s.state
	switch key := kmsg.String(); key {
	case "up", "k":
		st.Move(-1)
	case "down", "j":
		st.Move(1)
	case "a", "b", "c", "d":
		st.Choose(int(key[0] - 'a'))
	case "1", "2", "3", "4":
		st.Choose(int(key[0] - '1'))
	case "enter", "space":
		st.Choose(st.Selected)
		if !st.Next() {
			return s, s.submit()
		}
	case "right", "l", "n", "tab":
		st.Next()
	case "left", "h", "p", "shift+tab":
		st.Prev()
	case "e":
		st.ToggleExplanation()
	case "s":
		return s, s.submit()
	case "q", "esc":
		return s, tea.Quit
	}
	return s, nil
}

func (s *QuizScreen) submit() tea.Cmd {
	s.state.Submit()
	next := s.onSubmit(s.state)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *QuizScreen) View(width, height int) string {
	st := s.state
	q := st.Question()
	inner := min(max(20, width-8), 100)

	var b strings.Builder

	info := fmt.Sprintf("Difficulty: %s", st.Quiz.Difficulty)
	b.WriteString(theme.Hint.Render(info))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", st.Progress(), true, inner).View())
	b.WriteString("\n\n")

	chosen := -1
	if a, ok := st.Answers[st.Current]; ok {
		chosen = a
	}
	mc := components.MultiChoice{
		Question: fmt.Sprintf("Q%d. %s", st.Current+1, q.Text),
		Options:  q.Options,
		Cursor:   st.Selected,
		Chosen:   chosen,
	}
	b.WriteString(mc.View(inner))
	b.WriteString("\n")

	if st.ShowExplanation {
		text := q.Explanation
		if text == "" {
			text = "No explanation for this question."
		}
		b.WriteString(theme.Raw.Width(inner).Render(text))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d  ·  %d answered", st.Current+1, st.Total(), len(st.Answers))))

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}
