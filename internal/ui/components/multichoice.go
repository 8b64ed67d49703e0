package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// OptionLabel returns "A", "B", ... for option i.
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// MultiChoice renders a question with lettered options. It holds no
// selection logic; the caller owns the state.
type MultiChoice struct {
	Question string
	Options  []string

	// Cursor is the option under the cursor, Chosen the recorded answer
	// (-1 for none).
	Cursor int
	Chosen int

	// Reveal marks CorrectIndex and a wrong Chosen.
	Reveal       bool
	CorrectIndex int
}

// View renders the component wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	b.WriteString(questionStyle.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		marker := " "
		if i == m.Chosen {
			marker = "•"
		}
		line := fmt.Sprintf("%s%s %s) %s", prefix, marker, OptionLabel(i), opt)

		b.WriteString(m.optionStyle(i).Width(width).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (m MultiChoice) optionStyle(i int) lipgloss.Style {
	switch {
	case m.Reveal && i == m.CorrectIndex:
		return theme.Correct
	case m.Reveal && i == m.Chosen:
		return theme.Incorrect
	case m.Reveal:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	case i == m.Cursor:
		return theme.Selected
	case i == m.Chosen:
		return theme.Answered
	default:
		return theme.Unselected
	}
}
