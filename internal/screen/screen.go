package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/ui/layout"
)

// Screen is one page of the terminal UI. The router owns the stack and
// hands each screen the area between header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen put a short status on the right side of
// the header.
type StatusProvider interface {
	Status() string
}
