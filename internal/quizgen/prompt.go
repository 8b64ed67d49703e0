package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizcraft/internal/quiz"
)

// promptSchema is the example shape rendered into the prompt. A struct keeps
// the keys in reading order.
type promptSchema struct {
	Title      string           `json:"quiz_title"`
	Difficulty string           `json:"difficulty"`
	Questions  []promptQuestion `json:"questions"`
}

type promptQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

var schemaExample = mustIndent(promptSchema{
	Title:      "string",
	Difficulty: "Easy|Medium|Hard",
	Questions: []promptQuestion{{
		Question:    "string",
		Options:     []string{"string", "string", "string", "string"},
		AnswerIndex: 0,
		Explanation: "string or empty",
	}},
})

func mustIndent(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}

// BuildPrompt renders a generation request into the single prompt sent to
// the model. The output depends only on its arguments.
func BuildPrompt(source string, count int, difficulty quiz.Difficulty) string {
	if difficulty == "" {
		difficulty = quiz.Medium
	}

	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert teacher. Based ONLY on the content below, create exactly %d multiple-choice questions.\n", count)
	b.WriteString("Each question must have exactly 4 options. Provide the index (0-3) of the correct option.\n")
	b.WriteString("RETURN ONLY A SINGLE JSON OBJECT exactly following this schema (no extra text, no commentary, no code fences):\n\n")
	b.WriteString(schemaExample)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Questions should be concise, clear, and unambiguous.\n")
	b.WriteString("- Options must be plausible and similar in length.\n")
	b.WriteString("- answer_index must be an integer 0..3.\n")
	b.WriteString("- Keep explanations short (1-2 sentences) or empty if not needed.\n")
	fmt.Fprintf(&b, "- If you cannot generate exactly %d, indicate that in the JSON by returning fewer questions (but still return valid JSON).\n", count)
	b.WriteString("\nContent:\n\"\"\"")
	b.WriteString(source)
	b.WriteString("\"\"\"\n\n")
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)

	return b.String()
}
