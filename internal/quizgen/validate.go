package quizgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// looseQuizSchema accepts what the normalizer can repair: either a bare
// array of question-like objects or an object whose "questions" is one.
// Option count beyond two and index ranges are not checked here.
const looseQuizSchema = `{
  "$defs": {
    "question": {
      "type": "object",
      "required": ["question", "options"],
      "properties": {
        "options": {"type": "array", "minItems": 2}
      },
      "anyOf": [
        {"required": ["answer_index"]},
        {"required": ["answer"]}
      ]
    },
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {"$ref": "#/$defs/question"}
    }
  },
  "anyOf": [
    {"$ref": "#/$defs/questions"},
    {
      "type": "object",
      "required": ["questions"],
      "properties": {"questions": {"$ref": "#/$defs/questions"}}
    }
  ]
}`

const looseQuizSchemaURL = "schema://quizcraft/loose-quiz.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// quizSchema returns the compiled loose quiz schema, compiling it once.
func quizSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(looseQuizSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(looseQuizSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(looseQuizSchemaURL)
	})
	return compiledSchema, compileErr
}

// IsValidQuiz reports whether v, an untyped value from ExtractJSON, has the
// minimal quiz shape. expectedCount is informational only; a different
// number of questions is still accepted. v is never modified.
func IsValidQuiz(v any, expectedCount int) bool {
	if v == nil {
		return false
	}
	sch, err := quizSchema()
	if err != nil {
		return false
	}
	return sch.Validate(v) == nil
}

// questionItems returns the question sequence of a value accepted by
// IsValidQuiz, or nil.
func questionItems(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		items, _ := t["questions"].([]any)
		return items
	}
	return nil
}
