package assessment

import (
	"fmt"
	"github.com/samber/lo"
	"github.com/talentflow/ats/internal/domain/models"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Answers maps question ids to answers as decoded from JSON: strings, numbers,
// lists of strings or file descriptors.
type Answers = map[string]any

type Problem struct {
	QuestionID string `json:"questionId"`
	Message    string `json:"message"`
}

func (p Problem) String() string {
	return p.QuestionID + ": " + p.Message
}

// IsVisible reports whether q should be shown given the answers so far.
// A question depending on an unanswered question is hidden.
func IsVisible(q models.Question, answers Answers) bool {
	if q.Conditional == nil {
		return true
	}

	answer, ok := answers[q.Conditional.DependsOn]
	if !ok || !IsAnswered(answer) {
		return false
	}

	if values, isList := asStringList(answer); isList {
		return lo.Contains(values, q.Conditional.Condition)
	}
	return scalarString(answer) == q.Conditional.Condition
}

func VisibleQuestions(a models.Assessment, answers Answers) []models.Question {
	return lo.Filter(a.Questions(), func(q models.Question, _ int) bool {
		return IsVisible(q, answers)
	})
}

// IsAnswered treats nil, false, blank strings and empty lists as no answer.
func IsAnswered(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return strings.TrimSpace(value) != ""
	case []any:
		return len(value) > 0
	case []string:
		return len(value) > 0
	case map[string]any:
		return len(value) > 0
	default:
		return true
	}
}

// Validate checks a submission against the visible questions only. Hidden
// questions are neither required nor constrained.
func Validate(a models.Assessment, answers Answers) []Problem {
	var problems []Problem

	for _, q := range VisibleQuestions(a, answers) {
		answer, ok := answers[q.ID]
		if !ok || !IsAnswered(answer) {
			if q.Required {
				problems = append(problems, Problem{QuestionID: q.ID, Message: "answer is required"})
			}
			continue
		}

		if msg := checkConstraints(q, answer); msg != "" {
			problems = append(problems, Problem{QuestionID: q.ID, Message: msg})
		}
	}

	return problems
}

func checkConstraints(q models.Question, answer any) string {
	switch q.Type {
	case models.ShortText, models.LongText:
		text, ok := answer.(string)
		if !ok {
			return "expects a text answer"
		}
		if q.MaxLength != nil && utf8.RuneCountInString(text) > *q.MaxLength {
			return fmt.Sprintf("answer exceeds %d characters", *q.MaxLength)
		}

	case models.NumericRange:
		n, ok := asNumber(answer)
		if !ok {
			return "expects a numeric answer"
		}
		if q.Min != nil && n < *q.Min {
			return fmt.Sprintf("answer must be at least %s", formatNumber(*q.Min))
		}
		if q.Max != nil && n > *q.Max {
			return fmt.Sprintf("answer must be at most %s", formatNumber(*q.Max))
		}

	case models.SingleChoice:
		choice, ok := answer.(string)
		if !ok {
			return "expects a single choice"
		}
		if len(q.Options) > 0 && !lo.Contains(q.Options, choice) {
			return fmt.Sprintf("%q is not one of the options", choice)
		}

	case models.MultiChoice:
		choices, ok := asStringList(answer)
		if !ok {
			return "expects a list of choices"
		}
		if len(q.Options) > 0 {
			if unknown := lo.Without(choices, q.Options...); len(unknown) > 0 {
				return fmt.Sprintf("%q is not one of the options", unknown[0])
			}
		}

	case models.FileUpload:
		switch file := answer.(type) {
		case string:
		case map[string]any:
			if name, _ := file["name"].(string); name == "" {
				return "file answer needs a name"
			}
		default:
			return "expects a file"
		}
	}
	return ""
}

// CheckReferences reports conditionals that can never be satisfied in display
// order: unknown targets and targets that are not earlier questions.
func CheckReferences(a models.Assessment) []Problem {
	questions := a.Questions()
	position := make(map[string]int, len(questions))
	for i, q := range questions {
		position[q.ID] = i
	}

	var problems []Problem
	for i, q := range questions {
		if q.Conditional == nil {
			continue
		}
		target, ok := position[q.Conditional.DependsOn]
		switch {
		case !ok:
			problems = append(problems, Problem{QuestionID: q.ID,
				Message: fmt.Sprintf("depends on unknown question %q", q.Conditional.DependsOn)})
		case target >= i:
			problems = append(problems, Problem{QuestionID: q.ID,
				Message: fmt.Sprintf("depends on question %q which is not shown before it", q.Conditional.DependsOn)})
		}
	}
	return problems
}

func asStringList(v any) ([]string, bool) {
	switch values := v.(type) {
	case []string:
		return values, true
	case []any:
		return lo.Map(values, func(item any, _ int) string { return scalarString(item) }), true
	default:
		return nil, false
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func scalarString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	default:
		if n, ok := asNumber(v); ok {
			return formatNumber(n)
		}
		return fmt.Sprint(v)
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
