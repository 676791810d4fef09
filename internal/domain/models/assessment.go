package models

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"time"
)

type QuestionType string

const (
	SingleChoice QuestionType = "single-choice"
	MultiChoice  QuestionType = "multi-choice"
	ShortText    QuestionType = "short-text"
	LongText     QuestionType = "long-text"
	NumericRange QuestionType = "numeric-range"
	FileUpload   QuestionType = "file-upload"
)

const (
	DefaultShortTextMaxLength = 100
	DefaultLongTextMaxLength  = 1000
	DefaultNumericMin         = 0
	DefaultNumericMax         = 100
)

func (t QuestionType) IsChoice() bool {
	return t == SingleChoice || t == MultiChoice
}

// Conditional makes a question visible only when the question DependsOn was
// answered with Condition.
type Conditional struct {
	DependsOn string `json:"dependsOn"`
	Condition string `json:"condition"`
}

type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type" validate:"oneof=single-choice multi-choice short-text long-text numeric-range file-upload"`
	Question    string       `json:"question"`
	Description string       `json:"description,omitempty"`
	Required    bool         `json:"required"`
	Options     []string     `json:"options,omitempty"`
	Min         *float64     `json:"min,omitempty"`
	Max         *float64     `json:"max,omitempty"`
	MaxLength   *int         `json:"maxLength,omitempty"`
	Conditional *Conditional `json:"conditional,omitempty"`
}

type AssessmentSection struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions" validate:"dive"`
}

type Assessment struct {
	ID          string                                  `json:"id" gorm:"primaryKey"`
	JobID       string                                  `json:"jobId" gorm:"uniqueIndex"`
	Title       string                                  `json:"title" gorm:"index"`
	Description string                                  `json:"description"`
	Sections    datatypes.JSONType[[]AssessmentSection] `json:"sections"`
	CreatedAt   time.Time                               `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time                               `json:"updatedAt" gorm:"index"`
}

// Questions returns the questions of all sections in display order.
func (a Assessment) Questions() []Question {
	return lo.FlatMap(a.Sections.Data(), func(s AssessmentSection, _ int) []Question {
		return s.Questions
	})
}

// AssessmentInput is the payload for creating or replacing an assessment.
type AssessmentInput struct {
	JobID       string              `json:"jobId"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Sections    []AssessmentSection `json:"sections" validate:"dive"`
}

func (in AssessmentInput) Validate() error {
	if in.Title == "" || in.JobID == "" {
		return NewValidationError("Title and jobId are required")
	}
	if err := validate.Struct(in); err != nil {
		return NewValidationError("Invalid assessment: %v", err)
	}
	return nil
}

// AssessmentPatch holds the fields of a partial assessment update.
type AssessmentPatch struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Sections    []AssessmentSection `json:"sections,omitempty" validate:"omitempty,dive"`
}

func (p AssessmentPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return NewValidationError("Title must not be empty")
	}
	if err := validate.Struct(p); err != nil {
		return NewValidationError("Invalid assessment: %v", err)
	}
	return nil
}

func (p AssessmentPatch) Apply(a *Assessment) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Sections != nil {
		a.Sections = datatypes.NewJSONType(WithQuestionDefaults(p.Sections))
	}
}

// WithQuestionDefaults fills missing ids and per-type limits.
func WithQuestionDefaults(sections []AssessmentSection) []AssessmentSection {
	return lo.Map(sections, func(s AssessmentSection, _ int) AssessmentSection {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.Questions = lo.Map(s.Questions, func(q Question, _ int) Question {
			return q.withDefaults()
		})
		return s
	})
}

func (q Question) withDefaults() Question {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	switch q.Type {
	case ShortText:
		if q.MaxLength == nil {
			q.MaxLength = lo.ToPtr(DefaultShortTextMaxLength)
		}
	case LongText:
		if q.MaxLength == nil {
			q.MaxLength = lo.ToPtr(DefaultLongTextMaxLength)
		}
	case NumericRange:
		if q.Min == nil {
			q.Min = lo.ToPtr(float64(DefaultNumericMin))
		}
		if q.Max == nil {
			q.Max = lo.ToPtr(float64(DefaultNumericMax))
		}
	case SingleChoice, MultiChoice:
		if q.Options == nil {
			q.Options = []string{}
		}
	}
	return q
}
