package models

import (
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"regexp"
	"strings"
	"time"
)

type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobArchived JobStatus = "archived"
)

type Job struct {
	ID          string                      `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"index"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex"`
	Status      JobStatus                   `json:"status" gorm:"index"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Order       int                         `json:"order" gorm:"column:position;index"`
	Description string                      `json:"description"`
	Department  string                      `json:"department"`
	Location    string                      `json:"location"`
	IsArchived  bool                        `json:"isArchived"`
	CreatedAt   time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// JobInput is the payload for creating a job. Order and Status are optional.
type JobInput struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Status      JobStatus `json:"status" validate:"omitempty,oneof=active archived"`
	Tags        []string  `json:"tags"`
	Order       int       `json:"order"`
	Description string    `json:"description"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
}

func (in JobInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Slug) == "" {
		return NewValidationError("Title and slug are required")
	}
	if err := validate.Struct(in); err != nil {
		return NewValidationError("Invalid job: %v", err)
	}
	return nil
}

// NewJob builds a job from the input. nextOrder is used when the input has no order.
func (in JobInput) NewJob(id string, nextOrder int, now time.Time) Job {
	status := in.Status
	if status == "" {
		status = JobActive
	}
	order := in.Order
	if order == 0 {
		order = nextOrder
	}
	return Job{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Slug:        strings.TrimSpace(in.Slug),
		Status:      status,
		Tags:        datatypes.JSONSlice[string](NormalizeTags(in.Tags)),
		Order:       order,
		Description: in.Description,
		Department:  in.Department,
		Location:    in.Location,
		IsArchived:  status != JobActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p JobPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("Title must not be empty")
	}
	if p.Slug != nil && strings.TrimSpace(*p.Slug) == "" {
		return NewValidationError("Slug must not be empty")
	}
	if err := validate.Struct(p); err != nil {
		return NewValidationError("Invalid job: %v", err)
	}
	return nil
}

// JobPatch holds the fields of a partial job update. Nil fields are left untouched.
type JobPatch struct {
	Title       *string    `json:"title,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Status      *JobStatus `json:"status,omitempty" validate:"omitempty,oneof=active archived"`
	Tags        []string   `json:"tags,omitempty"`
	Order       *int       `json:"order,omitempty"`
	Description *string    `json:"description,omitempty"`
	Department  *string    `json:"department,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

// TrimmedSlug returns the patched slug without surrounding whitespace.
func (p JobPatch) TrimmedSlug() (string, bool) {
	if p.Slug == nil {
		return "", false
	}
	return strings.TrimSpace(*p.Slug), true
}

// Apply merges the patch into job. Title and slug are trimmed. Changing the
// status keeps IsArchived in sync.
func (p JobPatch) Apply(job *Job) {
	if p.Title != nil {
		job.Title = strings.TrimSpace(*p.Title)
	}
	if slug, ok := p.TrimmedSlug(); ok {
		job.Slug = slug
	}
	if p.Status != nil {
		job.Status = *p.Status
		job.IsArchived = *p.Status != JobActive
	}
	if p.Tags != nil {
		job.Tags = NormalizeTags(p.Tags)
	}
	if p.Order != nil {
		job.Order = *p.Order
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.Department != nil {
		job.Department = *p.Department
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
}

// NormalizeTags trims tags and drops empty and duplicate entries, keeping first occurrence order.
func NormalizeTags(tags []string) []string {
	trimmed := lo.FilterMap(tags, func(tag string, _ int) (string, bool) {
		tag = strings.TrimSpace(tag)
		return tag, tag != ""
	})
	return lo.Uniq(trimmed)
}

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
)

func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ShiftedOrder returns the order a job not being moved ends up with after
// another job moves from fromOrder to toOrder.
func ShiftedOrder(order, fromOrder, toOrder int) int {
	switch {
	case fromOrder < toOrder && order > fromOrder && order <= toOrder:
		return order - 1
	case fromOrder > toOrder && order >= toOrder && order < fromOrder:
		return order + 1
	default:
		return order
	}
}

// ApplyReorder returns a copy of jobs with the reorder shift applied: the moved
// job takes toOrder and the jobs in between shift by one towards fromOrder.
func ApplyReorder(jobs []Job, movedID string, fromOrder, toOrder int) []Job {
	return lo.Map(jobs, func(job Job, _ int) Job {
		if job.ID == movedID {
			job.Order = toOrder
		} else {
			job.Order = ShiftedOrder(job.Order, fromOrder, toOrder)
		}
		return job
	})
}
