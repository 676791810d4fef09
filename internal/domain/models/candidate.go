package models

import (
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"strings"
	"time"
)

type Stage string

const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageTechnical Stage = "technical"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

// Stages lists every pipeline stage in board order.
var Stages = []Stage{
	StageApplied,
	StageScreening,
	StageInterview,
	StageTechnical,
	StageOffer,
	StageHired,
	StageRejected,
}

func ParseStage(s string) (Stage, error) {
	if lo.Contains(Stages, Stage(s)) {
		return Stage(s), nil
	}
	names := lo.Map(Stages, func(stage Stage, _ int) string { return string(stage) })
	return "", NewValidationError("Invalid stage: %s. Must be one of: %s", s, strings.Join(names, ", "))
}

type Candidate struct {
	ID          string                      `json:"id" gorm:"primaryKey"`
	FirstName   string                      `json:"firstName" gorm:"index"`
	LastName    string                      `json:"lastName" gorm:"index"`
	Email       string                      `json:"email" gorm:"index"`
	Phone       string                      `json:"phone"`
	Stage       Stage                       `json:"stage" gorm:"index"`
	JobID       string                      `json:"jobId" gorm:"index"`
	AppliedDate time.Time                   `json:"appliedDate"`
	Rating      *int                        `json:"rating,omitempty"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	ResumeURL   string                      `json:"resumeUrl,omitempty"`
	Notes       string                      `json:"notes,omitempty"`
	CreatedAt   time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (c Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CandidatePatch holds the fields of a partial candidate update.
type CandidatePatch struct {
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Email     *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string  `json:"phone,omitempty"`
	Stage     *Stage   `json:"stage,omitempty"`
	JobID     *string  `json:"jobId,omitempty"`
	Rating    *int     `json:"rating,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ResumeURL *string  `json:"resumeUrl,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

func (p CandidatePatch) Validate() error {
	if p.Stage != nil {
		if _, err := ParseStage(string(*p.Stage)); err != nil {
			return err
		}
	}
	if p.Rating != nil && (*p.Rating < 1 || *p.Rating > 5) {
		return NewValidationError("Rating must be between 1 and 5")
	}
	if err := validate.Struct(p); err != nil {
		return NewValidationError("Invalid candidate: %v", err)
	}
	return nil
}

func (p CandidatePatch) Apply(c *Candidate) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Stage != nil {
		c.Stage = *p.Stage
	}
	if p.JobID != nil {
		c.JobID = *p.JobID
	}
	if p.Rating != nil {
		rating := *p.Rating
		c.Rating = &rating
	}
	if p.Tags != nil {
		c.Tags = NormalizeTags(p.Tags)
	}
	if p.ResumeURL != nil {
		c.ResumeURL = *p.ResumeURL
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}

type CandidateStats struct {
	Total         int           `json:"total"`
	ByStage       map[Stage]int `json:"byStage"`
	AverageRating float64       `json:"averageRating"`
}

// ComputeCandidateStats counts candidates per stage. A candidate without a
// rating contributes zero to the average.
func ComputeCandidateStats(candidates []Candidate) CandidateStats {
	stats := CandidateStats{Total: len(candidates), ByStage: make(map[Stage]int, len(Stages))}
	for _, stage := range Stages {
		stats.ByStage[stage] = 0
	}

	sum := 0
	for _, c := range candidates {
		stats.ByStage[c.Stage]++
		if c.Rating != nil {
			sum += *c.Rating
		}
	}
	if len(candidates) > 0 {
		stats.AverageRating = float64(sum) / float64(len(candidates))
	}
	return stats
}
