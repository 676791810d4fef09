package models

import (
	"gorm.io/datatypes"
	"time"
)

type CandidateResponse struct {
	ID           string            `json:"id" gorm:"primaryKey"`
	AssessmentID string            `json:"assessmentId" gorm:"index"`
	CandidateID  string            `json:"candidateId" gorm:"index"`
	Responses    datatypes.JSONMap `json:"responses"`
	SubmittedAt  time.Time         `json:"submittedAt" gorm:"index"`
}

// FileAnswer describes an uploaded file. File contents are not stored.
type FileAnswer struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

type ResponseSubmission struct {
	CandidateID string         `json:"candidateId"`
	Responses   map[string]any `json:"responses"`
}

func (s ResponseSubmission) Validate() error {
	if s.CandidateID == "" || s.Responses == nil {
		return NewValidationError("candidateId and responses are required")
	}
	return nil
}

type CandidateSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Stage     Stage  `json:"stage"`
}

type AssessmentSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ResponseWithCandidate is a response enriched with its candidate, nil when
// the candidate no longer exists.
type ResponseWithCandidate struct {
	CandidateResponse
	Candidate *CandidateSummary `json:"candidate"`
}

type ResponseWithAssessment struct {
	CandidateResponse
	Assessment *AssessmentSummary `json:"assessment"`
}

func SummarizeCandidate(c *Candidate) *CandidateSummary {
	if c == nil {
		return nil
	}
	return &CandidateSummary{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Stage: c.Stage}
}

func SummarizeAssessment(a *Assessment) *AssessmentSummary {
	if a == nil {
		return nil
	}
	return &AssessmentSummary{ID: a.ID, Title: a.Title, Description: a.Description}
}
