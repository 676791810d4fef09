package models

import "time"

// Draft is an opaque work-in-progress payload, such as an unsaved assessment
// or a partially answered response.
type Draft struct {
	ID        string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time `gorm:"index"`
}

func AssessmentDraftKey(assessmentID string) string {
	return "assessment_draft_" + assessmentID
}

func ResponseDraftKey(assessmentID, candidateID string) string {
	return ResponseDraftPrefix(assessmentID) + candidateID
}

// ResponseDraftPrefix is shared by the response drafts of every candidate for
// one assessment.
func ResponseDraftPrefix(assessmentID string) string {
	return "response_draft_" + assessmentID + "_"
}
