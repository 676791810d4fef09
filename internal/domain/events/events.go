package events

import (
	"github.com/talentflow/ats/internal/domain/models"
)

var CandidateStageChangedTopic = "CandidateStageChangedEvent"

type CandidateStageChanged struct {
	Candidate models.Candidate
	From      models.Stage
	To        models.Stage
}

var JobsChangedTopic = "JobsChangedEvent"

// JobsChanged is published after any job mutation that can affect listing
// filters, such as create, edit, archive, reorder or delete.
type JobsChanged struct {
	JobID  string
	Action string
}

var CandidatesChangedTopic = "CandidatesChangedEvent"

type CandidatesChanged struct {
	CandidateID string
	JobID       string
}

var AssessmentDeletedTopic = "AssessmentDeletedEvent"

type AssessmentDeleted struct {
	AssessmentID     string
	JobID            string
	DeletedResponses int64
}
