package listing

import (
	"github.com/samber/lo"
	"github.com/talentflow/ats/internal/domain/models"
	"slices"
)

// Assessments lists newest first.
func Assessments(assessments []models.Assessment, q models.AssessmentQuery) models.AssessmentsPage {
	filtered := lo.Filter(assessments, func(a models.Assessment, _ int) bool {
		return q.JobID == "" || a.JobID == q.JobID
	})
	slices.SortStableFunc(filtered, func(a, b models.Assessment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	items, info := Paginate(filtered, q.Page, q.PageSize)
	return models.AssessmentsPage{Assessments: items, PageInfo: info}
}
