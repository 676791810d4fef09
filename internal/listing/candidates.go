package listing

import (
	"cmp"
	"github.com/samber/lo"
	"github.com/talentflow/ats/internal/domain/models"
	"slices"
	"strings"
)

func Candidates(candidates []models.Candidate, q models.CandidateQuery) models.CandidatesPage {
	filtered := FilterCandidates(candidates, q)
	SortCandidates(filtered, q.Sort)

	items, info := Paginate(filtered, q.Page, q.PageSize)
	return models.CandidatesPage{Candidates: items, PageInfo: info}
}

func FilterCandidates(candidates []models.Candidate, q models.CandidateQuery) []models.Candidate {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	wanted := lo.Map(q.Tags, func(tag string, _ int) string { return strings.ToLower(tag) })

	return lo.Filter(candidates, func(c models.Candidate, _ int) bool {
		if search != "" && !lo.SomeBy([]string{c.FirstName, c.LastName, c.Email}, func(field string) bool {
			return strings.Contains(strings.ToLower(field), search)
		}) {
			return false
		}
		if q.Stage != "" && c.Stage != q.Stage {
			return false
		}
		if q.JobID != "" && c.JobID != q.JobID {
			return false
		}
		if len(wanted) > 0 && len(c.Tags) > 0 {
			return lo.SomeBy(c.Tags, func(tag string) bool {
				tag = strings.ToLower(tag)
				return lo.SomeBy(wanted, func(w string) bool { return strings.Contains(tag, w) })
			})
		}
		return true
	})
}

func rating(c models.Candidate) int {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

func SortCandidates(candidates []models.Candidate, sort models.CandidateSort) {
	var compare func(a, b models.Candidate) int
	switch sort {
	case models.CandidateSortNameAsc:
		compare = func(a, b models.Candidate) int { return compareFold(a.FullName(), b.FullName()) }
	case models.CandidateSortNameDesc:
		compare = func(a, b models.Candidate) int { return compareFold(b.FullName(), a.FullName()) }
	case models.CandidateSortAppliedAsc:
		compare = func(a, b models.Candidate) int { return a.AppliedDate.Compare(b.AppliedDate) }
	case models.CandidateSortRatingAsc:
		compare = func(a, b models.Candidate) int { return cmp.Compare(rating(a), rating(b)) }
	case models.CandidateSortRatingDesc:
		compare = func(a, b models.Candidate) int { return cmp.Compare(rating(b), rating(a)) }
	default:
		compare = func(a, b models.Candidate) int { return b.AppliedDate.Compare(a.AppliedDate) }
	}

	slices.SortStableFunc(candidates, compare)
}
