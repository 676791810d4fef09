package listing

import (
	"cmp"
	"github.com/samber/lo"
	"github.com/talentflow/ats/internal/domain/models"
	"slices"
	"strings"
)

const (
	quickSearchDefaultLimit = 10
	quickSearchMatchLimit   = 20
)

func Jobs(jobs []models.Job, q models.JobQuery) models.JobsPage {
	filtered := FilterJobs(jobs, q)
	SortJobs(filtered, q.Sort)

	items, info := Paginate(filtered, q.Page, q.PageSize)
	return models.JobsPage{Jobs: items, PageInfo: info}
}

func FilterJobs(jobs []models.Job, q models.JobQuery) []models.Job {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	wanted := lo.Map(q.Tags, func(tag string, _ int) string { return strings.ToLower(tag) })

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		if search != "" && !jobMatches(job, search, false) {
			return false
		}
		if q.Status != "" && job.Status != q.Status {
			return false
		}
		if len(wanted) > 0 && len(job.Tags) > 0 {
			return lo.SomeBy(job.Tags, func(tag string) bool {
				return lo.Contains(wanted, strings.ToLower(tag))
			})
		}
		return true
	})
}

func jobMatches(job models.Job, search string, withLocation bool) bool {
	fields := []string{job.Title, job.Department, job.Description}
	if withLocation {
		fields = append(fields, job.Location)
	}
	fields = append(fields, job.Tags...)

	return lo.SomeBy(fields, func(field string) bool {
		return strings.Contains(strings.ToLower(field), search)
	})
}

// SortJobs sorts in place. Ties keep their manual order.
func SortJobs(jobs []models.Job, sort models.JobSort) {
	byOrder := func(a, b models.Job) int { return cmp.Compare(a.Order, b.Order) }

	var compare func(a, b models.Job) int
	switch sort {
	case models.JobSortTitle:
		compare = func(a, b models.Job) int { return compareFold(a.Title, b.Title) }
	case models.JobSortTitleDesc:
		compare = func(a, b models.Job) int { return compareFold(b.Title, a.Title) }
	case models.JobSortStatus:
		compare = func(a, b models.Job) int { return cmp.Compare(a.Status, b.Status) }
	case models.JobSortStatusDesc:
		compare = func(a, b models.Job) int { return cmp.Compare(b.Status, a.Status) }
	case models.JobSortCreated:
		compare = func(a, b models.Job) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case models.JobSortCreatedDesc:
		compare = func(a, b models.Job) int { return b.CreatedAt.Compare(a.CreatedAt) }
	default:
		compare = byOrder
	}

	slices.SortStableFunc(jobs, func(a, b models.Job) int {
		return cmp.Or(compare(a, b), byOrder(a, b))
	})
}

// QuickSearch backs the header search box: with no term it returns the first
// jobs, otherwise up to twenty matches over title, department, location,
// description and tags.
func QuickSearch(jobs []models.Job, term string) []models.Job {
	sorted := slices.Clone(jobs)
	SortJobs(sorted, models.JobSortOrder)

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return lo.Subset(sorted, 0, quickSearchDefaultLimit)
	}

	matches := lo.Filter(sorted, func(job models.Job, _ int) bool {
		return jobMatches(job, term, true)
	})
	return lo.Subset(matches, 0, quickSearchMatchLimit)
}

func Archived(jobs []models.Job) []models.Job {
	archived := lo.Filter(jobs, func(job models.Job, _ int) bool {
		return job.Status != models.JobActive
	})
	SortJobs(archived, models.JobSortOrder)
	return archived
}

func FilterOptions(jobs []models.Job) models.FilterOptions {
	distinct := func(values []string) []string {
		values = lo.Uniq(lo.Compact(values))
		slices.SortFunc(values, compareFold)
		return values
	}

	return models.FilterOptions{
		Statuses:    distinct(lo.Map(jobs, func(j models.Job, _ int) string { return string(j.Status) })),
		Tags:        distinct(lo.FlatMap(jobs, func(j models.Job, _ int) []string { return j.Tags })),
		Departments: distinct(lo.Map(jobs, func(j models.Job, _ int) string { return j.Department })),
		Locations:   distinct(lo.Map(jobs, func(j models.Job, _ int) string { return j.Location })),
	}
}

func compareFold(a, b string) int {
	return cmp.Or(cmp.Compare(strings.ToLower(a), strings.ToLower(b)), cmp.Compare(a, b))
}
