package listing

import (
	"fmt"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/datatypes"
	"testing"
	"time"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testJobs() []models.Job {
	return []models.Job{
		{ID: "1", Title: "Senior Frontend Developer", Department: "Engineering", Location: "Remote",
			Status: models.JobActive, Order: 3, Tags: datatypes.JSONSlice[string]{"React", "CSS"}, CreatedAt: baseTime},
		{ID: "2", Title: "data scientist", Department: "Data Science", Location: "Boston, MA",
			Status: models.JobArchived, Order: 1, Tags: datatypes.JSONSlice[string]{"Python"}, CreatedAt: baseTime.Add(time.Hour)},
		{ID: "3", Title: "Product Manager", Department: "Product", Location: "Seattle, WA", Description: "Own the roadmap",
			Status: models.JobActive, Order: 2, CreatedAt: baseTime.Add(-time.Hour)},
	}
}

func ids[T any](items []T, id func(T) string) []string {
	return lo.Map(items, func(item T, _ int) string { return id(item) })
}

func jobIDs(jobs []models.Job) []string {
	return ids(jobs, func(j models.Job) string { return j.ID })
}

func Test_Paginate_LastPageHoldsRemainder(t *testing.T) {
	assert := assert.New(t)
	items := lo.Range(23)

	page, info := Paginate(items, 3, 10)
	assert.Equal([]int{20, 21, 22}, page)
	assert.Equal(models.PageInfo{TotalCount: 23, TotalPages: 3, CurrentPage: 3, HasNext: false, HasPrev: true}, info)

	page, info = Paginate(items, 1, 10)
	assert.Len(page, 10)
	assert.True(info.HasNext)
	assert.False(info.HasPrev)
}

func Test_Paginate_EmptyAndOutOfRange(t *testing.T) {
	assert := assert.New(t)

	page, info := Paginate([]int{}, 1, 10)
	assert.Empty(page)
	assert.Equal(1, info.TotalPages)
	assert.False(info.HasNext)

	page, info = Paginate(lo.Range(5), 4, 2)
	assert.Empty(page)
	assert.Equal(3, info.TotalPages)
	assert.False(info.HasNext)
	assert.True(info.HasPrev)
}

func Test_Paginate_AllPagesCoverEveryItemOnce(t *testing.T) {
	for n := 0; n <= 12; n++ {
		for size := 1; size <= 5; size++ {
			items := lo.Range(n)
			_, info := Paginate(items, 1, size)

			var seen []int
			for p := 1; p <= info.TotalPages; p++ {
				page, _ := Paginate(items, p, size)
				seen = append(seen, page...)
			}
			if n == 0 {
				assert.Empty(t, seen)
				continue
			}
			assert.Equal(t, items, seen, fmt.Sprintf("n=%d size=%d", n, size))
		}
	}
}

func Test_Jobs_DefaultSortIsManualOrder(t *testing.T) {
	page := Jobs(testJobs(), models.JobQuery{Sort: models.JobSortOrder, Page: 1, PageSize: 10})
	assert.Equal(t, []string{"2", "3", "1"}, jobIDs(page.Jobs))
	assert.Equal(t, 3, page.TotalCount)
}

func Test_Jobs_Sorts(t *testing.T) {
	cases := map[models.JobSort][]string{
		models.JobSortTitle:       {"2", "3", "1"},
		models.JobSortTitleDesc:   {"1", "3", "2"},
		models.JobSortStatus:      {"3", "1", "2"},
		models.JobSortStatusDesc:  {"2", "3", "1"},
		models.JobSortCreated:     {"3", "1", "2"},
		models.JobSortCreatedDesc: {"2", "1", "3"},
	}

	for sort, expected := range cases {
		page := Jobs(testJobs(), models.JobQuery{Sort: sort, Page: 1, PageSize: 10})
		assert.Equal(t, expected, jobIDs(page.Jobs), string(sort))
	}
}

func Test_FilterJobs(t *testing.T) {
	assert := assert.New(t)
	jobs := testJobs()

	assert.Equal([]string{"1"}, jobIDs(FilterJobs(jobs, models.JobQuery{Search: "FRONTEND"})))
	assert.Equal([]string{"3"}, jobIDs(FilterJobs(jobs, models.JobQuery{Search: "roadmap"})))
	assert.Equal([]string{"2"}, jobIDs(FilterJobs(jobs, models.JobQuery{Search: "python"})))
	assert.Empty(FilterJobs(jobs, models.JobQuery{Search: "seattle"}))
	assert.Equal([]string{"1", "3"}, jobIDs(FilterJobs(jobs, models.JobQuery{Status: models.JobActive})))

	// untagged jobs pass the tag filter
	assert.Equal([]string{"1", "3"}, jobIDs(FilterJobs(jobs, models.JobQuery{Tags: []string{"react"}})))
}

func Test_QuickSearch(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"2", "3", "1"}, jobIDs(QuickSearch(testJobs(), "")))
	assert.Equal([]string{"3"}, jobIDs(QuickSearch(testJobs(), "seattle")))

	many := lo.Times(30, func(i int) models.Job {
		return models.Job{ID: fmt.Sprint(i), Title: "Engineer", Order: i}
	})
	assert.Len(QuickSearch(many, ""), 10)
	assert.Len(QuickSearch(many, "engineer"), 20)
}

func Test_FilterOptions_AndArchived(t *testing.T) {
	assert := assert.New(t)

	options := FilterOptions(testJobs())
	assert.Equal([]string{"active", "archived"}, options.Statuses)
	assert.Equal([]string{"CSS", "Python", "React"}, options.Tags)
	assert.Equal([]string{"Data Science", "Engineering", "Product"}, options.Departments)
	assert.Equal([]string{"2"}, jobIDs(Archived(testJobs())))
}

func testCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: "a", FirstName: "Mary", LastName: "Smith", Email: "mary@x.com", Stage: models.StageApplied, JobID: "j1",
			AppliedDate: baseTime, Rating: lo.ToPtr(4), Tags: datatypes.JSONSlice[string]{"Go", "Docker"}},
		{ID: "b", FirstName: "John", LastName: "Doe", Email: "jd@y.com", Stage: models.StageOffer, JobID: "j2",
			AppliedDate: baseTime.Add(48 * time.Hour), Tags: datatypes.JSONSlice[string]{"React Native"}},
		{ID: "c", FirstName: "alice", LastName: "Zane", Email: "alice@z.com", Stage: models.StageApplied, JobID: "j1",
			AppliedDate: baseTime.Add(24 * time.Hour), Rating: lo.ToPtr(2)},
	}
}

func candidateIDs(c []models.Candidate) []string {
	return ids(c, func(c models.Candidate) string { return c.ID })
}

func Test_Candidates_SortsAndDefault(t *testing.T) {
	cases := map[models.CandidateSort][]string{
		models.CandidateSortNameAsc:     {"c", "b", "a"},
		models.CandidateSortNameDesc:    {"a", "b", "c"},
		models.CandidateSortAppliedAsc:  {"a", "c", "b"},
		models.CandidateSortAppliedDesc: {"b", "c", "a"},
		models.CandidateSortRatingAsc:   {"b", "c", "a"},
		models.CandidateSortRatingDesc:  {"a", "c", "b"},
	}

	for sort, expected := range cases {
		page := Candidates(testCandidates(), models.CandidateQuery{Sort: sort, Page: 1, PageSize: 50})
		assert.Equal(t, expected, candidateIDs(page.Candidates), string(sort))
	}
}

func Test_FilterCandidates(t *testing.T) {
	assert := assert.New(t)
	cs := testCandidates()

	assert.Equal([]string{"a"}, candidateIDs(FilterCandidates(cs, models.CandidateQuery{Search: "SMITH"})))
	assert.Equal([]string{"c"}, candidateIDs(FilterCandidates(cs, models.CandidateQuery{Search: "alice@"})))
	assert.Equal([]string{"a", "c"}, candidateIDs(FilterCandidates(cs, models.CandidateQuery{Stage: models.StageApplied})))
	assert.Equal([]string{"b"}, candidateIDs(FilterCandidates(cs, models.CandidateQuery{JobID: "j2"})))
	assert.Equal([]string{"b", "c"}, candidateIDs(FilterCandidates(cs, models.CandidateQuery{Tags: []string{"native"}})))
}

func Test_Assessments_NewestFirstWithJobFilter(t *testing.T) {
	list := []models.Assessment{
		{ID: "old", JobID: "j1", CreatedAt: baseTime},
		{ID: "new", JobID: "j2", CreatedAt: baseTime.Add(time.Hour)},
	}

	page := Assessments(list, models.AssessmentQuery{Page: 1, PageSize: 10})
	assert.Equal(t, []string{"new", "old"}, ids(page.Assessments, func(a models.Assessment) string { return a.ID }))

	page = Assessments(list, models.AssessmentQuery{JobID: "j1", Page: 1, PageSize: 10})
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, "old", page.Assessments[0].ID)
}
