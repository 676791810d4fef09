package models

import (
	"github.com/go-playground/validator/v10"
	"net/url"
	"strconv"
	"strings"
)

var validate = validator.New()

type JobSort string

const (
	JobSortOrder       JobSort = "order"
	JobSortTitle       JobSort = "title"
	JobSortTitleDesc   JobSort = "title_desc"
	JobSortStatus      JobSort = "status"
	JobSortStatusDesc  JobSort = "status_desc"
	JobSortCreated     JobSort = "createdAt"
	JobSortCreatedDesc JobSort = "createdAt_desc"
)

type CandidateSort string

const (
	CandidateSortNameAsc     CandidateSort = "name_asc"
	CandidateSortNameDesc    CandidateSort = "name_desc"
	CandidateSortAppliedAsc  CandidateSort = "appliedDate_asc"
	CandidateSortAppliedDesc CandidateSort = "appliedDate_desc"
	CandidateSortRatingAsc   CandidateSort = "rating_asc"
	CandidateSortRatingDesc  CandidateSort = "rating_desc"
)

const (
	DefaultJobPageSize        = 10
	DefaultCandidatePageSize  = 50
	DefaultAssessmentPageSize = 10
	MaxPageSize               = 1000
)

type JobQuery struct {
	Search   string
	Status   JobStatus `validate:"omitempty,oneof=active archived"`
	Tags     []string
	Sort     JobSort `validate:"oneof=order title title_desc status status_desc createdAt createdAt_desc"`
	Page     int     `validate:"gte=1"`
	PageSize int     `validate:"gte=1,lte=1000"`
}

type CandidateQuery struct {
	Search   string
	Stage    Stage `validate:"omitempty,oneof=applied screening interview technical offer hired rejected"`
	JobID    string
	Tags     []string
	Sort     CandidateSort `validate:"oneof=name_asc name_desc appliedDate_asc appliedDate_desc rating_asc rating_desc"`
	Page     int           `validate:"gte=1"`
	PageSize int           `validate:"gte=1,lte=1000"`
}

type AssessmentQuery struct {
	JobID    string
	Page     int `validate:"gte=1"`
	PageSize int `validate:"gte=1,lte=1000"`
}

func ParseJobQuery(values url.Values) (JobQuery, error) {
	q := JobQuery{
		Search: values.Get("search"),
		Status: JobStatus(values.Get("status")),
		Tags:   splitList(values.Get("tags")),
		Sort:   JobSort(stringParam(values, "sort", string(JobSortOrder))),
	}

	var err error
	if q.Page, err = intParam(values, "page", 1); err != nil {
		return JobQuery{}, err
	}
	if q.PageSize, err = intParam(values, "pageSize", DefaultJobPageSize); err != nil {
		return JobQuery{}, err
	}
	return q, q.Validate()
}

func (q JobQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return NewValidationError("Invalid job query: %v", err)
	}
	return nil
}

func (q JobQuery) Values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "search", q.Search)
	setIfNotEmpty(values, "status", string(q.Status))
	setIfNotEmpty(values, "tags", strings.Join(q.Tags, ","))
	setIfNotEmpty(values, "sort", string(q.Sort))
	setIfPositive(values, "page", q.Page)
	setIfPositive(values, "pageSize", q.PageSize)
	return values
}

func ParseCandidateQuery(values url.Values) (CandidateQuery, error) {
	q := CandidateQuery{
		Search: values.Get("search"),
		Stage:  Stage(values.Get("stage")),
		JobID:  values.Get("jobId"),
		Tags:   splitList(values.Get("tags")),
		Sort:   CandidateSort(stringParam(values, "sort", string(CandidateSortAppliedDesc))),
	}

	if q.Stage != "" {
		if _, err := ParseStage(string(q.Stage)); err != nil {
			return CandidateQuery{}, err
		}
	}

	var err error
	if q.Page, err = intParam(values, "page", 1); err != nil {
		return CandidateQuery{}, err
	}
	if q.PageSize, err = intParam(values, "pageSize", DefaultCandidatePageSize); err != nil {
		return CandidateQuery{}, err
	}
	return q, q.Validate()
}

func (q CandidateQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return NewValidationError("Invalid candidate query: %v", err)
	}
	return nil
}

func (q CandidateQuery) Values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "search", q.Search)
	setIfNotEmpty(values, "stage", string(q.Stage))
	setIfNotEmpty(values, "jobId", q.JobID)
	setIfNotEmpty(values, "tags", strings.Join(q.Tags, ","))
	setIfNotEmpty(values, "sort", string(q.Sort))
	setIfPositive(values, "page", q.Page)
	setIfPositive(values, "pageSize", q.PageSize)
	return values
}

func ParseAssessmentQuery(values url.Values) (AssessmentQuery, error) {
	q := AssessmentQuery{JobID: values.Get("jobId")}

	var err error
	if q.Page, err = intParam(values, "page", 1); err != nil {
		return AssessmentQuery{}, err
	}
	if q.PageSize, err = intParam(values, "pageSize", DefaultAssessmentPageSize); err != nil {
		return AssessmentQuery{}, err
	}
	if err = validate.Struct(q); err != nil {
		return AssessmentQuery{}, NewValidationError("Invalid assessment query: %v", err)
	}
	return q, nil
}

func (q AssessmentQuery) Values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "jobId", q.JobID)
	setIfPositive(values, "page", q.Page)
	setIfPositive(values, "pageSize", q.PageSize)
	return values
}

func stringParam(values url.Values, key, fallback string) string {
	if raw := values.Get(key); raw != "" {
		return raw
	}
	return fallback
}

func intParam(values url.Values, key string, fallback int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewValidationError("Invalid %s: %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return NormalizeTags(strings.Split(raw, ","))
}

func setIfNotEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func setIfPositive(values url.Values, key string, value int) {
	if value > 0 {
		values.Set(key, strconv.Itoa(value))
	}
}
