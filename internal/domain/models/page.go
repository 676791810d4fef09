package models

type PageInfo struct {
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

type JobsPage struct {
	Jobs []Job `json:"jobs"`
	PageInfo
}

type CandidatesPage struct {
	Candidates []Candidate `json:"candidates"`
	PageInfo
}

type AssessmentsPage struct {
	Assessments []Assessment `json:"assessments"`
	PageInfo
}

type FilterOptions struct {
	Statuses    []string `json:"statuses"`
	Tags        []string `json:"tags"`
	Departments []string `json:"departments"`
	Locations   []string `json:"locations"`
}
