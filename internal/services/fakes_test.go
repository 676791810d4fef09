package services

import (
	"context"
	"github.com/talentflow/ats/internal/domain/models"
	"slices"
	"sync"
)

type reorderCall struct {
	id        string
	fromOrder int
	toOrder   int
}

// fakeJobsClient answers reorders through onReorder, which may block. With
// applyReorders set, accepted reorders shift the page the way the API does.
type fakeJobsClient struct {
	mu            sync.Mutex
	page          models.JobsPage
	getErr        error
	getCalls      int
	reorders      []reorderCall
	onReorder     func(call reorderCall) error
	applyReorders bool
}

func (f *fakeJobsClient) GetJobs(_ context.Context, _ models.JobQuery) (models.JobsPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	page := f.page
	page.Jobs = slices.Clone(f.page.Jobs)
	return page, f.getErr
}

func (f *fakeJobsClient) ReorderJob(_ context.Context, id string, fromOrder, toOrder int) ([]models.Job, error) {
	call := reorderCall{id: id, fromOrder: fromOrder, toOrder: toOrder}
	f.mu.Lock()
	f.reorders = append(f.reorders, call)
	onReorder := f.onReorder
	f.mu.Unlock()

	var err error
	if onReorder != nil {
		err = onReorder(call)
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyReorders {
		jobs := models.ApplyReorder(f.page.Jobs, id, fromOrder, toOrder)
		slices.SortStableFunc(jobs, func(a, b models.Job) int { return a.Order - b.Order })
		f.page.Jobs = jobs
	}
	return nil, nil
}

func (f *fakeJobsClient) setPage(jobs []models.Job, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page = models.JobsPage{Jobs: jobs}
	f.getErr = err
}

func (f *fakeJobsClient) gets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

type stageCall struct {
	id    string
	stage models.Stage
}

type fakeStageClient struct {
	mu        sync.Mutex
	calls     []stageCall
	onUpdate  func(call stageCall) error
	server    map[string]models.Candidate
	getErr    error
	getCalled int
}

func (f *fakeStageClient) UpdateCandidateStage(_ context.Context, id string, stage models.Stage) (models.Candidate, error) {
	call := stageCall{id: id, stage: stage}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	onUpdate := f.onUpdate
	f.mu.Unlock()

	if onUpdate == nil {
		return models.Candidate{ID: id, Stage: stage}, nil
	}
	return models.Candidate{ID: id, Stage: stage}, onUpdate(call)
}

func (f *fakeStageClient) GetCandidate(_ context.Context, id string) (models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalled++
	return f.server[id], f.getErr
}

func (f *fakeStageClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
