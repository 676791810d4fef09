package services

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/logger"
	"github.com/talentflow/ats/internal/metrics"
	"slices"
	"sync"
)

const jobBoardKind = "job_board"

// ErrReorderCancelled is returned for a reorder that was queued behind one the
// server rejected. Its orders were computed on top of the rejected move.
var ErrReorderCancelled = errors.New("reorder cancelled: an earlier reorder failed")

type jobsClient interface {
	GetJobs(ctx context.Context, query models.JobQuery) (models.JobsPage, error)
	ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) ([]models.Job, error)
}

// JobBoard keeps an optimistic view of one page of jobs. Reorders show up in
// the view immediately and are reverted when the server rejects them.
type JobBoard struct {
	client jobsClient

	mu          sync.Mutex
	query       models.JobQuery
	visible     []models.Job
	confirmed   []models.Job
	page        models.PageInfo
	token       uint64
	inFlight    int
	needsResync bool
	epoch       uint64
	last        *reorderTicket
}

// reorderTicket lets a reorder wait for the one issued before it, so the
// server applies the shifts in the order they were shown.
type reorderTicket struct {
	epoch uint64
	done  chan struct{}
	err   error
}

func NewJobBoard(client jobsClient) *JobBoard {
	return &JobBoard{client: client}
}

// Load fetches a page and makes it both the visible list and the known-good
// snapshot. Completions of reorders issued before Load are discarded.
func (b *JobBoard) Load(ctx context.Context, query models.JobQuery) error {
	page, err := b.client.GetJobs(ctx, query)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.token++
	b.epoch++
	b.query = query
	b.page = page.PageInfo
	b.visible = slices.Clone(page.Jobs)
	b.confirmed = slices.Clone(page.Jobs)
	return nil
}

func (b *JobBoard) Jobs() []models.Job {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.visible)
}

func (b *JobBoard) PageInfo() models.PageInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Reorder moves the job at oldIndex to newIndex. The server is asked to move
// it from the order of the job at oldIndex to the order of the job at newIndex.
// The visible orders are shifted right away, so a reorder issued while this one
// is in flight reads the orders the server will have.
func (b *JobBoard) Reorder(ctx context.Context, jobID string, oldIndex, newIndex int) error {
	b.mu.Lock()
	if oldIndex < 0 || oldIndex >= len(b.visible) || newIndex < 0 || newIndex >= len(b.visible) {
		b.mu.Unlock()
		return fmt.Errorf("reorder indices out of range: %d -> %d", oldIndex, newIndex)
	}
	if b.visible[oldIndex].ID != jobID {
		b.mu.Unlock()
		return fmt.Errorf("job %s is not at index %d", jobID, oldIndex)
	}
	if oldIndex == newIndex {
		b.mu.Unlock()
		return nil
	}

	before := slices.Clone(b.visible)
	fromOrder, toOrder := b.visible[oldIndex].Order, b.visible[newIndex].Order
	b.visible = models.ApplyReorder(moveItem(b.visible, oldIndex, newIndex), jobID, fromOrder, toOrder)
	b.token++
	token := b.token
	b.inFlight++
	prev := b.last
	ticket := &reorderTicket{epoch: b.epoch, done: make(chan struct{})}
	b.last = ticket
	b.mu.Unlock()

	err := ticket.waitFor(ctx, prev)
	if err == nil {
		_, err = b.client.ReorderJob(ctx, jobID, fromOrder, toOrder)
	}
	ticket.err = err
	close(ticket.done)

	b.mu.Lock()
	b.inFlight--
	switch {
	case token != b.token:
		// the view was built on top of this call, so the server has the final say
		metrics.StaleResponsesCounter.WithLabelValues(jobBoardKind).Inc()
		b.needsResync = true
	case err != nil:
		b.visible = before
		metrics.RollbacksCounter.WithLabelValues(jobBoardKind).Inc()
	default:
		b.confirmed = slices.Clone(b.visible)
	}
	resync := b.needsResync && b.inFlight == 0
	if resync {
		b.needsResync = false
	}
	b.mu.Unlock()

	if resync {
		b.resync(ctx)
	}
	return err
}

// resync replaces the view with the server's state once overlapping reorders
// have all completed. When the refresh fails too, the last confirmed list is shown.
func (b *JobBoard) resync(ctx context.Context) {
	b.mu.Lock()
	query, token := b.query, b.token
	b.mu.Unlock()

	page, err := b.client.GetJobs(ctx, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.token {
		return
	}
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeClient).Errorf("failed to resync job board: %v", err)
		b.visible = slices.Clone(b.confirmed)
		return
	}
	b.page = page.PageInfo
	b.visible = slices.Clone(page.Jobs)
	b.confirmed = slices.Clone(page.Jobs)
}

// waitFor blocks until prev has been answered. A failure of prev from the
// same epoch cancels this reorder.
func (t *reorderTicket) waitFor(ctx context.Context, prev *reorderTicket) error {
	if prev == nil {
		return nil
	}
	select {
	case <-prev.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if prev.err != nil && prev.epoch == t.epoch {
		return ErrReorderCancelled
	}
	return nil
}

// moveItem returns a copy of items with the element at from moved to to.
func moveItem[T any](items []T, from, to int) []T {
	moved := slices.Clone(items)
	item := moved[from]
	moved = slices.Delete(moved, from, from+1)
	return slices.Insert(moved, to, item)
}
