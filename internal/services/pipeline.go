package services

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/logger"
	"github.com/talentflow/ats/internal/metrics"
	"slices"
	"sync"
)

const pipelineKind = "pipeline"

type stageClient interface {
	UpdateCandidateStage(ctx context.Context, id string, stage models.Stage) (models.Candidate, error)
	GetCandidate(ctx context.Context, id string) (models.Candidate, error)
}

type placement struct {
	stage models.Stage
	index int
}

// Pipeline is a kanban board of candidates bucketed by stage. Moves are
// applied locally first and put back when the server rejects them.
type Pipeline struct {
	client  stageClient
	onError func(candidate models.Candidate, err error)

	mu          sync.Mutex
	buckets     map[models.Stage][]models.Candidate
	slots       map[models.Stage][]string
	confirmed   map[string]placement
	tokens      map[string]uint64
	inFlight    map[string]int
	needsResync map[string]bool
}

func NewPipeline(client stageClient) *Pipeline {
	p := &Pipeline{client: client}
	p.Load(nil)
	return p
}

// OnError sets the hook called with the candidate as it was before a move
// that the server rejected.
func (p *Pipeline) OnError(hook func(candidate models.Candidate, err error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onError = hook
}

// Load replaces the board. Moves still in flight are treated as superseded.
func (p *Pipeline) Load(candidates []models.Candidate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buckets = make(map[models.Stage][]models.Candidate, len(models.Stages))
	p.slots = make(map[models.Stage][]string, len(models.Stages))
	for _, stage := range models.Stages {
		p.buckets[stage] = []models.Candidate{}
		p.slots[stage] = []string{}
	}
	p.confirmed = make(map[string]placement, len(candidates))
	p.needsResync = make(map[string]bool)
	if p.tokens == nil {
		p.tokens = make(map[string]uint64)
		p.inFlight = make(map[string]int)
	}

	for _, c := range candidates {
		p.confirmed[c.ID] = placement{stage: c.Stage, index: len(p.buckets[c.Stage])}
		p.buckets[c.Stage] = append(p.buckets[c.Stage], c)
		p.slots[c.Stage] = append(p.slots[c.Stage], c.ID)
		p.tokens[c.ID]++
	}
}

func (p *Pipeline) Bucket(stage models.Stage) []models.Candidate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.buckets[stage])
}

func (p *Pipeline) Buckets() map[models.Stage][]models.Candidate {
	p.mu.Lock()
	defer p.mu.Unlock()

	buckets := make(map[models.Stage][]models.Candidate, len(p.buckets))
	for stage, bucket := range p.buckets {
		buckets[stage] = slices.Clone(bucket)
	}
	return buckets
}

// Move puts the candidate at the end of the toStage bucket and asks the server
// to change its stage. Moving within the same stage does nothing.
func (p *Pipeline) Move(ctx context.Context, candidateID string, toStage models.Stage) error {
	if _, err := models.ParseStage(string(toStage)); err != nil {
		return err
	}

	p.mu.Lock()
	from, ok := p.locate(candidateID)
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("candidate %s is not on the board", candidateID)
	}
	if from.stage == toStage {
		p.mu.Unlock()
		return nil
	}

	// the card keeps its slot in the source stage until the move settles
	original := p.take(from)
	moved := original
	moved.Stage = toStage
	p.buckets[toStage] = append(p.buckets[toStage], moved)
	p.slots[toStage] = append(p.slots[toStage], candidateID)

	p.tokens[candidateID]++
	token := p.tokens[candidateID]
	p.inFlight[candidateID]++
	p.mu.Unlock()

	_, err := p.client.UpdateCandidateStage(ctx, candidateID, toStage)

	p.mu.Lock()
	p.inFlight[candidateID]--
	var onError func(models.Candidate, error)
	switch {
	case token != p.tokens[candidateID]:
		metrics.StaleResponsesCounter.WithLabelValues(pipelineKind).Inc()
		if err != nil {
			p.needsResync[candidateID] = true
		}
	case err != nil:
		if at, found := p.locate(candidateID); found {
			p.take(at)
		}
		p.restore(original, from)
		metrics.RollbacksCounter.WithLabelValues(pipelineKind).Inc()
		onError = p.onError
	default:
		if at, found := p.locate(candidateID); found {
			p.confirmed[candidateID] = at
		}
	}
	resync := p.needsResync[candidateID] && p.inFlight[candidateID] == 0
	if resync {
		delete(p.needsResync, candidateID)
	}
	if p.inFlight[candidateID] == 0 {
		p.settle(candidateID)
	}
	p.mu.Unlock()

	if onError != nil {
		onError(original, err)
	}
	if resync {
		p.resync(ctx, candidateID)
	}
	return err
}

// resync places the candidate where the server has it. When the server cannot
// be reached, the last confirmed placement is restored.
func (p *Pipeline) resync(ctx context.Context, candidateID string) {
	p.mu.Lock()
	token := p.tokens[candidateID]
	p.mu.Unlock()

	server, err := p.client.GetCandidate(ctx, candidateID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if token != p.tokens[candidateID] {
		return
	}
	at, found := p.locate(candidateID)
	if !found {
		return
	}
	current := p.take(at)

	if err != nil {
		log.WithFields(log.Fields{logger.ErrorTypeField: logger.ErrorTypeClient, "candidate_id": candidateID}).
			Errorf("failed to resync candidate: %v", err)
		target := p.confirmed[candidateID]
		current.Stage = target.stage
		p.put(current, target)
		p.reslot(candidateID)
		return
	}

	if server.Stage == "" {
		server.Stage = current.Stage
	}
	target := placement{stage: server.Stage, index: len(p.buckets[server.Stage])}
	p.put(server, target)
	p.reslot(candidateID)
	p.confirmed[candidateID] = target
}

func (p *Pipeline) locate(candidateID string) (placement, bool) {
	for stage, bucket := range p.buckets {
		if i := slices.IndexFunc(bucket, func(c models.Candidate) bool { return c.ID == candidateID }); i >= 0 {
			return placement{stage: stage, index: i}, true
		}
	}
	return placement{}, false
}

func (p *Pipeline) take(at placement) models.Candidate {
	bucket := p.buckets[at.stage]
	c := bucket[at.index]
	p.buckets[at.stage] = slices.Delete(slices.Clone(bucket), at.index, at.index+1)
	return c
}

// restore puts c back into the source bucket of a rejected move. Its slot
// there still lists cards that left the bucket after it, so c lands after the
// visible cards that preceded it, whatever order other rollbacks arrive in.
func (p *Pipeline) restore(c models.Candidate, from placement) {
	slots := p.slots[from.stage]
	slot := slices.Index(slots, c.ID)
	if slot < 0 {
		p.put(c, from)
		return
	}

	before := slots[:slot]
	at := placement{stage: from.stage}
	for i, other := range p.buckets[from.stage] {
		if slices.Contains(before, other.ID) {
			at.index = i + 1
		}
	}
	p.put(c, at)
}

// settle drops the slots a candidate no longer occupies. A candidate without a
// slot in the bucket it is shown in gets one after the card before it.
func (p *Pipeline) settle(candidateID string) {
	at, found := p.locate(candidateID)
	for stage, slots := range p.slots {
		if found && stage == at.stage {
			continue
		}
		p.slots[stage] = slices.DeleteFunc(slices.Clone(slots), func(id string) bool { return id == candidateID })
	}
	if !found || slices.Contains(p.slots[at.stage], candidateID) {
		return
	}

	slots := p.slots[at.stage]
	slot := 0
	if at.index > 0 {
		slot = len(slots)
		if i := slices.Index(slots, p.buckets[at.stage][at.index-1].ID); i >= 0 {
			slot = i + 1
		}
	}
	p.slots[at.stage] = slices.Insert(slices.Clone(slots), slot, candidateID)
}

// reslot moves the candidate's slot next to where it is now shown.
func (p *Pipeline) reslot(candidateID string) {
	for stage, slots := range p.slots {
		p.slots[stage] = slices.DeleteFunc(slices.Clone(slots), func(id string) bool { return id == candidateID })
	}
	p.settle(candidateID)
}

// put inserts c at the placement, clamping the index to the bucket size.
func (p *Pipeline) put(c models.Candidate, at placement) {
	bucket := p.buckets[at.stage]
	index := min(max(at.index, 0), len(bucket))
	p.buckets[at.stage] = slices.Insert(slices.Clone(bucket), index, c)
}
