package models

import (
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_ParseStage_AcceptsOnlyKnownStages(t *testing.T) {
	assert := assert.New(t)

	for _, stage := range Stages {
		parsed, err := ParseStage(string(stage))
		assert.NoError(err)
		assert.Equal(stage, parsed)
	}

	_, err := ParseStage("archived")
	assert.EqualError(err, "Invalid stage: archived. Must be one of: applied, screening, interview, technical, offer, hired, rejected")

	_, err = ParseStage("Applied")
	assert.Error(err)
}

func Test_ComputeCandidateStats(t *testing.T) {
	assert := assert.New(t)

	stats := ComputeCandidateStats([]Candidate{
		{Stage: StageApplied, Rating: lo.ToPtr(4)},
		{Stage: StageApplied, Rating: lo.ToPtr(2)},
		{Stage: StageHired},
	})

	assert.Equal(3, stats.Total)
	assert.Equal(2, stats.ByStage[StageApplied])
	assert.Equal(1, stats.ByStage[StageHired])
	assert.Equal(0, stats.ByStage[StageOffer])
	assert.Len(stats.ByStage, len(Stages))
	assert.InDelta(2.0, stats.AverageRating, 1e-9)
}

func Test_ComputeCandidateStats_Empty(t *testing.T) {
	stats := ComputeCandidateStats(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Zero(t, stats.AverageRating)
}

func Test_CandidatePatch_Validate(t *testing.T) {
	assert := assert.New(t)

	bogus := Stage("limbo")
	assert.Error(CandidatePatch{Stage: &bogus}.Validate())
	assert.Error(CandidatePatch{Rating: lo.ToPtr(6)}.Validate())
	assert.Error(CandidatePatch{Email: lo.ToPtr("not-an-email")}.Validate())
	assert.NoError(CandidatePatch{Rating: lo.ToPtr(5), Email: lo.ToPtr("a@b.com")}.Validate())
}
