package repositories

import (
	"context"
	"github.com/pkg/errors"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/gorm"
)

type Responses struct {
	db *gorm.DB
}

func NewResponsesRepository(db *gorm.DB) *Responses {
	return &Responses{db: db}
}

func (repo *Responses) Add(ctx context.Context, response models.CandidateResponse) error {
	err := repo.db.WithContext(ctx).Create(&response).Error
	if isUniqueViolation(err) {
		return ErrResponseExists
	}
	return err
}

func (repo *Responses) Get(ctx context.Context, assessmentID, candidateID string) (*models.CandidateResponse, error) {
	var response models.CandidateResponse
	err := repo.db.WithContext(ctx).
		Where("assessment_id = ? AND candidate_id = ?", assessmentID, candidateID).
		First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

func (repo *Responses) GetByAssessment(ctx context.Context, assessmentID string) ([]models.CandidateResponse, error) {
	var responses []models.CandidateResponse
	if err := repo.db.WithContext(ctx).Where("assessment_id = ?", assessmentID).
		Order("submitted_at").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (repo *Responses) GetByCandidate(ctx context.Context, candidateID string) ([]models.CandidateResponse, error) {
	var responses []models.CandidateResponse
	if err := repo.db.WithContext(ctx).Where("candidate_id = ?", candidateID).
		Order("submitted_at").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}
