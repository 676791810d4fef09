package repositories

import (
	"context"
	"github.com/pkg/errors"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/gorm"
	"time"
)

type Candidates struct {
	db *gorm.DB
}

func NewCandidatesRepository(db *gorm.DB) *Candidates {
	return &Candidates{db: db}
}

// Find returns candidates narrowed by the indexed job and stage columns.
// Empty arguments do not filter.
func (repo *Candidates) Find(ctx context.Context, jobID string, stage models.Stage) ([]models.Candidate, error) {
	query := repo.db.WithContext(ctx)
	if jobID != "" {
		query = query.Where("job_id = ?", jobID)
	}
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}

	var candidates []models.Candidate
	if err := query.Order("created_at").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (repo *Candidates) GetByEmail(ctx context.Context, email string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := repo.db.WithContext(ctx).Find(&candidates, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (repo *Candidates) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := repo.db.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &candidate, nil
}

func (repo *Candidates) Add(ctx context.Context, candidate models.Candidate) error {
	return repo.db.WithContext(ctx).Create(&candidate).Error
}

func (repo *Candidates) Update(ctx context.Context, candidate models.Candidate) error {
	res := repo.db.WithContext(ctx).Model(&models.Candidate{ID: candidate.ID}).Select("*").Omit("created_at").
		Updates(&candidate)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *Candidates) UpdateStage(ctx context.Context, id string, stage models.Stage) error {
	res := repo.db.WithContext(ctx).Model(&models.Candidate{}).Where("id = ?", id).
		Updates(map[string]any{"stage": stage, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *Candidates) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&models.Candidate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
