package repositories

import (
	"context"
	"github.com/pkg/errors"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/gorm"
)

type Assessments struct {
	db *gorm.DB
}

func NewAssessmentsRepository(db *gorm.DB) *Assessments {
	return &Assessments{db: db}
}

func (repo *Assessments) GetAll(ctx context.Context) ([]models.Assessment, error) {
	var assessments []models.Assessment
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (repo *Assessments) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *Assessments) GetByJob(ctx context.Context, jobID string) (*models.Assessment, error) {
	return repo.first(ctx, "job_id = ?", jobID)
}

func (repo *Assessments) first(ctx context.Context, query string, args ...any) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assessment, nil
}

func (repo *Assessments) Add(ctx context.Context, assessment models.Assessment) error {
	err := repo.db.WithContext(ctx).Create(&assessment).Error
	if isUniqueViolation(err) {
		return ErrAssessmentExists
	}
	return err
}

func (repo *Assessments) Update(ctx context.Context, assessment models.Assessment) error {
	res := repo.db.WithContext(ctx).Model(&models.Assessment{ID: assessment.ID}).Select("*").Omit("created_at").
		Updates(&assessment)
	if isUniqueViolation(res.Error) {
		return ErrAssessmentExists
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the assessment together with every response submitted for
// it and returns the number of removed responses.
func (repo *Assessments) Delete(ctx context.Context, id string) (int64, error) {
	var deletedResponses int64

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.CandidateResponse{}, "assessment_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deletedResponses = res.RowsAffected

		res = tx.Delete(&models.Assessment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})

	return deletedResponses, err
}
