package repositories

import (
	"context"
	"github.com/pkg/errors"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/gorm"
	"time"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// GetAll returns every job in manual order.
func (repo *Jobs) GetAll(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := repo.db.WithContext(ctx).Order("position").Order("created_at").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	var jobs []models.Job
	if err := repo.db.WithContext(ctx).Where("status = ?", status).Order("position").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (repo *Jobs) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	var job models.Job
	if err := repo.db.WithContext(ctx).First(&job, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// NextOrder returns the rank that places a new job last.
func (repo *Jobs) NextOrder(ctx context.Context) (int, error) {
	var maxOrder int
	row := repo.db.WithContext(ctx).Model(&models.Job{}).Select("COALESCE(MAX(position), 0)").Row()
	if err := row.Scan(&maxOrder); err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

func (repo *Jobs) Add(ctx context.Context, job models.Job) error {
	err := repo.db.WithContext(ctx).Create(&job).Error
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	return err
}

// Update replaces every field of an existing job.
func (repo *Jobs) Update(ctx context.Context, job models.Job) error {
	res := repo.db.WithContext(ctx).Model(&models.Job{ID: job.ID}).Select("*").Omit("created_at").Updates(&job)
	if isUniqueViolation(res.Error) {
		return ErrDuplicateSlug
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *Jobs) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder moves a job to toOrder and shifts the jobs between fromOrder and
// toOrder by one towards fromOrder, in a single transaction.
func (repo *Jobs) Reorder(ctx context.Context, id string, fromOrder, toOrder int) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		res := tx.Model(&models.Job{}).Where("id = ?", id).
			Updates(map[string]any{"position": toOrder, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		others := tx.Model(&models.Job{}).Where("id <> ?", id)
		switch {
		case fromOrder < toOrder:
			return others.Where("position > ? AND position <= ?", fromOrder, toOrder).
				UpdateColumn("position", gorm.Expr("position - 1")).Error
		case fromOrder > toOrder:
			return others.Where("position >= ? AND position < ?", toOrder, fromOrder).
				UpdateColumn("position", gorm.Expr("position + 1")).Error
		}
		return nil
	})
}
