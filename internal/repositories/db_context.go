package repositories

import (
	"context"
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"math/rand"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

var compositeIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_candidates_job_stage ON candidates (job_id, stage)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_responses_assessment_candidate ON candidate_responses (assessment_id, candidate_id)",
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		model any
	}{
		{"Job", models.Job{}},
		{"Candidate", models.Candidate{}},
		{"Assessment", models.Assessment{}},
		{"CandidateResponse", models.CandidateResponse{}},
		{"Draft", models.Draft{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	for _, ddl := range compositeIndexes {
		if err := c.DB.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to create composite index: %w", err)
		}
	}

	return nil
}

// Seed fills empty job and candidate tables with generated sample data.
// Tables that already hold rows are left alone.
func (c *DbContext) Seed(ctx context.Context, candidatesTotal int, rnd *rand.Rand) error {
	db := c.DB.WithContext(ctx)

	var jobsCount int64
	if err := db.Model(models.Job{}).Count(&jobsCount).Error; err != nil {
		return fmt.Errorf("failed to count jobs: %w", err)
	}

	seeder := newSeeder(rnd)

	if jobsCount == 0 {
		if err := db.CreateInBatches(seeder.jobs(), 100).Error; err != nil {
			return fmt.Errorf("failed to seed jobs: %w", err)
		}
	}

	var candidatesCount int64
	if err := db.Model(models.Candidate{}).Count(&candidatesCount).Error; err != nil {
		return fmt.Errorf("failed to count candidates: %w", err)
	}

	if candidatesCount == 0 && candidatesTotal > 0 {
		var jobs []models.Job
		if err := db.Order("position").Find(&jobs).Error; err != nil {
			return fmt.Errorf("failed to load jobs for seeding: %w", err)
		}

		candidates := seeder.candidates(jobs, candidatesTotal)
		if len(candidates) == 0 {
			return nil
		}
		if err := db.CreateInBatches(candidates, 200).Error; err != nil {
			return fmt.Errorf("failed to seed candidates: %w", err)
		}
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
