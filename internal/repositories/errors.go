package repositories

import (
	"errors"
	"gorm.io/gorm"
	"strings"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateSlug    = errors.New("Slug must be unique")
	ErrAssessmentExists = errors.New("Assessment already exists for this job")
	ErrResponseExists   = errors.New("Response already submitted for this assessment")
)

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || (err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed"))
}
