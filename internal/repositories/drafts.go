package repositories

import (
	"context"
	"github.com/pkg/errors"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/gorm"
	"strings"
	"time"
)

type Drafts struct {
	db *gorm.DB
}

func NewDraftsRepository(db *gorm.DB) *Drafts {
	return &Drafts{db: db}
}

func (repo *Drafts) Save(ctx context.Context, id string, data []byte) error {
	return repo.db.WithContext(ctx).Save(&models.Draft{
		ID:        id,
		Value:     data,
		UpdatedAt: time.Now().UTC(),
	}).Error
}

// Load returns nil when there is no draft with the given id.
func (repo *Drafts) Load(ctx context.Context, id string) ([]byte, error) {
	draft := &models.Draft{}
	err := repo.db.WithContext(ctx).First(draft, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return draft.Value, nil
}

func (repo *Drafts) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&models.Draft{}, "id = ?", id).Error
}

func (repo *Drafts) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&models.Draft{}, "updated_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}

// RemoveByPrefix deletes every draft whose id starts with prefix.
func (repo *Drafts) RemoveByPrefix(ctx context.Context, prefix string) (int64, error) {
	escaped := likeEscaper.Replace(prefix)
	res := repo.db.WithContext(ctx).Delete(&models.Draft{}, `id LIKE ? ESCAPE '\'`, escaped+"%")
	return res.RowsAffected, res.Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
