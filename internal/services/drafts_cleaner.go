package services

import (
	"context"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/logger"
	"time"
)

type DraftCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error)
}

// DraftsCleaner removes drafts that were not updated for the configured
// number of days, every night at 03:00.
type DraftsCleaner struct {
	drafts               DraftCleanupRepository
	cron                 *cron.Cron
	expirationTimeInDays int
	now                  func() time.Time
}

func NewDraftsCleaner(drafts DraftCleanupRepository, expirationInDays int) (*DraftsCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	dc := &DraftsCleaner{
		drafts:               drafts,
		cron:                 cron.New(),
		expirationTimeInDays: expirationInDays,
		now:                  time.Now,
	}

	_, err := dc.cron.AddFunc("0 3 * * *", dc.cleanOldDrafts)
	if err != nil {
		return nil, err
	}

	dc.cron.Start()
	log.Infof("drafts cleaner started, expiration in days: %d", dc.expirationTimeInDays)
	return dc, nil
}

func (dc *DraftsCleaner) Stop() {
	<-dc.cron.Stop().Done()
}

func (dc *DraftsCleaner) cleanOldDrafts() {
	expirationTime := dc.now().Add(-time.Duration(dc.expirationTimeInDays) * 24 * time.Hour)
	rowsAffected, err := dc.drafts.RemoveOlderThan(context.Background(), expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clean old drafts: %v", err)
	} else {
		log.Infof("old drafts were cleaned at %v, affected rows: %v", dc.now(), rowsAffected)
	}
}
