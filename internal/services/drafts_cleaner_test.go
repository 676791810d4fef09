package services

import (
	"context"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type mockDrafts struct {
	mock.Mock
}

func (m *mockDrafts) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	args := m.Called(ctx, expirationTime)
	return args.Get(0).(int64), args.Error(1)
}

func Test_DraftsCleaner_RemovesDraftsOlderThanExpiration(t *testing.T) {
	now := time.Date(2024, 5, 31, 3, 0, 0, 0, time.UTC)
	drafts := &mockDrafts{}
	drafts.On("RemoveOlderThan", mock.Anything, now.AddDate(0, 0, -30)).Return(int64(3), nil).Once()
	drafts.On("RemoveOlderThan", mock.Anything, now.AddDate(0, 0, -30)).Return(int64(0), errors.New("locked")).Once()

	cleaner, err := NewDraftsCleaner(drafts, 30)
	require.NoError(t, err)
	defer cleaner.Stop()
	cleaner.now = func() time.Time { return now }

	cleaner.cleanOldDrafts()
	cleaner.cleanOldDrafts()

	drafts.AssertExpectations(t)
}

func Test_DraftsCleaner_RejectsNonPositiveExpiration(t *testing.T) {
	_, err := NewDraftsCleaner(&mockDrafts{}, 0)
	assert.Error(t, err)
}
