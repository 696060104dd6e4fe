package services

import (
	"testing"

	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestExpiryScheduler(t *testing.T) {
	t.Run("Should reject an invalid schedule", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		_, err := NewExpiryScheduler("every minute please", NewMockPruner(ctrl), utils.NewNopLogger())
		assert.Error(t, err)
	})

	t.Run("Should run the pruner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pruner := NewMockPruner(ctrl)
		pruner.EXPECT().PruneArchived().Return(2)
		pruner.EXPECT().PruneArchived().Return(0)

		s, err := NewExpiryScheduler("@every 1m", pruner, utils.NewNopLogger())
		require.NoError(t, err)

		job := s.cron.Entry(s.entryID).Job
		require.NotNil(t, job)
		job.Run()
		job.Run()
	})

	t.Run("Should start and stop cleanly", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		s, err := NewExpiryScheduler("*/5 * * * *", NewMockPruner(ctrl), utils.NewNopLogger())
		require.NoError(t, err)

		s.Start()
		assert.Len(t, s.cron.Entries(), 1)
		s.Stop()
	})
}
