package controllers_test

import (
	"context"
	"testing"
	"time"

	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/store"
	"github.com/NammaLakes/dashboard/internal/testutils"
	"github.com/jonboulle/clockwork"
	"go.uber.org/mock/gomock"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type apiFixture struct {
	*testutils.TestSetup
	source *store.MockNodeSource
	clock  *clockwork.FakeClock
	store  *store.Store
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	setup := testutils.NewTestSetup(t)
	t.Cleanup(setup.Cleanup)

	ctrl := gomock.NewController(t)
	f := &apiFixture{
		TestSetup: setup,
		source:    store.NewMockNodeSource(ctrl),
		clock:     clockwork.NewFakeClockAt(testEpoch),
	}
	f.store = setup.NewStore(store.Config{}, f.source, store.NewMockAlertStream(ctrl), store.WithClock(f.clock))
	return f
}

// loadNodes pushes one poll through Refresh
func (f *apiFixture) loadNodes(readings ...models.NodeReading) {
	f.source.EXPECT().FetchAllNodes(gomock.Any()).Return(readings, nil)
	f.Requires.NoError(f.store.Refresh(context.Background()))
	// let the refresh limiter refill
	f.clock.Advance(time.Second)
}

func nodeReading(id string, ts, temp float64) models.NodeReading {
	return models.NodeReading{
		NodeID:          id,
		Timestamp:       ts,
		Latitude:        12.97,
		Longitude:       77.59,
		Temperature:     temp,
		PH:              7.2,
		DissolvedOxygen: 8.1,
	}
}
