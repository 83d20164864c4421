package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queuesim/internal/models"
	"queuesim/internal/queue"
)

type memoryStore struct {
	entries []models.RunEntry
	err     error
}

func (m *memoryStore) Append(entry models.RunEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

type recorder struct {
	published []models.RunEntry
}

func (r *recorder) Publish(entry models.RunEntry) {
	r.published = append(r.published, entry)
}

var fixed = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func TestRunSingleStoresAndPublishes(t *testing.T) {
	store := &memoryStore{}
	pub := &recorder{}
	r := New(zerolog.Nop(), WithStore(store), WithPublisher(pub), WithClock(func() time.Time { return fixed }))

	entry, err := r.RunSingle(context.Background(), 11, models.RunParams{
		Customers: 20, MaxInterArrival: 8, MaxServiceTime: 6, MaxServiceTimeAble: 9,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, models.KindSingle, entry.Kind)
	assert.Equal(t, uint64(11), entry.Seed)
	assert.Equal(t, fixed, entry.CreatedAt)
	assert.Zero(t, entry.Params.MaxServiceTimeAble)
	require.NotNil(t, entry.Single)
	assert.Nil(t, entry.Dual)
	assert.Equal(t, 20, entry.Single.Customers())
	assert.Equal(t, entry.Single.AverageWaitingTime, entry.Summary.AverageWaitingTime)

	require.Len(t, store.entries, 1)
	require.Len(t, pub.published, 1)
	assert.Equal(t, entry.ID, pub.published[0].ID)
}

func TestRunDualIsReproducibleBySeed(t *testing.T) {
	r := New(zerolog.Nop())
	p := models.RunParams{Customers: 20, MaxInterArrival: 5, MaxServiceTimeAble: 5, MaxServiceTimeBaker: 7}

	a, err := r.RunDual(context.Background(), 3, p)
	require.NoError(t, err)
	b, err := r.RunDual(context.Background(), 3, p)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Dual, b.Dual)
	assert.Equal(t, models.Able, a.Dual.ServerAssignments[0])
}

func TestRunPicksSeedWhenZero(t *testing.T) {
	r := New(zerolog.Nop())
	entry, err := r.RunSingle(context.Background(), 0, models.RunParams{Customers: 3, MaxInterArrival: 2, MaxServiceTime: 2})
	require.NoError(t, err)
	assert.NotZero(t, entry.Seed)
}

func TestRunRejectsInvalidParams(t *testing.T) {
	store := &memoryStore{}
	r := New(zerolog.Nop(), WithStore(store))

	_, err := r.RunDual(context.Background(), 1, models.RunParams{Customers: 0, MaxInterArrival: 1, MaxServiceTimeAble: 1, MaxServiceTimeBaker: 1})
	require.ErrorIs(t, err, queue.ErrInvalidArgument)
	assert.Empty(t, store.entries)
}

func TestRunReportsStoreFailure(t *testing.T) {
	diskFull := errors.New("disk full")
	pub := &recorder{}
	r := New(zerolog.Nop(), WithStore(&memoryStore{err: diskFull}), WithPublisher(pub))

	_, err := r.RunSingle(context.Background(), 1, models.RunParams{Customers: 2, MaxInterArrival: 1, MaxServiceTime: 1})
	require.ErrorIs(t, err, diskFull)
	assert.Empty(t, pub.published)
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(zerolog.Nop()).RunSingle(ctx, 1, models.RunParams{Customers: 2, MaxInterArrival: 1, MaxServiceTime: 1})
	require.ErrorIs(t, err, context.Canceled)
}
