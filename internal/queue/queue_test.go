package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queuesim/internal/models"
	"queuesim/internal/queue"
	"queuesim/internal/sampler"
)

func TestDeriveArrivals(t *testing.T) {
	assert.Equal(t, []int{0, 3, 4, 9}, queue.DeriveArrivals([]int{0, 3, 1, 5}))
	assert.Equal(t, []int{}, queue.DeriveArrivals(nil))
}

func TestSingleOneCustomer(t *testing.T) {
	rec, err := queue.SimulateSingle(sampler.NewScripted(4), queue.SingleParams{
		Customers: 1, MaxInterArrival: 8, MaxServiceTime: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0}, rec.ArrivalTimes)
	assert.Equal(t, []int{0}, rec.IdleTimes)
	assert.Equal(t, []int{0}, rec.WaitingTimes)
	assert.Equal(t, []int{0}, rec.ServiceStartTimes)
	assert.Equal(t, []int{4}, rec.ServiceEndTimes)
	assert.Equal(t, 0.0, rec.AverageWaitingTime)
}

func TestSingleScriptedTimeline(t *testing.T) {
	s := sampler.NewScripted(3, 1, 2, 2, 2)
	rec, err := queue.SimulateSingle(s, queue.SingleParams{
		Customers: 3, MaxInterArrival: 10, MaxServiceTime: 10,
	})
	require.NoError(t, err)
	assert.Zero(t, s.Remaining())

	assert.Equal(t, []int{0, 3, 1}, rec.InterArrivalTimes)
	assert.Equal(t, []int{0, 3, 4}, rec.ArrivalTimes)
	// customer 2 arrives at 4 while the server is busy until 5
	assert.Equal(t, []int{0, 3, 5}, rec.ServiceStartTimes)
	assert.Equal(t, []int{2, 5, 7}, rec.ServiceEndTimes)
	assert.Equal(t, []int{0, 1, 0}, rec.IdleTimes)
	assert.Equal(t, []int{0, 0, 1}, rec.WaitingTimes)
	assert.Equal(t, 1, rec.TotalWaitingTime)
	assert.InDelta(t, 1.0/3, rec.AverageWaitingTime, 1e-9)
	assert.Equal(t, 6, rec.TotalServiceTime)
	assert.Equal(t, 1, rec.TotalIdleTime)
}

func TestSingleCustomersQueueBehindServer(t *testing.T) {
	rec, err := queue.BuildSingleTimeline([]int{0, 1, 1}, []int{5, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 5, 7}, rec.ServiceStartTimes)
	assert.Equal(t, []int{5, 7, 10}, rec.ServiceEndTimes)
	assert.Equal(t, []int{0, 4, 5}, rec.WaitingTimes)
	assert.Equal(t, []int{0, 0, 0}, rec.IdleTimes)
	assert.Equal(t, 9, rec.TotalWaitingTime)
	assert.Equal(t, 3.0, rec.AverageWaitingTime)
}

func TestDualFirstCustomerGoesToAble(t *testing.T) {
	bounds := [][2]int{{1, 1}, {1, 9}, {9, 1}, {3, 3}}
	for _, b := range bounds {
		rec, err := queue.SimulateDual(sampler.NewSeeded(7), queue.DualParams{
			Customers: 5, MaxInterArrival: 4, MaxServiceTimeAble: b[0], MaxServiceTimeBaker: b[1],
		})
		require.NoError(t, err)
		assert.Equal(t, models.Able, rec.ServerAssignments[0], "bounds %v", b)
		assert.Equal(t, 0, rec.ArrivalTimes[0])
		assert.Equal(t, 0, rec.IdleTimes[0])
	}
}

func TestDualAssignmentRules(t *testing.T) {
	s := sampler.NewScripted(
		1, 1, 1, // gaps
		5, 5, 5, 5, // able
		3, 3, 3, 3, // baker
	)
	rec, err := queue.SimulateDual(s, queue.DualParams{
		Customers: 4, MaxInterArrival: 5, MaxServiceTimeAble: 5, MaxServiceTimeBaker: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, []models.Server{models.Able, models.Baker, models.Baker, models.Able}, rec.ServerAssignments)
	assert.Equal(t, []int{0, 1, 2, 3}, rec.ArrivalTimes)
	assert.Equal(t, []int{0, 1, 4, 5}, rec.ServiceStartTimes)
	assert.Equal(t, []int{5, 4, 7, 10}, rec.ServiceEndTimes)
	assert.Equal(t, []int{0, 0, 2, 2}, rec.WaitingTimes)
	assert.Equal(t, []int{0, 1, 0, 0}, rec.IdleTimes)
	assert.Equal(t, 10, rec.TotalServiceTimeAble)
	assert.Equal(t, 6, rec.TotalServiceTimeBaker)
	assert.Equal(t, 1.0, rec.AverageWaitingTime)
	assert.Equal(t, 1, rec.TotalIdleTime)
}

func TestDualBothIdlePrefersAble(t *testing.T) {
	// Baker frees at 2, Able at 5; the third customer still lands on Able.
	rec, err := queue.BuildDualTimeline([]int{0, 1, 10}, []int{5, 5, 5}, []int{1, 1, 1})
	require.NoError(t, err)

	assert.Equal(t, []models.Server{models.Able, models.Baker, models.Able}, rec.ServerAssignments)
	assert.Equal(t, 6, rec.IdleTimes[2])
	assert.Equal(t, 11, rec.ServiceStartTimes[2])
	assert.Equal(t, 16, rec.ServiceEndTimes[2])
}

func TestInvalidArguments(t *testing.T) {
	single := []struct {
		params queue.SingleParams
		name   string
	}{
		{queue.SingleParams{Customers: 0, MaxInterArrival: 1, MaxServiceTime: 1}, "num_customers"},
		{queue.SingleParams{Customers: 3, MaxInterArrival: 0, MaxServiceTime: 1}, "max_interarrival"},
		{queue.SingleParams{Customers: 3, MaxInterArrival: 1, MaxServiceTime: -2}, "max_service_time"},
	}
	for _, tc := range single {
		_, err := queue.SimulateSingle(sampler.NewScripted(), tc.params)
		require.ErrorIs(t, err, queue.ErrInvalidArgument)
		assert.Contains(t, err.Error(), tc.name)
	}

	dual := []struct {
		params queue.DualParams
		name   string
	}{
		{queue.DualParams{Customers: 0, MaxInterArrival: 1, MaxServiceTimeAble: 1, MaxServiceTimeBaker: 1}, "num_customers"},
		{queue.DualParams{Customers: 2, MaxInterArrival: 1, MaxServiceTimeAble: 0, MaxServiceTimeBaker: 1}, "max_service_time_able"},
		{queue.DualParams{Customers: 2, MaxInterArrival: 1, MaxServiceTimeAble: 1, MaxServiceTimeBaker: 0}, "max_service_time_baker"},
	}
	for _, tc := range dual {
		rec, err := queue.SimulateDual(sampler.NewScripted(), tc.params)
		require.ErrorIs(t, err, queue.ErrInvalidArgument)
		assert.Contains(t, err.Error(), tc.name)
		assert.Nil(t, rec.ArrivalTimes)
	}
}

func TestBuildRejectsMalformedSamples(t *testing.T) {
	_, err := queue.BuildSingleTimeline(nil, nil)
	require.ErrorIs(t, err, queue.ErrInvalidArgument)

	_, err = queue.BuildSingleTimeline([]int{2, 1}, []int{1, 1})
	require.ErrorIs(t, err, queue.ErrInvalidArgument)

	_, err = queue.BuildDualTimeline([]int{0, 1}, []int{1, 1}, []int{1})
	require.ErrorIs(t, err, queue.ErrInvalidArgument)
}

func TestSingleInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		rec, err := queue.SimulateSingle(sampler.NewSeeded(seed), queue.SingleParams{
			Customers: 40, MaxInterArrival: 8, MaxServiceTime: 6,
		})
		require.NoError(t, err)

		assert.Equal(t, 0, rec.ArrivalTimes[0])
		totalWait := 0
		for i := range rec.ArrivalTimes {
			if i > 0 {
				assert.GreaterOrEqual(t, rec.ArrivalTimes[i], rec.ArrivalTimes[i-1])
				assert.GreaterOrEqual(t, rec.ServiceStartTimes[i], rec.ServiceEndTimes[i-1])
			}
			assert.GreaterOrEqual(t, rec.ServiceStartTimes[i], rec.ArrivalTimes[i])
			assert.Equal(t, rec.ServiceStartTimes[i]-rec.ArrivalTimes[i], rec.WaitingTimes[i])
			assert.Equal(t, rec.ServiceStartTimes[i]+rec.ServiceTimes[i], rec.ServiceEndTimes[i])
			assert.GreaterOrEqual(t, rec.IdleTimes[i], 0)
			assert.GreaterOrEqual(t, rec.ServiceTimes[i], 1)
			assert.LessOrEqual(t, rec.ServiceTimes[i], 6)
			totalWait += rec.WaitingTimes[i]
		}
		assert.InDelta(t, float64(totalWait)/40, rec.AverageWaitingTime, 1e-9)
	}
}

func TestDualInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		rec, err := queue.SimulateDual(sampler.NewSeeded(seed), queue.DualParams{
			Customers: 40, MaxInterArrival: 5, MaxServiceTimeAble: 5, MaxServiceTimeBaker: 7,
		})
		require.NoError(t, err)

		lastEnd := map[models.Server]int{}
		served := 0
		totalWait := 0
		for i := range rec.ArrivalTimes {
			server := rec.ServerAssignments[i]
			assert.GreaterOrEqual(t, rec.ServiceStartTimes[i], rec.ArrivalTimes[i])
			assert.GreaterOrEqual(t, rec.ServiceStartTimes[i], lastEnd[server], "customer %d overlaps on %s", i, server)
			assert.Equal(t, rec.ServiceStartTimes[i]-rec.ArrivalTimes[i], rec.WaitingTimes[i])
			assert.Equal(t, rec.ServiceStartTimes[i]+rec.ServiceTime(i), rec.ServiceEndTimes[i])
			assert.GreaterOrEqual(t, rec.IdleTimes[i], 0)
			lastEnd[server] = rec.ServiceEndTimes[i]
			served += rec.ServiceTime(i)
			totalWait += rec.WaitingTimes[i]
		}
		assert.Equal(t, served, rec.TotalServiceTimeAble+rec.TotalServiceTimeBaker)
		assert.InDelta(t, float64(totalWait)/40, rec.AverageWaitingTime, 1e-9)
	}
}

func TestSeededRunsAreReproducible(t *testing.T) {
	p := queue.DualParams{Customers: 20, MaxInterArrival: 5, MaxServiceTimeAble: 5, MaxServiceTimeBaker: 7}
	a, err := queue.SimulateDual(sampler.NewSeeded(42), p)
	require.NoError(t, err)
	b, err := queue.SimulateDual(sampler.NewSeeded(42), p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
