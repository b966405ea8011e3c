package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectMetrics_TardinessAndMakespan(t *testing.T) {
	// GIVEN one order of two 2h batches on a single machine, due at day 0
	cfg := twoOrderContentionConfig(1, 1)
	cfg.Orders = []OrderConfig{
		{ID: "1", ProductID: "X", Quantity: 200, DueDate: 0, Priority: 1},
	}
	plant := buildPlant(t, cfg)
	s := runBatches(plant, ExpandOrders(plant))

	// WHEN metrics are collected
	m := CollectMetrics(s, "FIFO")

	// THEN completion is the max batch end in days, tardiness its excess
	// over the due date, and makespan equals the only completion day
	entry, ok := m.OrderCompletion["1"]
	require.True(t, ok, "order 1 should have a completion entry")
	assert.InDelta(t, 4.0/24.0, entry.CompletionDay, 1e-9)
	assert.InDelta(t, 4.0/24.0, entry.TardinessDays, 1e-9)
	assert.Equal(t, 2, entry.NumBatches)
	assert.InDelta(t, 4.0/24.0, m.Makespan, 1e-9)
	assert.InDelta(t, 4.0/24.0, m.TotalTardiness, 1e-9)
	assert.Equal(t, 1, m.NumLateOrders)
	assert.Empty(t, m.IncompleteOrders)
}

func TestCollectMetrics_OnTimeOrderHasZeroTardiness(t *testing.T) {
	cfg := twoOrderContentionConfig(1, 1)
	cfg.Orders = []OrderConfig{
		{ID: "1", ProductID: "X", Quantity: 100, DueDate: 2, Priority: 1},
	}
	plant := buildPlant(t, cfg)
	s := runBatches(plant, ExpandOrders(plant))

	m := CollectMetrics(s, "FIFO")

	entry := m.OrderCompletion["1"]
	assert.Equal(t, 0.0, entry.TardinessDays)
	assert.Equal(t, 0, m.NumLateOrders)
}

func TestCollectMetrics_IncompleteOrderExcludedAtHorizon(t *testing.T) {
	// GIVEN an order requiring 3 batches of 10h each on one machine, with a
	// 24h horizon: only two batches can finish
	cfg := twoOrderContentionConfig(1, 1)
	cfg.Products[0].Recipe[0].Duration = 10
	cfg.Orders = []OrderConfig{
		{ID: "1", ProductID: "X", Quantity: 250, DueDate: 1, Priority: 1},
	}
	cfg.SimulationTimeDays = 1
	plant := buildPlant(t, cfg)
	s := runBatches(plant, ExpandOrders(plant))

	// WHEN metrics are collected
	m := CollectMetrics(s, "FIFO")

	// THEN the order has no completion entry, is flagged incomplete, and
	// makespan/tardiness exclude it
	_, ok := m.OrderCompletion["1"]
	assert.False(t, ok, "incomplete order must not have a completion entry")
	assert.Equal(t, []string{"1"}, m.IncompleteOrders)
	assert.Equal(t, 0.0, m.Makespan)
	assert.Equal(t, 0.0, m.TotalTardiness)
	assert.Equal(t, 0, m.NumLateOrders)
}

func TestCollectMetrics_UtilizationPerType(t *testing.T) {
	// GIVEN one 2h batch on one machine over a 1-day horizon
	cfg := twoOrderContentionConfig(1, 1)
	cfg.Orders = cfg.Orders[:1]
	cfg.SimulationTimeDays = 1
	plant := buildPlant(t, cfg)
	s := runBatches(plant, ExpandOrders(plant))

	m := CollectMetrics(s, "FIFO")

	assert.InDelta(t, 2.0/24.0, m.Utilization["Mach"], 1e-9)
	assert.Equal(t, 24.0, m.SimulatedTime)
}

func TestMetricsResult_RoundingAndFormatting(t *testing.T) {
	m := &Metrics{
		Algorithm:      "EDD",
		Makespan:       3.14159,
		TotalTardiness: 1.005,
		NumLateOrders:  1,
		SimulatedTime:  720,
		Utilization:    map[string]float64{"Reactor": 0.85347, "Dryer": 0.5},
		OrderCompletion: map[string]OrderCompletion{
			"2": {OrderID: "2", CompletionDay: 3.14159, DueDay: 3, TardinessDays: 0.14159, NumBatches: 4},
			"1": {OrderID: "1", CompletionDay: 1.0, DueDay: 2, TardinessDays: 0, NumBatches: 1},
		},
		IncompleteOrders: []string{"3"},
	}

	result := m.Result()

	assert.Equal(t, "EDD", result.Algorithm)
	assert.Equal(t, 3.14, result.Makespan)
	assert.Equal(t, 1.0, result.TotalTardiness)
	assert.Equal(t, 1, result.LateOrders)
	// order_details sorted by order id, day values rounded to 2 decimals
	require.Len(t, result.OrderDetails, 2)
	assert.Equal(t, "1", result.OrderDetails[0].OrderID)
	assert.Equal(t, "2", result.OrderDetails[1].OrderID)
	assert.Equal(t, 3.14, result.OrderDetails[1].CompletionDay)
	assert.Equal(t, 0.14, result.OrderDetails[1].TardinessDays)
	// utilization formatted as one-decimal percentage strings
	assert.Equal(t, "85.3%", result.Utilization["Reactor"])
	assert.Equal(t, "50.0%", result.Utilization["Dryer"])
	assert.Equal(t, []string{"3"}, result.IncompleteOrders)
}

func TestCollectMetrics_BatchDetailsOnlyCompleted(t *testing.T) {
	// GIVEN a horizon that cuts off the third batch
	cfg := twoOrderContentionConfig(1, 1)
	cfg.Products[0].Recipe[0].Duration = 10
	cfg.Orders = []OrderConfig{
		{ID: "1", ProductID: "X", Quantity: 250, DueDate: 1, Priority: 1},
	}
	cfg.SimulationTimeDays = 1
	plant := buildPlant(t, cfg)
	s := runBatches(plant, ExpandOrders(plant))

	m := CollectMetrics(s, "FIFO")

	// THEN only the two completed batches appear in the details
	require.Len(t, m.BatchDetails, 2)
	assert.InDelta(t, 10.0/24.0, m.BatchDetails[0].EndDay, 1e-9)
	assert.InDelta(t, 20.0/24.0, m.BatchDetails[1].EndDay, 1e-9)
}
