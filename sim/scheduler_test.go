package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandOrders_CeilingDivisionWithRemainder(t *testing.T) {
	// 250kg of a 100kg-batch product needs 3 batches: the 50kg remainder
	// still produces one full batch.
	cfg := twoOrderContentionConfig(1, 1)
	cfg.Orders = []OrderConfig{
		{ID: "1", ProductID: "X", Quantity: 250, DueDate: 5, Priority: 1},
	}
	plant := buildPlant(t, cfg)

	batches := ExpandOrders(plant)

	require.Len(t, batches, 3)
	for i, batch := range batches {
		assert.Equal(t, "1", batch.Order.ID)
		assert.Equal(t, i, batch.SeqNum)
		assert.Equal(t, BatchCreated, batch.State)
	}
}

func TestExpandOrders_ExactMultiple(t *testing.T) {
	cfg := twoOrderContentionConfig(1, 1)
	cfg.Orders = []OrderConfig{
		{ID: "1", ProductID: "X", Quantity: 300, DueDate: 5, Priority: 1},
	}
	plant := buildPlant(t, cfg)

	batches := ExpandOrders(plant)

	assert.Len(t, batches, 3)
}

// orderIDs extracts the order id sequence of a batch list.
func orderIDs(batches []*Batch) []string {
	ids := make([]string, len(batches))
	for i, b := range batches {
		ids[i] = b.Order.ID
	}
	return ids
}

// heuristicConfig builds a plant with three single-batch orders of
// distinguishable priority, due date, and workload.
func heuristicConfig() *PlantConfig {
	cfg := twoOrderContentionConfig(1, 1)
	cfg.Orders = []OrderConfig{
		{ID: "1", ProductID: "X", Quantity: 100, DueDate: 5, Priority: 1},
		{ID: "2", ProductID: "X", Quantity: 100, DueDate: 1, Priority: 2},
		{ID: "3", ProductID: "X", Quantity: 100, DueDate: 3, Priority: 2},
	}
	return cfg
}

func TestFIFOPolicy_PriorityDescThenDueAsc(t *testing.T) {
	plant := buildPlant(t, heuristicConfig())
	batches := ExpandOrders(plant)

	(&FIFOPolicy{}).Order(batches, plant)

	assert.Equal(t, []string{"2", "3", "1"}, orderIDs(batches))
}

func TestEDDPolicy_DueDateOnlyIgnoresPriority(t *testing.T) {
	plant := buildPlant(t, heuristicConfig())
	batches := ExpandOrders(plant)

	(&EDDPolicy{}).Order(batches, plant)

	assert.Equal(t, []string{"2", "3", "1"}, orderIDs(batches))

	// Flip due dates so the low-priority order is earliest: EDD must put it
	// first even though FIFO would not.
	cfg := heuristicConfig()
	cfg.Orders[0].DueDate = 0.5
	plant = buildPlant(t, cfg)
	batches = ExpandOrders(plant)
	(&EDDPolicy{}).Order(batches, plant)
	assert.Equal(t, []string{"1", "2", "3"}, orderIDs(batches))
}

func TestCriticalRatio_Formula(t *testing.T) {
	// GIVEN a 100kg-batch product with a 2h recipe, hours_per_day 24
	plant := buildPlant(t, twoOrderContentionConfig(1, 1))
	product := plant.Product("X")

	// 250kg -> 3 batches; total_time_needed = (2/24)*3 = 0.25 days;
	// slack = 2 - 0.25 = 1.75; ratio = 7.
	order := &Order{ID: "1", ProductID: "X", Quantity: decimalFromInt(250), DueDate: 2, Priority: 1}
	assert.InDelta(t, 7.0, CriticalRatio(order, product, plant.HoursPerDay), 1e-9)
}

func TestCriticalRatio_ZeroProcessingTimeIs999(t *testing.T) {
	// A product with an empty recipe needs zero processing time: the ratio
	// degenerates to 999 (lowest urgency), never a division error.
	product := &Product{ID: "E", Name: "Empty", BatchSize: decimalFromInt(100)}
	order := &Order{ID: "1", ProductID: "E", Quantity: decimalFromInt(100), DueDate: 1, Priority: 1}

	assert.Equal(t, 999.0, CriticalRatio(order, product, 24))
}

func TestCriticalRatioPolicy_MostCriticalFirst(t *testing.T) {
	// GIVEN orders with different batch counts: more required batches means
	// less slack per unit of work
	cfg := heuristicConfig()
	cfg.Orders = []OrderConfig{
		{ID: "1", ProductID: "X", Quantity: 100, DueDate: 5, Priority: 1},  // ratio (5-2/24)/(2/24) = 59
		{ID: "2", ProductID: "X", Quantity: 1000, DueDate: 1, Priority: 1}, // ratio (1-20/24)/(20/24) = 0.2
	}
	plant := buildPlant(t, cfg)
	batches := ExpandOrders(plant)

	(&CriticalRatioPolicy{}).Order(batches, plant)

	// All ten batches of order 2 come before order 1's single batch.
	ids := orderIDs(batches)
	require.Len(t, ids, 11)
	for i := 0; i < 10; i++ {
		assert.Equal(t, "2", ids[i])
	}
	assert.Equal(t, "1", ids[10])
}

func TestNewOrderingPolicy_Names(t *testing.T) {
	assert.Equal(t, "FIFO", NewOrderingPolicy("").Name())
	assert.Equal(t, "FIFO", NewOrderingPolicy("fifo").Name())
	assert.Equal(t, "EDD", NewOrderingPolicy("edd").Name())
	assert.Equal(t, "Critical Ratio", NewOrderingPolicy("cr").Name())
	assert.Panics(t, func() { NewOrderingPolicy("spt") })
}

func TestAllPolicies_CoversValidNames(t *testing.T) {
	policies := AllPolicies()
	require.Len(t, policies, 3)
	assert.Equal(t, "FIFO", policies[0].Name())
	assert.Equal(t, "EDD", policies[1].Name())
	assert.Equal(t, "Critical Ratio", policies[2].Name())
}
