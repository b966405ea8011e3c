package sim

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// Helpers for building small plants in tests. Everything goes through
// PlantConfig.Build so tests exercise the same construction path as
// production configuration loading.

func buildPlant(t *testing.T, cfg *PlantConfig) *Plant {
	t.Helper()
	plant, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	return plant
}

// twoOrderContentionConfig models the simplest contended plant: one unit of
// type "Mach", one product "X" with a single 2h step, and two orders of one
// batch each with the given priorities.
func twoOrderContentionConfig(prioFirst, prioSecond int) *PlantConfig {
	return &PlantConfig{
		Equipment: []EquipmentConfig{
			{ID: "M-1", Type: "Mach", Capacity: 100},
		},
		Products: []ProductConfig{
			{
				ID: "X", Name: "Product-X", BatchSize: 100,
				Recipe: []RecipeStepConfig{
					{StepName: "Work", EquipmentType: "Mach", Duration: 2.0},
				},
			},
		},
		Orders: []OrderConfig{
			{ID: "1", ProductID: "X", Quantity: 100, DueDate: 10, Priority: prioFirst},
			{ID: "2", ProductID: "X", Quantity: 100, DueDate: 10, Priority: prioSecond},
		},
		HoursPerDay:        24,
		SimulationTimeDays: 30,
	}
}

// runBatches submits batches in the given order at time 0 and runs the
// simulation to the plant horizon.
func runBatches(plant *Plant, batches []*Batch) *Simulator {
	for i, batch := range batches {
		batch.ID = batchID(i, batch.Order.ID, batch.Product.ID, batch.SeqNum)
	}
	s := NewSimulator(plant)
	s.Submit(batches)
	s.Run()
	return s
}
