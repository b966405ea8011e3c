// Runs heuristics against a plant and assembles the results document handed
// to downstream collaborators (report persistence, LLM analysis).

package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// AlgorithmResult is the report document for one heuristic run.
type AlgorithmResult struct {
	Algorithm        string            `json:"algorithm"`
	Makespan         float64           `json:"makespan"`
	TotalTardiness   float64           `json:"total_tardiness"`
	LateOrders       int               `json:"late_orders"`
	OrderDetails     []OrderCompletion `json:"order_details"`
	Utilization      map[string]string `json:"utilization"`
	IncompleteOrders []string          `json:"incomplete_orders,omitempty"`
}

// BottleneckSummary is the cross-run bottleneck analysis: within the run
// with minimum total tardiness, the highest-utilization equipment type and
// the up-to-two orders with the highest tardiness.
type BottleneckSummary struct {
	Equipment          string   `json:"equipment"`
	Utilization        float64  `json:"utilization"` // fraction, 0-1
	ConstrainingOrders []string `json:"constraining_orders"`
}

// PlantEcho is the plant configuration echoed back alongside the results for
// traceability, with each product's computed total processing time.
type PlantEcho struct {
	Equipment []EquipmentEcho `json:"equipment"`
	Products  []ProductEcho   `json:"products"`
	Orders    []OrderEcho     `json:"orders"`
}

type EquipmentEcho struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Capacity float64 `json:"capacity"`
}

type ProductEcho struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	BatchSize           float64            `json:"batch_size"`
	TotalProcessingTime float64            `json:"total_processing_time"`
	Recipe              []RecipeStepConfig `json:"recipe"`
}

type OrderEcho struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	DueDate   float64 `json:"due_date"`
	Priority  int     `json:"priority"`
}

// SimulationResults is the complete document produced by a comparison run.
// This is the sole contract with the excluded HTTP/LLM layers.
type SimulationResults struct {
	PlantConfig      PlantEcho         `json:"plant_config"`
	AlgorithmResults []AlgorithmResult `json:"algorithm_results"`
	Bottlenecks      BottleneckSummary `json:"bottlenecks"`
}

// Simulate runs one heuristic against the plant: expand orders to batches,
// apply the policy's ordering, drive everything through a fresh simulator,
// and collect metrics.
func Simulate(plant *Plant, policy OrderingPolicy) *Metrics {
	batches := ExpandOrders(plant)
	policy.Order(batches, plant)
	for i, batch := range batches {
		batch.ID = batchID(i, batch.Order.ID, batch.Product.ID, batch.SeqNum)
	}
	logrus.Infof("%s: generated schedule with %d batches", policy.Name(), len(batches))

	s := NewSimulator(plant)
	s.Submit(batches)
	s.Run()
	return CollectMetrics(s, policy.Name())
}

// Compare runs every policy against the plant and assembles the full results
// document, including the bottleneck analysis and the plant echo.
func Compare(plant *Plant, policies []OrderingPolicy) (*SimulationResults, []*Metrics) {
	var runs []*Metrics
	results := &SimulationResults{PlantConfig: EchoPlant(plant)}
	for _, policy := range policies {
		metrics := Simulate(plant, policy)
		runs = append(runs, metrics)
		results.AlgorithmResults = append(results.AlgorithmResults, metrics.Result())
	}
	results.Bottlenecks = AnalyzeBottlenecks(plant, runs)
	return results, runs
}

// BestRun returns the run with minimum total tardiness, first wins on ties.
func BestRun(runs []*Metrics) *Metrics {
	var best *Metrics
	for _, run := range runs {
		if best == nil || run.TotalTardiness < best.TotalTardiness {
			best = run
		}
	}
	return best
}

// AnalyzeBottlenecks selects the best run by total tardiness and reports its
// highest-utilization equipment type (at the report's one-decimal precision,
// first wins on ties, types in first-appearance order) together with the two
// orders whose tardiness constrains it most.
func AnalyzeBottlenecks(plant *Plant, runs []*Metrics) BottleneckSummary {
	best := BestRun(runs)
	if best == nil {
		return BottleneckSummary{ConstrainingOrders: []string{}}
	}

	maxUtilPct := 0.0
	bottleneck := ""
	for _, equipmentType := range plant.EquipmentTypes() {
		pct := round1(best.Utilization[equipmentType] * 100)
		if pct > maxUtilPct {
			maxUtilPct = pct
			bottleneck = equipmentType
		}
	}

	// Orders ranked by tardiness descending; stable over order-book order.
	type ranked struct {
		id        string
		tardiness float64
	}
	var candidates []ranked
	for _, order := range plant.Orders {
		if entry, ok := best.OrderCompletion[order.ID]; ok {
			candidates = append(candidates, ranked{id: order.ID, tardiness: entry.TardinessDays})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].tardiness > candidates[j].tardiness
	})
	constraining := []string{}
	for i := 0; i < len(candidates) && i < 2; i++ {
		constraining = append(constraining, candidates[i].id)
	}

	return BottleneckSummary{
		Equipment:          bottleneck,
		Utilization:        round2(maxUtilPct / 100),
		ConstrainingOrders: constraining,
	}
}

// EchoPlant builds the traceability echo of the plant configuration.
func EchoPlant(plant *Plant) PlantEcho {
	echo := PlantEcho{}
	for _, eq := range plant.Equipment {
		echo.Equipment = append(echo.Equipment, EquipmentEcho{
			ID:       eq.ID,
			Type:     eq.Type,
			Capacity: eq.Capacity,
		})
	}
	for i := range plant.Products {
		product := &plant.Products[i]
		pe := ProductEcho{
			ID:                  product.ID,
			Name:                product.Name,
			BatchSize:           product.BatchSize.InexactFloat64(),
			TotalProcessingTime: product.TotalProcessingTime(),
		}
		for _, step := range product.Recipe {
			pe.Recipe = append(pe.Recipe, RecipeStepConfig{
				StepName:      step.Name,
				EquipmentType: step.EquipmentType,
				Duration:      step.Duration,
			})
		}
		echo.Products = append(echo.Products, pe)
	}
	for _, order := range plant.Orders {
		echo.Orders = append(echo.Orders, OrderEcho{
			ID:        order.ID,
			ProductID: order.ProductID,
			Quantity:  order.Quantity.InexactFloat64(),
			DueDate:   order.DueDate,
			Priority:  order.Priority,
		})
	}
	return echo
}
