// Aggregates per-order completion, tardiness, makespan, and equipment
// utilization from a finished run.

package sim

import (
	"fmt"
	"math"
	"sort"
)

// OrderCompletion is the per-order entry of a run report. An order appears
// only if every one of its generated batches completed before the horizon;
// downstream consumers must treat a missing entry as "incomplete", not
// silently ignore it.
type OrderCompletion struct {
	OrderID       string  `json:"order_id"`
	CompletionDay float64 `json:"completion_day"`
	DueDay        float64 `json:"due_day"`
	TardinessDays float64 `json:"tardiness_days"`
	NumBatches    int     `json:"num_batches"`
}

// BatchDetail records one completed batch's timeline in days.
type BatchDetail struct {
	BatchID  string
	Product  string
	StartDay float64
	EndDay   float64
	Duration float64
}

// Metrics summarizes a finished run of one scheduling heuristic.
// Day-valued fields are unrounded; rounding happens when the report
// document is produced.
type Metrics struct {
	Algorithm      string
	Makespan       float64 // max completion day among completed orders, 0 if none
	TotalTardiness float64 // days
	NumLateOrders  int

	// SimulatedTime is the elapsed simulation time in hours (the horizon).
	SimulatedTime float64

	// Utilization maps equipment type to time-weighted occupancy fraction
	// in [0, 1].
	Utilization map[string]float64

	// OrderCompletion holds one entry per fully completed order.
	OrderCompletion map[string]OrderCompletion

	// IncompleteOrders lists orders with at least one batch still pending
	// at the horizon, in order-book order.
	IncompleteOrders []string

	BatchDetails []BatchDetail
}

// CollectMetrics computes run metrics from a finished simulator.
func CollectMetrics(s *Simulator, algorithm string) *Metrics {
	m := &Metrics{
		Algorithm:       algorithm,
		SimulatedTime:   s.Clock,
		Utilization:     make(map[string]float64),
		OrderCompletion: make(map[string]OrderCompletion),
	}
	hoursPerDay := s.Plant.HoursPerDay

	batchesByOrder := make(map[string][]*Batch)
	for _, batch := range s.Batches() {
		batchesByOrder[batch.Order.ID] = append(batchesByOrder[batch.Order.ID], batch)
		if batch.Completed() {
			m.BatchDetails = append(m.BatchDetails, BatchDetail{
				BatchID:  batch.ID,
				Product:  batch.Product.ID,
				StartDay: batch.StartTime / hoursPerDay,
				EndDay:   batch.EndTime / hoursPerDay,
				Duration: (batch.EndTime - batch.StartTime) / hoursPerDay,
			})
		}
	}

	for _, order := range s.Plant.Orders {
		batches := batchesByOrder[order.ID]
		if len(batches) == 0 {
			continue
		}
		lastEnd := 0.0
		allDone := true
		for _, batch := range batches {
			if !batch.Completed() {
				allDone = false
				break
			}
			lastEnd = math.Max(lastEnd, batch.EndTime)
		}
		if !allDone {
			m.IncompleteOrders = append(m.IncompleteOrders, order.ID)
			continue
		}

		completionDay := lastEnd / hoursPerDay
		tardiness := math.Max(0, completionDay-order.DueDate)
		m.OrderCompletion[order.ID] = OrderCompletion{
			OrderID:       order.ID,
			CompletionDay: completionDay,
			DueDay:        order.DueDate,
			TardinessDays: tardiness,
			NumBatches:    len(batches),
		}
		m.TotalTardiness += tardiness
		if tardiness > 0 {
			m.NumLateOrders++
		}
		m.Makespan = math.Max(m.Makespan, completionDay)
	}

	if m.SimulatedTime > 0 {
		for _, equipmentType := range s.Plant.EquipmentTypes() {
			m.Utilization[equipmentType] = s.Pool(equipmentType).Utilization(m.SimulatedTime)
		}
	}

	return m
}

// round2 rounds to two decimal places, the precision of day values in the
// report document.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// round1 rounds to one decimal place, the precision of utilization
// percentages in the report document.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// OrderDetails returns the completion entries sorted by order id.
func (m *Metrics) OrderDetails() []OrderCompletion {
	ids := make([]string, 0, len(m.OrderCompletion))
	for id := range m.OrderCompletion {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	details := make([]OrderCompletion, 0, len(ids))
	for _, id := range ids {
		details = append(details, m.OrderCompletion[id])
	}
	return details
}

// Result produces the report document for this run: day values rounded to
// two decimals, utilization formatted as one-decimal percentage strings.
func (m *Metrics) Result() AlgorithmResult {
	result := AlgorithmResult{
		Algorithm:      m.Algorithm,
		Makespan:       round2(m.Makespan),
		TotalTardiness: round2(m.TotalTardiness),
		LateOrders:     m.NumLateOrders,
		Utilization:    make(map[string]string),
	}
	for _, detail := range m.OrderDetails() {
		detail.CompletionDay = round2(detail.CompletionDay)
		detail.TardinessDays = round2(detail.TardinessDays)
		result.OrderDetails = append(result.OrderDetails, detail)
	}
	for equipmentType, fraction := range m.Utilization {
		result.Utilization[equipmentType] = fmt.Sprintf("%.1f%%", fraction*100)
	}
	result.IncompleteOrders = append(result.IncompleteOrders, m.IncompleteOrders...)
	return result
}

// Print displays the run summary in the terminal.
func (m *Metrics) Print(numOrders int) {
	fmt.Printf("Makespan        : %.2f days\n", m.Makespan)
	fmt.Printf("Total Tardiness : %.2f days\n", m.TotalTardiness)
	fmt.Printf("Late Orders     : %d / %d\n", m.NumLateOrders, numOrders)
	fmt.Println("\nOrder Completion Status:")
	for _, detail := range m.OrderDetails() {
		status := "ON TIME"
		if detail.TardinessDays > 0 {
			status = fmt.Sprintf("LATE by %.1fd", detail.TardinessDays)
		}
		fmt.Printf("  Order %s: completed day %.1f (due: %.1f) %s\n",
			detail.OrderID, detail.CompletionDay, detail.DueDay, status)
	}
	for _, orderID := range m.IncompleteOrders {
		fmt.Printf("  Order %s: INCOMPLETE at horizon\n", orderID)
	}
	fmt.Println("\nEquipment Utilization:")
	types := make([]string, 0, len(m.Utilization))
	for equipmentType := range m.Utilization {
		types = append(types, equipmentType)
	}
	sort.Strings(types)
	for _, equipmentType := range types {
		fmt.Printf("  %-10s %5.1f%%\n", equipmentType, m.Utilization[equipmentType]*100)
	}
}
