package sim

import (
	"fmt"
	"sort"
)

// ExpandOrders generates the required batches for every order, in order-book
// order: ceil(quantity / batch_size) batches per order, a partial remainder
// still producing one full batch. Batch IDs are assigned later, from the
// position in the heuristic-ordered schedule.
func ExpandOrders(plant *Plant) []*Batch {
	var batches []*Batch
	for i := range plant.Orders {
		order := &plant.Orders[i]
		product := plant.Product(order.ProductID)
		needed := order.BatchesNeeded(product)
		for seq := 0; seq < needed; seq++ {
			batches = append(batches, &Batch{
				Order:   order,
				Product: product,
				SeqNum:  seq,
				State:   BatchCreated,
			})
		}
	}
	return batches
}

// OrderingPolicy produces the order in which batches are submitted to the
// event engine at time 0. Submission order only decides FIFO tie-breaks;
// actual contention is resolved by resource pool priority admission, so a
// policy interacts with, but does not override, order priority.
// Implementations sort in-place with sort.SliceStable for determinism.
type OrderingPolicy interface {
	Name() string
	Order(batches []*Batch, plant *Plant)
}

// FIFOPolicy sorts batches by order priority (descending), then due date
// (ascending).
type FIFOPolicy struct{}

func (f *FIFOPolicy) Name() string { return "FIFO" }

func (f *FIFOPolicy) Order(batches []*Batch, _ *Plant) {
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].Order.Priority != batches[j].Order.Priority {
			return batches[i].Order.Priority > batches[j].Order.Priority
		}
		return batches[i].Order.DueDate < batches[j].Order.DueDate
	})
}

// EDDPolicy sorts batches by due date only (earliest first), ignoring
// priority.
type EDDPolicy struct{}

func (e *EDDPolicy) Name() string { return "EDD" }

func (e *EDDPolicy) Order(batches []*Batch, _ *Plant) {
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].Order.DueDate < batches[j].Order.DueDate
	})
}

// CriticalRatioPolicy sorts batches by slack per unit of required processing
// time, ascending: the smaller (or more negative) the ratio, the more
// critical the order, the earlier its batches are submitted.
type CriticalRatioPolicy struct{}

func (c *CriticalRatioPolicy) Name() string { return "Critical Ratio" }

func (c *CriticalRatioPolicy) Order(batches []*Batch, plant *Plant) {
	sort.SliceStable(batches, func(i, j int) bool {
		ri := CriticalRatio(batches[i].Order, batches[i].Product, plant.HoursPerDay)
		rj := CriticalRatio(batches[j].Order, batches[j].Product, plant.HoursPerDay)
		return ri < rj
	})
}

// CriticalRatio computes slack / total_time_needed for an order, where
// total_time_needed = (product processing time / hours_per_day) * batches
// and slack = due_date - total_time_needed, all in days. An order needing
// zero processing time gets ratio 999 (effectively lowest urgency) instead
// of dividing by zero.
func CriticalRatio(order *Order, product *Product, hoursPerDay float64) float64 {
	processingDays := product.TotalProcessingTime() / hoursPerDay
	totalTimeNeeded := processingDays * float64(order.BatchesNeeded(product))
	if totalTimeNeeded <= 0 {
		return 999
	}
	slack := order.DueDate - totalTimeNeeded
	return slack / totalTimeNeeded
}

// ValidPolicies is the set of recognized ordering policy names.
// Shared by the CLI flag validation and NewOrderingPolicy.
var ValidPolicies = map[string]bool{"": true, "fifo": true, "edd": true, "cr": true}

// AllPolicies returns the shipped policies in comparison order.
func AllPolicies() []OrderingPolicy {
	return []OrderingPolicy{&FIFOPolicy{}, &EDDPolicy{}, &CriticalRatioPolicy{}}
}

// NewOrderingPolicy creates an OrderingPolicy by name.
// Empty string defaults to FIFO (for CLI flag default compatibility).
// Panics on unrecognized names; callers validate against ValidPolicies first.
func NewOrderingPolicy(name string) OrderingPolicy {
	switch name {
	case "", "fifo":
		return &FIFOPolicy{}
	case "edd":
		return &EDDPolicy{}
	case "cr":
		return &CriticalRatioPolicy{}
	default:
		panic(fmt.Sprintf("unknown ordering policy %q", name))
	}
}
