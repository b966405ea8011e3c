// Defines the immutable plant model: equipment, recipes, products, orders,
// and the sequence-dependent changeover matrix.

package sim

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Equipment is a single unit of plant equipment. Capacity is the vessel size
// in liters or kg and is informational only: contention capacity for an
// equipment type is the number of units sharing that type, not this field.
type Equipment struct {
	ID       string
	Type     string
	Capacity float64
}

// RecipeStep is one processing step of a product recipe, bound to an
// equipment type for a fixed duration in hours.
type RecipeStep struct {
	Name          string
	EquipmentType string
	Duration      float64 // hours, non-negative
}

// Product is a producible good with an ordered recipe and a fixed batch size
// in kg per batch.
type Product struct {
	ID        string
	Name      string
	Recipe    []RecipeStep
	BatchSize decimal.Decimal // kg per batch, > 0
}

// TotalProcessingTime returns the sum of all recipe step durations in hours.
func (p *Product) TotalProcessingTime() float64 {
	var total float64
	for _, step := range p.Recipe {
		total += step.Duration
	}
	return total
}

// Order is a customer order for a quantity of one product, due a number of
// days from time zero. Priority is ordinal: higher means more urgent.
type Order struct {
	ID        string
	ProductID string
	Quantity  decimal.Decimal // kg, > 0
	DueDate   float64         // days
	Priority  int
}

// BatchesNeeded returns how many full batches of p are required to fulfill
// the order. A partial remainder still produces one full batch.
func (o *Order) BatchesNeeded(p *Product) int {
	return int(o.Quantity.Div(p.BatchSize).Ceil().IntPart())
}

type changeoverKey struct {
	from string
	to   string
}

// ChangeoverMatrix maps ordered (from, to) product pairs to setup hours.
// A same-product pair is always zero. A missing cross-product pair is also
// zero; this quietly hides gaps in the matrix data, so consulting one is
// logged at debug level rather than rejected.
type ChangeoverMatrix struct {
	times map[changeoverKey]float64
}

// NewChangeoverMatrix builds a matrix from (from, to, hours) entries.
func NewChangeoverMatrix() *ChangeoverMatrix {
	return &ChangeoverMatrix{times: make(map[changeoverKey]float64)}
}

// Set records the setup time in hours for switching from one product to another.
func (m *ChangeoverMatrix) Set(fromProduct, toProduct string, hours float64) {
	m.times[changeoverKey{fromProduct, toProduct}] = hours
}

// Time returns the setup hours for switching from one product to another.
func (m *ChangeoverMatrix) Time(fromProduct, toProduct string) float64 {
	if fromProduct == toProduct {
		return 0
	}
	hours, ok := m.times[changeoverKey{fromProduct, toProduct}]
	if !ok {
		logrus.Debugf("changeover matrix has no entry for %s->%s, assuming 0h", fromProduct, toProduct)
		return 0
	}
	return hours
}

// Plant is the validated, immutable plant configuration a run operates on.
// Construct via PlantConfig.Build; it is passed by reference into the
// scheduler, the simulator, and the metrics collector.
type Plant struct {
	Equipment   []Equipment
	Products    []Product
	Orders      []Order
	Changeovers *ChangeoverMatrix
	HoursPerDay float64
	HorizonDays float64
}

// Horizon returns the run horizon in hours.
func (pl *Plant) Horizon() float64 {
	return pl.HorizonDays * pl.HoursPerDay
}

// Product returns the product with the given id, or nil.
func (pl *Plant) Product(id string) *Product {
	for i := range pl.Products {
		if pl.Products[i].ID == id {
			return &pl.Products[i]
		}
	}
	return nil
}

// Order returns the order with the given id, or nil.
func (pl *Plant) Order(id string) *Order {
	for i := range pl.Orders {
		if pl.Orders[i].ID == id {
			return &pl.Orders[i]
		}
	}
	return nil
}

// EquipmentTypes returns the distinct equipment types in first-appearance
// order. This order is load-bearing: utilization reports and bottleneck
// tie-breaks iterate types in this order.
func (pl *Plant) EquipmentTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, eq := range pl.Equipment {
		if !seen[eq.Type] {
			seen[eq.Type] = true
			types = append(types, eq.Type)
		}
	}
	return types
}

// CapacityOf returns the number of equipment units sharing the given type.
func (pl *Plant) CapacityOf(equipmentType string) int {
	count := 0
	for _, eq := range pl.Equipment {
		if eq.Type == equipmentType {
			count++
		}
	}
	return count
}

// TotalDemand returns the summed quantity in kg across all orders.
func (pl *Plant) TotalDemand() decimal.Decimal {
	total := decimal.Zero
	for _, o := range pl.Orders {
		total = total.Add(o.Quantity)
	}
	return total
}
