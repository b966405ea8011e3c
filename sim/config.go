package sim

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlantConfig is the on-disk plant configuration, loadable from a YAML file.
// Zero-valued HoursPerDay / SimulationTimeDays mean "not set" and take the
// defaults (24 and 30) during Build.
type PlantConfig struct {
	Equipment          []EquipmentConfig  `yaml:"equipment" json:"equipment"`
	Products           []ProductConfig    `yaml:"products" json:"products"`
	Changeovers        []ChangeoverConfig `yaml:"changeovers" json:"changeovers"`
	Orders             []OrderConfig      `yaml:"orders" json:"orders"`
	HoursPerDay        float64            `yaml:"hours_per_day" json:"hours_per_day"`
	SimulationTimeDays float64            `yaml:"simulation_time_days" json:"simulation_time_days"`
}

// EquipmentConfig describes one equipment unit.
type EquipmentConfig struct {
	ID       string  `yaml:"id" json:"id"`
	Type     string  `yaml:"type" json:"type"`
	Capacity float64 `yaml:"capacity" json:"capacity"`
}

// RecipeStepConfig describes one recipe step.
type RecipeStepConfig struct {
	StepName      string  `yaml:"step_name" json:"step_name"`
	EquipmentType string  `yaml:"equipment_type" json:"equipment_type"`
	Duration      float64 `yaml:"duration" json:"duration"`
}

// ProductConfig describes one product and its recipe.
type ProductConfig struct {
	ID        string             `yaml:"id" json:"id"`
	Name      string             `yaml:"name" json:"name"`
	BatchSize float64            `yaml:"batch_size" json:"batch_size"`
	Recipe    []RecipeStepConfig `yaml:"recipe" json:"recipe"`
}

// ChangeoverConfig is one entry of the sequence-dependent changeover matrix.
type ChangeoverConfig struct {
	FromProduct string  `yaml:"from_product" json:"from_product"`
	ToProduct   string  `yaml:"to_product" json:"to_product"`
	Time        float64 `yaml:"time" json:"time"`
}

// OrderConfig describes one customer order.
type OrderConfig struct {
	ID        string  `yaml:"id" json:"id"`
	ProductID string  `yaml:"product_id" json:"product_id"`
	Quantity  float64 `yaml:"quantity" json:"quantity"`
	DueDate   float64 `yaml:"due_date" json:"due_date"`
	Priority  int     `yaml:"priority" json:"priority"`
}

// LoadPlantConfig reads and parses a YAML plant configuration file.
func LoadPlantConfig(path string) (*PlantConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plant config: %w", err)
	}
	var cfg PlantConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing plant config: %w", err)
	}
	return &cfg, nil
}

// Build applies defaults, validates the configuration, and constructs the
// immutable Plant a run operates on. Validation is eager: all referential
// and range errors are reported here, before any simulation time advances.
func (cfg *PlantConfig) Build() (*Plant, error) {
	hoursPerDay := cfg.HoursPerDay
	if hoursPerDay == 0 {
		hoursPerDay = 24
	}
	horizonDays := cfg.SimulationTimeDays
	if horizonDays == 0 {
		horizonDays = 30
	}
	if hoursPerDay < 0 {
		return nil, fmt.Errorf("hours_per_day must be positive, got %v", hoursPerDay)
	}
	if horizonDays < 0 {
		return nil, fmt.Errorf("simulation_time_days must be positive, got %v", horizonDays)
	}

	plant := &Plant{
		Changeovers: NewChangeoverMatrix(),
		HoursPerDay: hoursPerDay,
		HorizonDays: horizonDays,
	}

	for _, eq := range cfg.Equipment {
		plant.Equipment = append(plant.Equipment, Equipment{
			ID:       eq.ID,
			Type:     eq.Type,
			Capacity: eq.Capacity,
		})
	}

	for _, pc := range cfg.Products {
		if pc.BatchSize <= 0 {
			return nil, fmt.Errorf("product %q: batch_size must be > 0, got %v", pc.ID, pc.BatchSize)
		}
		product := Product{
			ID:        pc.ID,
			Name:      pc.Name,
			BatchSize: decimal.NewFromFloat(pc.BatchSize),
		}
		for _, step := range pc.Recipe {
			if step.Duration < 0 {
				return nil, fmt.Errorf("product %q step %q: duration must be non-negative, got %v",
					pc.ID, step.StepName, step.Duration)
			}
			if plant.CapacityOf(step.EquipmentType) == 0 {
				return nil, fmt.Errorf("product %q step %q: no equipment of type %q defined",
					pc.ID, step.StepName, step.EquipmentType)
			}
			product.Recipe = append(product.Recipe, RecipeStep{
				Name:          step.StepName,
				EquipmentType: step.EquipmentType,
				Duration:      step.Duration,
			})
		}
		plant.Products = append(plant.Products, product)
	}

	for _, co := range cfg.Changeovers {
		plant.Changeovers.Set(co.FromProduct, co.ToProduct, co.Time)
	}

	for _, oc := range cfg.Orders {
		if plant.Product(oc.ProductID) == nil {
			return nil, fmt.Errorf("order %q references unknown product %q", oc.ID, oc.ProductID)
		}
		if oc.Quantity <= 0 {
			return nil, fmt.Errorf("order %q: quantity must be > 0, got %v", oc.ID, oc.Quantity)
		}
		if oc.DueDate < 0 {
			return nil, fmt.Errorf("order %q: due_date must be non-negative, got %v", oc.ID, oc.DueDate)
		}
		plant.Orders = append(plant.Orders, Order{
			ID:        oc.ID,
			ProductID: oc.ProductID,
			Quantity:  decimal.NewFromFloat(oc.Quantity),
			DueDate:   oc.DueDate,
			Priority:  oc.Priority,
		})
	}

	return plant, nil
}

// DefaultPlantConfig returns the built-in demo plant: two reactors, one
// dryer, one packager, three products, and six orders sized to stress the
// system. Used by the CLI when no config file is given, and by tests.
func DefaultPlantConfig() *PlantConfig {
	return &PlantConfig{
		Equipment: []EquipmentConfig{
			{ID: "R-101", Type: "Reactor", Capacity: 500},
			{ID: "R-102", Type: "Reactor", Capacity: 500},
			{ID: "D-201", Type: "Dryer", Capacity: 200},
			{ID: "P-301", Type: "Packager", Capacity: 100},
		},
		Products: []ProductConfig{
			{
				ID: "A", Name: "Product-A", BatchSize: 100,
				Recipe: []RecipeStepConfig{
					{StepName: "Reaction", EquipmentType: "Reactor", Duration: 4.0},
					{StepName: "Drying", EquipmentType: "Dryer", Duration: 8.0},
					{StepName: "Packaging", EquipmentType: "Packager", Duration: 2.0},
				},
			},
			{
				ID: "B", Name: "Product-B", BatchSize: 80,
				Recipe: []RecipeStepConfig{
					{StepName: "Reaction", EquipmentType: "Reactor", Duration: 6.0},
					{StepName: "Drying", EquipmentType: "Dryer", Duration: 6.0},
					{StepName: "Packaging", EquipmentType: "Packager", Duration: 1.5},
				},
			},
			{
				ID: "C", Name: "Product-C", BatchSize: 120,
				Recipe: []RecipeStepConfig{
					{StepName: "Reaction", EquipmentType: "Reactor", Duration: 3.0},
					{StepName: "Drying", EquipmentType: "Dryer", Duration: 10.0},
					{StepName: "Packaging", EquipmentType: "Packager", Duration: 2.5},
				},
			},
		},
		Changeovers: []ChangeoverConfig{
			{FromProduct: "A", ToProduct: "B", Time: 4.0},
			{FromProduct: "A", ToProduct: "C", Time: 6.0},
			{FromProduct: "B", ToProduct: "A", Time: 5.0},
			{FromProduct: "B", ToProduct: "C", Time: 3.0},
			{FromProduct: "C", ToProduct: "A", Time: 8.0},
			{FromProduct: "C", ToProduct: "B", Time: 4.0},
		},
		Orders: []OrderConfig{
			{ID: "1", ProductID: "A", Quantity: 1000, DueDate: 1, Priority: 2},
			{ID: "2", ProductID: "B", Quantity: 800, DueDate: 4, Priority: 2},
			{ID: "3", ProductID: "C", Quantity: 1200, DueDate: 5, Priority: 4},
			{ID: "4", ProductID: "A", Quantity: 600, DueDate: 3, Priority: 1},
			{ID: "5", ProductID: "B", Quantity: 500, DueDate: 2, Priority: 3},
			{ID: "6", ProductID: "C", Quantity: 400, DueDate: 6, Priority: 2},
		},
		HoursPerDay:        24,
		SimulationTimeDays: 30,
	}
}
