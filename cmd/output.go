// Terminal rendering of the plant, the comparison summary, and JSON
// persistence of the results document.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	sim "github.com/JoelDJ2002/plantbatchscheduler/sim"
)

// printPlant displays the plant configuration before a comparison run.
func printPlant(plant *sim.Plant) {
	fmt.Println("EQUIPMENT:")
	for _, eq := range plant.Equipment {
		fmt.Printf("  %s (%s, %g)\n", eq.ID, eq.Type, eq.Capacity)
	}

	fmt.Println("\nPRODUCTS:")
	for i := range plant.Products {
		product := &plant.Products[i]
		fmt.Printf("  %s (%skg, %gh)\n", product.Name, product.BatchSize, product.TotalProcessingTime())
		for _, step := range product.Recipe {
			fmt.Printf("    -> %s [%s, %gh]\n", step.Name, step.EquipmentType, step.Duration)
		}
	}

	fmt.Println("\nORDERS:")
	for _, order := range plant.Orders {
		fmt.Printf("  Order-%s (%s, %skg, due=%gd, prio=%d)\n",
			order.ID, order.ProductID, order.Quantity, order.DueDate, order.Priority)
	}
	fmt.Printf("  TOTAL DEMAND: %s kg\n", plant.TotalDemand())

	fmt.Println("\nCHANGEOVER TIMES (hours):")
	header := "     "
	for i := range plant.Products {
		header += fmt.Sprintf("%6s", plant.Products[i].ID)
	}
	fmt.Println(header)
	for i := range plant.Products {
		row := fmt.Sprintf("  %-3s", plant.Products[i].ID)
		for j := range plant.Products {
			row += fmt.Sprintf("%6.1f", plant.Changeovers.Time(plant.Products[i].ID, plant.Products[j].ID))
		}
		fmt.Println(row)
	}
}

// printComparison displays the per-algorithm summary table, marking the
// lowest-tardiness run.
func printComparison(runs []*sim.Metrics, numOrders int) {
	best := sim.BestRun(runs)
	fmt.Println("\nCOMPARISON SUMMARY")
	fmt.Printf("%-16s %-14s %-14s %s\n", "Algorithm", "Makespan", "Tardiness", "Late Orders")
	for _, run := range runs {
		marker := ""
		if run.TotalTardiness == best.TotalTardiness {
			marker = "  * BEST"
		}
		fmt.Printf("%-16s %6.2f days  %6.2f days  %2d / %d%s\n",
			run.Algorithm, run.Makespan, run.TotalTardiness, run.NumLateOrders, numOrders, marker)
	}
}

// printBottlenecks displays the cross-run bottleneck analysis.
func printBottlenecks(b sim.BottleneckSummary) {
	fmt.Println("\nBOTTLENECK ANALYSIS")
	if b.Equipment == "" {
		fmt.Println("  No utilized equipment in the best run.")
		return
	}
	fmt.Printf("  Equipment: %s (%.0f%% utilized)\n", b.Equipment, b.Utilization*100)
	fmt.Printf("  Constraining orders: %v\n", b.ConstrainingOrders)
}

// writeResults persists the full results document as indented JSON.
func writeResults(results *sim.SimulationResults, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
