// Package sim provides the core discrete-event simulation engine for the
// batch plant scheduler.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - plant.go: the immutable plant model (equipment, recipes, orders, changeovers)
//   - batch.go: the BatchProcess state machine that walks a batch through its recipe
//   - simulator.go: the event loop, resource pools, and horizon handling
//
// # Architecture
//
// A run has three stages:
//  1. scheduler.go expands orders into batches and orders them with a
//     heuristic (FIFO, EDD, Critical Ratio).
//  2. simulator.go drives every BatchProcess through its recipe steps,
//     resolving contention for equipment via priority-admission resource
//     pools (resource.go) and inserting sequence-dependent setup time via
//     the changeover tracker (changeover.go).
//  3. metrics.go summarizes the finished run; report.go compares runs
//     across heuristics and identifies the bottleneck.
//
// Execution is single-threaded and cooperative: a batch process suspends only
// at a timed wait or an equipment acquisition, and the engine resumes it by
// re-entering its phase machine. Ties at equal simulation time are broken by
// submission order, so identical inputs replay to identical timelines.
package sim
