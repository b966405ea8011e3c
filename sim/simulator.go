// The discrete-event core: a logical clock, a heap-ordered event timeline,
// and the run loop that drives batch processes to the horizon.

package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// EventQueue implements heap.Interface and orders events by timestamp, with
// submission sequence breaking ties so same-time events replay in FIFO order.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].Timestamp() != eq[j].Timestamp() {
		return eq[i].Timestamp() < eq[j].Timestamp()
	}
	return eq[i].Seq() < eq[j].Seq()
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, plant state, and
// the event loop. The clock is a logical value in hours and only moves
// forward; all mutation of shared state (pools, tracker) happens inside
// event execution, one activation at a time.
type Simulator struct {
	Clock   float64
	Horizon float64

	Plant   *Plant
	Tracker *ChangeoverTracker

	EventQueue EventQueue
	Processes  []*BatchProcess

	pools map[string]*ResourcePool
	seq   int64
}

// NewSimulator builds a simulator for the plant: one resource pool per
// equipment type (capacity = unit count of that type), an empty changeover
// tracker, and the run horizon taken from the plant configuration.
func NewSimulator(plant *Plant) *Simulator {
	s := &Simulator{
		Clock:      0,
		Horizon:    plant.Horizon(),
		Plant:      plant,
		Tracker:    NewChangeoverTracker(),
		EventQueue: make(EventQueue, 0),
		pools:      make(map[string]*ResourcePool),
	}
	for _, equipmentType := range plant.EquipmentTypes() {
		s.pools[equipmentType] = NewResourcePool(equipmentType, plant.CapacityOf(equipmentType))
	}
	return s
}

// Pool returns the resource pool for an equipment type. Validation
// guarantees every recipe step references a type with at least one unit.
func (sim *Simulator) Pool(equipmentType string) *ResourcePool {
	return sim.pools[equipmentType]
}

// nextSeq hands out monotonically increasing sequence numbers. Events and
// pool waiters share the counter, so FIFO tie-breaks are global.
func (sim *Simulator) nextSeq() int64 {
	sim.seq++
	return sim.seq
}

// Schedule pushes an event into the simulator's event queue.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.EventQueue, ev)
}

// scheduleResume schedules a resume for proc after delay hours.
func (sim *Simulator) scheduleResume(proc *BatchProcess, delay float64) {
	sim.Schedule(&ResumeEvent{time: sim.Clock + delay, seq: sim.nextSeq(), proc: proc})
}

// Submit creates a batch process per batch, in schedule order, all activated
// at time 0. Insertion order is the FIFO tie-break at time 0, so the
// heuristic ordering decides who reaches contended equipment first among
// equal priorities.
func (sim *Simulator) Submit(batches []*Batch) {
	for _, batch := range batches {
		proc := NewBatchProcess(batch, 0)
		sim.Processes = append(sim.Processes, proc)
		sim.scheduleResume(proc, 0)
	}
}

// Run processes the event timeline from time 0 until no event remains at or
// before the horizon. Events scheduled beyond the horizon are abandoned in
// place: their processes are frozen, not rolled back. The clock is advanced
// to the horizon afterwards so time-weighted metrics always cover the full
// run window.
func (sim *Simulator) Run() {
	for len(sim.EventQueue) > 0 {
		ev := heap.Pop(&sim.EventQueue).(Event)
		if ev.Timestamp() > sim.Horizon {
			break
		}
		// advance the clock
		sim.Clock = ev.Timestamp()
		logrus.Tracef("[%7.2fh] executing %T", sim.Clock, ev)
		ev.Execute(sim)
	}
	sim.Clock = sim.Horizon
	for _, pool := range sim.pools {
		pool.finalize(sim.Clock)
	}
	logrus.Debugf("[%7.2fh] simulation ended", sim.Clock)
}

// Batches returns the submitted batches in submission order.
func (sim *Simulator) Batches() []*Batch {
	batches := make([]*Batch, len(sim.Processes))
	for i, proc := range sim.Processes {
		batches[i] = proc.Batch
	}
	return batches
}
