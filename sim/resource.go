// Models one equipment type as a counting semaphore with priority admission:
// N identical units, a wait queue ordered by (priority desc, arrival asc),
// and a time-weighted occupancy integral for utilization reporting.

package sim

import (
	"container/heap"
	"fmt"
)

// waiter is one suspended batch process queued for a unit of equipment.
type waiter struct {
	proc     *BatchProcess
	priority int   // order priority, higher served first
	seq      int64 // arrival sequence, earlier served first among equals
}

// waiterQueue implements heap.Interface ordered by priority descending,
// then arrival sequence ascending. The heap root is the next waiter to admit.
type waiterQueue []*waiter

func (wq waiterQueue) Len() int { return len(wq) }
func (wq waiterQueue) Less(i, j int) bool {
	if wq[i].priority != wq[j].priority {
		return wq[i].priority > wq[j].priority
	}
	return wq[i].seq < wq[j].seq
}
func (wq waiterQueue) Swap(i, j int) { wq[i], wq[j] = wq[j], wq[i] }

func (wq *waiterQueue) Push(x any) {
	*wq = append(*wq, x.(*waiter))
}

func (wq *waiterQueue) Pop() any {
	old := *wq
	n := len(old)
	item := old[n-1]
	*wq = old[0 : n-1]
	return item
}

// ResourcePool is the contention point for one equipment type. Capacity is
// the number of equipment units sharing the type. Urgent orders jump the
// wait queue but never preempt work already started.
type ResourcePool struct {
	equipmentType string
	capacity      int
	inUse         int
	waiters       waiterQueue
	grantPending  bool

	// time-weighted occupancy bookkeeping
	busyIntegral float64 // integral of inUse over time, in unit-hours
	lastChange   float64 // clock value of the last occupancy change
}

// NewResourcePool creates a pool for an equipment type with the given number
// of identical units.
func NewResourcePool(equipmentType string, capacity int) *ResourcePool {
	if capacity <= 0 {
		panic(fmt.Sprintf("resource pool %q: capacity must be positive, got %d", equipmentType, capacity))
	}
	return &ResourcePool{
		equipmentType: equipmentType,
		capacity:      capacity,
		waiters:       make(waiterQueue, 0),
	}
}

// EquipmentType returns the equipment type this pool models.
func (p *ResourcePool) EquipmentType() string { return p.equipmentType }

// Capacity returns the total number of units in the pool.
func (p *ResourcePool) Capacity() int { return p.capacity }

// InUse returns the number of units currently held.
func (p *ResourcePool) InUse() int { return p.inUse }

// QueueLen returns the number of processes waiting for a unit.
func (p *ResourcePool) QueueLen() int { return len(p.waiters) }

// Request suspends proc until a unit is available. The caller must return
// immediately after calling Request: admission happens in a later GrantEvent
// at the same timestamp, so all requests made at one instant compete by
// (priority desc, arrival asc) before any is admitted.
func (p *ResourcePool) Request(sim *Simulator, proc *BatchProcess, priority int) {
	heap.Push(&p.waiters, &waiter{proc: proc, priority: priority, seq: sim.nextSeq()})
	if p.inUse < p.capacity {
		p.scheduleGrant(sim)
	}
}

// Release frees one unit and offers it to the best queued waiter, if any.
func (p *ResourcePool) Release(sim *Simulator) {
	if p.inUse <= 0 {
		panic(fmt.Sprintf("resource pool %q: release with no units in use", p.equipmentType))
	}
	p.accumulate(sim.Clock)
	p.inUse--
	if len(p.waiters) > 0 {
		p.scheduleGrant(sim)
	}
}

// scheduleGrant schedules a GrantEvent at the current clock unless one is
// already pending for this pool.
func (p *ResourcePool) scheduleGrant(sim *Simulator) {
	if p.grantPending {
		return
	}
	p.grantPending = true
	sim.Schedule(&GrantEvent{time: sim.Clock, seq: sim.nextSeq(), pool: p})
}

// grant admits waiters while free units remain, resuming each admitted
// process in admission order.
func (p *ResourcePool) grant(sim *Simulator) {
	p.grantPending = false
	for p.inUse < p.capacity && len(p.waiters) > 0 {
		w := heap.Pop(&p.waiters).(*waiter)
		p.accumulate(sim.Clock)
		p.inUse++
		w.proc.resume(sim)
	}
}

// accumulate folds the occupancy since the last change into the busy
// integral. Must be called before every inUse mutation.
func (p *ResourcePool) accumulate(now float64) {
	p.busyIntegral += float64(p.inUse) * (now - p.lastChange)
	p.lastChange = now
}

// finalize closes the occupancy integral at the end of the run.
func (p *ResourcePool) finalize(now float64) {
	p.accumulate(now)
}

// Utilization returns the time-weighted mean fraction of capacity in use
// over the elapsed simulation time, in [0, 1]. Only meaningful for
// elapsed > 0.
func (p *ResourcePool) Utilization(elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return p.busyIntegral / (float64(p.capacity) * elapsed)
}
