package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (simulation hours) and an Execute method that
// advances simulation state when invoked. Seq is assigned by the simulator
// at scheduling time and breaks ties at equal timestamps in FIFO order.
type Event interface {
	Timestamp() float64
	Seq() int64
	Execute(*Simulator)
}

// ResumeEvent re-enters a suspended batch process at its stored phase.
// Scheduled for timed waits (start delays, changeover holds, step holds).
type ResumeEvent struct {
	time float64
	seq  int64
	proc *BatchProcess
}

// Timestamp returns the scheduled time of the ResumeEvent.
func (e *ResumeEvent) Timestamp() float64 { return e.time }

// Seq returns the submission sequence number of the ResumeEvent.
func (e *ResumeEvent) Seq() int64 { return e.seq }

// Execute resumes the suspended batch process.
func (e *ResumeEvent) Execute(sim *Simulator) {
	logrus.Debugf("[%7.2fh] resume %s (phase %d, step %d)",
		e.time, e.proc.Batch.ID, e.proc.phase, e.proc.stepIdx)
	e.proc.resume(sim)
}

// GrantEvent drains a resource pool: while free units remain, the best
// waiter by (priority desc, arrival asc) is admitted and resumed. Scheduled
// whenever a request or release may have made admission possible, after all
// same-timestamp activations, so every request made at one instant competes
// before any is admitted.
type GrantEvent struct {
	time float64
	seq  int64
	pool *ResourcePool
}

// Timestamp returns the scheduled time of the GrantEvent.
func (e *GrantEvent) Timestamp() float64 { return e.time }

// Seq returns the submission sequence number of the GrantEvent.
func (e *GrantEvent) Seq() int64 { return e.seq }

// Execute admits waiters into the pool while capacity remains.
func (e *GrantEvent) Execute(sim *Simulator) {
	logrus.Debugf("[%7.2fh] grant %s (%d/%d in use, %d waiting)",
		e.time, e.pool.EquipmentType(), e.pool.InUse(), e.pool.Capacity(), e.pool.QueueLen())
	e.pool.grant(sim)
}
