// Defines the Batch record and the BatchProcess state machine that executes
// one batch's recipe against the resource pools and the changeover tracker.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// BatchState is the lifecycle state of a batch.
type BatchState string

const (
	BatchCreated         BatchState = "created"
	BatchWaitingForStart BatchState = "waiting_for_start"
	BatchProcessing      BatchState = "processing"
	BatchCompleted       BatchState = "completed"
)

// Batch is one discrete production run of a product fulfilling part of an
// order, identified by (order, product, sequence number). There is no failed
// state: a batch that does not finish by the horizon simply stays in its
// last state with no end time.
type Batch struct {
	ID      string
	Order   *Order
	Product *Product
	SeqNum  int // batch number within its order, starting at 0

	StartTime float64 // valid once State is processing or completed
	EndTime   float64 // valid only when State is completed
	State     BatchState
}

// Completed reports whether the batch finished its final recipe step.
func (b *Batch) Completed() bool {
	return b.State == BatchCompleted
}

// batchID formats a batch identifier from its position in the submitted
// schedule, its order, product and sequence number.
func batchID(idx int, orderID, productID string, seqNum int) string {
	return fmt.Sprintf("B%03d-O%s-P%s-%d", idx, orderID, productID, seqNum)
}

// procPhase is the stored continuation point of a BatchProcess. The process
// suspends only at timed waits and equipment acquisitions; resume re-enters
// the machine at the stored phase.
type procPhase int

const (
	phaseStart     procPhase = iota // initial activation, apply start delay
	phaseBegin                      // start delay elapsed, begin processing
	phaseAcquire                    // request current step's equipment
	phaseGranted                    // equipment held, changeover check
	phaseStepStart                  // changeover done, record + hold step duration
	phaseStepDone                   // step hold elapsed, release and advance
	phaseDone
)

// BatchProcess executes one batch's recipe steps sequentially. It is a
// resumable state machine driven entirely by the event engine: between
// suspension points execution is atomic, and shared state (pools, tracker)
// is touched only while an activation runs.
type BatchProcess struct {
	Batch      *Batch
	startDelay float64 // always 0 under the shipped heuristics

	phase   procPhase
	stepIdx int
}

// NewBatchProcess creates a process for the batch with an optional start
// delay in hours.
func NewBatchProcess(batch *Batch, startDelay float64) *BatchProcess {
	return &BatchProcess{Batch: batch, startDelay: startDelay}
}

// step returns the recipe step the process is currently on.
func (p *BatchProcess) step() RecipeStep {
	return p.Batch.Product.Recipe[p.stepIdx]
}

// resume advances the process until it either suspends (timed wait or
// equipment acquisition) or completes. Only the event engine calls this.
func (p *BatchProcess) resume(sim *Simulator) {
	for {
		switch p.phase {
		case phaseStart:
			if p.startDelay > 0 {
				p.Batch.State = BatchWaitingForStart
				p.phase = phaseBegin
				sim.scheduleResume(p, p.startDelay)
				return
			}
			p.phase = phaseBegin

		case phaseBegin:
			p.Batch.StartTime = sim.Clock
			p.Batch.State = BatchProcessing
			if len(p.Batch.Product.Recipe) == 0 {
				p.complete(sim)
				return
			}
			p.phase = phaseAcquire

		case phaseAcquire:
			step := p.step()
			p.phase = phaseGranted
			sim.Pool(step.EquipmentType).Request(sim, p, p.Batch.Order.Priority)
			return

		case phaseGranted:
			step := p.step()
			// Changeover applies at most once per batch, only before its
			// first step, only when the tracked last product differs.
			if p.stepIdx == 0 {
				last := sim.Tracker.Lookup(step.EquipmentType)
				if last != "" && last != p.Batch.Product.ID {
					if setup := sim.Plant.Changeovers.Time(last, p.Batch.Product.ID); setup > 0 {
						logrus.Debugf("[%7.2fh] %s: changeover %s->%s on %s (%vh)",
							sim.Clock, p.Batch.ID, last, p.Batch.Product.ID, step.EquipmentType, setup)
						p.phase = phaseStepStart
						sim.scheduleResume(p, setup)
						return
					}
				}
			}
			p.phase = phaseStepStart

		case phaseStepStart:
			step := p.step()
			// The tracker is updated after any changeover hold and before the
			// step's processing time, whether or not a changeover occurred.
			if p.stepIdx == 0 {
				sim.Tracker.Record(step.EquipmentType, p.Batch.Product.ID)
			}
			p.phase = phaseStepDone
			sim.scheduleResume(p, step.Duration)
			return

		case phaseStepDone:
			step := p.step()
			sim.Pool(step.EquipmentType).Release(sim)
			p.stepIdx++
			if p.stepIdx < len(p.Batch.Product.Recipe) {
				p.phase = phaseAcquire
				continue
			}
			p.complete(sim)
			return

		case phaseDone:
			return
		}
	}
}

func (p *BatchProcess) complete(sim *Simulator) {
	p.Batch.EndTime = sim.Clock
	p.Batch.State = BatchCompleted
	p.phase = phaseDone
	logrus.Debugf("[%7.2fh] %s completed", sim.Clock, p.Batch.ID)
}
