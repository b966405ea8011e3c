package sim

// ChangeoverTracker remembers, per equipment type, the id of the most
// recently started product on that type. It is consulted and updated only
// around the first recipe step of a batch: after the step's equipment is
// acquired and after any changeover hold, but before the step's own
// processing time.
type ChangeoverTracker struct {
	lastProduct map[string]string
}

// NewChangeoverTracker returns an empty tracker (no product recorded yet on
// any equipment type).
func NewChangeoverTracker() *ChangeoverTracker {
	return &ChangeoverTracker{lastProduct: make(map[string]string)}
}

// Lookup returns the last product id recorded for the equipment type, or ""
// if nothing has been processed on that type yet.
func (t *ChangeoverTracker) Lookup(equipmentType string) string {
	return t.lastProduct[equipmentType]
}

// Record overwrites the last product id for the equipment type.
func (t *ChangeoverTracker) Record(equipmentType, productID string) {
	t.lastProduct[equipmentType] = productID
}
