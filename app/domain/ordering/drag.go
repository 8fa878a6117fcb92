package ordering

import (
	"context"
	"errors"
	"sync"
)

type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

var (
	ErrAlreadyDragging = errors.New("a drag is already in progress")
	ErrNotDragging     = errors.New("no drag in progress")
	ErrInvalidDrop     = errors.New("invalid drop target")
)

// DropEvent is delivered on Drop with the recorded source and the target.
type DropEvent struct {
	SourceID        string
	SourcePartition string
	TargetID        string
	TargetPartition string
}

// DragController is the Idle -> Dragging -> Idle machine of one draggable
// collection. It holds no items; Drop hands the event to a reorder function.
type DragController struct {
	mu              sync.Mutex
	state           DragState
	sourceID        string
	sourcePartition string
}

func NewDragController() *DragController {
	return &DragController{}
}

func (d *DragController) State() DragState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Source returns the dragged item while in Dragging.
func (d *DragController) Source() (id string, partition string, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sourceID, d.sourcePartition, d.state == Dragging
}

func (d *DragController) Start(sourceID string, sourcePartition string) error {
	if sourceID == "" {
		return ErrInvalidDrop
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Dragging {
		return ErrAlreadyDragging
	}
	d.state = Dragging
	d.sourceID = sourceID
	d.sourcePartition = sourcePartition
	return nil
}

// Drop runs reorder with the recorded source and returns to Idle whatever
// the outcome.
func (d *DragController) Drop(ctx context.Context, targetID string, targetPartition string, reorder func(context.Context, DropEvent) error) error {
	d.mu.Lock()
	if d.state != Dragging {
		d.mu.Unlock()
		return ErrNotDragging
	}
	event := DropEvent{
		SourceID:        d.sourceID,
		SourcePartition: d.sourcePartition,
		TargetID:        targetID,
		TargetPartition: targetPartition,
	}
	d.mu.Unlock()
	defer d.end()

	return reorder(ctx, event)
}

// Cancel aborts a drag. Calling it while Idle is a no-op.
func (d *DragController) Cancel() {
	d.end()
}

func (d *DragController) end() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = Idle
	d.sourceID = ""
	d.sourcePartition = ""
}
