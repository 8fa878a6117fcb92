package presentation

import (
	"errors"
	"math"
	"sync"
)

// SwipeThreshold is the displacement a swipe must exceed on its dominant axis.
const SwipeThreshold = 50.0

var (
	ErrIndexOutOfRange = errors.New("slide index out of range")
	ErrEmptyDeck       = errors.New("deck has no slides")
	ErrUnknownTrigger  = errors.New("unknown close trigger")
)

type CloseTrigger string

const (
	CloseKeyboard    CloseTrigger = "keyboard"
	CloseBackdrop    CloseTrigger = "backdrop"
	CloseCloseButton CloseTrigger = "close_button"
)

// ScrollLocker suspends page scrolling while the fullscreen overlay is open.
type ScrollLocker interface {
	Lock()
	Unlock()
}

type State struct {
	Count           int  `json:"count"`
	ActiveIndex     int  `json:"active_index"`
	FullscreenIndex int  `json:"fullscreen_index"`
	IsFullscreen    bool `json:"is_fullscreen"`
}

// Navigator tracks the inline slide and the independent fullscreen slide
// of one deck.
type Navigator struct {
	mu     sync.Mutex
	state  State
	locker ScrollLocker
}

func NewNavigator(count int, locker ScrollLocker) (*Navigator, error) {
	if count <= 0 {
		return nil, ErrEmptyDeck
	}
	return &Navigator{state: State{Count: count}, locker: locker}, nil
}

func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func clamp(i int, count int) int {
	return max(0, min(i, count-1))
}

func (n *Navigator) Next() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.ActiveIndex = clamp(n.state.ActiveIndex+1, n.state.Count)
	return n.state
}

func (n *Navigator) Previous() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.ActiveIndex = clamp(n.state.ActiveIndex-1, n.state.Count)
	return n.state
}

// Jump selects a slide from the menu.
func (n *Navigator) Jump(i int) (State, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i < 0 || i >= n.state.Count {
		return n.state, ErrIndexOutOfRange
	}
	n.state.ActiveIndex = i
	return n.state, nil
}

func (n *Navigator) FullscreenNext() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.FullscreenIndex = clamp(n.state.FullscreenIndex+1, n.state.Count)
	return n.state
}

func (n *Navigator) FullscreenPrevious() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.FullscreenIndex = clamp(n.state.FullscreenIndex-1, n.state.Count)
	return n.state
}

// Swipe interprets a touch displacement. Only the dominant axis counts:
// horizontal swipes move the inline view, vertical swipes move the
// fullscreen overlay. A swipe toward negative coordinates advances. It
// reports whether navigation happened.
func (n *Navigator) Swipe(dx float64, dy float64) (State, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	fullscreen := n.State().IsFullscreen

	switch {
	case ax > ay && ax > SwipeThreshold && !fullscreen:
		if dx < 0 {
			return n.Next(), true
		}
		return n.Previous(), true
	case ay > ax && ay > SwipeThreshold && fullscreen:
		if dy < 0 {
			return n.FullscreenNext(), true
		}
		return n.FullscreenPrevious(), true
	}
	return n.State(), false
}

// OpenFullscreen shows slide i in the overlay and locks page scrolling.
func (n *Navigator) OpenFullscreen(i int) (State, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i < 0 || i >= n.state.Count {
		return n.state, ErrIndexOutOfRange
	}
	if !n.state.IsFullscreen && n.locker != nil {
		n.locker.Lock()
	}
	n.state.FullscreenIndex = i
	n.state.IsFullscreen = true
	return n.state, nil
}

// Close hides the overlay. Every trigger ends in the same cleanup, which
// unlocks scrolling even when the overlay was not open.
func (n *Navigator) Close(trigger CloseTrigger) (State, error) {
	switch trigger {
	case CloseKeyboard, CloseBackdrop, CloseCloseButton:
	default:
		return n.State(), ErrUnknownTrigger
	}
	return n.closeOverlay(), nil
}

func (n *Navigator) closeOverlay() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.IsFullscreen = false
	if n.locker != nil {
		n.locker.Unlock()
	}
	return n.state
}
