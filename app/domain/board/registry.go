package board

import (
	"errors"
	"sync"
)

var ErrItemNotFound = errors.New("item not found on board")

// Registry holds one board per scope.
type Registry[T any] struct {
	cfg *Config[T]

	mu     sync.Mutex
	boards map[string]*Board[T]
}

func NewRegistry[T any](cfg Config[T]) *Registry[T] {
	return &Registry[T]{
		cfg:    &cfg,
		boards: make(map[string]*Board[T]),
	}
}

func (r *Registry[T]) Board(scope string) *Board[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.boards[scope]
	if !ok {
		b = newBoard(r.cfg, scope)
		r.boards[scope] = b
	}
	return b
}

// Invalidate marks the scope's board stale after a write that bypassed it.
func (r *Registry[T]) Invalidate(scope string) {
	r.mu.Lock()
	b, ok := r.boards[scope]
	r.mu.Unlock()
	if ok {
		b.Invalidate()
	}
}
