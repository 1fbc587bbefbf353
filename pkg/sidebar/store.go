package sidebar

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Source provides the sidebar currently in effect.
type Source interface {
	Current() *Sidebar
}

// Store holds the active sidebar and allows it to be replaced atomically.
// Readers always see a complete, validated tree.
type Store struct {
	current atomic.Pointer[Sidebar]
	opts    []ValidateOption
}

// NewStore validates initial and returns a store serving it.
func NewStore(initial *Sidebar, opts ...ValidateOption) (*Store, error) {
	if initial == nil {
		return nil, errors.New("nil sidebar")
	}

	if err := initial.Validate(opts...); err != nil {
		return nil, fmt.Errorf("invalid sidebar: %w", err)
	}

	s := &Store{opts: opts}
	s.current.Store(initial.Clone())

	return s, nil
}

// Current returns the active sidebar. Callers must not modify it.
func (s *Store) Current() *Sidebar {
	return s.current.Load()
}

// Swap validates next and makes it the active sidebar, returning the previous one.
// An invalid sidebar is rejected and the active one is kept.
func (s *Store) Swap(next *Sidebar) (*Sidebar, error) {
	if next == nil {
		return nil, errors.New("nil sidebar")
	}

	if err := next.Validate(s.opts...); err != nil {
		return nil, fmt.Errorf("invalid sidebar: %w", err)
	}

	return s.current.Swap(next.Clone()), nil
}
