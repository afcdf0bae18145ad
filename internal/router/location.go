package router

import (
	"slices"
	"sync"
)

// Location abstracts the URL fragment of the current view.
type Location interface {
	Fragment() string
	// SetFragment changes the fragment and notifies listeners when it differs.
	SetFragment(fragment string)
	OnChange(fn func()) (unsubscribe func())
}

type locationListener struct {
	id int
	fn func()
}

// MemoryLocation is an in-process Location.
type MemoryLocation struct {
	mu        sync.Mutex
	fragment  string
	listeners []locationListener
	nextID    int
}

var _ Location = (*MemoryLocation)(nil)

func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{fragment: initial}
}

func (l *MemoryLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fragment
}

func (l *MemoryLocation) SetFragment(fragment string) {
	l.mu.Lock()
	if l.fragment == fragment {
		l.mu.Unlock()
		return
	}
	l.fragment = fragment
	listeners := slices.Clone(l.listeners)
	l.mu.Unlock()

	for _, ls := range listeners {
		ls.fn()
	}
}

func (l *MemoryLocation) OnChange(fn func()) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners = append(l.listeners, locationListener{id: id, fn: fn})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.listeners = slices.DeleteFunc(l.listeners, func(ls locationListener) bool { return ls.id == id })
	}
}
