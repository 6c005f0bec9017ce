package queue

import (
	"sync"

	"golang.org/x/exp/slices"
)

// WorkQueue is a FIFO that holds each value at most once. All methods are safe for concurrent use.
type WorkQueue[T comparable] struct {
	mu      sync.Mutex
	items   []T
	head    int
	members map[T]struct{}
}

func NewWorkQueue[T comparable]() *WorkQueue[T] {
	return &WorkQueue[T]{members: make(map[T]struct{})}
}

// Push appends value unless it is already queued. It reports whether the value was added.
func (q *WorkQueue[T]) Push(value T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.push(value)
}

// PushAll pushes the values in order and returns how many were added.
func (q *WorkQueue[T]) PushAll(values ...T) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	added := 0
	for _, v := range values {
		if q.push(v) {
			added++
		}
	}
	return added
}

func (q *WorkQueue[T]) push(value T) bool {
	if _, ok := q.members[value]; ok {
		return false
	}
	q.members[value] = struct{}{}
	q.items = append(q.items, value)
	return true
}

func (q *WorkQueue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	value := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	delete(q.members, value)
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 > len(q.items) {
		q.compact()
	}
	return value, true
}

func (q *WorkQueue[T]) compact() {
	n := copy(q.items, q.items[q.head:])
	var zero T
	for i := n; i < len(q.items); i++ {
		q.items[i] = zero
	}
	q.items = q.items[:n]
	q.head = 0
}

func (q *WorkQueue[T]) Contains(value T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.members[value]
	return ok
}

func (q *WorkQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// RemoveIf drops every queued value the predicate accepts, keeping the order of the rest.
func (q *WorkQueue[T]) RemoveIf(drop func(T) bool) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.compact()
	kept := q.items[:0]
	removed := 0
	for _, v := range q.items {
		if drop(v) {
			delete(q.members, v)
			removed++
			continue
		}
		kept = append(kept, v)
	}
	var zero T
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = zero
	}
	q.items = kept
	return removed
}

// SortStableBy orders the queue by ascending key. Values with equal keys keep their order.
func (q *WorkQueue[T]) SortStableBy(key func(T) int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.compact()
	slices.SortStableFunc(q.items, func(a, b T) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
}

// Snapshot copies the queued values in pop order.
func (q *WorkQueue[T]) Snapshot() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items[q.head:])
}

func (q *WorkQueue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
	q.head = 0
	q.members = make(map[T]struct{})
}
