package queue

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPushDeduplicates(t *testing.T) {
	q := NewWorkQueue[int]()
	if !q.Push(1) || !q.Push(2) {
		t.Fatal("first pushes should be accepted")
	}
	if q.Push(1) {
		t.Fatal("duplicate push should be rejected")
	}
	if q.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", q.Len())
	}
	v, ok := q.Pop()
	if !ok || v != 1 {
		t.Fatalf("expected 1, got %d %v", v, ok)
	}
	if !q.Push(1) {
		t.Fatal("value should be accepted again after it was popped")
	}
	if diff := cmp.Diff([]int{2, 1}, q.Snapshot()); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestPopEmpty(t *testing.T) {
	q := NewWorkQueue[string]()
	if _, ok := q.Pop(); ok {
		t.Fatal("pop on empty queue should fail")
	}
}

func TestFIFOAcrossCompaction(t *testing.T) {
	q := NewWorkQueue[int]()
	for i := 0; i < 500; i++ {
		q.Push(i)
	}
	for i := 0; i < 300; i++ {
		if v, _ := q.Pop(); v != i {
			t.Fatalf("expected %d, got %d", i, v)
		}
	}
	q.PushAll(1000, 1001)
	for i := 300; i < 500; i++ {
		if v, _ := q.Pop(); v != i {
			t.Fatalf("expected %d, got %d", i, v)
		}
	}
	if diff := cmp.Diff([]int{1000, 1001}, q.Snapshot()); diff != "" {
		t.Fatalf("unexpected tail (-want +got):\n%s", diff)
	}
}

func TestRemoveIf(t *testing.T) {
	q := NewWorkQueue[int]()
	q.PushAll(1, 2, 3, 4, 5, 6)
	q.Pop()
	if n := q.RemoveIf(func(v int) bool { return v%2 == 0 }); n != 3 {
		t.Fatalf("expected 3 removals, got %d", n)
	}
	if diff := cmp.Diff([]int{3, 5}, q.Snapshot()); diff != "" {
		t.Fatalf("unexpected contents (-want +got):\n%s", diff)
	}
	if q.Contains(4) {
		t.Fatal("removed value still reported as queued")
	}
	if !q.Push(4) {
		t.Fatal("removed value should be accepted again")
	}
}

func TestSortStableBy(t *testing.T) {
	type item struct {
		name string
		dist int64
	}
	q := NewWorkQueue[item]()
	q.PushAll(item{"far", 9}, item{"a", 1}, item{"mid", 4}, item{"b", 1})
	q.SortStableBy(func(i item) int64 { return i.dist })
	var names []string
	for _, i := range q.Snapshot() {
		names = append(names, i.name)
	}
	if diff := cmp.Diff([]string{"a", "b", "mid", "far"}, names); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	q := NewWorkQueue[int]()
	q.PushAll(1, 2, 3)
	q.Clear()
	if q.Len() != 0 || q.Contains(1) {
		t.Fatal("queue should be empty after Clear")
	}
}
