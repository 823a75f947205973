package tui

import (
	"testing"
	"time"
)

func TestFrameQueue(t *testing.T) {
	q := newFrameQueue()
	if q.Flush() != nil {
		t.Error("Expected nil command from an empty queue")
	}

	var ran []int
	q.PostDelayed(16*time.Millisecond, func() { ran = append(ran, 1) })
	q.PostDelayed(16*time.Millisecond, func() { ran = append(ran, 2) })

	if q.Flush() == nil {
		t.Fatal("Expected a tick command after posting")
	}
	if q.Flush() != nil {
		t.Error("Expected ticks to be handed out once")
	}

	ids := q.Pending()
	if len(ids) != 2 || ids[0] >= ids[1] {
		t.Fatalf("Expected two pending ids in order, got %v", ids)
	}

	q.Run(ids[1])
	q.Run(ids[1])
	q.Run(999)
	q.Run(ids[0])

	if len(ran) != 2 || ran[0] != 2 || ran[1] != 1 {
		t.Errorf("Expected tasks [2 1] to run once each, got %v", ran)
	}
	if len(q.Pending()) != 0 {
		t.Errorf("Expected no pending tasks, got %v", q.Pending())
	}
}
