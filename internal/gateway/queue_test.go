package gateway

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ai41/adam/internal/types"
)

func drainRun(run *Run) {
	for range run.Fragments {
	}
}

func TestQueueFIFOWithinSession(t *testing.T) {
	q := NewQueue(4)
	q.Start(context.Background())
	defer q.Stop()

	var mu sync.Mutex
	var order []string
	q.SetProcessor(func(run *Run) error {
		mu.Lock()
		order = append(order, run.Message)
		mu.Unlock()
		close(run.Fragments)
		return nil
	})

	for _, msg := range []string{"first", "second", "third"} {
		run := NewRun(context.Background(), "session-a", msg, nil)
		if err := q.Enqueue(run); err != nil {
			t.Fatal(err)
		}
		go drainRun(run)
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(order)
		mu.Unlock()
		if n == 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("runs never completed")
		case <-time.After(10 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("expected FIFO order, got %v", order)
	}
}

func TestQueueConcurrencyLimit(t *testing.T) {
	q := NewQueue(1)
	q.Start(context.Background())
	defer q.Stop()

	var mu sync.Mutex
	concurrent, peak := 0, 0
	q.SetProcessor(func(run *Run) error {
		mu.Lock()
		concurrent++
		if concurrent > peak {
			peak = concurrent
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		concurrent--
		mu.Unlock()
		close(run.Fragments)
		return nil
	})

	sessions := []types.SessionID{"a", "b", "c"}
	for _, id := range sessions {
		run := NewRun(context.Background(), id, "hi", nil)
		if err := q.Enqueue(run); err != nil {
			t.Fatal(err)
		}
		go drainRun(run)
	}

	if !q.WaitIdle(2 * time.Second) {
		t.Fatal("queue never went idle")
	}
	// WaitIdle can observe the gap between runs; give the last one a beat.
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if peak > 1 {
		t.Errorf("expected at most 1 concurrent run, saw %d", peak)
	}
}

func TestQueueFullLane(t *testing.T) {
	q := NewQueue(1)
	q.Start(context.Background())
	defer q.Stop()

	block := make(chan struct{})
	q.SetProcessor(func(run *Run) error {
		<-block
		close(run.Fragments)
		return nil
	})
	defer close(block)

	// Fill the lane buffer plus the one run the processor holds.
	var failed bool
	for i := 0; i < 110; i++ {
		run := NewRun(context.Background(), "stuffed", "hi", nil)
		if err := q.Enqueue(run); err != nil {
			failed = true
			break
		}
		go drainRun(run)
	}
	if !failed {
		t.Error("expected enqueue to fail once the lane is full")
	}
}
