// internal/scheduler/scheduler_test.go
package scheduler

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerFiresJob(t *testing.T) {
	var fires atomic.Int32
	sched := New(testLogger(), Job{
		Name:     "every-second",
		Schedule: "* * * * * *",
		Run:      func() { fires.Add(1) },
	})

	if err := sched.Start(); err != nil {
		t.Fatal(err)
	}
	defer sched.Stop()

	// Wait up to 2.5 seconds for at least one fire
	deadline := time.After(2500 * time.Millisecond)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			t.Fatalf("job did not fire within 2.5s, fires=%d", fires.Load())
		case <-ticker.C:
			if fires.Load() > 0 {
				return
			}
		}
	}
}

func TestSchedulerSkipsEmptySchedule(t *testing.T) {
	var fires atomic.Int32
	sched := New(testLogger(), Job{
		Name:     "unscheduled",
		Schedule: "",
		Run:      func() { fires.Add(1) },
	})

	if err := sched.Start(); err != nil {
		t.Fatal(err)
	}
	defer sched.Stop()

	time.Sleep(1500 * time.Millisecond)

	if n := fires.Load(); n != 0 {
		t.Errorf("expected 0 fires for job with no schedule, got %d", n)
	}
}

func TestSchedulerInvalidScheduleSkipped(t *testing.T) {
	var fires atomic.Int32
	sched := New(testLogger(), Job{
		Name:     "broken",
		Schedule: "not a cron expression",
		Run:      func() { fires.Add(1) },
	})

	// Invalid schedules are logged and skipped, never fatal.
	if err := sched.Start(); err != nil {
		t.Fatal(err)
	}
	sched.Stop()

	if n := fires.Load(); n != 0 {
		t.Errorf("expected 0 fires for invalid schedule, got %d", n)
	}
}
