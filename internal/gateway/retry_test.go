package gateway

import (
	"errors"
	"testing"
	"time"
)

func TestRetryPolicyExecuteSucceedsAfterFailure(t *testing.T) {
	p := &RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2.0, MaxDelay: 10 * time.Millisecond}

	attempts := 0
	err := p.Execute(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("device or resource busy")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryPolicyPermanentErrorStopsEarly(t *testing.T) {
	p := &RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2.0, MaxDelay: 10 * time.Millisecond}

	attempts := 0
	err := p.Execute(func() error {
		attempts++
		return errors.New("open /data: permission denied")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("permanent error should not retry, got %d attempts", attempts)
	}
}

func TestRetryPolicyExhaustsAttempts(t *testing.T) {
	p := &RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2.0, MaxDelay: 10 * time.Millisecond}

	attempts := 0
	err := p.Execute(func() error {
		attempts++
		return errors.New("transient glitch")
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryPolicyNextDelay(t *testing.T) {
	p := DefaultRetryPolicy()

	if d := p.NextDelay(1); d != p.InitialDelay {
		t.Errorf("attempt 1 delay %v, want %v", d, p.InitialDelay)
	}
	if d := p.NextDelay(2); d != 2*p.InitialDelay {
		t.Errorf("attempt 2 delay %v, want %v", d, 2*p.InitialDelay)
	}
	if d := p.NextDelay(20); d != p.MaxDelay {
		t.Errorf("large attempt should cap at %v, got %v", p.MaxDelay, d)
	}
}
