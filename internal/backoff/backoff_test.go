package backoff

import (
	"testing"
	"time"
)

func TestScheduleGrowth(t *testing.T) {
	s := New(time.Second, 8*time.Second, 2)

	if got := s.Next(); got != time.Second {
		t.Fatalf("expected base interval, got %v", got)
	}

	s.Failure()
	if got := s.Next(); got != 2*time.Second {
		t.Fatalf("expected doubled interval, got %v", got)
	}

	s.Failure()
	s.Failure()
	if got := s.Next(); got != 8*time.Second {
		t.Fatalf("expected capped interval, got %v", got)
	}

	s.Failure()
	if got := s.Next(); got != 8*time.Second {
		t.Fatalf("cap must hold under further failures, got %v", got)
	}
}

func TestScheduleReset(t *testing.T) {
	s := New(time.Second, time.Minute, 2)

	s.Failure()
	s.Failure()
	s.Reset()

	if got := s.Next(); got != time.Second {
		t.Fatalf("expected base interval after reset, got %v", got)
	}
	if s.Failures() != 0 {
		t.Fatalf("expected zero failures after reset, got %d", s.Failures())
	}
}

func TestScheduleNoCap(t *testing.T) {
	s := New(time.Second, 0, 2)

	for i := 0; i < 6; i++ {
		s.Failure()
	}
	if got := s.Next(); got != 64*time.Second {
		t.Fatalf("expected unbounded growth, got %v", got)
	}
}

func TestScheduleFactorFloor(t *testing.T) {
	s := New(time.Second, time.Minute, 0.5)

	s.Failure()
	if got := s.Next(); got != time.Second {
		t.Fatalf("factor below 1 must not shrink the interval, got %v", got)
	}
}
