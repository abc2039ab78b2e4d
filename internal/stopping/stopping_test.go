package stopping

import (
	"math"
	"testing"
)

func TestHypergeomCDFExactValues(t *testing.T) {
	// X ~ Hypergeometric(N=5, K=2, n=2):
	// P(X<=0) = C(3,2)/C(5,2) = 3/10
	// P(X<=1) = 1 - C(2,2)/C(5,2) = 9/10
	if got := hypergeomCDF(0, 5, 2, 2); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("P(X<=0) = %v, want 0.3", got)
	}
	if got := hypergeomCDF(1, 5, 2, 2); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("P(X<=1) = %v, want 0.9", got)
	}
	if got := hypergeomCDF(2, 5, 2, 2); got != 1.0 {
		t.Errorf("P(X<=2) = %v, want 1.0", got)
	}
	// No draws: trivially certain
	if got := hypergeomCDF(0, 10, 3, 0); got != 1.0 {
		t.Errorf("no-draw CDF = %v, want 1.0", got)
	}
}

func TestRecallStopperZeroScreenedContinues(t *testing.T) {
	s := NewRecallStopper(100, 0.95, 0.95)
	if d := s.Observe(0, 0); d != Continue {
		t.Errorf("zero-screened observation must Continue, got %v", d)
	}
}

func TestRecallStopperStopsAfterRelevantExhausted(t *testing.T) {
	// 1000 items, 50 relevant, all found in the first batch. Continued
	// screening with no new finds must eventually reject the null that
	// recall is still below 0.95.
	s := NewRecallStopper(1000, 0.95, 0.95)

	if d := s.Observe(50, 50); d != Continue {
		t.Fatalf("expected Continue after first batch, got %v", d)
	}

	stopped := -1
	for i := 0; i < 9; i++ {
		if s.Observe(100, 0) == Stop {
			stopped = i
			break
		}
	}
	if stopped == -1 {
		t.Fatal("stopper never fired despite all relevant items found")
	}
	// With K=3 hypothetical missing relevant over a 950-item remainder,
	// P(none seen) falls below 0.05 on the 6th zero batch.
	if stopped != 5 {
		t.Errorf("expected stop on zero-batch 5, got %d", stopped)
	}
}

func TestRecallStopperStopIsSticky(t *testing.T) {
	s := NewRecallStopper(1000, 0.95, 0.95)
	s.Observe(50, 50)
	for i := 0; i < 9; i++ {
		if s.Observe(100, 0) == Stop {
			break
		}
	}

	// A late flood of relevant items must not revive the run
	if d := s.Observe(100, 100); d != Stop {
		t.Errorf("Stop must be terminal, got %v", d)
	}
	if d := s.Observe(10, 0); d != Stop {
		t.Errorf("Stop must be terminal, got %v", d)
	}
}

func TestRecallStopperNoRelevantFound(t *testing.T) {
	// With nothing found the null (one relevant item hiding) survives
	// until most of the pool has been screened.
	s := NewRecallStopper(100, 0.95, 0.95)
	if d := s.Observe(10, 0); d != Stop && d != Continue {
		t.Fatalf("unexpected decision %v", d)
	}

	// Screening nearly everything without a find must eventually stop:
	// P(zero seen among 96 of 100 | 1 hiding) = 4/100 < 0.05.
	s2 := NewRecallStopper(100, 0.95, 0.95)
	d := s2.Observe(96, 0)
	if d != Stop {
		t.Errorf("expected Stop after screening 96/100 with none found, got %v", d)
	}
}

func TestConsecutiveStopper(t *testing.T) {
	// N=100, window proportion 0.1 -> window = 11
	s := NewConsecutiveStopper(100, 0.1)

	if d := s.Observe(5, 1); d != Continue {
		t.Fatalf("expected Continue with relevant in batch, got %v", d)
	}
	if d := s.Observe(5, 0); d != Continue {
		t.Fatalf("streak 5 < 11 must Continue, got %v", d)
	}
	if d := s.Observe(6, 0); d != Stop {
		t.Fatalf("streak 11 >= 11 must Stop, got %v", d)
	}
	// Sticky
	if d := s.Observe(5, 3); d != Stop {
		t.Errorf("Stop must be terminal, got %v", d)
	}
}

func TestConsecutiveStopperStreakResets(t *testing.T) {
	s := NewConsecutiveStopper(100, 0.1)
	s.Observe(10, 0)
	s.Observe(10, 1) // reset
	if d := s.Observe(10, 0); d != Continue {
		t.Errorf("streak should have reset, got %v", d)
	}
}

func TestNewUnknownStopper(t *testing.T) {
	if _, err := New("oracle", Params{N: 10, Confidence: 0.9}); err == nil {
		t.Error("expected error for unknown stopper name")
	}
}
