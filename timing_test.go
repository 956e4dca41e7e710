package awgseq_test

import (
	"testing"

	"github.com/frostlab/awgseq"
)

func TestTimeConversionsTruncate(t *testing.T) {
	const clock = 2.4e9
	if got := awgseq.TimeToSamples(100e-6, clock); got != 240000 {
		t.Fatalf("expected 240000 samples, got %v", got)
	}
	if got := awgseq.TimeToCycles(100e-6, clock); got != 30000 {
		t.Fatalf("expected 30000 cycles, got %v", got)
	}
	// 3.9 samples truncates down, never rounds
	if got := awgseq.TimeToSamples(3.9/clock, clock); got != 3 {
		t.Fatalf("expected 3 samples, got %v", got)
	}
}

func TestRoundUpToMultiple(t *testing.T) {
	cases := []struct{ n, factor, expected int }{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{800, 16, 800},
		{801, 16, 816},
	}
	for _, c := range cases {
		if got := awgseq.RoundUpToMultiple(c.n, c.factor); got != c.expected {
			t.Errorf("RoundUpToMultiple(%v, %v): expected %v, got %v", c.n, c.factor, c.expected, got)
		}
	}
}

func TestRoundToNearestMultipleHalvesRoundUp(t *testing.T) {
	cases := []struct{ n, factor, expected int }{
		{7, 16, 0},
		{8, 16, 16}, // exact half rounds up
		{9, 16, 16},
		{24, 16, 32}, // exact half rounds up
		{23, 16, 16},
	}
	for _, c := range cases {
		if got := awgseq.RoundToNearestMultiple(c.n, c.factor); got != c.expected {
			t.Errorf("RoundToNearestMultiple(%v, %v): expected %v, got %v", c.n, c.factor, c.expected, got)
		}
	}
}

func TestAlignSamples(t *testing.T) {
	cases := []struct {
		n        int
		target   awgseq.Target
		expected int
	}{
		{10, awgseq.TargetHDAWG, 32},  // below minimum
		{33, awgseq.TargetHDAWG, 48},  // next multiple of 16
		{800, awgseq.TargetHDAWG, 800},
		{10, awgseq.TargetUHFQA, 16},  // smaller minimum, granularity 8
		{17, awgseq.TargetUHFQA, 24},
	}
	for _, c := range cases {
		if got := awgseq.AlignSamples(c.n, c.target); got != c.expected {
			t.Errorf("AlignSamples(%v, %v): expected %v, got %v", c.n, c.target, c.expected, got)
		}
	}
}
