package compiler

import (
	"errors"
	"testing"

	"github.com/frostlab/awgseq"
)

func TestSweepTable(t *testing.T) {
	table, err := sweepTable([]float64{0.0, 0.5, 1.0})
	if err != nil {
		t.Fatalf("sweepTable: %v", err)
	}
	if table.Header.Version != "0.2" {
		t.Errorf("expected schema version 0.2, got %q", table.Header.Version)
	}
	if len(table.Table) != 2 {
		t.Fatalf("expected exactly 2 entries, got %v", len(table.Table))
	}
	base, inc := table.Table[0], table.Table[1]
	if base.Index != 0 || base.Amplitude0.Value != 0 || base.Amplitude0.Increment {
		t.Errorf("entry 0 should carry the start value without increment, got %+v", base)
	}
	if inc.Index != 1 || inc.Amplitude0.Value != 0.5 || !inc.Amplitude0.Increment {
		t.Errorf("entry 1 should carry the constant delta with increment, got %+v", inc)
	}
	if base.Amplitude1.Value != base.Amplitude0.Value || inc.Amplitude1.Value != inc.Amplitude0.Value {
		t.Errorf("both channel amplitudes should agree")
	}
}

func TestSweepTableNonUniform(t *testing.T) {
	var unsupported *awgseq.UnsupportedError
	if _, err := sweepTable([]float64{0.0, 0.5, 0.6}); !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedError for non-uniform spacing, got %v", err)
	}
	if _, err := sweepTable([]float64{1.0}); !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedError for a single-point sweep, got %v", err)
	}
}

func TestSweepTableToleratesRounding(t *testing.T) {
	// Deltas differing only by floating-point noise still count as uniform.
	values := []float64{0.1, 0.2, 0.3, 0.4}
	if _, err := sweepTable(values); err != nil {
		t.Fatalf("sweepTable: %v", err)
	}
}
