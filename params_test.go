package awgseq_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/frostlab/awgseq"
)

func TestParseSequenceTypeAliases(t *testing.T) {
	cases := map[string]awgseq.SequenceType{
		"Simple":              awgseq.SequenceSimple,
		"rabi":                awgseq.SequenceRabi,
		"T2":                  awgseq.SequenceT2,
		"t2*":                 awgseq.SequenceT2,
		"Ramsey":              awgseq.SequenceT2,
		"pulsed_spectroscopy": awgseq.SequencePulsedSpectroscopy,
	}
	for input, expected := range cases {
		got, err := awgseq.ParseSequenceType(input)
		if err != nil {
			t.Fatalf("ParseSequenceType(%q): %v", input, err)
		}
		if got != expected {
			t.Errorf("ParseSequenceType(%q): expected %v, got %v", input, expected, got)
		}
	}
	if _, err := awgseq.ParseSequenceType("T3"); err == nil {
		t.Fatal("expected an error for an unknown sequence type")
	}
}

func TestParseTriggerModeAliases(t *testing.T) {
	got, err := awgseq.ParseTriggerMode("External Trigger")
	if err != nil {
		t.Fatalf("ParseTriggerMode: %v", err)
	}
	if got != awgseq.TriggerReceive {
		t.Fatalf("expected the external alias to mean receive, got %v", got)
	}
}

func TestSetRejects(t *testing.T) {
	cases := []struct {
		seqType awgseq.SequenceType
		field   string
		value   interface{}
	}{
		{awgseq.SequenceSimple, "period", -1e-6},
		{awgseq.SequenceSimple, "period", 0.0},
		{awgseq.SequenceSimple, "repetitions", 0},
		{awgseq.SequenceSimple, "trigger_mode", "sideways trigger"},
		{awgseq.SequenceSimple, "dead_time", -1.0},
		{awgseq.SequenceRabi, "pulse_amplitudes", []float64{0.5, 1.5}},
		{awgseq.SequenceRabi, "pulse_width", 0.0},
		{awgseq.SequenceT1, "pulse_amplitude", -2.0},
		{awgseq.SequenceT1, "delay_times", []float64{-1e-6}},
		{awgseq.SequenceCustom, "path", "program.txt"},
		{awgseq.SequenceSimple, "pulse_amplitudes", []float64{0.5}}, // not a Simple field
	}
	for _, c := range cases {
		spec := awgseq.NewSpec(c.seqType)
		_, err := spec.Set(c.field, c.value)
		var validationErr *awgseq.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("%v.Set(%q, %v): expected a ValidationError, got %v", c.seqType, c.field, c.value, err)
		}
	}
}

func TestSetClampsWithWarning(t *testing.T) {
	spec := awgseq.NewSpec(awgseq.SequenceSimple)
	warning, err := spec.Set("buffer_lengths", []int{801, 800, 10})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if warning == nil {
		t.Fatal("expected a clamp warning")
	}
	got, _ := spec.Get("buffer_lengths")
	expected := []int{816, 800, 32}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}

	// already aligned values produce no warning
	warning, err = spec.Set("buffer_lengths", []int{800})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if warning != nil {
		t.Fatalf("expected no warning, got %v", warning)
	}

	warning, err = spec.Set("latency_adjustment", -5)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if warning == nil || warning.Corrected != 0 {
		t.Fatalf("expected the adjustment clipped to 0, got %v", warning)
	}
}

func TestGetReturnsDetachedSlices(t *testing.T) {
	spec := awgseq.NewSpec(awgseq.SequenceSimple)
	if _, err := spec.Set("buffer_lengths", []int{800, 32}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, _ := spec.Get("buffer_lengths")
	got.([]int)[0] = 7
	again, _ := spec.Get("buffer_lengths")
	if !reflect.DeepEqual(again, []int{800, 32}) {
		t.Fatalf("stored value was mutated through Get: %v", again)
	}

	spec.Snapshot()["buffer_lengths"].([]int)[1] = 7
	again, _ = spec.Get("buffer_lengths")
	if !reflect.DeepEqual(again, []int{800, 32}) {
		t.Fatalf("stored value was mutated through Snapshot: %v", again)
	}
}

func TestTargetSelectsClockRate(t *testing.T) {
	spec := awgseq.NewSpec(awgseq.SequenceSimple)
	if _, err := spec.Set("target", "uhfqa"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	rate, _ := spec.Get("clock_rate")
	if rate != 1.8e9 {
		t.Fatalf("expected the UHFQA clock, got %v", rate)
	}
}

func TestSnapshotListsVariantFields(t *testing.T) {
	spec := awgseq.NewSpec(awgseq.SequenceRabi)
	snapshot := spec.Snapshot()
	for _, field := range []string{"period", "trigger_mode", "pulse_amplitudes", "pulse_width"} {
		if _, ok := snapshot[field]; !ok {
			t.Errorf("snapshot is missing %q", field)
		}
	}
	if _, ok := snapshot["buffer_lengths"]; ok {
		t.Error("snapshot lists a field the Rabi variant does not have")
	}
}

func TestApplyQueue(t *testing.T) {
	spec := awgseq.NewSpec(awgseq.SequenceSimple)
	warnings, err := spec.ApplyQueue([]awgseq.WaveformRef{
		{Length: 800},
		{Length: 500, Delay: 1e-6},
	})
	if err != nil {
		t.Fatalf("ApplyQueue: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one granularity warning, got %v", warnings)
	}
	lengths, _ := spec.Get("buffer_lengths")
	if !reflect.DeepEqual(lengths, []int{800, 512}) {
		t.Fatalf("expected aligned lengths, got %v", lengths)
	}
	delays, _ := spec.Get("delay_times")
	if !reflect.DeepEqual(delays, []float64{0, 1e-6}) {
		t.Fatalf("expected delays carried over, got %v", delays)
	}

	rabi := awgseq.NewSpec(awgseq.SequenceRabi)
	var unsupportedErr *awgseq.UnsupportedError
	if _, err := rabi.ApplyQueue(nil); !errors.As(err, &unsupportedErr) {
		t.Fatalf("expected an UnsupportedError, got %v", err)
	}
}
