package compiler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/frostlab/awgseq"
)

func TestResolveTriggerPairs(t *testing.T) {
	cases := []struct {
		mode   awgseq.TriggerMode
		target awgseq.Target
		before []string
		after  []string
	}{
		{awgseq.TriggerNone, awgseq.TargetHDAWG, nil, nil},
		{awgseq.TriggerSend, awgseq.TargetHDAWG,
			[]string{"setTrigger(1);"}, []string{"setTrigger(0);"}},
		{awgseq.TriggerReceive, awgseq.TargetHDAWG,
			[]string{"waitDigTrigger(1);"}, nil},
		{awgseq.TriggerReceive, awgseq.TargetUHFQA,
			[]string{"waitDigTrigger(1, 1);"}, nil},
		{awgseq.TriggerSendAndReceive, awgseq.TargetHDAWG,
			[]string{"setTrigger(1);", "waitDigTrigger(1);"}, []string{"setTrigger(0);"}},
		{awgseq.TriggerZSync, awgseq.TargetHDAWG,
			[]string{"waitZSyncTrigger();"}, nil},
	}
	for _, c := range cases {
		r := resolveTrigger(c.mode, c.target, 0)
		if !reflect.DeepEqual(r.Before, c.before) || !reflect.DeepEqual(r.After, c.after) {
			t.Errorf("resolveTrigger(%v, %v): got %v / %v, expected %v / %v",
				c.mode, c.target, r.Before, r.After, c.before, c.after)
		}
	}
}

func TestResolveTriggerLatency(t *testing.T) {
	if got := resolveTrigger(awgseq.TriggerReceive, awgseq.TargetHDAWG, 0).LatencyCycles; got != 27 {
		t.Fatalf("expected 27 cycles of latency compensation, got %v", got)
	}
	if got := resolveTrigger(awgseq.TriggerReceive, awgseq.TargetHDAWG, 5).LatencyCycles; got != 32 {
		t.Fatalf("expected the user adjustment added, got %v", got)
	}
	if got := resolveTrigger(awgseq.TriggerZSync, awgseq.TargetHDAWG, 0).LatencyCycles; got != 0 {
		t.Fatalf("expected no compensation for zsync, got %v", got)
	}
	if got := resolveTrigger(awgseq.TriggerReceive, awgseq.TargetUHFQA, 0).LatencyCycles; got != 0 {
		t.Fatalf("expected no compensation on the UHFQA, got %v", got)
	}
}

func TestDeriveTiming(t *testing.T) {
	spec := awgseq.NewSpec(awgseq.SequenceSimple)

	// no trigger: the whole period is waited out, no dead time
	timing, err := deriveTiming(spec)
	if err != nil {
		t.Fatalf("deriveTiming: %v", err)
	}
	if timing.WaitCycles != 30000 || timing.DeadCycles != 0 {
		t.Fatalf("expected 30000/0 cycles, got %v/%v", timing.WaitCycles, timing.DeadCycles)
	}

	// triggered: dead time carved out, latency compensation subtracted
	if _, err := spec.Set("trigger_mode", "receive_trigger"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	timing, err = deriveTiming(spec)
	if err != nil {
		t.Fatalf("deriveTiming: %v", err)
	}
	if timing.WaitCycles != 28473 { // cycles(95us) - 27
		t.Fatalf("expected 28473 wait cycles, got %v", timing.WaitCycles)
	}
	if timing.DeadCycles != 1500 { // cycles(5us)
		t.Fatalf("expected 1500 dead cycles, got %v", timing.DeadCycles)
	}

	// dead time exceeding the period is infeasible
	if _, err := spec.Set("dead_time", 200e-6); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, err = deriveTiming(spec)
	var timingErr *awgseq.TimingError
	if !errors.As(err, &timingErr) {
		t.Fatalf("expected a TimingError, got %v", err)
	}
}

func TestIterWaits(t *testing.T) {
	timing := timingState{WaitCycles: 1000, DeadCycles: 200}

	pre, post, err := iterWaits(timing, awgseq.EndWithTrigger, 100, 10)
	if err != nil {
		t.Fatalf("iterWaits: %v", err)
	}
	if pre != 910 || post != 200 {
		t.Fatalf("end alignment: expected 910/200, got %v/%v", pre, post)
	}

	pre, post, err = iterWaits(timing, awgseq.StartWithTrigger, 100, 10)
	if err != nil {
		t.Fatalf("iterWaits: %v", err)
	}
	if pre != 1000 || post != 90 {
		t.Fatalf("start alignment: expected 1000/90, got %v/%v", pre, post)
	}

	var timingErr *awgseq.TimingError
	if _, _, err := iterWaits(timing, awgseq.EndWithTrigger, 2000, 0); !errors.As(err, &timingErr) {
		t.Fatalf("expected a TimingError for an oversized waveform, got %v", err)
	}
	if _, _, err := iterWaits(timing, awgseq.StartWithTrigger, 300, 0); !errors.As(err, &timingErr) {
		t.Fatalf("expected a TimingError for an oversized post wait, got %v", err)
	}
}
