package compiler

import (
	"github.com/frostlab/awgseq"
)

// resolvedTrigger is the outcome of the trigger/alignment lookup: the
// instruction lines emitted before and after the per-iteration wait, and
// the fixed latency compensation subtracted from that wait. It is a pure
// function of (trigger mode, target, latency adjustment); there is no
// state machine beyond this single-level lookup.
type resolvedTrigger struct {
	Before        []string
	After         []string
	LatencyCycles int
}

// fixedLatencyCycles compensates the trigger distribution delay of each
// hardware family. Only digital trigger reception on the HDAWG family has a
// measurable offset; ZSync distribution is compensated in hardware.
func fixedLatencyCycles(target awgseq.Target, mode awgseq.TriggerMode) int {
	if target == awgseq.TargetHDAWG &&
		(mode == awgseq.TriggerReceive || mode == awgseq.TriggerSendAndReceive) {
		return 27
	}
	return 0
}

func resolveTrigger(mode awgseq.TriggerMode, target awgseq.Target, latencyAdjustment int) resolvedTrigger {
	uhf := target == awgseq.TargetUHFQA
	r := resolvedTrigger{
		LatencyCycles: fixedLatencyCycles(target, mode) + latencyAdjustment,
	}
	switch mode {
	case awgseq.TriggerSend:
		r.Before = []string{setTrigger(1)}
		r.After = []string{setTrigger(0)}
	case awgseq.TriggerReceive:
		r.Before = []string{waitDigTrigger(1, uhf)}
	case awgseq.TriggerSendAndReceive:
		r.Before = []string{setTrigger(1), waitDigTrigger(1, uhf)}
		r.After = []string{setTrigger(0)}
	case awgseq.TriggerZSync:
		r.Before = []string{waitZSyncTrigger()}
	}
	return r
}

// timingState holds the waits derived from the base parameters. It is
// recomputed from the spec on every generation; it is never stored across
// calls.
type timingState struct {
	WaitCycles  int // per-iteration budget before playback, pre-alignment
	WaitSamples int
	DeadCycles  int // settling window after playback
	DeadSamples int
	Trigger     resolvedTrigger
}

// deriveTiming recomputes the timing state. For triggered modes the dead
// time is carved out of the period and the fixed latency compensation is
// subtracted from the remaining wait; without a trigger the whole period is
// waited out and no dead time applies.
func deriveTiming(spec *awgseq.SequenceSpec) (timingState, error) {
	base := spec.Base
	t := timingState{
		Trigger: resolveTrigger(base.TriggerMode, base.Target, base.LatencyAdjustment),
	}
	if base.TriggerMode == awgseq.TriggerNone {
		t.WaitCycles = awgseq.TimeToCycles(base.Period, base.ClockRate)
		t.WaitSamples = awgseq.TimeToSamples(base.Period, base.ClockRate)
	} else {
		if base.DeadTime > base.Period {
			return t, &awgseq.TimingError{Reason: "dead_time exceeds period"}
		}
		active := base.Period - base.DeadTime
		t.WaitCycles = awgseq.TimeToCycles(active, base.ClockRate) - t.Trigger.LatencyCycles
		t.WaitSamples = awgseq.TimeToSamples(active, base.ClockRate) -
			t.Trigger.LatencyCycles*awgseq.SamplesPerCycle
		t.DeadCycles = awgseq.TimeToCycles(base.DeadTime, base.ClockRate)
		t.DeadSamples = awgseq.TimeToSamples(base.DeadTime, base.ClockRate)
	}
	// The trigger delay postpones playback relative to the trigger edge.
	t.WaitCycles += awgseq.TimeToCycles(base.TriggerDelay, base.ClockRate)
	t.WaitSamples += awgseq.TimeToSamples(base.TriggerDelay, base.ClockRate)
	if t.WaitCycles < 0 {
		return t, &awgseq.TimingError{Reason: "per-iteration wait is negative; period too short for the latency compensation"}
	}
	return t, nil
}

// iterWaits applies the alignment rule to one waveform: with
// EndWithTrigger the waveform length is subtracted from the pre-wait and
// the per-waveform delay added to it; with StartWithTrigger both come out
// of the post-wait instead.
func iterWaits(t timingState, alignment awgseq.Alignment, waveCycles, delayCycles int) (pre, post int, err error) {
	switch alignment {
	case awgseq.EndWithTrigger:
		pre = t.WaitCycles - waveCycles + delayCycles
		post = t.DeadCycles
	case awgseq.StartWithTrigger:
		pre = t.WaitCycles
		post = t.DeadCycles - waveCycles - delayCycles
	}
	if pre < 0 {
		return 0, 0, &awgseq.TimingError{Reason: "pre-playback wait is negative; waveform longer than the period allows"}
	}
	if post < 0 {
		return 0, 0, &awgseq.TimingError{Reason: "post-playback wait is negative; waveform longer than the dead time allows"}
	}
	return pre, post, nil
}
