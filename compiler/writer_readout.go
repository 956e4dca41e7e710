package compiler

import (
	"fmt"
	"math"

	"github.com/frostlab/awgseq"
)

// writeReadout declares one tone pair per readout frequency, sums them into
// a composite waveform sized to the readout length, and fires the readout
// trigger after each playback.
func writeReadout(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	p := spec.Readout
	n := len(p.ReadoutFrequencies)
	if n == 0 {
		return "", nil, &awgseq.TimingError{Reason: "no readout tones defined; readout_frequencies is empty"}
	}
	amps := p.ReadoutAmplitudes
	if len(amps) == 0 {
		amps = make([]float64, n)
		for i := range amps {
			amps[i] = 1
		}
	} else if len(amps) != n {
		return "", nil, &awgseq.ValidationError{Field: "readout_amplitudes", Value: amps,
			Reason: fmt.Sprintf("must have one entry per frequency, want %d", n)}
	}
	t, err := deriveTiming(spec)
	if err != nil {
		return "", nil, err
	}
	samples := awgseq.AlignSamples(
		awgseq.TimeToSamples(p.ReadoutLength, spec.Base.ClockRate), spec.Base.Target)
	pre, post, err := iterWaits(t, spec.Base.Alignment, samples/awgseq.SamplesPerCycle, 0)
	if err != nil {
		return "", nil, err
	}
	header, err := renderHeader(spec.Type, spec.Base, opts.now)
	if err != nil {
		return "", nil, err
	}
	var e emitter
	e.sb.WriteString(header)
	for i, freq := range p.ReadoutFrequencies {
		// full oscillations within the readout window, half-up
		periods := int(math.Floor(freq*p.ReadoutLength + 0.5))
		e.line(declTonePair(i+1, samples, amps[i], periods))
	}
	e.line(declToneSumPair(n))
	e.open(repeatOpen(spec.Base.Repetitions))
	emitIteration(&e, t.Trigger, spec.Base.ResetPhase, pre,
		[]string{playWaveMainPair(), startQA()}, post)
	e.close()
	return e.String(), nil, nil
}

// writePulsedSpectroscopy plays a flat pulse with oscillator modulation and
// fires the readout trigger after it. The oscillator phase reset is forced
// on regardless of the reset_phase setting, so every pulse starts with the
// same carrier phase.
func writePulsedSpectroscopy(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	p := spec.Pulsed
	t, err := deriveTiming(spec)
	if err != nil {
		return "", nil, err
	}
	samples := awgseq.AlignSamples(
		awgseq.TimeToSamples(p.PulseLength, spec.Base.ClockRate), spec.Base.Target)
	pre, post, err := iterWaits(t, spec.Base.Alignment, samples/awgseq.SamplesPerCycle, 0)
	if err != nil {
		return "", nil, err
	}
	header, err := renderHeader(spec.Type, spec.Base, opts.now)
	if err != nil {
		return "", nil, err
	}
	var e emitter
	e.sb.WriteString(header)
	e.line(declOnesPair(p.PulseAmplitude, samples))
	e.open(repeatOpen(spec.Base.Repetitions))
	emitIteration(&e, t.Trigger, true, pre,
		[]string{playWaveMainPair(), startQA()}, post)
	e.close()
	return e.String(), nil, nil
}

// writeCWSpectroscopy emits no playback at all: the oscillator runs
// continuously and each iteration only resets its phase, idles at sample
// resolution and fires the readout trigger. Phase reset is forced on, as
// for the pulsed variant.
func writeCWSpectroscopy(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	t, err := deriveTiming(spec)
	if err != nil {
		return "", nil, err
	}
	if t.WaitSamples < 0 {
		return "", nil, &awgseq.TimingError{Reason: "per-iteration wait is negative"}
	}
	header, err := renderHeader(spec.Type, spec.Base, opts.now)
	if err != nil {
		return "", nil, err
	}
	var e emitter
	e.sb.WriteString(header)
	e.open(repeatOpen(spec.Base.Repetitions))
	for _, line := range t.Trigger.Before {
		e.line(line)
	}
	e.line(resetOscPhase())
	e.line(playZeroSamples(t.WaitSamples))
	for _, line := range t.Trigger.After {
		e.line(line)
	}
	e.line(startQA())
	if t.DeadCycles > 0 {
		e.line(waitCycles(t.DeadCycles))
	}
	e.close()
	return e.String(), nil, nil
}
