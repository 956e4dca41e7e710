package compiler

import (
	"fmt"

	"github.com/frostlab/awgseq"
)

// playbackTurnaround is the fixed instruction overhead, in cycles, between
// two back-to-back playWave instructions. The free-evolution gap of the T2*
// sequence is shortened by this much so the physical gap matches the
// requested delay.
const playbackTurnaround = 3

// gaussSamples sizes the reusable gaussian pulse buffer: the pulse is kept
// out to truncation times its width, then aligned to the target grid.
func gaussSamples(width, truncation, clockRate float64, target awgseq.Target) int {
	return awgseq.AlignSamples(awgseq.TimeToSamples(width*truncation, clockRate), target)
}

// writeRabi sweeps the amplitude of a single gaussian pulse. The hardware
// loop count is the number of amplitudes. With a command table the loop
// dispatches table entries instead of inline-scaled playback: entry 0 sets
// the start amplitude, entry 1 increments it.
func writeRabi(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	p := spec.Rabi
	n := len(p.PulseAmplitudes)
	if n == 0 {
		return "", nil, &awgseq.TimingError{Reason: "no amplitudes defined; pulse_amplitudes is empty"}
	}
	for _, amp := range p.PulseAmplitudes {
		if amp < -1 || amp > 1 {
			return "", nil, &awgseq.ValidationError{Field: "pulse_amplitudes", Value: amp,
				Reason: "must be within [-1, 1]"}
		}
	}
	t, err := deriveTiming(spec)
	if err != nil {
		return "", nil, err
	}
	samples := gaussSamples(p.PulseWidth, p.PulseTruncation, spec.Base.ClockRate, spec.Base.Target)
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
	e.line(declGaussPair(samples))
	if opts.useTable {
		e.line(assignWaveIndexPair(0))
	}
	e.open(repeatOpen(spec.Base.Repetitions))
	for i, amp := range p.PulseAmplitudes {
		e.line(comment(fmt.Sprintf("amplitude %d of %d", i+1, n)))
		play := playWaveScaled(amp)
		if opts.useTable {
			entry := 0
			if i > 0 {
				entry = 1
			}
			play = executeTableEntry(entry)
		}
		emitIteration(&e, t.Trigger, spec.Base.ResetPhase, pre, []string{play}, post)
	}
	e.close()
	return e.String(), nil, nil
}

// writeT1 sweeps the delay between the pulse and the readout window: each
// iteration waits the base wait shortened by the delay, then stretches the
// dead time by the same amount so the period stays constant. The hardware
// loop count is the number of delays.
func writeT1(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	p := spec.T1
	text, err := writeDelaySweep(spec, opts, p.DelayTimes, p.PulseAmplitude, p.PulseWidth, p.PulseTruncation, false)
	return text, nil, err
}

// writeT2 is the T1 layout with two half-amplitude pulses per iteration,
// separated by a free-evolution gap of the swept delay.
func writeT2(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	p := spec.T2
	text, err := writeDelaySweep(spec, opts, p.DelayTimes, p.PulseAmplitude, p.PulseWidth, p.PulseTruncation, true)
	return text, nil, err
}

func writeDelaySweep(spec *awgseq.SequenceSpec, opts writeOptions, delays []float64,
	amplitude, width, truncation float64, ramsey bool) (string, error) {
	n := len(delays)
	if n == 0 {
		return "", &awgseq.TimingError{Reason: "no delays defined; delay_times is empty"}
	}
	if amplitude < -1 || amplitude > 1 {
		return "", &awgseq.ValidationError{Field: "pulse_amplitude", Value: amplitude,
			Reason: "must be within [-1, 1]"}
	}
	t, err := deriveTiming(spec)
	if err != nil {
		return "", err
	}
	samples := gaussSamples(width, truncation, spec.Base.ClockRate, spec.Base.Target)
	pres := make([]int, n)
	deads := make([]int, n)
	gaps := make([]int, n)
	for i, delay := range delays {
		delayCycles := awgseq.TimeToCycles(delay, spec.Base.ClockRate)
		pres[i] = t.WaitCycles - delayCycles
		deads[i] = t.DeadCycles + delayCycles
		if pres[i] < 0 {
			return "", &awgseq.TimingError{
				Reason: fmt.Sprintf("delay %v exceeds the per-iteration wait budget", delay)}
		}
		if ramsey {
			gaps[i] = delayCycles - playbackTurnaround
			if gaps[i] < 0 {
				return "", &awgseq.TimingError{
					Reason: fmt.Sprintf("delay %v is shorter than the playback turnaround", delay)}
			}
		}
	}
	header, err := renderHeader(spec.Type, spec.Base, opts.now)
	if err != nil {
		return "", err
	}
	var e emitter
	e.sb.WriteString(header)
	e.line(declGaussPair(samples))
	e.open(repeatOpen(spec.Base.Repetitions))
	for i := range delays {
		e.line(comment(fmt.Sprintf("delay %d of %d", i+1, n)))
		var plays []string
		if ramsey {
			half := amplitude / 2
			plays = []string{
				playWaveScaled(half),
				waitCycles(gaps[i]),
				playWaveScaled(half),
			}
		} else {
			plays = []string{playWaveScaled(amplitude)}
		}
		emitIteration(&e, t.Trigger, spec.Base.ResetPhase, pres[i], plays, deads[i])
	}
	e.close()
	return e.String(), nil
}
