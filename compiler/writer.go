package compiler

import (
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/frostlab/awgseq"
)

// writeOptions carries the per-call generation context into a writer.
type writeOptions struct {
	now      time.Time
	useTable bool
	readFile func(string) ([]byte, error)
}

// A writerFunc renders a full program for one sequence variant. Writers are
// pure: they read the spec, never mutate it, and return either the complete
// text or an error raised before any text was produced. The returned
// warnings report write-time auto-corrections (only the trigger-only
// variant has any).
type writerFunc func(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error)

// The header block stays on fixed, greppable lines: external tooling
// locates and rewrites the sequence-type line when regenerating.
var headerTmpl = template.Must(template.New("header").Funcs(sprig.TxtFuncMap()).Parse(
	`// awgseq sequencer program
// sequence type:       {{.Type}}
// trigger mode:        {{.TriggerMode}}
// alignment:           {{.Alignment}}
// generated at:        {{.Now | date "2006-01-02 15:04:05"}}
//
`))

func renderHeader(seqType awgseq.SequenceType, base awgseq.BaseParams, now time.Time) (string, error) {
	var e emitter
	err := headerTmpl.Execute(&e.sb, struct {
		Type        awgseq.SequenceType
		TriggerMode awgseq.TriggerMode
		Alignment   awgseq.Alignment
		Now         time.Time
	}{seqType, base.TriggerMode, base.Alignment, now})
	if err != nil {
		return "", fmt.Errorf("could not render program header: %w", err)
	}
	return e.String(), nil
}

// emitIteration writes one per-iteration block: trigger lead-in, optional
// phase reset, pre-wait, trigger lead-out, the playback lines, and the
// post-playback wait. A zero post-wait is omitted; the pre-wait is always
// written so every iteration has the same shape.
func emitIteration(e *emitter, trig resolvedTrigger, resetPhase bool, pre int, plays []string, post int) {
	for _, line := range trig.Before {
		e.line(line)
	}
	if resetPhase {
		e.line(resetOscPhase())
	}
	e.line(waitCycles(pre))
	for _, line := range trig.After {
		e.line(line)
	}
	for _, line := range plays {
		e.line(line)
	}
	if len(plays) > 0 {
		e.line(waitWave())
	}
	if post > 0 {
		e.line(waitCycles(post))
	}
}

// writeSimple emits one placeholder buffer pair per queued waveform and
// plays them back to back inside the repeat loop. The hardware loop count
// is the number of queued buffers.
func writeSimple(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	p := spec.Simple
	n := len(p.BufferLengths)
	if n == 0 {
		return "", nil, &awgseq.TimingError{Reason: "no waveforms defined; buffer_lengths is empty"}
	}
	if len(p.DelayTimes) != 0 && len(p.DelayTimes) != n {
		return "", nil, &awgseq.ValidationError{Field: "delay_times", Value: p.DelayTimes,
			Reason: fmt.Sprintf("must have one entry per buffer, want %d", n)}
	}
	// The stored lengths were aligned against the target active when they
	// were set; a later target switch can leave them off the grid, so they
	// are re-aligned here against the active target.
	var warnings []awgseq.Warning
	lengths := make([]int, n)
	realigned := false
	for i, samples := range p.BufferLengths {
		lengths[i] = awgseq.AlignSamples(samples, spec.Base.Target)
		if lengths[i] != samples {
			realigned = true
		}
	}
	if realigned {
		warnings = append(warnings, awgseq.Warning{
			Field:     "buffer_lengths",
			Message:   fmt.Sprintf("rounded up to the %v grid", spec.Base.Target),
			Original:  append([]int(nil), p.BufferLengths...),
			Corrected: lengths,
		})
	}
	t, err := deriveTiming(spec)
	if err != nil {
		return "", nil, err
	}
	pres := make([]int, n)
	posts := make([]int, n)
	for i, samples := range lengths {
		delayCycles := 0
		if len(p.DelayTimes) == n {
			delayCycles = awgseq.TimeToCycles(p.DelayTimes[i], spec.Base.ClockRate)
		}
		pres[i], posts[i], err = iterWaits(t, spec.Base.Alignment, samples/awgseq.SamplesPerCycle, delayCycles)
		if err != nil {
			return "", nil, err
		}
	}
	header, err := renderHeader(spec.Type, spec.Base, opts.now)
	if err != nil {
		return "", nil, err
	}
	var e emitter
	e.sb.WriteString(header)
	for i, samples := range lengths {
		e.line(declPlaceholderPair(i+1, samples))
	}
	e.open(repeatOpen(spec.Base.Repetitions))
	for i := range lengths {
		e.line(comment(fmt.Sprintf("waveform %d of %d", i+1, n)))
		emitIteration(&e, t.Trigger, spec.Base.ResetPhase, pres[i],
			[]string{playWavePair(i + 1)}, posts[i])
	}
	e.close()
	return e.String(), warnings, nil
}
