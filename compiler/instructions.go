// Package compiler turns a validated awgseq.SequenceSpec into sequencer
// instruction text and, for sweep-capable variants, an indexed command
// table. Generation is one-way: the package never parses instruction text
// back into a spec.
package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// The instruction primitives render single sequencer instructions as text
// fragments. They are stateless; all numbers arrive pre-converted to the
// unit the instruction expects (cycles for wait, samples for playZero).

func declPlaceholderPair(index, samples int) string {
	return fmt.Sprintf("wave w%d_1 = placeholder(%d);\nwave w%d_2 = placeholder(%d);",
		index, samples, index, samples)
}

func declGaussPair(samples int) string {
	center, width := samples/2, samples/8
	return fmt.Sprintf("wave w_1 = gauss(%d, %d, %d);\nwave w_2 = gauss(%d, %d, %d);",
		samples, center, width, samples, center, width)
}

func declOnesPair(amplitude float64, samples int) string {
	return fmt.Sprintf("wave w_1 = %s*ones(%d);\nwave w_2 = %s*ones(%d);",
		formatAmplitude(amplitude), samples, formatAmplitude(amplitude), samples)
}

// declTonePair renders the in-phase and quadrature components of a single
// readout tone. periods is the number of full oscillations within the
// buffer.
func declTonePair(index, samples int, amplitude float64, periods int) string {
	amp := formatAmplitude(amplitude)
	return fmt.Sprintf("wave tone%d_1 = %s*sine(%d, 1, 0, %d);\nwave tone%d_2 = %s*cosine(%d, 1, 0, %d);",
		index, amp, samples, periods, index, amp, samples, periods)
}

// declToneSumPair sums n tones into the playback pair, normalized by the
// tone count so the composite stays within full scale.
func declToneSumPair(n int) string {
	parts1 := make([]string, n)
	parts2 := make([]string, n)
	for i := 0; i < n; i++ {
		parts1[i] = fmt.Sprintf("tone%d_1", i+1)
		parts2[i] = fmt.Sprintf("tone%d_2", i+1)
	}
	scale := formatAmplitude(1 / float64(n))
	return fmt.Sprintf("wave w_1 = %s*(%s);\nwave w_2 = %s*(%s);",
		scale, strings.Join(parts1, " + "), scale, strings.Join(parts2, " + "))
}

func repeatOpen(n int) string { return fmt.Sprintf("repeat(%d){", n) }

func waitCycles(n int) string { return fmt.Sprintf("wait(%d);", n) }

func playZeroSamples(n int) string { return fmt.Sprintf("playZero(%d);", n) }

func playWavePair(index int) string {
	return fmt.Sprintf("playWave(w%d_1, w%d_2);", index, index)
}

func playWaveMainPair() string { return "playWave(w_1, w_2);" }

func playWaveScaled(amplitude float64) string {
	amp := formatAmplitude(amplitude)
	return fmt.Sprintf("playWave(%s*w_1, %s*w_2);", amp, amp)
}

func setTrigger(value int) string { return fmt.Sprintf("setTrigger(%d);", value) }

func waitDigTrigger(index int, uhf bool) string {
	// UHF sequencers take a second argument selecting the trigger engine.
	if uhf {
		return fmt.Sprintf("waitDigTrigger(%d, 1);", index)
	}
	return fmt.Sprintf("waitDigTrigger(%d);", index)
}

func waitZSyncTrigger() string { return "waitZSyncTrigger();" }

func waitWave() string { return "waitWave();" }

func startQA() string { return "startQA(QA_INT_0 | QA_INT_1, true);" }

func resetOscPhase() string { return "resetOscPhase();" }

func assignWaveIndexPair(index int) string {
	return fmt.Sprintf("assignWaveIndex(w_1, w_2, %d);", index)
}

func executeTableEntry(index int) string {
	return fmt.Sprintf("executeTableEntry(%d);", index)
}

func comment(s string) string { return "// " + s }

func formatAmplitude(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// emitter accumulates instruction lines with brace-based indentation. The
// writers build the whole program through it so the output shape stays
// uniform across variants.
type emitter struct {
	sb     strings.Builder
	indent int
}

func (e *emitter) line(s string) {
	for _, part := range strings.Split(s, "\n") {
		for i := 0; i < e.indent; i++ {
			e.sb.WriteString("  ")
		}
		e.sb.WriteString(part)
		e.sb.WriteByte('\n')
	}
}

func (e *emitter) open(s string) {
	e.line(s)
	e.indent++
}

func (e *emitter) close() {
	e.indent--
	e.line("}")
}

func (e *emitter) String() string { return e.sb.String() }
