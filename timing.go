package awgseq

import "math"

// SamplesPerCycle is the legacy sequencer timing unit: one cycle of the
// instruction clock spans eight samples of the output clock. wait()
// arguments are in cycles; playZero() arguments are in samples.
const SamplesPerCycle = 8

// TimeToSamples converts a duration in seconds to a sample count at the
// given clock rate, truncating towards zero.
func TimeToSamples(t, clockRate float64) int {
	return int(math.Floor(t * clockRate))
}

// TimeToCycles converts a duration in seconds to instruction-clock cycles,
// truncating towards zero.
func TimeToCycles(t, clockRate float64) int {
	return int(math.Floor(t * clockRate / SamplesPerCycle))
}

// RoundUpToMultiple returns the smallest multiple of factor that is >= n.
// Used for buffer and placeholder lengths, which may only grow to meet the
// device granularity.
func RoundUpToMultiple(n, factor int) int {
	if factor <= 1 {
		return n
	}
	return (n + factor - 1) / factor * factor
}

// RoundToNearestMultiple returns the multiple of factor closest to n. Exact
// halves round up, so RoundToNearestMultiple(24, 16) == 32. Used for sweep
// deltas and delay rounding, where the nearest grid point is wanted.
func RoundToNearestMultiple(n, factor int) int {
	if factor <= 1 {
		return n
	}
	return int(math.Floor(float64(n)/float64(factor)+0.5)) * factor
}

// AlignSamples rounds a requested buffer length up to the target's
// granularity, never below the target's minimum length.
func AlignSamples(n int, target Target) int {
	if n < target.MinSamples() {
		n = target.MinSamples()
	}
	return RoundUpToMultiple(n, target.Granularity())
}
