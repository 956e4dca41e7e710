package awgseq

import "fmt"

// ValidationError reports a field value that violates its declared
// constraint. It is raised synchronously while setting parameters; the
// offending value is never stored.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %v: %v (got %v)", e.Field, e.Reason, e.Value)
}

// TimingError reports that a derived wait or dead-time count would be
// negative, or that no waveforms are defined for the loop. It is raised
// during generation, before any program text is produced.
type TimingError struct {
	Reason string
}

func (e *TimingError) Error() string {
	return "infeasible timing: " + e.Reason
}

// UnsupportedError reports a structurally incompatible request, such as a
// non-uniform amplitude sweep in a command table. The compiler never
// auto-corrects these.
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string {
	return "unsupported configuration: " + e.Reason
}

// Warning records a non-fatal auto-correction: a value outside its allowed
// range was clamped or rounded per the field's documented policy and
// execution proceeded with the corrected value.
type Warning struct {
	Field     string
	Message   string
	Original  interface{}
	Corrected interface{}
}

func (w Warning) String() string {
	return fmt.Sprintf("%v: %v (%v -> %v)", w.Field, w.Message, w.Original, w.Corrected)
}
