package compiler

import (
	"os"
	"sort"
	"time"

	"github.com/frostlab/awgseq"
	"github.com/rs/zerolog"
)

// writers dispatches a sequence-type tag to its writer. Every variant that
// can be selected has exactly one entry here.
var writers = map[awgseq.SequenceType]writerFunc{
	awgseq.SequenceSimple:             writeSimple,
	awgseq.SequenceRabi:               writeRabi,
	awgseq.SequenceT1:                 writeT1,
	awgseq.SequenceT2:                 writeT2,
	awgseq.SequenceReadout:            writeReadout,
	awgseq.SequencePulsedSpectroscopy: writePulsedSpectroscopy,
	awgseq.SequenceCWSpectroscopy:     writeCWSpectroscopy,
	awgseq.SequenceCustom:             writeCustom,
	awgseq.SequenceTrigger:            writeTrigger,
}

// Program owns one sequence spec and compiles it on demand. The program
// text is regenerated in full on every call; nothing is cached between
// calls beyond the validated parameters themselves. A Program is not safe
// for concurrent use; give each goroutine its own instance.
type Program struct {
	spec         *awgseq.SequenceSpec
	applied      map[string]interface{}
	appliedOrder []string
	// warnings holds set-time corrections; writeWarnings holds the
	// corrections of the latest generation only, so repeated generation
	// does not accumulate duplicates.
	warnings      []awgseq.Warning
	writeWarnings []awgseq.Warning
	log           zerolog.Logger
	now           func() time.Time
	readFile      func(string) ([]byte, error)
}

// Option configures a Program.
type Option func(*Program)

// WithLogger routes auto-correction warnings to the given logger. Without
// it the program stays silent; warnings are always retrievable through
// Warnings either way.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Program) { p.log = log }
}

// WithClock fixes the timestamp source of the generated header, mainly for
// tests.
func WithClock(now func() time.Time) Option {
	return func(p *Program) { p.now = now }
}

// WithFileReader replaces how custom sequence files are loaded.
func WithFileReader(read func(string) ([]byte, error)) Option {
	return func(p *Program) { p.readFile = read }
}

// NewProgram returns a program of the given sequence type with default
// parameters.
func NewProgram(t awgseq.SequenceType, opts ...Option) *Program {
	p := &Program{
		spec:     awgseq.NewSpec(t),
		applied:  map[string]interface{}{},
		log:      zerolog.Nop(),
		now:      time.Now,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SequenceType returns the active sequence-type tag.
func (p *Program) SequenceType() awgseq.SequenceType { return p.spec.Type }

// SetParams merges field updates into the spec. A sequence_type update is
// handled first: the spec is re-initialized with the new variant's defaults
// and every previously set field that exists on the new variant is
// reapplied; fields the new variant lacks are dropped silently. A target
// update is handled next, so granularity clamps in the same call see the
// requested device. The remaining updates are applied in key order. The
// first validation failure aborts the call; updates already applied stay
// in effect.
func (p *Program) SetParams(updates map[string]interface{}) error {
	if raw, ok := updates["sequence_type"]; ok {
		t, err := asSequenceType(raw)
		if err != nil {
			return err
		}
		if err := p.switchType(t); err != nil {
			return err
		}
	}
	if target, ok := updates["target"]; ok {
		if err := p.setField("target", target); err != nil {
			return err
		}
	}
	keys := make([]string, 0, len(updates))
	for key := range updates {
		if key != "sequence_type" && key != "target" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := p.setField(key, updates[key]); err != nil {
			return err
		}
	}
	return nil
}

// switchType replaces the spec with a fresh one and carries over, best
// effort, everything the caller ever set explicitly.
func (p *Program) switchType(t awgseq.SequenceType) error {
	if t == p.spec.Type {
		return nil
	}
	next := awgseq.NewSpec(t)
	for _, key := range p.appliedOrder {
		if !next.Has(key) {
			continue
		}
		warning, err := next.Set(key, p.applied[key])
		if err != nil {
			return err
		}
		p.warn(warning)
	}
	p.spec = next
	return nil
}

func (p *Program) setField(key string, value interface{}) error {
	warning, err := p.spec.Set(key, value)
	if err != nil {
		return err
	}
	p.warn(warning)
	if _, seen := p.applied[key]; !seen {
		p.appliedOrder = append(p.appliedOrder, key)
	}
	p.applied[key] = value
	return nil
}

// ApplyQueue populates the buffer length and delay arrays from the external
// waveform queue.
func (p *Program) ApplyQueue(refs []awgseq.WaveformRef) error {
	warnings, err := p.spec.ApplyQueue(refs)
	if err != nil {
		return err
	}
	for i := range warnings {
		p.warn(&warnings[i])
	}
	return nil
}

// Instructions validates the spec and returns the full program text. No
// text is returned on failure.
func (p *Program) Instructions() (string, error) {
	text, _, err := p.write(false)
	return text, err
}

// InstructionsAndTable additionally returns the command table for variants
// that support indexed sweeps; for the rest the table is nil. A sweep that
// cannot be expressed as a base-plus-increment table fails before any text
// is produced.
func (p *Program) InstructionsAndTable() (string, *CommandTable, error) {
	var table *CommandTable
	useTable := p.spec.Type == awgseq.SequenceRabi
	if useTable {
		var err error
		if table, err = sweepTable(p.spec.Rabi.PulseAmplitudes); err != nil {
			return "", nil, err
		}
	}
	text, _, err := p.write(useTable)
	if err != nil {
		return "", nil, err
	}
	return text, table, nil
}

func (p *Program) write(useTable bool) (string, []awgseq.Warning, error) {
	writer, ok := writers[p.spec.Type]
	if !ok {
		return "", nil, &awgseq.UnsupportedError{
			Reason: "no writer for the " + p.spec.Type.String() + " sequence"}
	}
	text, warnings, err := writer(p.spec, writeOptions{
		now:      p.now(),
		useTable: useTable,
		readFile: p.readFile,
	})
	if err != nil {
		return "", nil, err
	}
	p.writeWarnings = append(p.writeWarnings[:0], warnings...)
	for i := range warnings {
		p.logWarning(&warnings[i])
	}
	return text, warnings, nil
}

// Params returns the active sequence-type tag together with a full field
// snapshot, primarily for introspection and testing.
func (p *Program) Params() (awgseq.SequenceType, map[string]interface{}) {
	return p.spec.Type, p.spec.Snapshot()
}

// Warnings returns every set-time auto-correction in order, followed by
// the corrections of the latest generation.
func (p *Program) Warnings() []awgseq.Warning {
	out := append([]awgseq.Warning(nil), p.warnings...)
	return append(out, p.writeWarnings...)
}

func (p *Program) warn(w *awgseq.Warning) {
	if w == nil {
		return
	}
	p.warnings = append(p.warnings, *w)
	p.logWarning(w)
}

func (p *Program) logWarning(w *awgseq.Warning) {
	p.log.Warn().
		Str("field", w.Field).
		Interface("original", w.Original).
		Interface("corrected", w.Corrected).
		Msg(w.Message)
}

func asSequenceType(v interface{}) (awgseq.SequenceType, error) {
	switch t := v.(type) {
	case awgseq.SequenceType:
		return t, nil
	case string:
		return awgseq.ParseSequenceType(t)
	}
	return awgseq.SequenceNone, &awgseq.ValidationError{Field: "sequence_type", Value: v,
		Reason: "must be a sequence type name"}
}
