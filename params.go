package awgseq

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
)

// BaseParams holds the timing fields shared by every sequence variant.
type BaseParams struct {
	Target            Target      `yaml:"target"`
	ClockRate         float64     `yaml:"clock_rate"`
	Period            float64     `yaml:"period"`
	TriggerMode       TriggerMode `yaml:"trigger_mode"`
	Repetitions       int         `yaml:"repetitions"`
	Alignment         Alignment   `yaml:"alignment"`
	DeadTime          float64     `yaml:"dead_time"`
	TriggerDelay      float64     `yaml:"trigger_delay"`
	Latency           float64     `yaml:"latency"`
	LatencyAdjustment int         `yaml:"latency_adjustment"`
	ResetPhase        bool        `yaml:"reset_phase"`
}

// SimpleParams plays one externally queued placeholder waveform per
// iteration.
type SimpleParams struct {
	BufferLengths []int     `yaml:"buffer_lengths,flow"`
	DelayTimes    []float64 `yaml:"delay_times,flow"`
}

// RabiParams sweeps the amplitude of a single reusable gaussian pulse.
type RabiParams struct {
	PulseAmplitudes []float64 `yaml:"pulse_amplitudes,flow"`
	PulseWidth      float64   `yaml:"pulse_width"`
	PulseTruncation float64   `yaml:"pulse_truncation"`
}

// T1Params sweeps the delay between the pulse and the readout window.
type T1Params struct {
	DelayTimes      []float64 `yaml:"delay_times,flow"`
	PulseAmplitude  float64   `yaml:"pulse_amplitude"`
	PulseWidth      float64   `yaml:"pulse_width"`
	PulseTruncation float64   `yaml:"pulse_truncation"`
}

// T2Params sweeps the free-evolution gap between two half-amplitude pulses.
type T2Params struct {
	DelayTimes      []float64 `yaml:"delay_times,flow"`
	PulseAmplitude  float64   `yaml:"pulse_amplitude"`
	PulseWidth      float64   `yaml:"pulse_width"`
	PulseTruncation float64   `yaml:"pulse_truncation"`
}

// ReadoutParams emits a composite multi-tone readout waveform.
type ReadoutParams struct {
	ReadoutLength      float64   `yaml:"readout_length"`
	ReadoutAmplitudes  []float64 `yaml:"readout_amplitudes,flow"`
	ReadoutFrequencies []float64 `yaml:"readout_frequencies,flow"`
}

// PulsedSpectroscopyParams plays a flat modulated pulse per iteration.
type PulsedSpectroscopyParams struct {
	PulseLength    float64 `yaml:"pulse_length"`
	PulseAmplitude float64 `yaml:"pulse_amplitude"`
}

// CWSpectroscopyParams has no fields beyond the base set.
type CWSpectroscopyParams struct{}

// CustomParams substitutes positional placeholders in an external program.
type CustomParams struct {
	Path   string    `yaml:"path"`
	Params []float64 `yaml:"custom_params,flow"`
}

// TriggerParams has no fields beyond the base set.
type TriggerParams struct{}

// SequenceSpec is the validated parameter set of one sequence program.
// Exactly one variant payload is non-nil, matching Type; the base fields are
// shared by all variants. Specs are mutated only through Set so that every
// stored value has passed its field validator.
type SequenceSpec struct {
	Type SequenceType `yaml:"sequence_type"`
	Base BaseParams   `yaml:",inline"`

	Simple  *SimpleParams             `yaml:"simple,omitempty"`
	Rabi    *RabiParams               `yaml:"rabi,omitempty"`
	T1      *T1Params                 `yaml:"t1,omitempty"`
	T2      *T2Params                 `yaml:"t2,omitempty"`
	Readout *ReadoutParams            `yaml:"readout,omitempty"`
	Pulsed  *PulsedSpectroscopyParams `yaml:"pulsed_spectroscopy,omitempty"`
	CW      *CWSpectroscopyParams     `yaml:"cw_spectroscopy,omitempty"`
	Custom  *CustomParams             `yaml:"custom,omitempty"`
	Trigger *TriggerParams            `yaml:"trigger,omitempty"`
}

// NewSpec returns a spec with the default parameter values of the given
// variant.
func NewSpec(t SequenceType) *SequenceSpec {
	s := &SequenceSpec{
		Type: t,
		Base: BaseParams{
			Target:      TargetHDAWG,
			ClockRate:   TargetHDAWG.ClockRate(),
			Period:      100e-6,
			TriggerMode: TriggerNone,
			Repetitions: 1,
			Alignment:   EndWithTrigger,
			DeadTime:    5e-6,
			Latency:     160e-9,
		},
	}
	switch t {
	case SequenceSimple:
		s.Simple = &SimpleParams{}
	case SequenceRabi:
		s.Rabi = &RabiParams{PulseWidth: 50e-9, PulseTruncation: 3}
	case SequenceT1:
		s.T1 = &T1Params{PulseAmplitude: 1, PulseWidth: 50e-9, PulseTruncation: 3}
	case SequenceT2:
		s.T2 = &T2Params{PulseAmplitude: 1, PulseWidth: 50e-9, PulseTruncation: 3}
	case SequenceReadout:
		s.Readout = &ReadoutParams{ReadoutLength: 2e-6}
	case SequencePulsedSpectroscopy:
		s.Pulsed = &PulsedSpectroscopyParams{PulseLength: 2e-6, PulseAmplitude: 1}
		s.Base.ResetPhase = true
	case SequenceCWSpectroscopy:
		s.CW = &CWSpectroscopyParams{}
		s.Base.ResetPhase = true
	case SequenceCustom:
		s.Custom = &CustomParams{}
	case SequenceTrigger:
		s.Trigger = &TriggerParams{}
	}
	return s
}

// fieldDef couples the accessor and the validator of a single settable
// field. The validation policy is per field: "reject" validators return a
// ValidationError and store nothing; "clamp" validators store a corrected
// value and return a non-nil Warning.
type fieldDef struct {
	get func(s *SequenceSpec) interface{}
	set func(s *SequenceSpec, v interface{}) (*Warning, error)
}

// Set validates and stores a single field value. The returned Warning is
// non-nil when the value was auto-corrected by a clamp-policy field.
func (s *SequenceSpec) Set(name string, value interface{}) (*Warning, error) {
	f, ok := s.fields()[name]
	if !ok {
		return nil, &ValidationError{Field: name, Value: value,
			Reason: fmt.Sprintf("no such field on the %v sequence", s.Type)}
	}
	return f.set(s, value)
}

// Get returns the current value of a field, or false if the active variant
// has no such field. Slice values are copies; mutating them does not touch
// the stored value.
func (s *SequenceSpec) Get(name string) (interface{}, bool) {
	f, ok := s.fields()[name]
	if !ok {
		return nil, false
	}
	return copyValue(f.get(s)), true
}

// Has reports whether the active variant has a field with this name.
func (s *SequenceSpec) Has(name string) bool {
	_, ok := s.fields()[name]
	return ok
}

// FieldNames lists the settable fields of the active variant in sorted
// order.
func (s *SequenceSpec) FieldNames() []string {
	fields := s.fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the full field map of the active variant, mainly for
// introspection and testing.
func (s *SequenceSpec) Snapshot() map[string]interface{} {
	fields := s.fields()
	snap := make(map[string]interface{}, len(fields))
	for name, f := range fields {
		snap[name] = copyValue(f.get(s))
	}
	return snap
}

// copyValue detaches slice-valued fields, so values handed out can never
// bypass Set.
func copyValue(v interface{}) interface{} {
	switch s := v.(type) {
	case []int:
		return append([]int(nil), s...)
	case []float64:
		return append([]float64(nil), s...)
	}
	return v
}

func (s *SequenceSpec) fields() map[string]fieldDef {
	fields := map[string]fieldDef{}
	for name, f := range baseFields {
		fields[name] = f
	}
	for name, f := range variantFields[s.Type] {
		fields[name] = f
	}
	return fields
}

// baseFields defines the shared fields. Policies:
//
//	target, trigger_mode, alignment  reject unknown enum values
//	clock_rate, period               reject <= 0
//	dead_time, trigger_delay, latency reject < 0
//	repetitions                      reject < 1
//	latency_adjustment               clamp negative to 0 with warning
//	reset_phase                      any bool
//
// Setting target also resets clock_rate to the target's own clock.
var baseFields = map[string]fieldDef{
	"target": {
		get: func(s *SequenceSpec) interface{} { return s.Base.Target },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			t, err := asTarget(v)
			if err != nil {
				return nil, err
			}
			s.Base.Target = t
			s.Base.ClockRate = t.ClockRate()
			return nil, nil
		},
	},
	"clock_rate": {
		get: func(s *SequenceSpec) interface{} { return s.Base.ClockRate },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			f, err := asPositiveFloat("clock_rate", v)
			if err != nil {
				return nil, err
			}
			s.Base.ClockRate = f
			return nil, nil
		},
	},
	"period": {
		get: func(s *SequenceSpec) interface{} { return s.Base.Period },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			f, err := asPositiveFloat("period", v)
			if err != nil {
				return nil, err
			}
			s.Base.Period = f
			return nil, nil
		},
	},
	"trigger_mode": {
		get: func(s *SequenceSpec) interface{} { return s.Base.TriggerMode },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			m, err := asTriggerMode(v)
			if err != nil {
				return nil, err
			}
			s.Base.TriggerMode = m
			return nil, nil
		},
	},
	"repetitions": {
		get: func(s *SequenceSpec) interface{} { return s.Base.Repetitions },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			n, ok := asInt(v)
			if !ok || n < 1 {
				return nil, &ValidationError{Field: "repetitions", Value: v, Reason: "must be an integer >= 1"}
			}
			s.Base.Repetitions = n
			return nil, nil
		},
	},
	"alignment": {
		get: func(s *SequenceSpec) interface{} { return s.Base.Alignment },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			a, err := asAlignment(v)
			if err != nil {
				return nil, err
			}
			s.Base.Alignment = a
			return nil, nil
		},
	},
	"dead_time": {
		get: func(s *SequenceSpec) interface{} { return s.Base.DeadTime },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			f, err := asNonNegativeFloat("dead_time", v)
			if err != nil {
				return nil, err
			}
			s.Base.DeadTime = f
			return nil, nil
		},
	},
	"trigger_delay": {
		get: func(s *SequenceSpec) interface{} { return s.Base.TriggerDelay },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			f, err := asNonNegativeFloat("trigger_delay", v)
			if err != nil {
				return nil, err
			}
			s.Base.TriggerDelay = f
			return nil, nil
		},
	},
	"latency": {
		get: func(s *SequenceSpec) interface{} { return s.Base.Latency },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			f, err := asNonNegativeFloat("latency", v)
			if err != nil {
				return nil, err
			}
			s.Base.Latency = f
			return nil, nil
		},
	},
	"latency_adjustment": {
		get: func(s *SequenceSpec) interface{} { return s.Base.LatencyAdjustment },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			n, ok := asInt(v)
			if !ok {
				return nil, &ValidationError{Field: "latency_adjustment", Value: v, Reason: "must be an integer cycle count"}
			}
			if n < 0 {
				s.Base.LatencyAdjustment = 0
				return &Warning{Field: "latency_adjustment", Message: "negative adjustment clipped to 0",
					Original: n, Corrected: 0}, nil
			}
			s.Base.LatencyAdjustment = n
			return nil, nil
		},
	},
	"reset_phase": {
		get: func(s *SequenceSpec) interface{} { return s.Base.ResetPhase },
		set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, &ValidationError{Field: "reset_phase", Value: v, Reason: "must be a bool"}
			}
			s.Base.ResetPhase = b
			return nil, nil
		},
	},
}

// variantFields defines the per-variant extensions. Policies:
//
//	buffer_lengths       clamp each entry up to the target granularity,
//	                     never below the target minimum, with warning
//	pulse_truncation     clamp to [1, 10] with warning
//	amplitudes           reject outside [-1, 1]
//	widths and lengths   reject <= 0
//	delay_times          reject negative entries
//	readout_frequencies  reject negative entries
//	path                 reject extensions other than .seqc
var variantFields = map[SequenceType]map[string]fieldDef{
	SequenceSimple: {
		"buffer_lengths": {
			get: func(s *SequenceSpec) interface{} { return s.Simple.BufferLengths },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				lengths, warning, err := alignedLengths(v, s.Base.Target)
				if err != nil {
					return nil, err
				}
				s.Simple.BufferLengths = lengths
				return warning, nil
			},
		},
		"delay_times": {
			get: func(s *SequenceSpec) interface{} { return s.Simple.DelayTimes },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				times, err := nonNegativeFloats("delay_times", v)
				if err != nil {
					return nil, err
				}
				s.Simple.DelayTimes = times
				return nil, nil
			},
		},
	},
	SequenceRabi: {
		"pulse_amplitudes": {
			get: func(s *SequenceSpec) interface{} { return s.Rabi.PulseAmplitudes },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				amps, err := unitRangeFloats("pulse_amplitudes", v)
				if err != nil {
					return nil, err
				}
				s.Rabi.PulseAmplitudes = amps
				return nil, nil
			},
		},
		"pulse_width": {
			get: func(s *SequenceSpec) interface{} { return s.Rabi.PulseWidth },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				f, err := asPositiveFloat("pulse_width", v)
				if err != nil {
					return nil, err
				}
				s.Rabi.PulseWidth = f
				return nil, nil
			},
		},
		"pulse_truncation": {
			get: func(s *SequenceSpec) interface{} { return s.Rabi.PulseTruncation },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				return clampTruncation(&s.Rabi.PulseTruncation, v)
			},
		},
	},
	SequenceT1: {
		"delay_times": {
			get: func(s *SequenceSpec) interface{} { return s.T1.DelayTimes },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				times, err := nonNegativeFloats("delay_times", v)
				if err != nil {
					return nil, err
				}
				s.T1.DelayTimes = times
				return nil, nil
			},
		},
		"pulse_amplitude": {
			get: func(s *SequenceSpec) interface{} { return s.T1.PulseAmplitude },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				f, err := unitRangeFloat("pulse_amplitude", v)
				if err != nil {
					return nil, err
				}
				s.T1.PulseAmplitude = f
				return nil, nil
			},
		},
		"pulse_width": {
			get: func(s *SequenceSpec) interface{} { return s.T1.PulseWidth },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				f, err := asPositiveFloat("pulse_width", v)
				if err != nil {
					return nil, err
				}
				s.T1.PulseWidth = f
				return nil, nil
			},
		},
		"pulse_truncation": {
			get: func(s *SequenceSpec) interface{} { return s.T1.PulseTruncation },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				return clampTruncation(&s.T1.PulseTruncation, v)
			},
		},
	},
	SequenceT2: {
		"delay_times": {
			get: func(s *SequenceSpec) interface{} { return s.T2.DelayTimes },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				times, err := nonNegativeFloats("delay_times", v)
				if err != nil {
					return nil, err
				}
				s.T2.DelayTimes = times
				return nil, nil
			},
		},
		"pulse_amplitude": {
			get: func(s *SequenceSpec) interface{} { return s.T2.PulseAmplitude },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				f, err := unitRangeFloat("pulse_amplitude", v)
				if err != nil {
					return nil, err
				}
				s.T2.PulseAmplitude = f
				return nil, nil
			},
		},
		"pulse_width": {
			get: func(s *SequenceSpec) interface{} { return s.T2.PulseWidth },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				f, err := asPositiveFloat("pulse_width", v)
				if err != nil {
					return nil, err
				}
				s.T2.PulseWidth = f
				return nil, nil
			},
		},
		"pulse_truncation": {
			get: func(s *SequenceSpec) interface{} { return s.T2.PulseTruncation },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				return clampTruncation(&s.T2.PulseTruncation, v)
			},
		},
	},
	SequenceReadout: {
		"readout_length": {
			get: func(s *SequenceSpec) interface{} { return s.Readout.ReadoutLength },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				f, err := asPositiveFloat("readout_length", v)
				if err != nil {
					return nil, err
				}
				s.Readout.ReadoutLength = f
				return nil, nil
			},
		},
		"readout_amplitudes": {
			get: func(s *SequenceSpec) interface{} { return s.Readout.ReadoutAmplitudes },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				amps, err := unitRangeFloats("readout_amplitudes", v)
				if err != nil {
					return nil, err
				}
				s.Readout.ReadoutAmplitudes = amps
				return nil, nil
			},
		},
		"readout_frequencies": {
			get: func(s *SequenceSpec) interface{} { return s.Readout.ReadoutFrequencies },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				freqs, err := nonNegativeFloats("readout_frequencies", v)
				if err != nil {
					return nil, err
				}
				s.Readout.ReadoutFrequencies = freqs
				return nil, nil
			},
		},
	},
	SequencePulsedSpectroscopy: {
		"pulse_length": {
			get: func(s *SequenceSpec) interface{} { return s.Pulsed.PulseLength },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				f, err := asPositiveFloat("pulse_length", v)
				if err != nil {
					return nil, err
				}
				s.Pulsed.PulseLength = f
				return nil, nil
			},
		},
		"pulse_amplitude": {
			get: func(s *SequenceSpec) interface{} { return s.Pulsed.PulseAmplitude },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				f, err := unitRangeFloat("pulse_amplitude", v)
				if err != nil {
					return nil, err
				}
				s.Pulsed.PulseAmplitude = f
				return nil, nil
			},
		},
	},
	SequenceCWSpectroscopy: {},
	SequenceCustom: {
		"path": {
			get: func(s *SequenceSpec) interface{} { return s.Custom.Path },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				p, ok := v.(string)
				if !ok {
					return nil, &ValidationError{Field: "path", Value: v, Reason: "must be a string"}
				}
				if filepath.Ext(p) != ".seqc" {
					return nil, &ValidationError{Field: "path", Value: v, Reason: "must point to a .seqc file"}
				}
				s.Custom.Path = p
				return nil, nil
			},
		},
		"custom_params": {
			get: func(s *SequenceSpec) interface{} { return s.Custom.Params },
			set: func(s *SequenceSpec, v interface{}) (*Warning, error) {
				params, ok := asFloatSlice(v)
				if !ok {
					return nil, &ValidationError{Field: "custom_params", Value: v, Reason: "must be a list of numbers"}
				}
				s.Custom.Params = params
				return nil, nil
			},
		},
	},
	SequenceTrigger: {},
}

func clampTruncation(dst *float64, v interface{}) (*Warning, error) {
	f, ok := asFloat(v)
	if !ok {
		return nil, &ValidationError{Field: "pulse_truncation", Value: v, Reason: "must be a number"}
	}
	clipped := math.Min(math.Max(f, 1), 10)
	*dst = clipped
	if clipped != f {
		return &Warning{Field: "pulse_truncation", Message: "clipped to [1, 10]",
			Original: f, Corrected: clipped}, nil
	}
	return nil, nil
}

// alignedLengths rounds every requested buffer length up to the target
// granularity, flooring at the target minimum. A warning names the entries
// that changed.
func alignedLengths(v interface{}, target Target) ([]int, *Warning, error) {
	requested, ok := asIntSlice(v)
	if !ok {
		return nil, nil, &ValidationError{Field: "buffer_lengths", Value: v, Reason: "must be a list of integers"}
	}
	aligned := make([]int, len(requested))
	changed := false
	for i, n := range requested {
		if n < 0 {
			return nil, nil, &ValidationError{Field: "buffer_lengths", Value: n, Reason: "must not be negative"}
		}
		aligned[i] = AlignSamples(n, target)
		if aligned[i] != n {
			changed = true
		}
	}
	if changed {
		return aligned, &Warning{Field: "buffer_lengths",
			Message: fmt.Sprintf("rounded up to multiples of %d", target.Granularity()),
			Original: requested, Corrected: aligned}, nil
	}
	return aligned, nil, nil
}

func unitRangeFloat(field string, v interface{}) (float64, error) {
	f, ok := asFloat(v)
	if !ok {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be a number"}
	}
	if f < -1 || f > 1 {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be within [-1, 1]"}
	}
	return f, nil
}

func unitRangeFloats(field string, v interface{}) ([]float64, error) {
	values, ok := asFloatSlice(v)
	if !ok {
		return nil, &ValidationError{Field: field, Value: v, Reason: "must be a list of numbers"}
	}
	for _, f := range values {
		if f < -1 || f > 1 {
			return nil, &ValidationError{Field: field, Value: f, Reason: "must be within [-1, 1]"}
		}
	}
	return values, nil
}

func nonNegativeFloats(field string, v interface{}) ([]float64, error) {
	values, ok := asFloatSlice(v)
	if !ok {
		return nil, &ValidationError{Field: field, Value: v, Reason: "must be a list of numbers"}
	}
	for _, f := range values {
		if f < 0 {
			return nil, &ValidationError{Field: field, Value: f, Reason: "must not be negative"}
		}
	}
	return values, nil
}

func asPositiveFloat(field string, v interface{}) (float64, error) {
	f, ok := asFloat(v)
	if !ok {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be a number"}
	}
	if f <= 0 {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be > 0"}
	}
	return f, nil
}

func asNonNegativeFloat(field string, v interface{}) (float64, error) {
	f, ok := asFloat(v)
	if !ok {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must be a number"}
	}
	if f < 0 {
		return 0, &ValidationError{Field: field, Value: v, Reason: "must not be negative"}
	}
	return f, nil
}

func asTarget(v interface{}) (Target, error) {
	switch t := v.(type) {
	case Target:
		if _, ok := targets[t]; !ok {
			return TargetHDAWG, &ValidationError{Field: "target", Value: v, Reason: "unknown target"}
		}
		return t, nil
	case string:
		return ParseTarget(t)
	}
	return TargetHDAWG, &ValidationError{Field: "target", Value: v, Reason: "must be a target name"}
}

func asTriggerMode(v interface{}) (TriggerMode, error) {
	switch m := v.(type) {
	case TriggerMode:
		if _, ok := triggerModeNames[m]; !ok {
			return TriggerNone, &ValidationError{Field: "trigger_mode", Value: v, Reason: "unknown trigger mode"}
		}
		return m, nil
	case string:
		return ParseTriggerMode(m)
	}
	return TriggerNone, &ValidationError{Field: "trigger_mode", Value: v, Reason: "must be a trigger mode name"}
}

func asAlignment(v interface{}) (Alignment, error) {
	switch a := v.(type) {
	case Alignment:
		if a != StartWithTrigger && a != EndWithTrigger {
			return EndWithTrigger, &ValidationError{Field: "alignment", Value: v, Reason: "unknown alignment"}
		}
		return a, nil
	case string:
		return ParseAlignment(a)
	}
	return EndWithTrigger, &ValidationError{Field: "alignment", Value: v, Reason: "must be an alignment name"}
}

// The numeric coercions accept the types the yaml decoder and plain Go
// callers produce.

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

func asFloatSlice(v interface{}) ([]float64, bool) {
	switch values := v.(type) {
	case []float64:
		return append([]float64(nil), values...), true
	case []int:
		ret := make([]float64, len(values))
		for i, n := range values {
			ret[i] = float64(n)
		}
		return ret, true
	case []interface{}:
		ret := make([]float64, len(values))
		for i, e := range values {
			f, ok := asFloat(e)
			if !ok {
				return nil, false
			}
			ret[i] = f
		}
		return ret, true
	}
	return nil, false
}

func asIntSlice(v interface{}) ([]int, bool) {
	switch values := v.(type) {
	case []int:
		return append([]int(nil), values...), true
	case []interface{}:
		ret := make([]int, len(values))
		for i, e := range values {
			n, ok := asInt(e)
			if !ok {
				return nil, false
			}
			ret[i] = n
		}
		return ret, true
	}
	return nil, false
}
