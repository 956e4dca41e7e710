// Package awgseq contains the domain model of the AWG sequence-program
// compiler: the sequence variants and their parameters, the timing unit
// conversions, and the per-field validation rules. The actual code
// generation lives in the compiler subpackage.
package awgseq

import (
	"fmt"
	"strings"
)

// SequenceType tags one of the supported sequence variants.
type SequenceType int

const (
	SequenceNone SequenceType = iota
	SequenceSimple
	SequenceRabi
	SequenceT1
	SequenceT2 // T2* / Ramsey
	SequenceReadout
	SequencePulsedSpectroscopy
	SequenceCWSpectroscopy
	SequenceCustom
	SequenceTrigger
)

var sequenceTypeNames = map[SequenceType]string{
	SequenceNone:               "None",
	SequenceSimple:             "Simple",
	SequenceRabi:               "Rabi",
	SequenceT1:                 "T1",
	SequenceT2:                 "T2*",
	SequenceReadout:            "Readout",
	SequencePulsedSpectroscopy: "Pulsed Spectroscopy",
	SequenceCWSpectroscopy:     "CW Spectroscopy",
	SequenceCustom:             "Custom",
	SequenceTrigger:            "Trigger",
}

func (t SequenceType) String() string {
	if name, ok := sequenceTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SequenceType(%d)", int(t))
}

// sequenceTypeAliases maps every accepted input spelling, lowercased, to a
// sequence type. "Ramsey" and "T2" both denote the T2* variant; the historic
// spellings are accepted here and nowhere else.
var sequenceTypeAliases = map[string]SequenceType{
	"none":                SequenceNone,
	"simple":              SequenceSimple,
	"rabi":                SequenceRabi,
	"t1":                  SequenceT1,
	"t2":                  SequenceT2,
	"t2*":                 SequenceT2,
	"ramsey":              SequenceT2,
	"readout":             SequenceReadout,
	"pulsed spectroscopy": SequencePulsedSpectroscopy,
	"pulsed_spectroscopy": SequencePulsedSpectroscopy,
	"cw spectroscopy":     SequenceCWSpectroscopy,
	"cw_spectroscopy":     SequenceCWSpectroscopy,
	"custom":              SequenceCustom,
	"trigger":             SequenceTrigger,
}

// ParseSequenceType normalizes a sequence-type tag. It is the only place
// where alias spellings are resolved; everywhere else the enum is used.
func ParseSequenceType(s string) (SequenceType, error) {
	if t, ok := sequenceTypeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return SequenceNone, &ValidationError{Field: "sequence_type", Value: s, Reason: "unknown sequence type"}
}

// TriggerMode selects the pair of trigger instructions emitted around the
// per-iteration wait.
type TriggerMode int

const (
	TriggerNone TriggerMode = iota
	TriggerSend
	TriggerReceive
	TriggerSendAndReceive
	TriggerZSync
)

var triggerModeNames = map[TriggerMode]string{
	TriggerNone:           "None",
	TriggerSend:           "Send Trigger",
	TriggerReceive:        "Receive Trigger",
	TriggerSendAndReceive: "Send and Receive Trigger",
	TriggerZSync:          "ZSync Trigger",
}

func (m TriggerMode) String() string {
	if name, ok := triggerModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("TriggerMode(%d)", int(m))
}

var triggerModeAliases = map[string]TriggerMode{
	"none":                     TriggerNone,
	"send trigger":             TriggerSend,
	"send_trigger":             TriggerSend,
	"receive trigger":          TriggerReceive,
	"receive_trigger":          TriggerReceive,
	"external trigger":         TriggerReceive,
	"external_trigger":         TriggerReceive,
	"send and receive trigger": TriggerSendAndReceive,
	"send_and_receive_trigger": TriggerSendAndReceive,
	"zsync trigger":            TriggerZSync,
	"zsync_trigger":            TriggerZSync,
}

func ParseTriggerMode(s string) (TriggerMode, error) {
	if m, ok := triggerModeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return TriggerNone, &ValidationError{Field: "trigger_mode", Value: s, Reason: "unknown trigger mode"}
}

// Alignment places the waveform relative to the trigger point inside each
// iteration.
type Alignment int

const (
	EndWithTrigger Alignment = iota
	StartWithTrigger
)

func (a Alignment) String() string {
	switch a {
	case StartWithTrigger:
		return "Start with Trigger"
	case EndWithTrigger:
		return "End with Trigger"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

var alignmentAliases = map[string]Alignment{
	"start with trigger": StartWithTrigger,
	"start_with_trigger": StartWithTrigger,
	"end with trigger":   EndWithTrigger,
	"end_with_trigger":   EndWithTrigger,
}

func ParseAlignment(s string) (Alignment, error) {
	if a, ok := alignmentAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return EndWithTrigger, &ValidationError{Field: "alignment", Value: s, Reason: "unknown alignment"}
}

// Target identifies the hardware family the program is generated for. The
// target fixes the sequencer clock rate and the sample-count granularity of
// waveform buffers.
type Target int

const (
	TargetHDAWG Target = iota
	TargetUHFQA
	TargetSHFSG
)

// targetProps holds the per-family hardware constants.
type targetProps struct {
	name        string
	clockRate   float64 // samples per second
	granularity int     // buffer lengths must be multiples of this
	minSamples  int     // smallest representable buffer
}

var targets = map[Target]targetProps{
	TargetHDAWG: {name: "HDAWG", clockRate: 2.4e9, granularity: 16, minSamples: 32},
	TargetUHFQA: {name: "UHFQA", clockRate: 1.8e9, granularity: 8, minSamples: 16},
	TargetSHFSG: {name: "SHFSG", clockRate: 2.0e9, granularity: 16, minSamples: 32},
}

func (t Target) String() string {
	if p, ok := targets[t]; ok {
		return p.name
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// ClockRate returns the sequencer sample clock of the target in Hz.
func (t Target) ClockRate() float64 { return targets[t].clockRate }

// Granularity returns the sample-count boundary buffer lengths must align to.
func (t Target) Granularity() int { return targets[t].granularity }

// MinSamples returns the smallest buffer length the target accepts.
func (t Target) MinSamples() int { return targets[t].minSamples }

var targetAliases = map[string]Target{
	"hdawg": TargetHDAWG,
	"uhfqa": TargetUHFQA,
	"uhfli": TargetUHFQA,
	"shfsg": TargetSHFSG,
}

func ParseTarget(s string) (Target, error) {
	if t, ok := targetAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return TargetHDAWG, &ValidationError{Field: "target", Value: s, Reason: "unknown target"}
}
