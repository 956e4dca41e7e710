package compiler

import (
	"fmt"
	"math"

	"github.com/frostlab/awgseq"
)

// tableVersion is the schema version the external uploader validates
// against.
const tableVersion = "0.2"

// sweepTolerance bounds how much successive sweep deltas may differ before
// the sweep counts as non-uniform.
const sweepTolerance = 1e-9

// CommandTable is the auxiliary indexed record set for runtime-efficient
// parameter sweeps. Entry 0 carries the sweep start value; entry 1 carries
// the constant increment and is re-executed once per remaining sweep point.
type CommandTable struct {
	Header TableHeader  `json:"header"`
	Table  []TableEntry `json:"table"`
}

type TableHeader struct {
	Version string `json:"version"`
}

type TableEntry struct {
	Index      int           `json:"index"`
	Waveform   WaveformIndex `json:"waveform"`
	Amplitude0 *TableParam   `json:"amplitude0,omitempty"`
	Amplitude1 *TableParam   `json:"amplitude1,omitempty"`
}

type WaveformIndex struct {
	Index int `json:"index"`
}

type TableParam struct {
	Value     float64 `json:"value"`
	Increment bool    `json:"increment"`
}

// sweepTable builds the two-entry table for an equally spaced value sweep.
// Non-uniform spacing fails; arbitrary-spacing tables are not supported.
//
// Known gap: the increment delta is not checked against the device's
// permissible per-step range.
func sweepTable(values []float64) (*CommandTable, error) {
	if len(values) < 2 {
		return nil, &awgseq.UnsupportedError{Reason: "a command-table sweep needs at least two points"}
	}
	delta := values[1] - values[0]
	for i := 2; i < len(values); i++ {
		step := values[i] - values[i-1]
		if math.Abs(step-delta) > sweepTolerance*math.Max(1, math.Abs(delta)) {
			return nil, &awgseq.UnsupportedError{
				Reason: fmt.Sprintf("sweep values are not equally spaced (step %d is %v, expected %v)", i, step, delta)}
		}
	}
	return &CommandTable{
		Header: TableHeader{Version: tableVersion},
		Table: []TableEntry{
			{
				Index:      0,
				Waveform:   WaveformIndex{Index: 0},
				Amplitude0: &TableParam{Value: values[0]},
				Amplitude1: &TableParam{Value: values[0]},
			},
			{
				Index:      1,
				Waveform:   WaveformIndex{Index: 0},
				Amplitude0: &TableParam{Value: delta, Increment: true},
				Amplitude1: &TableParam{Value: delta, Increment: true},
			},
		},
	}, nil
}
