package awgseq

// WaveformRef describes one entry of the external waveform queue: the
// sample length of the queued buffer and its delay relative to the trigger
// point. The queue collaborator supplies these before generation; the
// compiler never sees the sample data itself.
type WaveformRef struct {
	Length int     `yaml:"buffer_length"`
	Delay  float64 `yaml:"delay"`
}

// ApplyQueue populates buffer_lengths and delay_times from the external
// waveform queue. Only variants that carry those fields accept a queue;
// buffer lengths go through the usual granularity clamp, so the returned
// warnings mirror what Set would report.
func (s *SequenceSpec) ApplyQueue(refs []WaveformRef) ([]Warning, error) {
	if !s.Has("buffer_lengths") && !s.Has("delay_times") {
		return nil, &UnsupportedError{
			Reason: "the " + s.Type.String() + " sequence does not take queued waveforms"}
	}
	lengths := make([]int, len(refs))
	delays := make([]float64, len(refs))
	for i, ref := range refs {
		lengths[i] = ref.Length
		delays[i] = ref.Delay
	}
	var warnings []Warning
	if s.Has("buffer_lengths") {
		w, err := s.Set("buffer_lengths", lengths)
		if err != nil {
			return nil, err
		}
		if w != nil {
			warnings = append(warnings, *w)
		}
	}
	if s.Has("delay_times") {
		w, err := s.Set("delay_times", delays)
		if err != nil {
			return nil, err
		}
		if w != nil {
			warnings = append(warnings, *w)
		}
	}
	return warnings, nil
}
