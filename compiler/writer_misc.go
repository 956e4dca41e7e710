package compiler

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/frostlab/awgseq"
)

// writeCustom loads an externally authored program and substitutes the
// positional placeholders with the supplied parameter values. Placeholders
// use template syntax: {{p 0}} expands to custom_params[0]. Beyond the file
// extension and placeholder bounds nothing is validated; timing and
// waveform layout are the author's responsibility.
func writeCustom(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	p := spec.Custom
	if p.Path == "" {
		return "", nil, &awgseq.ValidationError{Field: "path", Value: p.Path,
			Reason: "a custom sequence needs a program file"}
	}
	if filepath.Ext(p.Path) != ".seqc" {
		return "", nil, &awgseq.ValidationError{Field: "path", Value: p.Path,
			Reason: "must point to a .seqc file"}
	}
	raw, err := opts.readFile(p.Path)
	if err != nil {
		return "", nil, fmt.Errorf("could not read custom sequence %v: %w", p.Path, err)
	}
	params := p.Params
	tmpl, err := template.New(filepath.Base(p.Path)).Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"p": func(i int) (float64, error) {
				if i < 0 || i >= len(params) {
					return 0, fmt.Errorf("placeholder %d is out of range, %d parameters supplied", i, len(params))
				}
				return params[i], nil
			},
		}).Parse(string(raw))
	if err != nil {
		return "", nil, fmt.Errorf("could not parse custom sequence %v: %w", p.Path, err)
	}
	var body strings.Builder
	if err := tmpl.Execute(&body, struct{ Params []float64 }{params}); err != nil {
		return "", nil, fmt.Errorf("could not render custom sequence %v: %w", p.Path, err)
	}
	header, err := renderHeader(spec.Type, spec.Base, opts.now)
	if err != nil {
		return "", nil, err
	}
	text := header + body.String()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text, nil, nil
}

// writeTrigger emits no waveform or playback; it defines and sends the
// trigger pulse once. A trigger mode that cannot send is corrected to plain
// sending with a warning.
func writeTrigger(spec *awgseq.SequenceSpec, opts writeOptions) (string, []awgseq.Warning, error) {
	var warnings []awgseq.Warning
	corrected := *spec
	if m := spec.Base.TriggerMode; m != awgseq.TriggerSend && m != awgseq.TriggerSendAndReceive {
		corrected.Base.TriggerMode = awgseq.TriggerSend
		warnings = append(warnings, awgseq.Warning{
			Field:     "trigger_mode",
			Message:   "the trigger sequence must send; corrected",
			Original:  m,
			Corrected: awgseq.TriggerSend,
		})
	}
	t, err := deriveTiming(&corrected)
	if err != nil {
		return "", nil, err
	}
	header, err := renderHeader(corrected.Type, corrected.Base, opts.now)
	if err != nil {
		return "", nil, err
	}
	var e emitter
	e.sb.WriteString(header)
	for _, line := range t.Trigger.Before {
		e.line(line)
	}
	e.line(waitCycles(t.WaitCycles))
	for _, line := range t.Trigger.After {
		e.line(line)
	}
	if t.DeadCycles > 0 {
		e.line(waitCycles(t.DeadCycles))
	}
	return e.String(), warnings, nil
}
