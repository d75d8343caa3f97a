package tools

import (
	"fmt"
	"html"
	"io"

	"github.com/Saidis18/model-checker/model"

	md "github.com/russross/blackfriday/v2"
)

// RenderModelHTML writes an HTML report for the given model: its
// documentation (markdown), a summary line, a state table with
// rewards, and a transition table.
//
// Just the body; the caller supplies any page scaffolding.
func RenderModelHTML(m *model.Model, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	if m.Name != "" {
		f(`<h1 class="modelName">%s</h1>`, html.EscapeString(m.Name))
	}
	if m.Doc != "" {
		f(`<div class="modelDoc doc">%s</div>`, md.Run([]byte(m.Doc)))
	}

	a, err := Analyze(m)
	if err != nil {
		return err
	}
	f(`<p class="summary">%s, %d states, %d transitions, normalized: %v</p>`,
		a.Kind, a.StateCount, a.TransitionCount, a.Normalized)

	{ // States
		f(`<table class="states">`)
		f(`<tr><th>state</th><th>reward</th></tr>`)
		for _, s := range m.States {
			reward := ""
			if r, defined := m.Rewards[s]; defined {
				reward = fmt.Sprintf("%d", r)
			}
			f(`<tr><td><span id="%s" class="stateName">%s</span></td><td>%s</td></tr>`,
				html.EscapeString(s), html.EscapeString(s), reward)
		}
		f(`</table>`)
	}

	{ // Transitions
		f(`<table class="transitions">`)
		f(`<tr><th>from</th><th>action</th><th>weight</th><th>to</th></tr>`)
		for _, t := range m.Transitions {
			f(`<tr><td><a href="#%s"><code>%s</code></a></td><td>%s</td><td>%s</td><td><a href="#%s"><code>%s</code></a></td></tr>`,
				html.EscapeString(t.From), html.EscapeString(t.From),
				html.EscapeString(t.Action),
				weight(m, t),
				html.EscapeString(t.To), html.EscapeString(t.To))
		}
		f(`</table>`)
	}

	return nil
}
