/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package tools renders and summarizes models for reporting: Graphviz
// DOT, Mermaid, an HTML report, and a static analysis.
package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"strings"

	"github.com/Saidis18/model-checker/model"
)

// DotOpts controls Dot output.
type DotOpts struct {
	// RankDir is the Graphviz rank direction.  Defaults to "LR".
	RankDir string `json:"rankdir,omitempty" yaml:"rankdir,omitempty"`

	// Highlight names a state to fill red (say the target of a
	// reachability question).
	Highlight string `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

// Dot writes a Graphviz dot file for the given model.
//
// States become nodes labeled with their rewards (when defined).
// Parallel transitions between the same pair of states are merged
// into one edge with a line per transition, "action -- weight".  A
// normalized model gets probability-formatted weights.
func Dot(m *model.Model, w io.Writer, opts *DotOpts) error {
	if opts == nil {
		opts = &DotOpts{}
	}
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}

	fmt.Fprintf(w, "digraph %s {\n", dotID(m))
	fmt.Fprintf(w, "  graph [rankdir=%s,nodesep=0.3,ranksep=0.6]\n", rankdir)
	fmt.Fprintf(w, "  node [shape=\"circle\" style=\"filled\" fillcolor=\"lightblue\"]\n")
	fmt.Fprintf(w, "  edge [color=\"gray\" fontsize=\"12\"]\n")

	for i, s := range m.States {
		label := s
		if r, defined := m.Rewards[s]; defined {
			label += fmt.Sprintf("\\n(r=%d)", r)
		}
		style := "filled"
		if i == 0 {
			style += ",bold"
		}
		fillcolor := "lightblue"
		if s == opts.Highlight {
			fillcolor = "#f98b8b"
		}
		if terminal(m, s) {
			style += ",dashed"
		}
		fmt.Fprintf(w, "  %s [style=\"%s\", fillcolor=\"%s\", label=\"%s\"]\n",
			s, style, fillcolor, label)
	}

	type edge struct {
		from string
		to   string
	}
	labels := make(map[edge][]string)
	order := make([]edge, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		e := edge{t.From, t.To}
		if _, have := labels[e]; !have {
			order = append(order, e)
		}
		labels[e] = append(labels[e], t.Action+" -- "+weight(m, t))
	}

	for _, e := range order {
		fmt.Fprintf(w, "  %s -> %s [label=\"%s\"]\n",
			e.from, e.to, strings.Join(labels[e], "\\n"))
	}

	fmt.Fprintf(w, "}\n")

	return nil
}

func dotID(m *model.Model) string {
	if m.Name == "" {
		return "model"
	}
	return `"` + m.Name + `"`
}

func weight(m *model.Model, t *model.Transition) string {
	if m.Normalized {
		return fmt.Sprintf("%.3f", t.Weight)
	}
	return fmt.Sprintf("%g", t.Weight)
}

func terminal(m *model.Model, state string) bool {
	for _, t := range m.Transitions {
		if t.From == state {
			return false
		}
	}
	return true
}
