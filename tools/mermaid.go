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

package tools

import (
	"fmt"
	"io"

	"github.com/Saidis18/model-checker/model"
)

// MermaidOpts controls Mermaid output.
type MermaidOpts struct {
	// Direction is the flowchart direction.  Defaults to "LR".
	Direction string `json:"direction,omitempty"`

	// ShowWeights includes transition weights in edge labels.
	ShowWeights bool `json:"showWeights"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given model.
func Mermaid(m *model.Model, w io.Writer, opts *MermaidOpts) error {
	if opts == nil {
		opts = &MermaidOpts{
			ShowWeights: true,
		}
	}
	direction := opts.Direction
	if direction == "" {
		direction = "LR"
	}

	fmt.Fprintf(w, "graph %s\n", direction)

	for _, s := range m.States {
		label := s
		if r, defined := m.Rewards[s]; defined {
			label = fmt.Sprintf("%s (r=%d)", s, r)
		}
		fmt.Fprintf(w, "%s(\"%s\")\n", s, label)
	}

	for _, t := range m.Transitions {
		label := t.Action
		if opts.ShowWeights {
			label += ": " + weight(m, t)
		}
		fmt.Fprintf(w, "%s-- \"%s\" -->%s\n", t.From, label, t.To)
	}

	return nil
}
