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
	"sort"

	"github.com/Saidis18/model-checker/model"

	"gopkg.in/yaml.v2"
)

// ModelAnalysis is a static summary of a model: its shape and the
// structural oddities worth a look before running any analysis.
type ModelAnalysis struct {
	Kind       model.Kind `yaml:"kind"`
	Rewardless bool       `yaml:"rewardless"`
	Normalized bool       `yaml:"normalized"`

	StateCount      int `yaml:"states"`
	ActionCount     int `yaml:"actions"`
	TransitionCount int `yaml:"transitions"`

	// DeadEnds lists states with no outgoing transitions.  A walk
	// arriving at one stops there.
	DeadEnds []string `yaml:"deadEnds,omitempty"`

	// Unreachable lists states with no path from the first
	// (default start) state.
	Unreachable []string `yaml:"unreachable,omitempty"`

	// Undefined lists states and actions that transitions mention
	// but the model never declares.  A model that passed Validate
	// has none, but Analyze also accepts work in progress.
	Undefined []string `yaml:"undefined,omitempty"`

	// FanOut maps each state with outgoing transitions to its
	// out-degree.
	FanOut map[string]int `yaml:"fanOut,omitempty"`

	// ActionFanOut maps each action to the number of transitions
	// labeled with it.
	ActionFanOut map[string]int `yaml:"actionFanOut,omitempty"`
}

// Analyze summarizes the given model.
func Analyze(m *model.Model) (*ModelAnalysis, error) {
	a := &ModelAnalysis{
		Kind:            m.Kind(),
		Rewardless:      m.Rewardless(),
		Normalized:      m.Normalized,
		StateCount:      len(m.States),
		ActionCount:     len(m.Actions),
		TransitionCount: len(m.Transitions),
		FanOut:          make(map[string]int, len(m.States)),
		ActionFanOut:    make(map[string]int, len(m.Actions)),
	}

	successors := make(map[string][]string, len(m.States))
	undefined := make(map[string]bool)
	for _, t := range m.Transitions {
		a.FanOut[t.From]++
		a.ActionFanOut[t.Action]++
		successors[t.From] = append(successors[t.From], t.To)
		if !m.HasState(t.From) {
			undefined["state "+t.From] = true
		}
		if !m.HasState(t.To) {
			undefined["state "+t.To] = true
		}
		if !m.HasAction(t.Action) {
			undefined["action "+t.Action] = true
		}
	}
	for ref := range undefined {
		a.Undefined = append(a.Undefined, ref)
	}
	sort.Strings(a.Undefined)

	for _, s := range m.States {
		if a.FanOut[s] == 0 {
			a.DeadEnds = append(a.DeadEnds, s)
		}
	}
	sort.Strings(a.DeadEnds)

	if 0 < len(m.States) {
		reached := map[string]bool{m.States[0]: true}
		frontier := []string{m.States[0]}
		for 0 < len(frontier) {
			s := frontier[0]
			frontier = frontier[1:]
			for _, next := range successors[s] {
				if !reached[next] {
					reached[next] = true
					frontier = append(frontier, next)
				}
			}
		}
		for _, s := range m.States {
			if !reached[s] {
				a.Unreachable = append(a.Unreachable, s)
			}
		}
		sort.Strings(a.Unreachable)
	}

	return a, nil
}

// YAML renders the analysis as YAML for human consumption.
func (a *ModelAnalysis) YAML() (string, error) {
	bs, err := yaml.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
