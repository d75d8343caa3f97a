/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
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

package model

import (
	"fmt"
)

// NoAction is the reserved action denoting the absence of a decision
// point.  It is always implicitly declared.
const NoAction = "*"

// Kind discriminates Markov Chains from Markov Decision Processes.
type Kind string

const (
	// MC means every transition uses NoAction.
	MC Kind = "MC"

	// MDP means at least one transition is labeled by a real
	// action, so analysis requires a Policy.
	MDP Kind = "MDP"
)

// Transition is one weighted edge of a Model.
//
// Before Normalize, Weight is an arbitrary non-negative magnitude.
// After Normalize, Weight is a probability in [0,1].
type Transition struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Action string  `json:"action" yaml:"action"`
	Weight float64 `json:"weight" yaml:"weight"`
}

func (t *Transition) String() string {
	return fmt.Sprintf("%s --[%s:%g]--> %s", t.From, t.Action, t.Weight, t.To)
}

// Model is a Markov Chain or Markov Decision Process.
//
// States preserves insertion order; callers that want a default start
// state conventionally take the first one.  A state absent from
// Rewards has an undefined reward, which is distinct from a reward of
// zero.  Across one Model, rewards must be all defined or all
// undefined; Validate enforces that.
type Model struct {
	// Name is an optional label for this model.  Something like
	// "lossy-channel".
	Name string `json:"name,omitempty" yaml:",omitempty"`

	// Doc is general documentation about this model.
	Doc string `json:"doc,omitempty" yaml:",omitempty"`

	States      []string       `json:"states"`
	Rewards     map[string]int `json:"rewards,omitempty" yaml:",omitempty"`
	Actions     []string       `json:"actions"`
	Transitions []*Transition  `json:"transitions"`

	// Normalized reports whether transition weights are
	// probabilities.  Set only by Normalize.
	Normalized bool `json:"normalized,omitempty" yaml:",omitempty"`

	// out maps a state to its outgoing transitions grouped by
	// action.  Built by Validate.
	out map[string]map[string][]*Transition

	validated bool
}

// NewModel makes an empty Model with NoAction already declared.
func NewModel() *Model {
	return &Model{
		Actions: []string{NoAction},
	}
}

// AddState declares a state with an undefined reward.  Re-adding a
// known state is a no-op.
func (m *Model) AddState(name string) {
	m.invalidate()
	if m.HasState(name) {
		return
	}
	m.States = append(m.States, name)
}

// AddRewardState declares a state carrying the given reward.
// Re-adding a known state just updates its reward.
func (m *Model) AddRewardState(name string, reward int) {
	m.AddState(name)
	if m.Rewards == nil {
		m.Rewards = make(map[string]int)
	}
	m.Rewards[name] = reward
}

// AddAction declares an action.  A no-op if the action is already
// declared (NoAction always is).
func (m *Model) AddAction(name string) {
	m.invalidate()
	for _, a := range m.Actions {
		if a == name {
			return
		}
	}
	m.Actions = append(m.Actions, name)
}

// AddTransition appends a transition.  Repeated transitions between
// the same pair under the same action accumulate as independent
// entries; Normalize sums their weights.
func (m *Model) AddTransition(from, to, action string, weight float64) {
	m.invalidate()
	m.Transitions = append(m.Transitions, &Transition{
		From:   from,
		To:     to,
		Action: action,
		Weight: weight,
	})
}

// HasState reports whether the named state is declared.
func (m *Model) HasState(name string) bool {
	for _, s := range m.States {
		if s == name {
			return true
		}
	}
	return false
}

// HasAction reports whether the named action is declared.
func (m *Model) HasAction(name string) bool {
	for _, a := range m.Actions {
		if a == name {
			return true
		}
	}
	return false
}

// Kind returns MDP if any transition uses an action other than
// NoAction, and otherwise MC.
func (m *Model) Kind() Kind {
	for _, t := range m.Transitions {
		if t.Action != NoAction {
			return MDP
		}
	}
	return MC
}

// Rewardless reports whether every state has an undefined reward.
// Validate guarantees this is never a partial mix.
func (m *Model) Rewardless() bool {
	return len(m.Rewards) == 0
}

// Reward returns the named state's reward.  Zero for undefined; use
// Rewardless to distinguish.
func (m *Model) Reward(state string) int {
	return m.Rewards[state]
}

// Copy makes a deep copy of the Model.  The copy is unvalidated.
func (m *Model) Copy() *Model {
	states := make([]string, len(m.States))
	copy(states, m.States)

	var rewards map[string]int
	if m.Rewards != nil {
		rewards = make(map[string]int, len(m.Rewards))
		for s, r := range m.Rewards {
			rewards[s] = r
		}
	}

	actions := make([]string, len(m.Actions))
	copy(actions, m.Actions)

	ts := make([]*Transition, len(m.Transitions))
	for i, t := range m.Transitions {
		cp := *t
		ts[i] = &cp
	}

	return &Model{
		Name:        m.Name,
		Doc:         m.Doc,
		States:      states,
		Rewards:     rewards,
		Actions:     actions,
		Transitions: ts,
		Normalized:  m.Normalized,
	}
}

// Validate checks the structural invariants, gathering every
// violation rather than stopping at the first:
//
//  1. Rewards are all defined or all undefined, and defined rewards
//     are non-negative.
//  2. Every transition references declared states and a declared
//     action.
//  3. Every transition weight is non-negative.
//  4. No state has both action-labeled and NoAction-labeled outgoing
//     transitions.
//
// On any violation, the returned error is an *InvalidModel listing
// all of them.  On success, Validate builds the outgoing-transition
// index used by the analysis operations.
func (m *Model) Validate() error {
	problems := make([]string, 0, 8)

	if 0 < len(m.Rewards) {
		for _, s := range m.States {
			r, defined := m.Rewards[s]
			if !defined {
				problems = append(problems,
					fmt.Sprintf("state %q has no reward but other states do", s))
				continue
			}
			if r < 0 {
				problems = append(problems,
					fmt.Sprintf("state %q has negative reward %d", s, r))
			}
		}
		for s := range m.Rewards {
			if !m.HasState(s) {
				problems = append(problems,
					fmt.Sprintf("reward given for undeclared state %q", s))
			}
		}
	}

	for _, t := range m.Transitions {
		if !m.HasState(t.From) {
			problems = append(problems,
				fmt.Sprintf("transition source state %q not declared", t.From))
		}
		if !m.HasState(t.To) {
			problems = append(problems,
				fmt.Sprintf("transition target state %q not declared", t.To))
		}
		if !m.HasAction(t.Action) {
			problems = append(problems,
				fmt.Sprintf("transition action %q not declared", t.Action))
		}
		if t.Weight < 0 {
			problems = append(problems,
				fmt.Sprintf("transition %s has negative weight", t))
		}
	}

	// A state's outgoing transitions must be entirely NoAction or
	// entirely action-labeled.
	acting := make(map[string]bool)
	silent := make(map[string]bool)
	for _, t := range m.Transitions {
		if t.Action == NoAction {
			silent[t.From] = true
		} else {
			acting[t.From] = true
		}
	}
	for _, s := range m.States {
		if acting[s] && silent[s] {
			problems = append(problems,
				fmt.Sprintf("state %q mixes action and no-action transitions", s))
		}
	}

	if 0 < len(problems) {
		return &InvalidModel{Model: m, Problems: problems}
	}

	m.index()
	m.validated = true

	return nil
}

// index builds the state -> action -> outgoing transitions map.
func (m *Model) index() {
	m.out = make(map[string]map[string][]*Transition, len(m.States))
	for _, t := range m.Transitions {
		byAction, have := m.out[t.From]
		if !have {
			byAction = make(map[string][]*Transition)
			m.out[t.From] = byAction
		}
		byAction[t.Action] = append(byAction[t.Action], t)
	}
}

// outgoing returns the outgoing transitions for the given state under
// the given action.
func (m *Model) outgoing(state, action string) []*Transition {
	byAction, have := m.out[state]
	if !have {
		return nil
	}
	return byAction[action]
}

func (m *Model) invalidate() {
	m.validated = false
	m.out = nil
}
