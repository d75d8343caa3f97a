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

package model

// Policy is a stationary mapping from state name to the action chosen
// there.  A Policy is caller-owned: the Model never stores one.
type Policy map[string]string

// Action returns the policy's choice at the given state.  Unmapped
// states (and a nil Policy) default to NoAction.
func (p Policy) Action(state string) string {
	if p == nil {
		return NoAction
	}
	a, have := p[state]
	if !have || a == "" {
		return NoAction
	}
	return a
}

// ChainFromPolicy projects an MDP under the given policy into an
// equivalent Markov Chain.
//
// States and rewards are copied verbatim, the action set is reset to
// just NoAction, and the transitions are exactly those whose action
// equals the policy's choice at their source state, relabeled with
// NoAction.  A state the policy leaves unmapped keeps only its
// NoAction transitions (if any).
//
// The receiver must be a validated MDP.  The result is validated and
// normalized, so it is ready for MC-only analysis.
func (m *Model) ChainFromPolicy(p Policy) (*Model, error) {
	if !m.validated {
		return nil, &NotValidated{m}
	}
	if kind := m.Kind(); kind != MDP {
		return nil, &NotKind{Model: m, Want: MDP, Got: kind}
	}

	c := NewModel()
	c.Name = m.Name
	c.Doc = m.Doc
	for _, s := range m.States {
		if r, defined := m.Rewards[s]; defined {
			c.AddRewardState(s, r)
		} else {
			c.AddState(s)
		}
	}

	for _, t := range m.Transitions {
		if t.Action != p.Action(t.From) {
			continue
		}
		c.AddTransition(t.From, t.To, NoAction, t.Weight)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c.Normalize()
}
