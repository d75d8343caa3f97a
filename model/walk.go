/* Copyright 2019 Comcast Cable Communications Management, LLC
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
	"math/rand"
	"strings"
	"time"
)

// StopReason represents the possible reasons for a Walk to terminate.
type StopReason int

const (
	// Exhausted means the walk took all of the requested steps.
	Exhausted StopReason = iota

	// DeadEnd means no outgoing transition matched the acting
	// policy, so the walk terminated early.
	DeadEnd
)

// Path is the result of a Walk: the sequence of visited states, in
// order, and the total reward accrued along the way.
//
// HasReward is false when the model is rewardless, in which case
// Reward is meaningless.
type Path struct {
	States    []string   `json:"states"`
	Reward    int        `json:"reward,omitempty" yaml:",omitempty"`
	HasReward bool       `json:"hasReward,omitempty" yaml:",omitempty"`
	Stopped   StopReason `json:"-" yaml:"-"`
}

func (p *Path) String() string {
	return strings.Join(p.States, " -> ")
}

// Walk simulates a single stochastic trajectory of up to the given
// number of steps, starting at the given state.
//
// At each step the current state's outgoing transitions are filtered
// to the action the policy selects there (NoAction for an MC or an
// unmapped state).  If none match, the walk stops early with a
// strictly shorter path, which is not an error.  Otherwise the
// current state's reward (if the model defines rewards) is accrued
// for occupying it, and the successor is drawn by weighted random
// selection over the matching transitions.
//
// The model must be normalized and the start state declared; an MDP
// requires a non-empty policy.  The random source makes walks
// reproducible under test; a nil src gets a time-seeded one.
func (m *Model) Walk(start string, steps int, policy Policy, src *rand.Rand) (*Path, error) {
	if !m.Normalized {
		return nil, &NotNormalized{m}
	}
	if !m.HasState(start) {
		return nil, &UnknownState{m, start}
	}
	if m.Kind() == MDP && len(policy) == 0 {
		return nil, &MissingPolicy{m}
	}
	if steps < 0 {
		return nil, NegativeSteps
	}
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	path := &Path{
		States:    make([]string, 0, steps+1),
		HasReward: !m.Rewardless(),
		Stopped:   Exhausted,
	}

	at := start
	path.States = append(path.States, at)

	for i := 0; i < steps; i++ {
		action := policy.Action(at)

		var (
			matching []*Transition
			total    float64
		)
		for _, t := range m.outgoing(at, action) {
			if 0 < t.Weight {
				matching = append(matching, t)
				total += t.Weight
			}
		}
		if len(matching) == 0 {
			path.Stopped = DeadEnd
			break
		}

		if path.HasReward {
			path.Reward += m.Reward(at)
		}

		draw := src.Float64() * total
		next := matching[len(matching)-1]
		for _, t := range matching {
			if draw < t.Weight {
				next = t
				break
			}
			draw -= t.Weight
		}

		at = next.To
		path.States = append(path.States, at)
	}

	return path, nil
}
