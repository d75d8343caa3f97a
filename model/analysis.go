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
	"errors"
)

// NegativeSteps occurs when an analysis horizon is negative.
var NegativeSteps = errors.New("step count must be non-negative")

// Accessibility computes the probability of reaching the end state
// from the start state within the given number of steps.  The end
// state is treated as absorbing: mass that reaches it stays there, so
// the result is "reached by step n", not "at step n transiently".
//
// The iteration maintains a distribution over states, seeded with
// mass 1 at start.  Each step, the end state carries its mass forward
// unchanged while every other state redistributes its mass to
// successors in proportion to outgoing probabilities.  Mass at a dead
// end simply vanishes from circulation.
//
// The model must be normalized.  An MDP delegates by first reducing
// to a Markov Chain under the given policy; an MC ignores the policy.
// start == end yields 1.0 for any steps >= 0, and a target
// unreachable within the horizon yields 0.0, not an error.
func (m *Model) Accessibility(start, end string, policy Policy, steps int) (float64, error) {
	if m.Kind() == MDP {
		if len(policy) == 0 {
			return 0, &MissingPolicy{m}
		}
		mc, err := m.ChainFromPolicy(policy)
		if err != nil {
			return 0, err
		}
		return mc.Accessibility(start, end, nil, steps)
	}

	if !m.Normalized {
		return 0, &NotNormalized{m}
	}
	if !m.HasState(start) {
		return 0, &UnknownState{m, start}
	}
	if !m.HasState(end) {
		return 0, &UnknownState{m, end}
	}
	if steps < 0 {
		return 0, NegativeSteps
	}

	dist := map[string]float64{start: 1.0}
	for i := 0; i < steps; i++ {
		next := make(map[string]float64, len(dist))
		for s, mass := range dist {
			if mass == 0 {
				continue
			}
			if s == end {
				next[s] += mass
				continue
			}
			for _, t := range m.outgoing(s, NoAction) {
				if 0 < t.Weight {
					next[t.To] += mass * t.Weight
				}
			}
		}
		dist = next
	}

	return dist[end], nil
}

// ExpectedReward computes the expected cumulative reward along paths
// that are at the end state after the given number of steps,
// conditioned on being there: the accumulated reward mass at the end
// state divided by its probability mass.
//
// Two parallel distributions are maintained per state: probability
// mass and accumulated-reward mass, seeded with (1, 0) at start.
// Reward accrues once per visit-step for occupying a state before
// transitioning onward; the absorbing end state accrues its own
// reward each carried step.
//
// Preconditions match Accessibility, plus the model must define
// rewards.  A target with zero probability mass after the horizon
// yields 0.0, not an error.
func (m *Model) ExpectedReward(start, end string, policy Policy, steps int) (float64, error) {
	if m.Kind() == MDP {
		if len(policy) == 0 {
			return 0, &MissingPolicy{m}
		}
		mc, err := m.ChainFromPolicy(policy)
		if err != nil {
			return 0, err
		}
		return mc.ExpectedReward(start, end, nil, steps)
	}

	if !m.Normalized {
		return 0, &NotNormalized{m}
	}
	if m.Rewardless() {
		return 0, &NoRewards{m}
	}
	if !m.HasState(start) {
		return 0, &UnknownState{m, start}
	}
	if !m.HasState(end) {
		return 0, &UnknownState{m, end}
	}
	if steps < 0 {
		return 0, NegativeSteps
	}

	prob := map[string]float64{start: 1.0}
	acc := map[string]float64{start: 0.0}

	for i := 0; i < steps; i++ {
		nextProb := make(map[string]float64, len(prob))
		nextAcc := make(map[string]float64, len(acc))
		for s, mass := range prob {
			if mass == 0 {
				continue
			}
			earned := mass * float64(m.Reward(s))
			if s == end {
				nextProb[s] += mass
				nextAcc[s] += acc[s] + earned
				continue
			}
			carried := acc[s] + earned
			for _, t := range m.outgoing(s, NoAction) {
				if 0 < t.Weight {
					nextProb[t.To] += mass * t.Weight
					nextAcc[t.To] += carried * t.Weight
				}
			}
		}
		prob, acc = nextProb, nextAcc
	}

	if p := prob[end]; 0 < p {
		return acc[end] / p, nil
	}
	return 0.0, nil
}
