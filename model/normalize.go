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

// Normalize returns a Model whose transition weights are per-(state,
// action) probability distributions.
//
// Transitions are grouped by (From, Action), and each weight becomes
// weight/groupSum.  A group with zero total weight normalizes to
// all-zero probabilities: that state becomes a dead end under that
// action, which is not an error.
//
// The receiver must have passed Validate and is never mutated.
// Calling Normalize on an already-normalized Model returns the
// receiver unchanged, so re-invocation is a guaranteed no-op.
func (m *Model) Normalize() (*Model, error) {
	if m.Normalized {
		return m, nil
	}
	if !m.validated {
		return nil, &NotValidated{m}
	}

	type group struct {
		from   string
		action string
	}

	sums := make(map[group]float64)
	for _, t := range m.Transitions {
		sums[group{t.From, t.Action}] += t.Weight
	}

	n := m.Copy()
	for _, t := range n.Transitions {
		sum := sums[group{t.From, t.Action}]
		if 0 < sum {
			t.Weight = t.Weight / sum
		} else {
			t.Weight = 0.0
		}
	}
	n.Normalized = true

	if err := n.Validate(); err != nil {
		// Can't happen: the receiver was valid and weights
		// only shrank toward [0,1].
		return nil, err
	}

	return n, nil
}
