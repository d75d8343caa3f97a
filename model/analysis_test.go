/* Copyright 2021 Comcast Cable Communications Management, LLC
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
	"testing"
)

// branchingChain is a 3-state MC: A (reward 2) branches evenly to B
// and C, B goes to C, and C is absorbing.
func branchingChain(t *testing.T) *Model {
	m := NewModel()
	m.AddRewardState("A", 2)
	m.AddRewardState("B", 0)
	m.AddRewardState("C", 0)
	m.AddTransition("A", "B", NoAction, 1)
	m.AddTransition("A", "C", NoAction, 1)
	m.AddTransition("B", "C", NoAction, 1)
	m.AddTransition("C", "C", NoAction, 1)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	n, err := m.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestAccessibility(t *testing.T) {
	n := branchingChain(t)

	tests := []struct {
		description string
		start, end  string
		steps       int
		want        float64
	}{
		{"zero steps at the target", "A", "A", 0, 1.0},
		{"zero steps away from the target", "A", "C", 0, 0.0},
		{"one step", "A", "C", 1, 0.5},
		{"two steps", "A", "C", 2, 1.0},
		{"absorbed mass stays", "A", "C", 10, 1.0},
		{"start equals end regardless of steps", "C", "C", 7, 1.0},
		{"no path back", "C", "A", 5, 0.0},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			got, err := n.Accessibility(test.start, test.end, nil, test.steps)
			if err != nil {
				t.Fatal(err)
			}
			if !near(got, test.want) {
				t.Fatalf("expected %v; got %v", test.want, got)
			}
		})
	}
}

func TestAccessibilityMonotone(t *testing.T) {
	n := branchingChain(t)
	prev := -1.0
	for steps := 0; steps <= 8; steps++ {
		p, err := n.Accessibility("A", "C", nil, steps)
		if err != nil {
			t.Fatal(err)
		}
		if p < prev-tolerance {
			t.Fatalf("probability decreased at %d steps: %v < %v", steps, p, prev)
		}
		prev = p
	}
}

func TestAccessibilityMassLoss(t *testing.T) {
	// B is a dead end, so mass entering it vanishes.
	m := NewModel()
	m.AddState("A")
	m.AddState("B")
	m.AddState("C")
	m.AddTransition("A", "B", NoAction, 1)
	m.AddTransition("A", "C", NoAction, 1)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	n, err := m.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	p, err := n.Accessibility("A", "C", nil, 9)
	if err != nil {
		t.Fatal(err)
	}
	if !near(p, 0.5) {
		t.Fatalf("expected 0.5; got %v", p)
	}
}

func TestAccessibilityPreconditions(t *testing.T) {
	m := NewModel()
	m.AddState("A")
	m.AddTransition("A", "A", NoAction, 1)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Accessibility("A", "A", nil, 1); err == nil {
		t.Fatal("expected an error on a non-normalized model")
	} else if _, is := err.(*NotNormalized); !is {
		t.Fatalf("expected *NotNormalized; got %T", err)
	}

	n, err := m.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := n.Accessibility("A", "missing", nil, 1); err == nil {
		t.Fatal("expected an error for an unknown state")
	} else if _, is := err.(*UnknownState); !is {
		t.Fatalf("expected *UnknownState; got %T", err)
	}
	if _, err := n.Accessibility("A", "A", nil, -1); err != NegativeSteps {
		t.Fatalf("expected NegativeSteps; got %v", err)
	}
}

func TestAccessibilityMDPDelegation(t *testing.T) {
	m := lossyMDP(t)

	if _, err := m.Accessibility("S0", "S2", nil, 3); err == nil {
		t.Fatal("expected an error without a policy")
	} else if _, is := err.(*MissingPolicy); !is {
		t.Fatalf("expected *MissingPolicy; got %T", err)
	}

	// Risky at S0: 3/4 to the sink in one step.
	p, err := m.Accessibility("S0", "S2", Policy{"S0": "risky"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !near(p, 0.75) {
		t.Fatalf("expected 0.75; got %v", p)
	}

	// Safe at S0 never reaches the sink.
	p, err = m.Accessibility("S0", "S2", Policy{"S0": "safe"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !near(p, 0.0) {
		t.Fatalf("expected 0.0; got %v", p)
	}
}

func TestAccessibilityDelegationNormalizationAgnostic(t *testing.T) {
	// Reduction normalizes its own result, so the answer cannot
	// depend on whether the MDP was normalized first.
	m := lossyMDP(t)
	policy := Policy{"S0": "risky"}

	raw, err := m.Accessibility("S0", "S2", policy, 3)
	if err != nil {
		t.Fatal(err)
	}

	n, err := m.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	normed, err := n.Accessibility("S0", "S2", policy, 3)
	if err != nil {
		t.Fatal(err)
	}

	if !near(raw, normed) {
		t.Fatalf("got %v from the raw MDP but %v from the normalized one", raw, normed)
	}
}

func TestExpectedReward(t *testing.T) {
	n := branchingChain(t)

	// Reward is earned at A regardless of the branch taken.
	r, err := n.ExpectedReward("A", "C", nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !near(r, 2.0) {
		t.Fatalf("expected 2.0; got %v", r)
	}

	// Two steps: both the direct branch and the branch through B
	// carry the 2 from A; B and C add nothing.
	r, err = n.ExpectedReward("A", "C", nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !near(r, 2.0) {
		t.Fatalf("expected 2.0; got %v", r)
	}
}

func TestExpectedRewardAccrual(t *testing.T) {
	// A straight line A -> B -> C where every occupied state pays.
	m := NewModel()
	m.AddRewardState("A", 1)
	m.AddRewardState("B", 10)
	m.AddRewardState("C", 100)
	m.AddTransition("A", "B", NoAction, 1)
	m.AddTransition("B", "C", NoAction, 1)
	m.AddTransition("C", "C", NoAction, 1)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	n, err := m.Normalize()
	if err != nil {
		t.Fatal(err)
	}

	// Occupy A, then B; arrive at C without accruing C yet.
	r, err := n.ExpectedReward("A", "C", nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !near(r, 11.0) {
		t.Fatalf("expected 11.0; got %v", r)
	}

	// One more step adds C's own reward once.
	r, err = n.ExpectedReward("A", "C", nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !near(r, 111.0) {
		t.Fatalf("expected 111.0; got %v", r)
	}
}

func TestExpectedRewardUnreachable(t *testing.T) {
	n := branchingChain(t)
	r, err := n.ExpectedReward("C", "A", nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if r != 0.0 {
		t.Fatalf("expected 0.0; got %v", r)
	}
}

func TestExpectedRewardRewardless(t *testing.T) {
	m := NewModel()
	m.AddState("A")
	m.AddTransition("A", "A", NoAction, 1)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	n, err := m.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := n.ExpectedReward("A", "A", nil, 1); err == nil {
		t.Fatal("expected an error")
	} else if _, is := err.(*NoRewards); !is {
		t.Fatalf("expected *NoRewards; got %T", err)
	}
}

func TestExpectedRewardMDPDelegation(t *testing.T) {
	m := lossyMDP(t)

	// Safe at S0: one step always lands at S1, earning S0's 1.
	r, err := m.ExpectedReward("S0", "S1", Policy{"S0": "safe"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !near(r, 1.0) {
		t.Fatalf("expected 1.0; got %v", r)
	}
}
