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

package main

import (
	"testing"

	"github.com/Saidis18/model-checker/model"
)

func TestResultKeyDistinguishesPolicies(t *testing.T) {
	safe := model.Policy{"S0": "safe"}
	risky := model.Policy{"S0": "risky"}

	a := resultKey("accessibility", "S0", "S2", 10, safe)
	b := resultKey("accessibility", "S0", "S2", 10, risky)
	if a == b {
		t.Fatalf("policies safe and risky share the key %q", a)
	}
}

func TestResultKeyCanonical(t *testing.T) {
	// The same mapping must yield the same key however it was
	// materialized: inline JSON, a script, or no policy at all.
	inline := model.Policy{"S0": "safe", "S1": "safe"}
	scripted := model.Policy{}
	scripted["S1"] = "safe"
	scripted["S0"] = "safe"

	a := resultKey("reward", "S0", "S2", 5, inline)
	b := resultKey("reward", "S0", "S2", 5, scripted)
	if a != b {
		t.Fatalf("equal policies got keys %q and %q", a, b)
	}

	if resultKey("reward", "A", "C", 3, nil) != resultKey("reward", "A", "C", 3, model.Policy{}) {
		t.Fatal("nil policy and empty policy should share a key")
	}
}

func TestResultKeyDimensions(t *testing.T) {
	base := resultKey("accessibility", "A", "C", 3, nil)
	for _, other := range []string{
		resultKey("reward", "A", "C", 3, nil),
		resultKey("accessibility", "B", "C", 3, nil),
		resultKey("accessibility", "A", "B", 3, nil),
		resultKey("accessibility", "A", "C", 4, nil),
	} {
		if other == base {
			t.Fatalf("key %q fails to separate distinct queries", base)
		}
	}
}
