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

package policies

import (
	"context"
	"testing"
	"time"

	"github.com/Saidis18/model-checker/model"
)

func testModel(t *testing.T) *model.Model {
	m := model.NewModel()
	m.AddState("S0")
	m.AddState("S1")
	m.AddState("S2")
	m.AddAction("safe")
	m.AddAction("risky")
	m.AddTransition("S0", "S1", "safe", 1)
	m.AddTransition("S1", "S2", "risky", 1)
	m.AddTransition("S2", "S2", model.NoAction, 1)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCompile(t *testing.T) {
	m := testModel(t)

	p, err := Compile(context.Background(), `
function choose(state) {
  if (state == "S0") return "safe";
  if (state == "S1") return "risky";
  return "";
}
`, m)
	if err != nil {
		t.Fatal(err)
	}

	if a := p.Action("S0"); a != "safe" {
		t.Fatalf("expected safe; got %q", a)
	}
	if a := p.Action("S1"); a != "risky" {
		t.Fatalf("expected risky; got %q", a)
	}
	if a := p.Action("S2"); a != model.NoAction {
		t.Fatalf("expected %q; got %q", model.NoAction, a)
	}
}

func TestCompileUndefinedChoice(t *testing.T) {
	m := testModel(t)

	p, err := Compile(context.Background(), `function choose(state) {}`, m)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 0 {
		t.Fatalf("expected an empty policy; got %v", p)
	}
}

func TestCompileMissingChoose(t *testing.T) {
	m := testModel(t)

	if _, err := Compile(context.Background(), `var x = 1;`, m); err != NoChooseFunction {
		t.Fatalf("expected NoChooseFunction; got %v", err)
	}
}

func TestCompileBadScript(t *testing.T) {
	m := testModel(t)

	if _, err := Compile(context.Background(), `function choose(state {`, m); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCompileTimeout(t *testing.T) {
	m := testModel(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Compile(ctx, `function choose(state) { for (;;) {} }`, m)
	if err != Interrupted {
		t.Fatalf("expected Interrupted; got %v", err)
	}
}
