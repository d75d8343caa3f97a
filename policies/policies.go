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

// Package policies compiles script-defined policies.
//
// A policy script is ECMAScript (executed by Goja) that defines a
// function
//
//	function choose(state) { ... }
//
// returning the name of the action to take at the given state.
// Returning "", null, or undefined means the no-action symbol.
// Compile evaluates choose for every state of a model and
// materializes the result as a plain model.Policy, so scripts run
// once, at compilation, and never during analysis.
package policies

import (
	"context"
	"errors"
	"time"

	"github.com/Saidis18/model-checker/model"

	"github.com/dop251/goja"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Compile if the script's
	// execution is interrupted.
	Interrupted = errors.New(InterruptedMessage)

	// NoChooseFunction is returned by Compile when the script
	// doesn't define choose().
	NoChooseFunction = errors.New(`policy script must define choose(state)`)
)

// Compile runs the given policy script and evaluates its choose()
// for every state of the given model.
//
// The ctx deadline (if any) bounds the total script execution time.
func Compile(ctx context.Context, src string, m *model.Model) (model.Policy, error) {
	rt := goja.New()

	if deadline, have := ctx.Deadline(); have {
		timer := time.AfterFunc(time.Until(deadline), func() {
			rt.Interrupt(Interrupted)
		})
		defer timer.Stop()
	}

	if _, err := rt.RunString(src); err != nil {
		return nil, err
	}

	choose, is := goja.AssertFunction(rt.Get("choose"))
	if !is {
		return nil, NoChooseFunction
	}

	p := make(model.Policy, len(m.States))
	for _, s := range m.States {
		v, err := choose(goja.Undefined(), rt.ToValue(s))
		if err != nil {
			if _, interrupted := err.(*goja.InterruptedError); interrupted {
				return nil, Interrupted
			}
			return nil, err
		}
		if goja.IsUndefined(v) || goja.IsNull(v) {
			continue
		}
		if a := v.String(); a != "" && a != model.NoAction {
			p[s] = a
		}
	}

	return p, nil
}
