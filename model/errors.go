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

// These errors are user errors, not internal errors.  Each one tries
// to name the offending entity so the caller can locate the defect in
// the source model description.

import (
	"strings"
)

// InvalidModel occurs when Validate finds structural violations.
// Problems lists all of them, not just the first.
type InvalidModel struct {
	Model    *Model
	Problems []string
}

func (e *InvalidModel) Error() string {
	return "invalid model " + name(e.Model) + ": " + strings.Join(e.Problems, "; ")
}

// NotValidated occurs when an operation that requires a validated
// Model (such as Normalize) is attempted before Validate has passed.
type NotValidated struct {
	Model *Model
}

func (e *NotValidated) Error() string {
	return "model " + name(e.Model) + " not validated"
}

// NotNormalized occurs when an analysis or a walk is attempted on a
// Model whose weights are still raw magnitudes.
type NotNormalized struct {
	Model *Model
}

func (e *NotNormalized) Error() string {
	return "model " + name(e.Model) + " not normalized"
}

// MissingPolicy occurs when an MDP operation is invoked without a
// policy.
type MissingPolicy struct {
	Model *Model
}

func (e *MissingPolicy) Error() string {
	return "model " + name(e.Model) + " is an MDP, which requires a policy"
}

// NotKind occurs when an operation is invoked on the wrong kind of
// model: for example, ChainFromPolicy on a Markov Chain.
type NotKind struct {
	Model *Model
	Want  Kind
	Got   Kind
}

func (e *NotKind) Error() string {
	return "model " + name(e.Model) + " is a " + string(e.Got) +
		", but the operation requires a " + string(e.Want)
}

// UnknownState occurs when a caller names a state that the Model does
// not declare.
type UnknownState struct {
	Model *Model
	Name  string
}

func (e *UnknownState) Error() string {
	return `state "` + e.Name + `" not declared in model ` + name(e.Model)
}

// NoRewards occurs when ExpectedReward is invoked on a rewardless
// Model.
type NoRewards struct {
	Model *Model
}

func (e *NoRewards) Error() string {
	return "model " + name(e.Model) + " has no rewards"
}

func name(m *Model) string {
	if m == nil || m.Name == "" {
		return `"anonymous"`
	}
	return `"` + m.Name + `"`
}
