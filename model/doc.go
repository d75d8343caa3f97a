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

// Package model provides finite-state probabilistic models: Markov
// Chains and Markov Decision Processes built from states (optionally
// carrying rewards), actions, and weighted transitions.
//
// The primary type is Model.  A Model is populated incrementally via
// AddState, AddAction, and AddTransition, then checked once with
// Validate.  Normalize turns raw transition weights into per-(state,
// action) probability distributions, returning a new Model and
// leaving the original untouched.  A normalized Model supports the
// analysis operations: Accessibility (bounded-horizon reachability
// with an absorbing target), ExpectedReward (expected cumulative
// reward conditioned on reaching the target), and Walk (stochastic
// path simulation).
//
// A Model with at least one transition labeled by an action other
// than NoAction is an MDP.  MDP analysis goes through
// ChainFromPolicy, which projects the MDP under a stationary Policy
// into an equivalent Markov Chain.
//
// Nothing here does IO, and no analysis operation mutates the Model.
// Once a Model is validated and normalized, any number of readers can
// use it concurrently.  Construction and validation are
// single-writer.
package model
