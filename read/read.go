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

// Package read builds models from textual descriptions.
//
// Two forms are supported: a line-oriented grammar (see Read) and
// YAML documents (see ReadYAML).  Both populate a model.Model through
// its mutation API and finish with Validate, so a successful read
// always returns a structurally sound model.
package read

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Saidis18/model-checker/model"
)

// The grammar is line-oriented.  Statements end with ';', '#' starts
// a comment, and blank lines are ignored:
//
//	states S0 [7], S1 [4], S2 [0];
//	actions a, b;
//	S0 [a] -> 5:S1 + 5:S2;
//	S1 -> 3:S0 + 7:S2;
//
// A bracketed integer after a state name is its reward; states are
// all bracketed or all bare (mixing fails validation).  A bracketed
// action name after a transition's source selects that action;
// without one the transition is a no-action transition.  Targets are
// weight:state pairs joined by '+'.
var (
	statesLine  = regexp.MustCompile(`^states\s+(.+)$`)
	actionsLine = regexp.MustCompile(`^actions\s+(.+)$`)
	transLine   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:\[\s*([A-Za-z_][A-Za-z0-9_]*)\s*\])?\s*->\s*(.+)$`)
	stateDecl   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:\[\s*(\d+)\s*\])?$`)
	targetDecl  = regexp.MustCompile(`^(\d+)\s*:\s*([A-Za-z_][A-Za-z0-9_]*)$`)
)

// SyntaxError occurs when a line of a model description cannot be
// parsed.
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Read parses a line-oriented model description and returns the
// validated model.
func Read(r io.Reader) (*model.Model, error) {
	m := model.NewModel()

	in := bufio.NewScanner(r)
	lineNo := 0
	for in.Scan() {
		lineNo++
		line := in.Text()
		if i := strings.Index(line, "#"); 0 <= i {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, ";") {
			return nil, &SyntaxError{lineNo, line, "missing terminating ';'"}
		}
		line = strings.TrimSpace(strings.TrimSuffix(line, ";"))

		switch {
		case statesLine.MatchString(line):
			if err := readStates(m, statesLine.FindStringSubmatch(line)[1]); err != nil {
				return nil, &SyntaxError{lineNo, line, err.Error()}
			}
		case actionsLine.MatchString(line):
			for _, a := range splitList(actionsLine.FindStringSubmatch(line)[1]) {
				m.AddAction(a)
			}
		case transLine.MatchString(line):
			if err := readTransition(m, transLine.FindStringSubmatch(line)); err != nil {
				return nil, &SyntaxError{lineNo, line, err.Error()}
			}
		default:
			return nil, &SyntaxError{lineNo, line, "unrecognized statement"}
		}
	}
	if err := in.Err(); err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// ReadFile parses the model description in the named file.
func ReadFile(filename string) (*model.Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// ReadString parses the model description in the given string.
func ReadString(src string) (*model.Model, error) {
	return Read(strings.NewReader(src))
}

func readStates(m *model.Model, list string) error {
	for _, decl := range splitList(list) {
		match := stateDecl.FindStringSubmatch(decl)
		if match == nil {
			return fmt.Errorf("bad state declaration %q", decl)
		}
		name, reward := match[1], match[2]
		if reward == "" {
			m.AddState(name)
			continue
		}
		r, err := strconv.Atoi(reward)
		if err != nil {
			return fmt.Errorf("bad reward in %q", decl)
		}
		m.AddRewardState(name, r)
	}
	return nil
}

func readTransition(m *model.Model, match []string) error {
	from, action, targets := match[1], match[2], match[3]
	if action == "" {
		action = model.NoAction
	}
	for _, decl := range strings.Split(targets, "+") {
		decl = strings.TrimSpace(decl)
		target := targetDecl.FindStringSubmatch(decl)
		if target == nil {
			return fmt.Errorf("bad transition target %q", decl)
		}
		weight, err := strconv.Atoi(target[1])
		if err != nil {
			return fmt.Errorf("bad weight in %q", decl)
		}
		m.AddTransition(from, target[2], action, float64(weight))
	}
	return nil
}

func splitList(list string) []string {
	parts := strings.Split(list, ",")
	acc := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			acc = append(acc, p)
		}
	}
	return acc
}
