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

package read

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/Saidis18/model-checker/model"

	"github.com/jsccast/yaml"
)

// Document is the YAML form of a model description.
//
//	name: lossy
//	doc: |
//	  What this model is about.
//	states:
//	  - name: S0
//	    reward: 7
//	  - name: S1
//	    reward: 4
//	actions: [a, b]
//	transitions:
//	  - {from: S0, to: S1, action: a, weight: 5}
//	  - {from: S1, to: S0, weight: 3}
//
// A missing reward means the state's reward is undefined, and a
// missing action means the no-action symbol.
type Document struct {
	Name        string           `yaml:"name,omitempty"`
	Doc         string           `yaml:"doc,omitempty"`
	States      []StateDecl      `yaml:"states"`
	Actions     []string         `yaml:"actions,omitempty"`
	Transitions []TransitionDecl `yaml:"transitions,omitempty"`
}

type StateDecl struct {
	Name   string `yaml:"name"`
	Reward *int   `yaml:"reward,omitempty"`
}

type TransitionDecl struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Action string  `yaml:"action,omitempty"`
	Weight float64 `yaml:"weight"`
}

// Model builds and validates the model the Document describes.
func (d *Document) Model() (*model.Model, error) {
	m := model.NewModel()
	m.Name = d.Name
	m.Doc = d.Doc
	for _, s := range d.States {
		if s.Name == "" {
			return nil, fmt.Errorf("state with no name")
		}
		if s.Reward == nil {
			m.AddState(s.Name)
		} else {
			m.AddRewardState(s.Name, *s.Reward)
		}
	}
	for _, a := range d.Actions {
		m.AddAction(a)
	}
	for _, t := range d.Transitions {
		action := t.Action
		if action == "" {
			action = model.NoAction
		}
		m.AddTransition(t.From, t.To, action, t.Weight)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadYAML parses a YAML model document and returns the validated
// model.
func ReadYAML(r io.Reader) (*model.Model, error) {
	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := yaml.Unmarshal(bs, &d); err != nil {
		return nil, err
	}
	return d.Model()
}

// ReadYAMLFile parses the YAML model document in the named file.
func ReadYAMLFile(filename string) (*model.Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadYAML(f)
}
