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

// Package main is a command-line driver for probabilistic models:
// parse, validate, render, analyze, simulate, store.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"time"

	"github.com/Saidis18/model-checker/model"
	"github.com/Saidis18/model-checker/policies"
	"github.com/Saidis18/model-checker/read"
	"github.com/Saidis18/model-checker/storage/bolt"
	"github.com/Saidis18/model-checker/tools"
)

func main() {
	if len(os.Args) < 2 {
		Usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "validate":
		err = validate(args)
	case "dot":
		err = render(args, "dot")
	case "mermaid":
		err = render(args, "mermaid")
	case "html":
		err = render(args, "html")
	case "analyze":
		err = analyze(args)
	case "accessibility":
		err = accessibility(args)
	case "reward":
		err = reward(args)
	case "walk":
		err = walk(args)
	case "save":
		err = save(args)
	case "list":
		err = list(args)
	case "help", "-h", "--help":
		Usage()
	default:
		Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func Usage() {
	fmt.Fprintf(os.Stderr, `mctool COMMAND [FLAGS]

Commands:

  validate       parse a model description and check its invariants
  dot            write the model as a Graphviz dot file
  mermaid        write the model as a Mermaid file
  html           write an HTML report for the model
  analyze        summarize the model's structure (YAML)
  accessibility  probability of reaching a state within a horizon
  reward         expected cumulative reward at a state within a horizon
  walk           simulate one stochastic trajectory
  save           store a model (and load it later by name) in a bbolt file
  list           list models stored in a bbolt file

Each command reads a model from -f FILE ("-" for stdin; -yaml for the
YAML form) or from -db FILE -name NAME.  'mctool COMMAND -h' shows the
command's flags.
`)
}

// modelSource gathers the flags every command uses to find its model.
type modelSource struct {
	file string
	yaml bool
	db   string
	name string
}

func (src *modelSource) addFlags(fs *flag.FlagSet) {
	fs.StringVar(&src.file, "f", "", `model description file ("-" for stdin)`)
	fs.BoolVar(&src.yaml, "yaml", false, "read the YAML document form")
	fs.StringVar(&src.db, "db", "", "bbolt file to read the model from")
	fs.StringVar(&src.name, "name", "", "model name in the bbolt file")
}

func (src *modelSource) load() (*model.Model, error) {
	if src.db != "" {
		s, err := bolt.NewStore(src.db)
		if err != nil {
			return nil, err
		}
		if err = s.Open(); err != nil {
			return nil, err
		}
		defer s.Close()
		return s.GetModel(src.name)
	}

	switch {
	case src.file == "":
		return nil, fmt.Errorf("no model given (want -f FILE or -db FILE -name NAME)")
	case src.file == "-":
		if src.yaml {
			return read.ReadYAML(os.Stdin)
		}
		return read.Read(os.Stdin)
	case src.yaml:
		return read.ReadYAMLFile(src.file)
	default:
		return read.ReadFile(src.file)
	}
}

// policySource gathers the flags that supply a policy for MDPs.
type policySource struct {
	inline string
	script string
}

func (src *policySource) addFlags(fs *flag.FlagSet) {
	fs.StringVar(&src.inline, "policy", "", `policy as JSON (like {"S0":"safe"})`)
	fs.StringVar(&src.script, "policy-js", "", "policy script file defining choose(state)")
}

func (src *policySource) load(m *model.Model) (model.Policy, error) {
	if src.inline != "" {
		var p model.Policy
		if err := json.Unmarshal([]byte(src.inline), &p); err != nil {
			return nil, err
		}
		return p, nil
	}
	if src.script != "" {
		bs, err := ioutil.ReadFile(src.script)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return policies.Compile(ctx, string(bs), m)
	}
	return nil, nil
}

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	src := &modelSource{}
	src.addFlags(fs)
	fs.Parse(args)

	m, err := src.load()
	if err != nil {
		return err
	}
	fmt.Printf("%s: valid %s, %d states, %d transitions\n",
		name(m), m.Kind(), len(m.States), len(m.Transitions))
	return nil
}

func render(args []string, format string) error {
	fs := flag.NewFlagSet(format, flag.ExitOnError)
	src := &modelSource{}
	src.addFlags(fs)
	normalize := fs.Bool("n", false, "normalize before rendering")
	highlight := fs.String("highlight", "", "state to highlight (dot only)")
	fs.Parse(args)

	m, err := src.load()
	if err != nil {
		return err
	}
	if *normalize {
		if m, err = m.Normalize(); err != nil {
			return err
		}
	}

	switch format {
	case "dot":
		return tools.Dot(m, os.Stdout, &tools.DotOpts{Highlight: *highlight})
	case "mermaid":
		return tools.Mermaid(m, os.Stdout, nil)
	default:
		return tools.RenderModelHTML(m, os.Stdout)
	}
}

func analyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	src := &modelSource{}
	src.addFlags(fs)
	fs.Parse(args)

	m, err := src.load()
	if err != nil {
		return err
	}
	a, err := tools.Analyze(m)
	if err != nil {
		return err
	}
	rendered, err := a.YAML()
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

func accessibility(args []string) error {
	return analysisOp(args, "accessibility")
}

func reward(args []string) error {
	return analysisOp(args, "reward")
}

func analysisOp(args []string, op string) error {
	fs := flag.NewFlagSet(op, flag.ExitOnError)
	src := &modelSource{}
	src.addFlags(fs)
	ps := &policySource{}
	ps.addFlags(fs)
	from := fs.String("from", "", "start state (defaults to the first)")
	to := fs.String("to", "", "target state")
	steps := fs.Int("steps", 10, "horizon in steps")
	cache := fs.Bool("cache", false, "cache the answer in the bbolt file")
	fs.Parse(args)

	m, err := src.load()
	if err != nil {
		return err
	}
	if m, err = m.Normalize(); err != nil {
		return err
	}
	start := *from
	if start == "" && 0 < len(m.States) {
		start = m.States[0]
	}

	policy, err := ps.load(m)
	if err != nil {
		return err
	}

	key := resultKey(op, start, *to, *steps, policy)
	if *cache && src.db != "" {
		if v, have, err := cached(src, key); err != nil {
			return err
		} else if have {
			fmt.Printf("%g\n", v)
			return nil
		}
	}

	var v float64
	switch op {
	case "accessibility":
		v, err = m.Accessibility(start, *to, policy, *steps)
	default:
		v, err = m.ExpectedReward(start, *to, policy, *steps)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%g\n", v)

	if *cache && src.db != "" {
		return remember(src, key, v)
	}
	return nil
}

func walk(args []string) error {
	fs := flag.NewFlagSet("walk", flag.ExitOnError)
	src := &modelSource{}
	src.addFlags(fs)
	ps := &policySource{}
	ps.addFlags(fs)
	from := fs.String("from", "", "start state (defaults to the first)")
	steps := fs.Int("steps", 10, "maximum number of steps")
	seed := fs.Int64("seed", 0, "random seed (0 means time-seeded)")
	fs.Parse(args)

	m, err := src.load()
	if err != nil {
		return err
	}
	if m, err = m.Normalize(); err != nil {
		return err
	}
	start := *from
	if start == "" && 0 < len(m.States) {
		start = m.States[0]
	}

	policy, err := ps.load(m)
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	path, err := m.Walk(start, *steps, policy, rng)
	if err != nil {
		return err
	}
	fmt.Println(path)
	if path.HasReward {
		fmt.Printf("reward: %d\n", path.Reward)
	}
	return nil
}

func save(args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	src := &modelSource{}
	src.addFlags(fs)
	db := fs.String("to", "models.db", "bbolt file to write")
	as := fs.String("as", "", "name to store the model under (defaults to its own)")
	fs.Parse(args)

	m, err := src.load()
	if err != nil {
		return err
	}

	storedName := *as
	if storedName == "" {
		storedName = m.Name
	}
	if storedName == "" {
		return fmt.Errorf("model has no name (want -as NAME)")
	}

	s, err := bolt.NewStore(*db)
	if err != nil {
		return err
	}
	if err = s.Open(); err != nil {
		return err
	}
	defer s.Close()

	return s.PutModel(storedName, m)
}

func list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	db := fs.String("db", "models.db", "bbolt file to read")
	fs.Parse(args)

	s, err := bolt.NewStore(*db)
	if err != nil {
		return err
	}
	if err = s.Open(); err != nil {
		return err
	}
	defer s.Close()

	names, err := s.ListModels()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

// resultKey names a cached analysis answer.  The policy is folded in
// as a hash of its canonical JSON so that two different policies never
// share a cache slot, no matter how they were given on the command
// line.
func resultKey(op, start, end string, steps int, policy model.Policy) string {
	if policy == nil {
		policy = model.Policy{}
	}
	js, err := json.Marshal(policy)
	if err != nil {
		js = []byte(err.Error())
	}
	sum := sha256.Sum256(js)
	return fmt.Sprintf("%s/%s/%s/%d/%x", op, start, end, steps, sum[:8])
}

func cached(src *modelSource, key string) (float64, bool, error) {
	s, err := bolt.NewStore(src.db)
	if err != nil {
		return 0, false, err
	}
	if err = s.Open(); err != nil {
		return 0, false, err
	}
	defer s.Close()
	return s.GetResult(src.name, key)
}

func remember(src *modelSource, key string, v float64) error {
	s, err := bolt.NewStore(src.db)
	if err != nil {
		return err
	}
	if err = s.Open(); err != nil {
		return err
	}
	defer s.Close()
	return s.PutResult(src.name, key, v)
}

func name(m *model.Model) string {
	if m.Name == "" {
		return "model"
	}
	return m.Name
}
