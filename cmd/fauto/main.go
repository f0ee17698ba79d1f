// Copyright 2023 KoKoKotlin
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Command fauto builds, converts and runs finite automata.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/KoKoKotlin/AutomataPlayground/automaton"
	"github.com/KoKoKotlin/AutomataPlayground/defn"
	"github.com/KoKoKotlin/AutomataPlayground/regex"
)

var (
	dashv   bool
	dashh   bool
	dashe   bool
	dashdot bool
	dashn   int
	dasho   string
	dashto  string
)

// maxStatesEnv bounds the size of subset constructions
const maxStatesEnv = "FAUTO_MAX_STATES"

var logger = log.New(os.Stderr, "fauto: ", 0)

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose")
	flag.BoolVar(&dashh, "h", false, "show usage help")
	flag.BoolVar(&dashe, "e", false, "inputs are regular expressions instead of definition files")
	flag.BoolVar(&dashdot, "dot", false, "write graphviz output instead of a definition")
	flag.IntVar(&dashn, "n", 8, "maximum word length compared by check")
	flag.StringVar(&dasho, "o", "-", "output file (or - for stdout)")
	flag.StringVar(&dashto, "to", "", "target variant (dfa, nfa or enfa)")
}

func exitf(f string, args ...interface{}) {
	if f[len(f)-1] != '\n' {
		f += "\n"
	}
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func logf(f string, args ...interface{}) {
	if dashv {
		logger.Printf(f, args...)
	}
}

func convertOptions() []automaton.ConvertOption {
	env := os.Getenv(maxStatesEnv)
	if env == "" {
		return nil
	}
	n, err := strconv.Atoi(env)
	if err != nil || n <= 0 {
		exitf("bad %s value %q", maxStatesEnv, env)
	}
	return []automaton.ConvertOption{automaton.WithMaxStates(n)}
}

// load returns the automaton named by arg: a definition
// file, or a regular expression when -e is set
func load(arg string) automaton.Automaton {
	if dashe {
		var opts []regex.Option
		if dashv {
			opts = append(opts, regex.WithLogger(logger))
		}
		e, err := regex.Compile(arg, opts...)
		if err != nil {
			exitf("regex %q: %s", arg, err)
		}
		return e
	}
	d, err := defn.ReadFile(arg)
	if err != nil {
		exitf("%s", err)
	}
	a, err := d.Automaton()
	if err != nil {
		exitf("%s: %s", arg, err)
	}
	logf("loaded %s from %s", a, arg)
	return a
}

// target converts a to the variant requested with -to
func target(a automaton.Automaton, def string) automaton.Automaton {
	to := dashto
	if to == "" {
		to = def
	}
	if to == "" {
		return a
	}
	v, err := automaton.ParseVariant(to)
	if err != nil {
		exitf("%s", err)
	}
	out, err := automaton.Convert(a, v, convertOptions()...)
	if err != nil {
		exitf("converting to %s: %s", v, err)
	}
	logf("converted %s to %s", a, out)
	return out
}

func output() io.WriteCloser {
	if dasho == "-" {
		return os.Stdout
	}
	f, err := os.Create(dasho)
	if err != nil {
		exitf("creating output: %s", err)
	}
	return f
}

// emit writes a as a definition or as a graph
func emit(a automaton.Automaton, title string) {
	if dashdot {
		out := output()
		err := automaton.Dot(a).DotContent(out, "automaton", title)
		if err == nil {
			err = out.Close()
		}
		if err != nil {
			exitf("writing graph: %s", err)
		}
		return
	}
	d := defn.FromAutomaton(a)
	if dasho != "-" {
		if err := defn.WriteFile(dasho, d); err != nil {
			exitf("%s", err)
		}
		return
	}
	buf, err := defn.Encode(d, defn.JSON)
	if err != nil {
		exitf("%s", err)
	}
	os.Stdout.Write(buf)
}

// entry point for 'fauto regex <expr>'
func compile(expr string) {
	dashe = true
	emit(target(load(expr), ""), expr)
}

// entry point for 'fauto convert <input>'
func convert(arg string) {
	emit(target(load(arg), "dfa"), arg)
}

// entry point for 'fauto accept <input> <word>...'
func accept(arg string, words []string) {
	a := load(arg)
	rejected := 0
	for _, w := range words {
		if a.AcceptsWord(w) {
			fmt.Printf("%q\taccepted\n", w)
		} else {
			fmt.Printf("%q\trejected\n", w)
			rejected++
		}
	}
	if rejected > 0 {
		os.Exit(1)
	}
}

func stateList(a automaton.Automaton, states []automaton.State) string {
	names := a.StateNames()
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = names[s]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func symbols(a automaton.Automaton) string {
	var sb strings.Builder
	for _, s := range a.Alphabet() {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// entry point for 'fauto info <input>'
func info(arg string) {
	a := load(arg)
	fp := automaton.Fingerprint(a)
	fmt.Printf("variant:     %s\n", a.Variant())
	fmt.Printf("alphabet:    %s\n", symbols(a))
	fmt.Printf("states:      %d\n", a.StateCount())
	fmt.Printf("transitions: %d\n", len(a.Transitions()))
	fmt.Printf("initial:     %s\n", stateList(a, a.InitialStates()))
	fmt.Printf("final:       %s\n", stateList(a, a.FinalStates()))
	fmt.Printf("fingerprint: %s\n", hex.EncodeToString(fp[:]))
}

// entry point for 'fauto check <input> <input>'
func check(left, right string) {
	a, b := load(left), load(right)
	word, ok := automaton.Equivalent(a, b, dashn)
	if !ok {
		fmt.Printf("not equivalent: %q is accepted by exactly one of them\n", word)
		os.Exit(1)
	}
	fmt.Printf("equivalent on all words of length <= %d\n", dashn)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "    %s [-to <variant>] [-dot] [-o <output>] regex <expr>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        compile a regular expression\n")
	fmt.Fprintf(os.Stderr, "    %s [-e] [-to <variant>] [-dot] [-o <output>] convert <input>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        convert an automaton (to a DFA by default)\n")
	fmt.Fprintf(os.Stderr, "    %s [-e] accept <input> <word>...\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        test whether words are accepted\n")
	fmt.Fprintf(os.Stderr, "    %s [-e] step <input>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        feed symbols read from stdin one at a time\n")
	fmt.Fprintf(os.Stderr, "    %s [-e] info <input>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        describe an automaton\n")
	fmt.Fprintf(os.Stderr, "    %s [-e] [-n <len>] check <input> <input>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        compare two automata on all words up to a length\n")
	fmt.Fprintf(os.Stderr, "inputs are definition files (.json, .yaml, optionally .zst)\n")
	fmt.Fprintf(os.Stderr, "or regular expressions with -e; %s bounds subset constructions\n", maxStatesEnv)
	fmt.Fprintf(os.Stderr, "flag usage:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 || dashh {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "regex":
		if len(args) != 2 {
			exitf("usage: regex <expr>")
		}
		compile(args[1])
	case "convert":
		if len(args) != 2 {
			exitf("usage: convert <input>")
		}
		convert(args[1])
	case "accept":
		if len(args) < 2 {
			exitf("usage: accept <input> <word>...")
		}
		accept(args[1], args[2:])
	case "step":
		if len(args) != 2 {
			exitf("usage: step <input>")
		}
		step(load(args[1]), os.Stdin, os.Stdout, isTerminal(os.Stdout))
	case "info":
		if len(args) != 2 {
			exitf("usage: info <input>")
		}
		info(args[1])
	case "check":
		if len(args) != 3 {
			exitf("usage: check <input> <input>")
		}
		check(args[1], args[2])
	default:
		exitf("unrecognized command %q", args[0])
	}
}
