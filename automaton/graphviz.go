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

package automaton

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Graphviz collects the nodes and edges of
// an automaton in DOT syntax.
type Graphviz struct {
	nodes []string
	edges []string
}

// Dot renders a. Active states and the
// transitions taken by the last step are
// drawn in red.
func Dot(a Automaton) *Graphviz {
	dot := &Graphviz{}
	o := a.Options()
	active := a.ActiveStates()
	traversed := a.Traversed()
	for i, name := range o.StateNames {
		s := State(i)
		dot.addNode(i, name,
			slices.Contains(o.InitialStates, s),
			slices.Contains(o.FinalStates, s),
			slices.Contains(active, s))
	}
	for id, t := range o.Transitions {
		dot.addEdge(int(t.From), int(t.To), t.Symbol.String(), slices.Contains(traversed, id))
	}
	return dot
}

func (dot *Graphviz) addNode(id int, label string, start, accept, active bool) {
	colour := ""
	if active {
		colour = "; color=\"red\""
	}
	shape := "ellipse"
	switch {
	case start && accept:
		shape = "doubleoctagon"
	case start:
		shape = "octagon"
	case accept:
		shape = "doublecircle"
	}
	dot.nodes = append(dot.nodes, fmt.Sprintf("\ts%d [shape=%s; label=%s%s];\n", id, shape, strconv.Quote(label), colour))
}

func (dot *Graphviz) addEdge(from, to int, label string, active bool) {
	colour := ""
	if active {
		colour = "; color=\"red\""
	}
	dot.edges = append(dot.edges, fmt.Sprintf("\ts%d -> s%d [label=%s%s];\n", from, to, strconv.Quote(label), colour))
}

// DotContent writes the graph as a DOT digraph
// named graphName with title graphTitle.
func (dot *Graphviz) DotContent(dst io.Writer, graphName, graphTitle string) error {
	_, err := fmt.Fprintf(dst, "digraph %v {\n\trankdir=LR;\n", graphName)
	if err != nil {
		return err
	}
	for _, s := range dot.nodes {
		_, err := fmt.Fprint(dst, s)
		if err != nil {
			return err
		}
	}
	for _, s := range dot.edges {
		_, err := fmt.Fprint(dst, s)
		if err != nil {
			return err
		}
	}
	graphTitle = strings.ReplaceAll(graphTitle, `\`, `\\`)
	graphTitle = strings.ReplaceAll(graphTitle, `"`, `\"`)
	_, err = fmt.Fprintf(dst, "\tlabelloc=\"t\";\n\tlabel=\"%v: %v\";\n}\n", graphName, graphTitle)
	return err
}
