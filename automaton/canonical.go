package automaton

import (
	"github.com/dekarrin/lr1check/grammar"
)

// BuildCanonicalLR1 constructs the canonical collection of sets of LR(1)
// items for g and the transition function δ between them, per spec.md
// §4.4. g must already be augmented (grammar.Grammar.Augmented()); state 0
// is CLOSURE({[S' -> . S, $]}).
//
// States are discovered and numbered in BFS order from state 0. Each
// state's ItemSet is returned alongside the DFA so callers (the table
// package) can inspect items directly rather than re-deriving them from
// transitions.
func BuildCanonicalLR1(g grammar.Grammar) (*DFA[grammar.ItemSet], error) {
	return BuildCanonicalLR1Limited(g, 0)
}

// BuildCanonicalLR1Limited is BuildCanonicalLR1 with a cap on the number
// of states the worklist is allowed to discover before giving up; maxStates
// <= 0 means unbounded. A host that wires a config.Config's MaxStates
// through here is protected from runaway construction on a grammar with an
// enormous (but finite) canonical collection.
func BuildCanonicalLR1Limited(g grammar.Grammar, maxStates int) (*DFA[grammar.ItemSet], error) {
	prods := g.Flatten()
	if len(prods) == 0 || prods[0].Head != g.StartSymbol() || g.OriginalStart() == g.StartSymbol() {
		return nil, errNotAugmented
	}

	initial := grammar.LR1Item{Prod: 0, Dot: 0, Lookahead: grammar.EndMarker}
	startSet := g.LR1Closure(grammar.NewItemSet(initial))

	dfa := &DFA[grammar.ItemSet]{}
	indexOf := map[string]int{}

	startIdx := dfa.AddState(startSet)
	indexOf[startSet.Key()] = startIdx
	dfa.Start = startIdx

	symbols := allSymbols(g)

	// BFS worklist over state indices; GOTO is only ever computed for
	// symbols that actually appear after some dot, so most (state,
	// symbol) pairs are skipped cheaply.
	queue := []int{startIdx}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		I := dfa.Value(i)
		for _, X := range symbols {
			J := g.LR1Goto(I, X)
			if len(J) == 0 {
				continue
			}

			key := J.Key()
			j, seen := indexOf[key]
			if !seen {
				if maxStates > 0 && dfa.NumStates() >= maxStates {
					return nil, errTooManyStates
				}
				j = dfa.AddState(J)
				indexOf[key] = j
				queue = append(queue, j)
			}
			dfa.AddTransition(i, X, j)
		}
	}

	return dfa, nil
}

// allSymbols returns every terminal and nonterminal of g in a fixed,
// deterministic order. EndMarker is not included: $ never follows the dot
// in any item, so GOTO on it would always be empty.
func allSymbols(g grammar.Grammar) []string {
	out := append([]string{}, g.Terminals()...)
	out = append(out, g.NonTerminals()...)
	return out
}

type buildError string

func (e buildError) Error() string { return string(e) }

const errNotAugmented = buildError("BuildCanonicalLR1 requires an augmented grammar (production 0 must be S' -> S)")

const errTooManyStates = buildError("canonical LR(1) collection exceeded the configured state limit")
