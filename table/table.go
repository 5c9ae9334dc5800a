package table

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/lr1check/automaton"
	"github.com/dekarrin/lr1check/grammar"
	"github.com/dekarrin/lr1check/internal/lrerr"
)

// Table is the compiled ACTION/GOTO driver data for a grammar accepted by
// Build. It is frozen after construction: nothing on Table is mutated once
// Build returns successfully, so a *Table is safe to share across
// goroutines calling Action/Goto concurrently.
type Table struct {
	gPrime    grammar.Grammar
	dfa       *automaton.DFA[grammar.ItemSet]
	action    []map[string]Action
	gotoTable []map[string]int
}

// Build constructs the canonical-LR(1) ACTION/GOTO table for g, per
// spec.md §4.5 (algorithm 4.56 in the purple dragon book, as the teacher's
// own comments cite it). It augments g, builds the canonical collection of
// LR(1) item sets via automaton.BuildCanonicalLR1, and for each state:
//
//  1. shift: [A -> α . a β, b] with a a terminal and δ(i, a) = j sets
//     ACTION[i, a] = shift(j).
//  2. reduce: [A -> α ., a] with A != S' sets ACTION[i, a] = reduce(A -> α).
//  3. accept: [S' -> S ., $] sets ACTION[i, $] = accept.
//
// Any cell that would receive two distinct actions (shift/reduce,
// reduce/reduce, or a conflicting accept) makes Build fail with an error
// wrapping lrerr.ErrNotLR1.
func Build(g grammar.Grammar) (*Table, error) {
	return BuildLimited(g, 0)
}

// BuildLimited is Build with a cap (maxStates <= 0 meaning unbounded) on
// how many canonical LR(1) states automaton.BuildCanonicalLR1Limited is
// allowed to discover, wired from a config.Config's MaxStates.
func BuildLimited(g grammar.Grammar, maxStates int) (*Table, error) {
	gPrime := g.Augmented()

	dfa, err := automaton.BuildCanonicalLR1Limited(gPrime, maxStates)
	if err != nil {
		return nil, err
	}

	prods := gPrime.Flatten()
	n := dfa.NumStates()

	t := &Table{
		gPrime:    gPrime,
		dfa:       dfa,
		action:    make([]map[string]Action, n),
		gotoTable: make([]map[string]int, n),
	}
	for i := 0; i < n; i++ {
		t.action[i] = map[string]Action{}
		t.gotoTable[i] = map[string]int{}
	}

	for i := 0; i < n; i++ {
		items := dfa.Value(i)

		for item := range items {
			p := prods[item.Prod]

			sym, hasNext := grammar.NextSymbol(p.Body, item.Dot)

			// (a) shift
			if hasNext && gPrime.IsTerminal(sym) {
				if j, ok := dfa.Next(i, sym); ok {
					if err := t.set(i, sym, Action{Type: Shift, State: j}); err != nil {
						return nil, err
					}
				}
			}

			// (b) reduce
			if !hasNext && p.Head != gPrime.StartSymbol() {
				if err := t.set(i, item.Lookahead, Action{Type: Reduce, Production: item.Prod}); err != nil {
					return nil, err
				}
			}

			// (c) accept: [S' -> S ., $]
			if !hasNext && p.Head == gPrime.StartSymbol() && item.Lookahead == grammar.EndMarker {
				if err := t.set(i, grammar.EndMarker, Action{Type: Accept}); err != nil {
					return nil, err
				}
			}
		}

		for _, nt := range gPrime.NonTerminals() {
			if j, ok := dfa.Next(i, nt); ok {
				t.gotoTable[i][nt] = j
			}
		}
	}

	return t, nil
}

func (t *Table) set(state int, term string, act Action) error {
	existing, ok := t.action[state][term]
	if ok && !existing.Equal(act) {
		return lrerr.NotLR1(lrerr.Conflict{
			State:    state,
			Terminal: term,
			Existing: existing.String(),
			New:      act.String(),
		})
	}
	t.action[state][term] = act
	return nil
}

// Initial returns the automaton's start state.
func (t *Table) Initial() int {
	return t.dfa.Start
}

// Action returns ACTION[state, terminal] and whether an entry exists.
// Absence means "error — reject," per spec.md §3.
func (t *Table) Action(state int, terminal string) (Action, bool) {
	if state < 0 || state >= len(t.action) {
		return Action{}, false
	}
	a, ok := t.action[state][terminal]
	return a, ok
}

// Goto returns GOTO[state, nonterminal] and whether an entry exists.
func (t *Table) Goto(state int, nonTerminal string) (int, bool) {
	if state < 0 || state >= len(t.gotoTable) {
		return 0, false
	}
	j, ok := t.gotoTable[state][nonTerminal]
	return j, ok
}

// Productions returns the augmented grammar's flattened production list,
// the one reduce actions index into.
func (t *Table) Productions() []grammar.Production {
	return t.gPrime.Flatten()
}

// ExpectedTerminals returns, in a fixed order, every terminal (including
// EndMarker) that has a non-error ACTION entry in state. Informative only
// — grounded on the teacher's lr.go findExpectedTokens, used for
// diagnostics rather than recognition.
func (t *Table) ExpectedTerminals(state int) []string {
	all := append([]string{}, t.gPrime.Terminals()...)
	all = append(all, grammar.EndMarker)

	var out []string
	for _, term := range all {
		if _, ok := t.Action(state, term); ok {
			out = append(out, term)
		}
	}
	return out
}

// String renders the ACTION/GOTO table as a row/column grid, grounded on
// the teacher's canonicalLR1Table.String() (same rosed.InsertTableOpts
// call).
func (t *Table) String() string {
	terms := append([]string{}, t.gPrime.Terminals()...)
	terms = append(terms, grammar.EndMarker)
	nonTerms := t.gPrime.NonTerminals()

	headers := []string{"S", "|"}
	for _, term := range terms {
		headers = append(headers, fmt.Sprintf("A:%s", term))
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}

	data := [][]string{headers}

	states := make([]int, t.dfa.NumStates())
	for i := range states {
		states[i] = i
	}
	sort.Ints(states)

	for _, i := range states {
		row := []string{fmt.Sprintf("%d", i), "|"}

		for _, term := range terms {
			cell := ""
			if act, ok := t.Action(i, term); ok {
				switch act.Type {
				case Accept:
					cell = "acc"
				case Reduce:
					cell = fmt.Sprintf("r%d", act.Production)
				case Shift:
					cell = fmt.Sprintf("s%d", act.State)
				}
			}
			row = append(row, cell)
		}

		row = append(row, "|")

		for _, nt := range nonTerms {
			cell := ""
			if j, ok := t.Goto(i, nt); ok {
				cell = fmt.Sprintf("%d", j)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
