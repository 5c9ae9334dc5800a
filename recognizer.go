// Package lr1check is a recognizer for context-free languages based on
// canonical LR(1) parsing. Given a grammar, Fit computes FIRST sets, the
// canonical collection of LR(1) item sets and its transition graph, and an
// ACTION/GOTO table, or reports that the grammar is not LR(1). The
// returned Recognizer's Predict method then drives that table over a
// query word and answers membership — no parse tree, no error recovery,
// no grammar source-text parsing at runtime.
//
// This is the root package of the teacher's parser-generator framework
// (internal/ictiobus, "ictiobus" being the genus name for the buffalo
// fish family — a bison pun), narrowed to the one thing spec.md asks for:
// recognition, not translation.
package lr1check

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/dekarrin/lr1check/grammar"
	"github.com/dekarrin/lr1check/internal/config"
	"github.com/dekarrin/lr1check/table"
)

// Recognizer is a grammar compiled down to an ACTION/GOTO table. Predict
// never writes to the Recognizer, so a single *Recognizer may be shared
// across goroutines calling Predict concurrently, per spec.md §5. The one
// method that modifies a Recognizer after Fit is RegisterTraceListener.
type Recognizer struct {
	id    string
	gram  grammar.Grammar
	table *table.Table
	trace func(string)
}

// Fit performs FIRST, canonical collection, and table construction for g
// and either returns a ready Recognizer or an error wrapping
// lrerr.ErrMalformedGrammar (a structurally invalid grammar) or
// lrerr.ErrNotLR1 (a shift/reduce or reduce/reduce conflict, including a
// conflicting accept). g is not mutated and may be retained by Fit's
// caller; Fit does not mutate it either.
func Fit(g grammar.Grammar) (*Recognizer, error) {
	return FitWithConfig(g, config.Default())
}

// FitWithConfig is Fit with an explicit config.Config, letting a host wire
// a state-count safety cap, and tracing of Predict's decisions straight to
// the standard logger, without recompiling.
func FitWithConfig(g grammar.Grammar, cfg config.Config) (*Recognizer, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	tbl, err := table.BuildLimited(g, cfg.MaxStates)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	idStr := "lr1-anon"
	if err == nil {
		idStr = id.String()
	}

	r := &Recognizer{id: idStr, gram: g, table: tbl}
	if cfg.Trace {
		r.RegisterTraceListener(func(line string) {
			log.Printf("TRACE [%s] %s", r.id, line)
		})
	}
	return r, nil
}

// ID returns a unique identifier assigned to this Recognizer at Fit time,
// useful for correlating trace log lines when many grammars are fit in the
// same process.
func (r *Recognizer) ID() string {
	return r.id
}

// RegisterTraceListener installs fn to be called with one line of
// human-readable trace for every shift/reduce/accept/error decision
// Predict makes. Passing nil disables tracing. Grounded on the teacher's
// lrParser.RegisterTraceListener / notifyTrace.
func (r *Recognizer) RegisterTraceListener(fn func(string)) {
	r.trace = fn
}

func (r *Recognizer) notifyTrace(format string, args ...interface{}) {
	if r.trace != nil {
		r.trace(fmt.Sprintf(format, args...))
	}
}

// Predict reports whether word (an ordered sequence of terminal symbols)
// belongs to L(G). Any symbol in word that is not a declared terminal
// causes Predict to return false; Predict never errors, per spec.md §6.
//
// This is an implementation of the purple dragon book's algorithm 4.44,
// "LR-parsing algorithm" (the same algorithm the teacher's lrParser.Parse
// implements), simplified to a pure membership check: no parse tree is
// built, and reductions pop exactly len(production.Body) stack entries
// with no length guard, since a conflict-free LR(1) table never asks to
// pop below the initial state (spec.md §9, resolving the Python
// original's incorrect `if len(stack) > 1` guard).
func (r *Recognizer) Predict(word []string) bool {
	for _, sym := range word {
		if !r.gram.IsTerminal(sym) {
			r.notifyTrace("reject: %q is not a declared terminal", sym)
			return false
		}
	}

	stack := []int{r.table.Initial()}
	pos := 0

	nextInput := func() string {
		if pos < len(word) {
			return word[pos]
		}
		return grammar.EndMarker
	}

	for {
		state := stack[len(stack)-1]
		a := nextInput()

		act, ok := r.table.Action(state, a)
		if !ok {
			r.notifyTrace("state %d, input %q: no action, reject", state, a)
			return false
		}

		switch act.Type {
		case table.Shift:
			r.notifyTrace("state %d, input %q: shift %d", state, a, act.State)
			stack = append(stack, act.State)
			pos++

		case table.Reduce:
			prod := r.table.Productions()[act.Production]
			r.notifyTrace("state %d, input %q: reduce by %s", state, a, prod.String())

			stack = stack[:len(stack)-len(prod.Body)]

			top := stack[len(stack)-1]
			j, ok := r.table.Goto(top, prod.Head)
			if !ok {
				r.notifyTrace("state %d: no goto on %q, reject", top, prod.Head)
				return false
			}
			stack = append(stack, j)

		case table.Accept:
			r.notifyTrace("state %d, input %q: accept", state, a)
			return true
		}
	}
}

// ExpectedTerminals returns, for a given automaton state, the terminals
// that have a non-error ACTION entry there. Informative only; useful for
// building error messages in a host collaborator, not consulted by
// Predict itself.
func (r *Recognizer) ExpectedTerminals(state int) []string {
	return r.table.ExpectedTerminals(state)
}

// TableString renders the compiled ACTION/GOTO table for diagnostics.
func (r *Recognizer) TableString() string {
	return r.table.String()
}
