// Package grammar holds the data model for context-free grammars: the
// symbol alphabets, productions, and the derived FIRST/FOLLOW sets that
// feed canonical LR(1) item-set construction.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/lr1check/internal/lrerr"
)

// EndMarker is the reserved end-of-input terminal, used only as a
// lookahead and never a symbol a caller declares.
const EndMarker = "$"

// Epsilon is the reserved pseudo-symbol that appears only inside FIRST
// sets, denoting that a sequence can derive the empty string. It never
// appears in a production's body; an empty body already denotes ε.
const Epsilon = ""

// augmentedSuffix is appended (possibly more than once) to the grammar's
// start symbol to synthesize a fresh augmented-start name guaranteed not
// to collide with any declared nonterminal.
const augmentedSuffix = "'"

// Production is a single grammar rule `Head -> Body`. Body is an ordered,
// possibly empty sequence of symbols; an empty Body denotes an ε-production.
type Production struct {
	Head string
	Body []string
}

// Equal reports whether p and o have the same head and body.
func (p Production) Equal(o Production) bool {
	if p.Head != o.Head || len(p.Body) != len(o.Body) {
		return false
	}
	for i := range p.Body {
		if p.Body[i] != o.Body[i] {
			return false
		}
	}
	return true
}

// String renders the production as "HEAD -> SYM SYM ..." ("HEAD -> ε" for
// an empty body).
func (p Production) String() string {
	if len(p.Body) == 0 {
		return fmt.Sprintf("%s -> ε", p.Head)
	}
	return fmt.Sprintf("%s -> %s", p.Head, strings.Join(p.Body, " "))
}

// Grammar is a frozen-after-construction context-free grammar: disjoint
// terminal and nonterminal alphabets, a start symbol, and an ordered
// production list. Grammar values are safe to share and read concurrently
// once built; nothing on Grammar is mutated by FIRST/FOLLOW/Validate.
type Grammar struct {
	terminals    []string
	terminalSet  map[string]bool
	nonTerminals []string
	nonTermSet   map[string]bool
	start        string

	// productions groups each nonterminal's alternatives in declaration
	// order; Flatten() linearizes these into the single indexed list the
	// automaton/table packages key reductions by.
	productions map[string][]Production
	prodOrder   []string // nonterminal declaration order, for determinism
}

// New builds a Grammar from explicit terminal and nonterminal alphabets, an
// ordered production list, and a start symbol. It rejects a grammar whose
// start symbol is not a declared nonterminal or whose productions
// reference an undeclared symbol. The augmented start name synthesized
// later by Augmented is checked for collision at that point, since it
// depends on how many primes are already taken.
func New(terminals, nonTerminals []string, productions []Production, start string) (Grammar, error) {
	g := Grammar{
		terminalSet: map[string]bool{},
		nonTermSet:  map[string]bool{},
		productions: map[string][]Production{},
	}

	for _, t := range terminals {
		g.AddTerm(t)
	}
	for _, nt := range nonTerminals {
		g.addNonTerminal(nt)
	}
	g.start = start
	for _, p := range productions {
		if err := g.AddRule(p.Head, p.Body); err != nil {
			return Grammar{}, err
		}
	}

	if err := g.Validate(); err != nil {
		return Grammar{}, err
	}

	return g, nil
}

// AddTerm declares t as a terminal symbol. A no-op if t is already
// declared as a terminal.
func (g *Grammar) AddTerm(t string) {
	if g.terminalSet == nil {
		g.terminalSet = map[string]bool{}
	}
	if g.terminalSet[t] {
		return
	}
	g.terminalSet[t] = true
	g.terminals = append(g.terminals, t)
}

func (g *Grammar) addNonTerminal(nt string) {
	if g.nonTermSet == nil {
		g.nonTermSet = map[string]bool{}
	}
	if g.nonTermSet[nt] {
		return
	}
	g.nonTermSet[nt] = true
	g.nonTerminals = append(g.nonTerminals, nt)
}

// AddRule adds one production alternative `head -> body` to the grammar,
// declaring head as a nonterminal if it is not already known. Duplicate
// productions (same head and body already present) are silently treated
// as one, per spec.
func (g *Grammar) AddRule(head string, body []string) error {
	if g.productions == nil {
		g.productions = map[string][]Production{}
	}
	g.addNonTerminal(head)

	bodyCopy := make([]string, len(body))
	copy(bodyCopy, body)
	p := Production{Head: head, Body: bodyCopy}

	existing := g.productions[head]
	for _, o := range existing {
		if o.Equal(p) {
			return nil
		}
	}
	if len(existing) == 0 {
		g.prodOrder = append(g.prodOrder, head)
	}
	g.productions[head] = append(existing, p)
	return nil
}

// Rule returns the ordered list of productions whose head is nt.
func (g Grammar) Rule(nt string) []Production {
	return g.productions[nt]
}

// Terminals returns the declared terminal alphabet in declaration order.
func (g Grammar) Terminals() []string {
	out := make([]string, len(g.terminals))
	copy(out, g.terminals)
	return out
}

// NonTerminals returns the declared nonterminal alphabet in declaration
// order (the order nonterminals were first seen, either as a rule head or
// via AddTerm's sibling AddRule calls).
func (g Grammar) NonTerminals() []string {
	out := make([]string, len(g.nonTerminals))
	copy(out, g.nonTerminals)
	return out
}

// StartSymbol returns the grammar's (non-augmented) start symbol.
func (g Grammar) StartSymbol() string {
	return g.start
}

// IsTerminal reports whether sym is a declared terminal.
func (g Grammar) IsTerminal(sym string) bool {
	return g.terminalSet[sym]
}

// IsNonTerminal reports whether sym is a declared nonterminal.
func (g Grammar) IsNonTerminal(sym string) bool {
	return g.nonTermSet[sym]
}

// Flatten returns every production in the grammar as a single ordered
// list, one entry per production, in nonterminal-declaration order and
// then alternative-declaration order within a nonterminal. This is the
// indexing Production-by-position reductions are defined against.
func (g Grammar) Flatten() []Production {
	var all []Production
	for _, nt := range g.prodOrder {
		all = append(all, g.productions[nt]...)
	}
	return all
}

// Validate checks the structural invariants spec.md requires of a
// Grammar: a non-empty production list, a declared start symbol that is a
// nonterminal, and that every symbol referenced by a production body is
// declared as a terminal or nonterminal.
func (g Grammar) Validate() error {
	if len(g.Flatten()) == 0 {
		return lrerr.MalformedGrammar("grammar has no productions")
	}
	if g.start == "" {
		return lrerr.MalformedGrammar("no start symbol declared")
	}
	if !g.IsNonTerminal(g.start) {
		return lrerr.MalformedGrammar(fmt.Sprintf("start symbol %q is not a declared nonterminal", g.start))
	}
	if len(g.terminals) == 0 {
		return lrerr.MalformedGrammar("grammar has no terminals")
	}

	for _, p := range g.Flatten() {
		for _, sym := range p.Body {
			if sym == Epsilon {
				continue
			}
			if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
				return lrerr.MalformedGrammar(fmt.Sprintf("production %s references undeclared symbol %q", p.String(), sym))
			}
		}
	}

	return nil
}

// Augmented returns a copy of g with a synthesized start nonterminal S'
// and production S' -> S prepended as production index 0, where S is g's
// original start symbol. The synthesized name is g.start with enough
// trailing "'" appended to avoid colliding with any declared nonterminal.
func (g Grammar) Augmented() Grammar {
	augStart := g.start + augmentedSuffix
	for g.IsNonTerminal(augStart) {
		augStart += augmentedSuffix
	}

	ag := Grammar{
		terminals:    append([]string{}, g.terminals...),
		terminalSet:  copyBoolMap(g.terminalSet),
		nonTerminals: append([]string{augStart}, g.nonTerminals...),
		nonTermSet:   copyBoolMap(g.nonTermSet),
		start:        augStart,
		productions:  map[string][]Production{},
		prodOrder:    append([]string{augStart}, g.prodOrder...),
	}
	ag.nonTermSet[augStart] = true
	ag.productions[augStart] = []Production{{Head: augStart, Body: []string{g.start}}}
	for nt, prods := range g.productions {
		cp := make([]Production, len(prods))
		copy(cp, prods)
		ag.productions[nt] = cp
	}

	return ag
}

// OriginalStart returns the start symbol of the grammar this one was
// augmented from. It is only meaningful on a Grammar returned by
// Augmented. It works from the grammar's shape alone: when the start
// symbol ends in "'" and production 0 is that symbol with a one-symbol
// body, it returns that body symbol; otherwise it returns StartSymbol().
// A non-augmented grammar of that same shape therefore also reports the
// body symbol.
func (g Grammar) OriginalStart() string {
	if !strings.HasSuffix(g.start, augmentedSuffix) {
		return g.start
	}
	flat := g.Flatten()
	if len(flat) == 0 {
		return g.start
	}
	first := flat[0]
	if first.Head == g.start && len(first.Body) == 1 {
		return first.Body[0]
	}
	return g.start
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// sortedSymbols returns the members of set in sorted order, for output or
// logging that needs a deterministic iteration order. Nothing in the
// package calls it.
func sortedSymbols(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
