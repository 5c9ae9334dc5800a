package grammar

import (
	"sort"
	"strconv"
	"strings"
)

// ItemSet is a set of LR(1) items, normally the closure of some kernel.
// It is backed by a plain Go map since LR1Item is a comparable value type.
type ItemSet map[LR1Item]struct{}

// NewItemSet returns an ItemSet containing the given items.
func NewItemSet(items ...LR1Item) ItemSet {
	s := make(ItemSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has reports whether item is in the set.
func (s ItemSet) Has(item LR1Item) bool {
	_, ok := s[item]
	return ok
}

// Add inserts item into the set, returning whether it was new.
func (s ItemSet) Add(item LR1Item) bool {
	if s.Has(item) {
		return false
	}
	s[item] = struct{}{}
	return true
}

// Items returns the set's elements in no particular order.
func (s ItemSet) Items() []LR1Item {
	out := make([]LR1Item, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	return out
}

// Key returns a canonical string encoding of the set, built by sorting its
// items by (Prod, Dot, Lookahead) before concatenating them. Two ItemSets
// with the same elements always produce the same Key regardless of
// insertion order, which is what lets the canonical-collection builder use
// Key as a hash-indexed lookup instead of an O(|states|) linear scan for
// state deduplication (spec.md §4.4's complexity note).
func (s ItemSet) Key() string {
	items := s.Items()
	sort.Slice(items, func(i, j int) bool {
		if items[i].Prod != items[j].Prod {
			return items[i].Prod < items[j].Prod
		}
		if items[i].Dot != items[j].Dot {
			return items[i].Dot < items[j].Dot
		}
		return items[i].Lookahead < items[j].Lookahead
	})

	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(strconv.Itoa(it.Prod))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(it.Dot))
		sb.WriteByte(':')
		sb.WriteString(it.Lookahead)
		sb.WriteByte('|')
	}
	return sb.String()
}

// CoreKey is like Key but ignores lookaheads, reducing the set to its
// LR(0) core. Two LR(1) states with the same core but different
// lookahead distributions are distinct states in canonical LR(1) (unlike
// LALR(1), which would merge them); CoreKey exists for callers that
// specifically want the LALR-style merge criterion.
func (s ItemSet) CoreKey() string {
	items := s.Items()
	sort.Slice(items, func(i, j int) bool {
		if items[i].Prod != items[j].Prod {
			return items[i].Prod < items[j].Prod
		}
		return items[i].Dot < items[j].Dot
	})

	seen := map[[2]int]bool{}
	var sb strings.Builder
	for _, it := range items {
		core := [2]int{it.Prod, it.Dot}
		if seen[core] {
			continue
		}
		seen[core] = true
		sb.WriteString(strconv.Itoa(it.Prod))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(it.Dot))
		sb.WriteByte('|')
	}
	return sb.String()
}

// LR1Closure computes CLOSURE(K) over the augmented grammar g (Flatten()
// must have g's augmented production at index 0; g.Augmented() satisfies
// this). Per spec.md §4.2: for every item [A -> α . B β, a] in the
// closure and every production B -> γ, for every terminal b in
// FIRST(β a), add [B -> . γ, b].
//
// Implemented as a worklist with a "seen" set, which yields the closure in
// near-linear time over its own size rather than repeatedly rescanning the
// whole set to a fixed point.
func (g Grammar) LR1Closure(kernel ItemSet) ItemSet {
	prods := g.Flatten()
	firsts := g.firstSets()

	closure := make(ItemSet, len(kernel))
	var worklist []LR1Item
	for it := range kernel {
		closure[it] = struct{}{}
		worklist = append(worklist, it)
	}

	for len(worklist) > 0 {
		item := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		body := prods[item.Prod].Body
		b, ok := NextSymbol(body, item.Dot)
		if !ok || !g.IsNonTerminal(b) {
			continue
		}

		beta := body[item.Dot+1:]
		lookaheads := g.firstSequenceUsing(firsts, append(append([]string{}, beta...), item.Lookahead))
		delete(lookaheads, Epsilon) // a is a terminal, so FIRST(beta a) never truly needs ε

		for prodIdx, p := range prods {
			if p.Head != b {
				continue
			}
			for la := range lookaheads {
				newItem := LR1Item{Prod: prodIdx, Dot: 0, Lookahead: la}
				if _, exists := closure[newItem]; !exists {
					closure[newItem] = struct{}{}
					worklist = append(worklist, newItem)
				}
			}
		}
	}

	return closure
}

// LR1Goto computes GOTO(I, X): advance the dot past X in every item of I
// that has X immediately after its dot, then close the result. Returns an
// empty ItemSet if no item in I has X next.
func (g Grammar) LR1Goto(I ItemSet, X string) ItemSet {
	prods := g.Flatten()

	kernel := ItemSet{}
	for item := range I {
		body := prods[item.Prod].Body
		sym, ok := NextSymbol(body, item.Dot)
		if ok && sym == X {
			kernel[LR1Item{Prod: item.Prod, Dot: item.Dot + 1, Lookahead: item.Lookahead}] = struct{}{}
		}
	}

	if len(kernel) == 0 {
		return ItemSet{}
	}

	return g.LR1Closure(kernel)
}
