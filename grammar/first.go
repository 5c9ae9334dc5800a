package grammar

// FIRST computes FIRST(sym) for a single grammar symbol: the set of
// terminals (plus possibly Epsilon) that can begin some string derived
// from sym. FIRST(a) = {a} for any terminal a, including EndMarker.
//
// This recomputes the fixed point on every call rather than caching,
// matching the "pure and non-caching" contract spec.md places on
// FIRST-of-sequence; callers that need FIRST for many symbols should use
// firstSets, which computes the whole fixed point once.
func (g Grammar) FIRST(sym string) map[string]bool {
	if g.IsTerminal(sym) || sym == EndMarker {
		return map[string]bool{sym: true}
	}
	sets := g.firstSets()
	return sets[sym]
}

// FIRSTSequence computes FIRST(X1 X2 ... Xn) for a sequence of symbols:
// the terminals that can begin a string derived from the sequence, plus
// Epsilon iff every Xi can derive ε (including the empty sequence itself,
// whose FIRST is {Epsilon}).
//
// Per spec.md §3: take FIRST(X1) minus {ε}; if ε in FIRST(X1), union with
// FIRST(X2..Xn); ε is in FIRST(seq) iff it is in FIRST of every Xi.
func (g Grammar) FIRSTSequence(seq []string) map[string]bool {
	sets := g.firstSets()
	return g.firstSequenceUsing(sets, seq)
}

func (g Grammar) firstSequenceUsing(sets map[string]map[string]bool, seq []string) map[string]bool {
	result := map[string]bool{}

	if len(seq) == 0 {
		result[Epsilon] = true
		return result
	}

	allDeriveEpsilon := true
	for _, x := range seq {
		var firstX map[string]bool
		if g.IsTerminal(x) || x == EndMarker {
			firstX = map[string]bool{x: true}
		} else {
			firstX = sets[x]
		}

		for sym := range firstX {
			if sym != Epsilon {
				result[sym] = true
			}
		}

		if !firstX[Epsilon] {
			allDeriveEpsilon = false
			break
		}
	}

	if allDeriveEpsilon {
		result[Epsilon] = true
	}

	return result
}

// firstSets computes FIRST for every terminal and nonterminal as the
// least fixed point of the monotone step described in spec.md §4.1:
// terminals start and stay as singletons of themselves; nonterminals
// start empty and grow by propagating FIRST across each production's
// body until a full pass adds nothing. Termination follows because the
// lattice (subsets of T ∪ {ε}) is finite and the step only ever adds.
func (g Grammar) firstSets() map[string]map[string]bool {
	sets := map[string]map[string]bool{}

	for _, t := range g.terminals {
		sets[t] = map[string]bool{t: true}
	}
	for _, nt := range g.nonTerminals {
		sets[nt] = map[string]bool{}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Flatten() {
			before := len(sets[p.Head])
			seqFirst := g.firstSequenceUsing(sets, p.Body)
			for sym := range seqFirst {
				if !sets[p.Head][sym] {
					sets[p.Head][sym] = true
				}
			}
			if len(sets[p.Head]) != before {
				changed = true
			}
		}
	}

	return sets
}
