package grammar

// FOLLOW computes FOLLOW(nt) for a declared nonterminal: the set of
// terminals (plus EndMarker if nt can be the last symbol of a derivation
// from the start symbol) that can immediately follow nt in some
// right-sentential form.
//
// FOLLOW is not required by canonical LR(1) recognition — lookaheads are
// carried on items directly, propagated through closure — but it is part
// of the grammar's derived data (the teacher computes and exposes it too).
// Nothing in table building, Predict or ExpectedTerminals calls it.
func (g Grammar) FOLLOW(nt string) map[string]bool {
	return g.followSets()[nt]
}

func (g Grammar) followSets() map[string]map[string]bool {
	firsts := g.firstSets()

	follow := map[string]map[string]bool{}
	for _, nt := range g.nonTerminals {
		follow[nt] = map[string]bool{}
	}
	follow[g.start] = map[string]bool{EndMarker: true}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Flatten() {
			for i, sym := range p.Body {
				if !g.IsNonTerminal(sym) {
					continue
				}

				before := len(follow[sym])

				rest := p.Body[i+1:]
				restFirst := g.firstSequenceUsing(firsts, rest)
				for t := range restFirst {
					if t != Epsilon {
						follow[sym][t] = true
					}
				}
				if restFirst[Epsilon] {
					for t := range follow[p.Head] {
						follow[sym][t] = true
					}
				}

				if len(follow[sym]) != before {
					changed = true
				}
			}
		}
	}

	return follow
}
