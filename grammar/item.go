package grammar

import "fmt"

// LR0Item is a production together with a dot position marking how much
// of its body has been matched so far. Prod is an index into some
// Grammar's Flatten() list (always the augmented grammar's list, in
// practice, since that is the only list the automaton ever builds items
// against).
type LR0Item struct {
	Prod int
	Dot  int
}

// LR1Item adds a single lookahead terminal to an LR0Item. Two items are
// equal iff all three of (Prod, Dot, Lookahead) match; because every field
// is a plain comparable value, LR1Item can be used directly as a map key
// without the string-serialization round trip a slice-carrying item would
// need.
type LR1Item struct {
	Prod      int
	Dot       int
	Lookahead string
}

// NextSymbol returns the symbol immediately after the dot in body, and
// whether one exists (false when the dot is at the end of body).
func NextSymbol(body []string, dot int) (string, bool) {
	if dot >= len(body) {
		return "", false
	}
	return body[dot], true
}

// IsComplete reports whether dot has reached the end of body.
func IsComplete(body []string, dot int) bool {
	return dot >= len(body)
}

// String renders an LR1Item against the production list it indexes into,
// e.g. "E -> E + . T, $".
func (item LR1Item) String(prods []Production) string {
	return fmt.Sprintf("%s, %s", LR0Item{Prod: item.Prod, Dot: item.Dot}.String(prods), item.Lookahead)
}

// String renders an LR0Item against the production list it indexes into,
// e.g. "E -> E + . T".
func (item LR0Item) String(prods []Production) string {
	if item.Prod < 0 || item.Prod >= len(prods) {
		return fmt.Sprintf("<invalid item Prod=%d Dot=%d>", item.Prod, item.Dot)
	}
	p := prods[item.Prod]

	left := p.Body[:item.Dot]
	right := p.Body[item.Dot:]

	leftStr := ""
	for i, s := range left {
		if i > 0 {
			leftStr += " "
		}
		leftStr += s
	}
	rightStr := ""
	for i, s := range right {
		if i > 0 {
			rightStr += " "
		}
		rightStr += s
	}

	sep := ""
	if leftStr != "" {
		sep = " "
	}
	sep2 := ""
	if rightStr != "" {
		sep2 = " "
	}

	return fmt.Sprintf("%s -> %s%s.%s%s", p.Head, leftStr, sep, sep2, rightStr)
}
