package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LR1Closure_idempotent(t *testing.T) {
	assert := assert.New(t)
	g := arithGrammar(t).Augmented()

	kernel := NewItemSet(LR1Item{Prod: 0, Dot: 0, Lookahead: EndMarker})
	once := g.LR1Closure(kernel)
	twice := g.LR1Closure(once)

	assert.Equal(once.Key(), twice.Key())
}

func Test_LR1Closure_initialState(t *testing.T) {
	assert := assert.New(t)
	g := arithGrammar(t).Augmented()

	kernel := NewItemSet(LR1Item{Prod: 0, Dot: 0, Lookahead: EndMarker})
	closure := g.LR1Closure(kernel)

	// every production should contribute a dot-at-0 item, since S' -> .S
	// with lookahead $ closes over every alternative reachable from S.
	assert.True(closure.Has(LR1Item{Prod: 0, Dot: 0, Lookahead: EndMarker}))

	found := false
	for item := range closure {
		p := g.Flatten()[item.Prod]
		if p.Head == "F" && item.Dot == 0 {
			found = true
		}
	}
	assert.True(found, "closure over S' -> .S should reach F's productions")
}

func Test_LR1Goto_noMatch(t *testing.T) {
	assert := assert.New(t)
	g := arithGrammar(t).Augmented()

	kernel := NewItemSet(LR1Item{Prod: 0, Dot: 0, Lookahead: EndMarker})
	closure := g.LR1Closure(kernel)

	empty := g.LR1Goto(closure, ")")
	assert.Empty(empty)
}

func Test_LR1Goto_advancesDot(t *testing.T) {
	assert := assert.New(t)
	g := arithGrammar(t).Augmented()

	kernel := NewItemSet(LR1Item{Prod: 0, Dot: 0, Lookahead: EndMarker})
	closure := g.LR1Closure(kernel)

	onI := g.LR1Goto(closure, "I")
	assert.NotEmpty(onI)
	for item := range onI {
		p := g.Flatten()[item.Prod]
		assert.True(IsComplete(p.Body, item.Dot), "F -> I . should be complete after shifting I")
	}
}
