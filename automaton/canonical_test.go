package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/lr1check/grammar"
)

// twoCsGrammar mirrors spec scenario 3: S->CC; C->cC|d.
func twoCsGrammar(t *testing.T) grammar.Grammar {
	t.Helper()
	g, err := grammar.New(
		[]string{"c", "d"},
		[]string{"S", "C"},
		[]grammar.Production{
			{Head: "S", Body: []string{"C", "C"}},
			{Head: "C", Body: []string{"c", "C"}},
			{Head: "C", Body: []string{"d"}},
		},
		"S",
	)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return g
}

func Test_BuildCanonicalLR1_requiresAugmented(t *testing.T) {
	assert := assert.New(t)
	g := twoCsGrammar(t)

	_, err := BuildCanonicalLR1(g)
	assert.Error(err)
}

func Test_BuildCanonicalLR1_buildsReachableStates(t *testing.T) {
	assert := assert.New(t)
	g := twoCsGrammar(t).Augmented()

	dfa, err := BuildCanonicalLR1(g)
	assert.NoError(err)
	assert.Greater(dfa.NumStates(), 1)
	assert.Equal(dfa.Start, 0)

	// from the start state, shifting on every terminal in the grammar
	// should lead somewhere, since both C alternatives start with c or d.
	_, ok := dfa.Next(dfa.Start, "c")
	assert.True(ok)
	_, ok = dfa.Next(dfa.Start, "d")
	assert.True(ok)
}

func Test_BuildCanonicalLR1Limited_stopsAtCap(t *testing.T) {
	assert := assert.New(t)
	g := twoCsGrammar(t).Augmented()

	_, err := BuildCanonicalLR1Limited(g, 1)
	assert.Error(err)
}
