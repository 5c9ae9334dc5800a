package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DFA_AddState_AddTransition(t *testing.T) {
	assert := assert.New(t)

	d := &DFA[string]{}
	s0 := d.AddState("start")
	s1 := d.AddState("end")
	d.Start = s0
	d.AddTransition(s0, "a", s1)

	assert.Equal(2, d.NumStates())
	assert.Equal("start", d.Value(s0))

	j, ok := d.Next(s0, "a")
	assert.True(ok)
	assert.Equal(s1, j)

	_, ok = d.Next(s0, "b")
	assert.False(ok)
}

func Test_DFA_AddTransition_panicsOnBadState(t *testing.T) {
	d := &DFA[string]{}
	s0 := d.AddState("start")

	assert.Panics(t, func() {
		d.AddTransition(s0, "a", 99)
	})
}

func Test_DFA_Transitions_sorted(t *testing.T) {
	assert := assert.New(t)

	d := &DFA[string]{}
	s0 := d.AddState("start")
	s1 := d.AddState("mid")
	s2 := d.AddState("end")
	d.AddTransition(s0, "b", s2)
	d.AddTransition(s0, "a", s1)

	trans := d.Transitions(s0)
	assert.Len(trans, 2)
	assert.Equal("a", trans[0].Input)
	assert.Equal("b", trans[1].Input)
}
