package simulation

import (
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

// Stack holds one Context per pushed scene. It is never empty: popping the
// last context replaces it with a fresh one.
type Stack struct {
	root      *tuning.Table
	collision system.Collision
	contexts  []*Context
}

// NewStack creates a stack with one fresh context. New contexts share root
// as the parent of their default constants.
func NewStack(root *tuning.Table, collision system.Collision) *Stack {
	st := &Stack{root: root, collision: collision}
	st.Push()
	return st
}

// Current returns the top context
func (st *Stack) Current() *Context {
	return st.contexts[len(st.contexts)-1]
}

// Push starts a fresh context on top of the stack
func (st *Stack) Push() *Context {
	ctx := New(st.root, st.collision)
	st.contexts = append(st.contexts, ctx)
	return ctx
}

// Pop discards the top context and returns it
func (st *Stack) Pop() *Context {
	top := st.Current()
	st.contexts[len(st.contexts)-1] = nil
	st.contexts = st.contexts[:len(st.contexts)-1]
	if len(st.contexts) == 0 {
		st.Push()
	}
	return top
}

// Len returns the number of contexts
func (st *Stack) Len() int {
	return len(st.contexts)
}
