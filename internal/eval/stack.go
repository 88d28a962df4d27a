package eval

import "nickandperla.net/rpnc/internal/number"

// Stack is the operand stack. Index 0 is the bottom.
type Stack struct {
	items []number.Complex
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	return len(s.items)
}

// Push adds v on top.
func (s *Stack) Push(v number.Complex) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top entry.
func (s *Stack) Pop() (number.Complex, error) {
	n := len(s.items)
	if n == 0 {
		return number.Complex{}, ErrStackUnderflow
	}
	v := s.items[n-1]
	s.items = s.items[:n-1]
	return v, nil
}

// Top returns the top entry without removing it.
func (s *Stack) Top() (number.Complex, bool) {
	if len(s.items) == 0 {
		return number.Complex{}, false
	}
	return s.items[len(s.items)-1], true
}

// Clear empties the stack.
func (s *Stack) Clear() {
	s.items = s.items[:0]
}

// Values returns a copy of the entries, bottom first.
func (s *Stack) Values() []number.Complex {
	out := make([]number.Complex, len(s.items))
	copy(out, s.items)
	return out
}

// peek returns the top two entries as (second, top). The caller has
// already checked the depth.
func (s *Stack) peek2() (number.Complex, number.Complex) {
	n := len(s.items)
	return s.items[n-2], s.items[n-1]
}

// replace pops n entries and pushes vals.
func (s *Stack) replace(n int, vals ...number.Complex) {
	s.items = append(s.items[:len(s.items)-n], vals...)
}
