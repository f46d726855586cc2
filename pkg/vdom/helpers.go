package vdom

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *Element) *Element {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *Element) *Element {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *Element) *Element {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to elements. Nil results are skipped.
func Range[T any](items []T, fn func(index int, item T) *Element) []*Element {
	out := make([]*Element, 0, len(items))
	for i, item := range items {
		if el := fn(i, item); el != nil {
			out = append(out, el)
		}
	}
	return out
}
