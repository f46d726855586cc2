// Package vdom provides the virtual node model for weft.
//
// An Element is an immutable description of a tree node: its Type and its
// Props. Props always carry the ordered children under ChildrenKey, so a
// component receives its children the same way it receives any other prop.
//
// # Types
//
// Type is an explicit tagged variant over the node kinds:
//
//	Tag("div")          // host element
//	TextType            // text node, content under TextKey
//	Fragment            // groups children without a host node
//	Func(TodoList)      // function component
//	Ctor(NewCounter)    // stateful component, constructed every render
//
// Two component types are the same when they wrap the same function.
//
// # Element API
//
// CreateElement is the factory. Elements can also be created with variadic
// helpers that accept properties and children in any order:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    Button(OnClick(handler), "Save"),
//	)
//
// Non-element children become text nodes; nil children are dropped; slices
// are flattened.
package vdom
