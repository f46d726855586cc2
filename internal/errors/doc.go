// Package errors provides structured, actionable error messages for weft.
//
// Every WeftError carries a registered code (e.g., "E120") that maps to a
// category, a short message, a detailed explanation and a documentation URL.
//
// # Categories
//
//   - runtime: engine misuse (hooks outside components, closed scheduler)
//   - host: platform errors (foreign nodes, unknown event targets)
//   - protocol: preview server messages
//   - storage: snapshot backends
//   - config: weft.json / weft.yaml
//   - cli: command-line usage
//
// # Usage
//
//	err := errors.New("E141").
//	    WithLocation("weft.json", 0).
//	    WithSuggestion("Run 'weft render' from the project root")
//
//	fmt.Println(err.Format())
//
// The render engine itself never returns these errors: failures inside
// components, effects and commits propagate as panics.
package errors
