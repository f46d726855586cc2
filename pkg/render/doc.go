// Package render serializes the in-memory host tree to HTML.
//
// It covers what a preview or snapshot needs:
//
//   - Text and attribute escaping
//   - Void element handling (input, br, img, etc.)
//   - Boolean attribute handling (disabled, checked, etc.)
//   - Optional event IDs so a client can route events back to host nodes
//
// # Basic Usage
//
//	html := render.HTML(container)
//
//	r := render.New(render.Config{Pretty: true, EventIDs: true})
//	page := r.InnerHTML(container)
//
// Properties are rendered in sorted order, so the output is deterministic
// and suitable for golden comparisons.
package render
