// Package fiber is weft's incremental reconciliation engine.
//
// A Root renders a vdom.Element tree into one host container. Rendering is
// split into units of work, one per Node, processed in depth-first order
// during idle periods granted by a scheduler.IdleScheduler. When the
// remaining idle time drops to the yield threshold the work loop stops and
// resumes at the same node in the next idle period. Once every unit has run
// the finished tree is committed to the host in one uninterrupted pass.
//
// # Trees
//
// Each Root keeps two trees. The committed tree mirrors what is on the
// host; the pending tree is being built. Every pending node links to the
// committed node it was reconciled against (its alternate) and carries an
// effect tag:
//
//	EffectUpdate   same type at the same index: keep the host node, diff props
//	EffectReplace  new or changed type: create a host node and insert it
//
// Committed nodes without a same-typed counterpart are deleted. Matching is
// purely positional; there are no keys.
//
// # Hooks
//
// Function components and stateful components may call UseState and
// UseEffect. Hooks are identified by call order, so a component must call
// the same hooks in the same order on every render.
//
//	func Counter(props vdom.Props) *vdom.Element {
//	    n, set := fiber.UseState(0)
//	    fiber.UseEffect(func() fiber.Cleanup {
//	        log.Printf("count is %d", n)
//	        return nil
//	    }, []any{n})
//	    return vdom.Button(vdom.OnClick(func() { set(n + 1) }), n)
//	}
//
// State setters may be called at any time from the goroutine driving the
// root. An update arriving mid-traversal discards the uncommitted tree and
// restarts from the committed one; queued updates are never lost. Updates
// arriving during a commit start a new cycle when it finishes.
//
// # Observing
//
// An Observer receives cycle, yield, discard and commit notifications.
// Package telemetry provides Prometheus and OpenTelemetry observers.
package fiber
