// Package vtest provides testing helpers for weft components.
//
// A Harness mounts a tree on host.Memory with a manual scheduler, so tests
// control exactly when render work happens and can inspect both the host
// tree and the recorded host operations.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Render(vdom.Instance(NewCounter))
//	    h.Click(h.ByTag("button")[0])
//	    h.ExpectContains("1")
//	}
//
// # Stepping
//
// Render and the event helpers flush all work. To observe a cycle in
// progress, call Root.Render directly and grant idle periods with Step:
//
//	h.Root.Render(tree)
//	h.Step(2) // two units of work, then yield
//
// # Operations
//
// Every host mutation is recorded:
//
//	h.ResetOps()
//	h.Render(next)
//	if vtest.CountOps(h.Ops(), host.OpInsert) != 0 {
//	    t.Error("expected no inserts")
//	}
package vtest
