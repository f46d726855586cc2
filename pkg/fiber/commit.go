package fiber

import "time"

// commitRoot applies the finished work tree to the host tree. It runs to
// completion: deletions first, then insertions and updates in depth-first
// order, then pending effects in depth-first order.
func (r *Root) commitRoot() {
	r.phase = PhaseCommitting
	start := time.Now()
	stats := CommitStats{CycleInfo: r.info(), Units: r.units, Slices: r.slices}

	for _, d := range r.deletions {
		if parent := hostParent(d); parent != nil {
			r.removeHostNodes(d, parent)
		}
		walk(d, func(n *Node) {
			stats.Cleanups += runCleanups(n)
		})
		stats.Deletions++
	}

	root := r.pending
	walk(root, func(n *Node) {
		if n == root || n.hostNode == nil {
			return
		}
		switch n.effectTag {
		case EffectReplace:
			r.insertHostNode(n)
			stats.Inserts++
		case EffectUpdate:
			var prev map[string]any
			if n.alternate != nil {
				prev = n.alternate.Props
			}
			r.updateHostNode(n, prev)
			stats.Updates++
		}
	})

	r.current = root
	r.pending = nil
	r.deletions = nil

	walk(root, func(n *Node) {
		for _, s := range n.hooks {
			if s.queue != nil {
				s.queue.compact(s.read)
			}
		}
	})

	walk(root, func(n *Node) {
		for _, s := range n.hooks {
			e := s.effect
			if e == nil || !e.pending {
				continue
			}
			if e.cleanup != nil {
				e.cleanup()
				stats.Cleanups++
			}
			e.cleanup = nil
			if e.fn != nil {
				e.cleanup = e.fn()
			}
			e.pending = false
			stats.Effects++
		}
	})

	stats.Duration = time.Since(start)
	stats.Elapsed = time.Since(r.cycleStart)
	r.phase = PhaseIdle

	r.logger.Debug("commit",
		"cycle", stats.Cycle,
		"units", stats.Units,
		"inserts", stats.Inserts,
		"updates", stats.Updates,
		"deletions", stats.Deletions,
		"effects", stats.Effects,
		"duration", stats.Duration,
	)
	r.observer.OnCommit(stats)

	r.afterCommit()
}

// runCleanups runs the effect cleanups of a deleted node.
func runCleanups(n *Node) int {
	ran := 0
	for _, s := range n.hooks {
		if s.effect == nil || s.effect.cleanup == nil {
			continue
		}
		cleanup := s.effect.cleanup
		s.effect.cleanup = nil
		cleanup()
		ran++
	}
	return ran
}
