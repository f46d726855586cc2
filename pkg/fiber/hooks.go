package fiber

import (
	"reflect"

	"github.com/vango-dev/weft/pkg/vdom"
)

// updateQueue is the append-only log of updates for one state hook. Every
// generation of the slot shares it; each generation records how far it has
// folded. Absolute position i lives at updates[i-base].
type updateQueue struct {
	base    int
	updates []any
}

func (q *updateQueue) end() int {
	return q.base + len(q.updates)
}

// compact drops updates before position read.
func (q *updateQueue) compact(read int) {
	if read <= q.base {
		return
	}
	if read >= q.end() {
		q.updates = nil
	} else {
		q.updates = append([]any(nil), q.updates[read-q.base:]...)
	}
	q.base = read
}

// hookSlot is one position in a component's hook sequence.
type hookSlot struct {
	// state hooks
	state  any
	queue  *updateQueue
	read   int
	setter any

	// effect hooks
	effect *effectSlot
}

type effectSlot struct {
	fn      EffectFunc
	deps    []any
	cleanup Cleanup
	pending bool
}

// Cleanup undoes an effect. It runs before the effect runs again and when
// the component is removed.
type Cleanup func()

// EffectFunc performs a side effect after commit and may return a Cleanup.
type EffectFunc func() Cleanup

// UseState returns the current state of the next state slot and a setter.
// On the first render the slot is seeded with initial; afterwards queued
// updates are applied in order. The setter is stable across renders,
// appends an update and schedules a new render cycle.
//
// When the state and an update are both maps keyed by strings (including
// named types such as vdom.Props) the update is merged into a copy of the
// state, which keeps the state's type. Otherwise the update replaces the
// state, unless it is absent: untyped nil or a nil pointer or func.
func UseState[T any](initial T) (T, func(T)) {
	c := currentContext("UseState")
	state, setter := useState(c, initial, func(s *hookSlot) any {
		return func(v T) { s.push(c.root, v) }
	})
	var out T
	if state != nil {
		out = state.(T)
	}
	return out, setter.(func(T))
}

// UseStateAny is the untyped form of UseState.
func UseStateAny(initial any) (any, func(any)) {
	c := currentContext("UseStateAny")
	state, setter := useState(c, initial, func(s *hookSlot) any {
		return func(v any) { s.push(c.root, v) }
	})
	return state, setter.(func(any))
}

func useState(c *renderContext, initial any, makeSetter func(*hookSlot) any) (any, any) {
	_, prev := c.nextSlot()

	var slot *hookSlot
	if prev == nil || prev.queue == nil {
		slot = &hookSlot{state: initial, queue: &updateQueue{}}
		slot.setter = makeSetter(slot)
	} else {
		slot = &hookSlot{
			state:  prev.state,
			queue:  prev.queue,
			read:   prev.read,
			setter: prev.setter,
		}
		for _, u := range prev.queue.updates[prev.read-prev.queue.base:] {
			slot.state = applyUpdate(slot.state, u)
		}
		slot.read = prev.queue.end()
	}

	c.node.hooks = append(c.node.hooks, slot)
	return slot.state, slot.setter
}

// push appends an update to the shared log and schedules a cycle.
func (s *hookSlot) push(root *Root, update any) {
	s.queue.updates = append(s.queue.updates, update)
	root.scheduleUpdate()
}

// applyUpdate folds one update into state.
func applyUpdate(state, update any) any {
	if isAbsent(update) {
		return state
	}
	sv, uv := reflect.ValueOf(state), reflect.ValueOf(update)
	if !isStringMap(sv) || !isStringMap(uv) {
		return update
	}

	st := sv.Type()
	merged := reflect.MakeMapWithSize(st, sv.Len()+uv.Len())
	for it := sv.MapRange(); it.Next(); {
		merged.SetMapIndex(it.Key(), it.Value())
	}
	for it := uv.MapRange(); it.Next(); {
		v := it.Value()
		if v.Kind() == reflect.Interface {
			if v.IsNil() {
				v = reflect.Zero(st.Elem())
			} else {
				v = v.Elem()
			}
		}
		if !v.Type().AssignableTo(st.Elem()) {
			// The update does not fit the state's value type.
			return update
		}
		merged.SetMapIndex(it.Key().Convert(st.Key()), v)
	}
	return merged.Interface()
}

// isStringMap reports whether v is a map keyed by a string kind, named or
// not.
func isStringMap(v reflect.Value) bool {
	return v.IsValid() && v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String
}

// asMap returns v as a plain mapping.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case vdom.Props:
		return m, true
	}
	rv := reflect.ValueOf(v)
	if !isStringMap(rv) {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		m[it.Key().String()] = it.Value().Interface()
	}
	return m, true
}

// isAbsent reports whether v carries no update.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// UseEffect schedules effect to run after the commit of this render. With
// nil deps it runs after every commit; otherwise it runs on the first commit
// and then whenever an element of deps differs from the previous render.
// The previous cleanup runs immediately before the effect runs again, and
// when the component is removed.
func UseEffect(effect EffectFunc, deps []any) {
	c := currentContext("UseEffect")
	_, prev := c.nextSlot()

	slot := &hookSlot{}
	switch {
	case prev == nil || prev.effect == nil:
		slot.effect = &effectSlot{fn: effect, deps: deps, pending: true}
	case depsChanged(prev.effect.deps, deps):
		slot.effect = &effectSlot{fn: effect, deps: deps, cleanup: prev.effect.cleanup, pending: true}
	default:
		slot.effect = &effectSlot{fn: prev.effect.fn, deps: prev.effect.deps, cleanup: prev.effect.cleanup}
	}

	c.node.hooks = append(c.node.hooks, slot)
}

// depsChanged compares dependency lists elementwise.
func depsChanged(prev, next []any) bool {
	if prev == nil || next == nil || len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if !depEqual(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// depEqual compares values by the identity a closure-capturing language
// would use: values for comparable types, references for maps, slices,
// channels and pointers. Funcs never compare equal; structs and arrays that
// are not comparable are compared deeply.
func depEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	case reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	return reflect.DeepEqual(a, b)
}
