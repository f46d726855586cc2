// Package scheduler provides the idle-callback primitive that drives render
// work.
//
// A root asks its IdleScheduler for an idle period with RequestIdle. The
// scheduler later invokes the callback with a Deadline whose TimeRemaining
// shrinks as the period is used up; the callback does as much work as the
// deadline allows and requests another period if work remains.
//
// Two implementations are provided:
//
//   - FrameLoop runs on a single goroutine in real time. Once per frame
//     (60 per second by default) it invokes the callbacks requested during the
//     previous frame with a deadline at the end of the frame. Tasks posted
//     from other goroutines run on the same goroutine, between frames.
//
//   - Manual is deterministic and meant for tests and batch rendering. Its
//     deadlines are measured in checks rather than time: Step(3) lets a
//     callback observe time remaining exactly three times.
package scheduler
