// Package snapshot stores the serialized host tree after each commit.
//
// A Store keeps Snapshot values under keys that sort by root and cycle.
// Three backends are provided: Memory, Bolt (a bbolt database file) and S3.
// Open selects one from the snapshot section of weft.json.
//
// A Recorder observes a root and writes a snapshot after every commit:
//
//	rec := snapshot.NewRecorder(store, func() string { return render.HTML(container) })
//	defer rec.Close()
//	root := fiber.NewRoot(container, platform, sched, fiber.WithObserver(rec))
package snapshot
