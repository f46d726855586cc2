// Package devserver is a live preview server for weft applications.
//
// The server mounts an application on an in-memory host driven by a
// scheduler.FrameLoop. After every commit it serializes the host tree and
// pushes it to connected browsers over a websocket; browser events travel
// back over the same socket and are dispatched to the host on the frame
// loop goroutine.
//
// Routes:
//
//	GET /             page with the current markup and the client script
//	GET /ws           websocket: {"type":"html",...} out, {"type":"event",...} in
//	GET /healthz      liveness and current cycle
//	GET /metrics      Prometheus metrics, when Config.Metrics is set
//	GET /snapshots    stored snapshot keys, when Config.Snapshots is set
//	GET /snapshots/{key}
//
// Example:
//
//	srv := devserver.New(vdom.Comp(demo.TodoList), &devserver.Config{Metrics: true})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Panics raised by components, effects or listeners are recovered, logged
// and reported to clients as error messages.
package devserver
