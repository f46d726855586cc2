// Package telemetry provides fiber.Observer implementations for Prometheus
// metrics and OpenTelemetry tracing.
//
//	reg := prometheus.NewRegistry()
//	root := fiber.NewRoot(container, platform, sched,
//	    fiber.WithObserver(telemetry.NewMetrics(telemetry.WithRegistry(reg))),
//	    fiber.WithObserver(telemetry.NewTracer()),
//	)
//
// Observers run on the goroutine driving the root and never block it.
package telemetry
