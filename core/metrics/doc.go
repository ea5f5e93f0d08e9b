// Package metrics defines the Recorder interface the pipeline reports to.
// Pages processed, rows skipped and records produced are counted by
// outcome or reason; infra/metrics backs the interface with Prometheus
// counters and NopRecorder discards everything.
package metrics
