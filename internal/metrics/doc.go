// Package metrics records docs sync runs as Prometheus metrics.
//
// docsync is a short-lived process, so there is no /metrics endpoint. The
// registry is written to a node-exporter textfile after each run instead.
package metrics
