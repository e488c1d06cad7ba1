/*
Package observability turns navigator and search events into Prometheus
metrics and structured log lines.

Metrics exposes LifecycleHooks and SearchHooks that can be handed to the
engine and the search overlay; Merge combines them with other observers.
*/
package observability
