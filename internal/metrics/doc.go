// Package metrics records site build metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics can be switched on without nil checks in callers:
//
//	b := build.New(site, build.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry;
// WriteTextfile persists that registry in the node_exporter textfile format
// after a one-shot build.
package metrics
