// Package metrics exposes Prometheus counters and histograms for the HTTP
// surface, the auth flows and the upstream APIs, plus the /metrics handler.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	r.Use(m.Middleware)
//	r.Handle("/metrics", metrics.Handler(reg))
//
// HTTP series are labelled with the chi route pattern, not the raw path, so
// ids in URLs do not create new series. A nil *Metrics is valid and records
// nothing.
package metrics
