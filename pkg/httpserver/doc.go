// Package httpserver runs the API's http.Server with graceful shutdown and
// health endpoints.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func() { _ = mongoClient.Disconnect(context.Background()) }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled, the process receives SIGINT or SIGTERM,
// or Shutdown is called. Shutdown waits up to the configured timeout for
// in-flight requests and then runs the stop hooks once.
//
// LivenessHandler and ReadinessHandler back /health and /ready; readiness
// runs named checks (Mongo and Redis pings) and reports each as ok or failed.
package httpserver
