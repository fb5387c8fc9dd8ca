// Package requestid tags every request with a correlation id.
//
// Middleware accepts an inbound X-Request-ID made of letters, digits, "-"
// and "_" (at most 128 bytes) and otherwise generates a UUID. The id is
// stored in the request context, echoed in the response header and added
// to log records by LoggerExtractor.
//
//	r.Use(requestid.Middleware)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
