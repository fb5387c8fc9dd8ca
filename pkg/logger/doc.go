// Package logger builds the service's *slog.Logger and names the attributes
// shared across packages.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Parse(cfg.AppEnv), "capgames-api"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "steam account linked",
//		logger.UserID(user.ID),
//		logger.Provider("steam"),
//	)
//
// Development logs are debug-level text; every other environment gets
// info-level JSON. Context extractors run on every record, so values such as
// the request id come from the context passed to the *Context log methods.
//
// Attribute helpers return an empty slog.Attr for empty input, which slog
// drops, so callers need no nil checks:
//
//	log.Warn("login failed", logger.Error(err), logger.Reason(reason))
package logger
