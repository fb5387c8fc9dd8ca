package handler

import (
	"log/slog"
	"net/http"

	"github.com/JhonRainbow6/WebProject/pkg/logger"
	"github.com/JhonRainbow6/WebProject/pkg/requestid"
)

func determineLogLevel(statusCode int) slog.Level {
	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler returns the JSON error handler shared by every route.
// Client errors are logged at warn, server errors at error, both with the
// request id; the body never contains the underlying error text.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status, body := ClassifyError(err)

		log.LogAttrs(r.Context(), determineLogLevel(status), "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("code", body.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := jsonResponse{status: status, body: body}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}

// ErrorResponse adapts an ErrorHandler for places that only hold the raw
// writer and request, such as middleware.
func ErrorResponse(h ErrorHandler[Context]) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		h(NewContext(w, r), err)
	}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Fail returns a Response that hands err to the route's ErrorHandler
// instead of writing anything itself.
func Fail(err error) Response {
	return errorResponse{err: err}
}
