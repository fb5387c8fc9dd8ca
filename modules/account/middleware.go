package account

import (
	"fmt"
	"net/http"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/binder"
)

// RequireAuth rejects requests without a valid session token with a JSON 401.
func RequireAuth(tokens auth.TokenService, errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	respond := handler.ErrorResponse(errorHandler)
	return auth.Middleware(tokens, func(w http.ResponseWriter, r *http.Request, err error) {
		respond(w, r, handler.ErrUnauthorized.Wrap(err))
	})
}

// LimitBody caps the request body at limit bytes. A declared Content-Length
// over the limit is refused with a JSON 413 before any of the body is read;
// bodies of unknown length fail the same way once they cross it.
func LimitBody(limit int64, errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	respond := handler.ErrorResponse(errorHandler)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				respond(w, r, fmt.Errorf("%w: %d bytes over a %d byte limit", binder.ErrRequestTooLarge, r.ContentLength, limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
