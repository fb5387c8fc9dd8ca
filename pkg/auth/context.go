package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/JhonRainbow6/WebProject/pkg/jwt"
)

// Identity is the verified caller of a request.
type Identity struct {
	UserID string
	Email  string
}

type identityKey struct{}

// WithIdentity stores the identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity or Middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// Middleware rejects requests without a valid session token and stores the
// caller's Identity in the request context. onError writes the rejection;
// the error it receives always matches ErrUnauthorized.
func Middleware(tokens TokenService, onError func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := jwt.DefaultExtractor(r)
			if err != nil {
				onError(w, r, errors.Join(ErrUnauthorized, err))
				return
			}

			id, err := tokens.Verify(raw)
			if err != nil {
				onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
