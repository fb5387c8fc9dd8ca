package jwt

import (
	"net/http"
	"strings"
)

// TokenExtractorFunc defines a function that extracts a token from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// AuthTokenHeader is the header the frontend sends the session token in.
const AuthTokenHeader = "x-auth-token"

// DefaultExtractor reads the x-auth-token header and falls back to the
// "token" query parameter. Browser redirects during provider linking can only
// carry the token in the URL.
var DefaultExtractor = ChainExtractors(
	HeaderTokenExtractor(AuthTokenHeader),
	QueryTokenExtractor("token"),
)

// ChainExtractors returns the first token found by any extractor.
func ChainExtractors(extractors ...TokenExtractorFunc) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		for _, extract := range extractors {
			if token, err := extract(r); err == nil && token != "" {
				return token, nil
			}
		}
		return "", ErrMissingToken
	}
}

// BearerTokenExtractor extracts JWT tokens from "Authorization: Bearer <token>" headers.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", ErrMalformedToken
	}

	return token, nil
}

// QueryTokenExtractor creates a token extractor for URL query parameters.
func QueryTokenExtractor(paramName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.URL.Query().Get(paramName)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// HeaderTokenExtractor creates a token extractor for custom headers.
func HeaderTokenExtractor(headerName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := strings.TrimSpace(r.Header.Get(headerName))
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}
