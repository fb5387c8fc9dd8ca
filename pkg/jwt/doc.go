// Package jwt issues and verifies the HS256 session tokens used by the API.
//
// Tokens carry the user id and email plus a mandatory expiry. Verification
// failures are reported as one of three sentinel errors so callers can tell
// an expired session from a forged or garbled one:
//
//	ErrExpiredToken      exp is in the past
//	ErrInvalidSignature  the signature does not match the key or algorithm
//	ErrMalformedToken    anything that is not a well-formed token with our claims
//
// Token extractors pull the raw token out of a request; DefaultExtractor
// matches what the frontend sends.
//
//	svc, _ := jwt.New([]byte(secret), jwt.WithTTL(24*time.Hour))
//	token, _ := svc.Issue(user.ID, user.Email)
//	claims, err := svc.Parse(token)
package jwt
