// Package handler provides type-safe HTTP request handling.
//
// Handlers are generic functions that receive a bound request value and
// return a Response:
//
//	type LoginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	func login(ctx handler.Context, req LoginRequest) handler.Response {
//		session, err := accounts.Login(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(session)
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinder[handler.Context, LoginRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, LoginRequest](errorHandler),
//	))
//
// # Errors
//
// Every error body has the same shape:
//
//	{"error": "human readable message", "code": "machine_key", "fields": [...]}
//
// HTTPError carries the status code and key; validator.ValidationErrors
// render as 400 with the failed fields. Anything else is a 500 whose
// message never exposes internal details.
package handler
