package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the services mounted by Router. Nil services are skipped.
type RouterOptions struct {
	Password    Mountable
	GoogleOAuth Mountable
	Steam       Mountable
}

// Router mounts the account routes:
//
//	/auth/...        local credentials and session endpoints
//	/auth/google     Google sign-in
//	/steam/auth      Steam linking
//
// Mount the result under /api.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(auth chi.Router) {
		if opts.Password != nil {
			auth.Mount("/", opts.Password.Handle())
		}
		if opts.GoogleOAuth != nil {
			auth.Mount("/google", opts.GoogleOAuth.Handle())
		}
	})
	if opts.Steam != nil {
		r.Mount("/steam/auth", opts.Steam.Handle())
	}

	return r
}
