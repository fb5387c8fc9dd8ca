package gaming

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the services mounted by Router. Nil services are skipped.
type RouterOptions struct {
	Steam Mountable
	Deals Mountable
	News  Mountable
}

// Router mounts /steam, /deals and /news. Mount the result under /api.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	if opts.Steam != nil {
		r.Mount("/steam", opts.Steam.Handle())
	}
	if opts.Deals != nil {
		r.Mount("/deals", opts.Deals.Handle())
	}
	if opts.News != nil {
		r.Mount("/news", opts.News.Handle())
	}
	return r
}
