package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pettycash-dev/pettycash/internal/http/auth"
	"github.com/pettycash-dev/pettycash/internal/http/entry"
	"github.com/pettycash-dev/pettycash/internal/http/export"
	"github.com/pettycash-dev/pettycash/internal/http/importcsv"
	"github.com/pettycash-dev/pettycash/internal/http/refdata"
	"github.com/pettycash-dev/pettycash/internal/http/report"
)

type Options struct {
	AuthSecret     string
	AllowedOrigins []string
}

func New(
	entriesV1 *entry.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	refdataV1 *refdata.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.AuthSecret))

		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exportV1.Routes(r)
		})

		refdataV1.Routes(r)
	})

	return router
}
