package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/voucherdesk/internal/http/journal"
	authmw "github.com/MrJamesThe3rd/voucherdesk/internal/http/middleware"
	"github.com/MrJamesThe3rd/voucherdesk/internal/http/voucher"
)

// FilesPath is where stored voucher files are served under /api/v1.
const FilesPath = "/files"

type Options struct {
	AllowedOrigins []string
	AuthSecret     string
}

func New(
	opts Options,
	vouchersV1 *voucher.Handler,
	journalV1 *journal.Handler,
	files http.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authmw.Auth(opts.AuthSecret))

		r.Route("/vouchers", vouchersV1.Routes)

		r.Route("/journal", journalV1.Routes)

		r.Handle(FilesPath+"/*", files)
	})

	return router
}
