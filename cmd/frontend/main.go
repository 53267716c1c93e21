package main

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/reviewdb/reviewdb/cmd/frontend/pages"
	"github.com/reviewdb/reviewdb/pkg/catalog"
	"github.com/reviewdb/reviewdb/pkg/charts"
	"github.com/reviewdb/reviewdb/pkg/config"
	"github.com/reviewdb/reviewdb/pkg/log"
	"go.uber.org/zap"
)

var version string

func main() {

	rand.Seed(time.Now().Unix())

	err := config.Init(version)
	log.InitZap(log.LogNameFrontend)
	defer log.Flush()
	if err != nil {
		log.ErrS(err)
		return
	}

	// The catalog is static, load it once and share it read-only
	gamesCatalog, err := catalog.Load()
	if err != nil {
		log.FatalS(err)
	}

	log.Info("Catalog loaded", zap.Int("games", len(gamesCatalog.Games())))

	pages.Init(gamesCatalog, charts.NewStore(time.Minute*10))

	// Routes
	r := chi.NewRouter()
	r.Use(chiMiddleware.RedirectSlashes)

	r.Get("/", pages.HomeHandler)
	r.Get("/search.json", pages.SearchAjaxHandler)
	r.Get("/reviews", pages.ReviewsFormHandler)

	r.Mount("/games", pages.GamesRouter())
	r.Mount("/charts", pages.ChartsRouter())
	r.Mount("/health-check", pages.HealthCheckRouter())

	// 404
	r.NotFound(pages.Error404Handler)

	// Serve
	s := &http.Server{
		Addr:              config.C.ListenOn(),
		Handler:           r,
		ReadTimeout:       2 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Info("Starting Frontend on " + "http://" + s.Addr)

	err = s.ListenAndServe()
	if err != nil {
		log.ErrS(err)
	}
}
