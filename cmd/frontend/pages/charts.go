package pages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reviewdb/reviewdb/pkg/log"
)

func ChartsRouter() http.Handler {

	r := chi.NewRouter()
	r.Get("/{key}.png", chartHandler)
	return r
}

func chartHandler(w http.ResponseWriter, r *http.Request) {

	b, ok := chartStore.Get(chi.URLParam(r, "key"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")

	_, err := w.Write(b)
	if err != nil {
		log.ErrS(err)
	}
}
