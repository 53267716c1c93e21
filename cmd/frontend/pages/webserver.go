package pages

import (
	"bytes"
	"encoding/json"
	"html/template"
	"math"
	"net/http"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gobuffalo/packr/v2"
	"github.com/reviewdb/reviewdb/pkg/catalog"
	"github.com/reviewdb/reviewdb/pkg/charts"
	"github.com/reviewdb/reviewdb/pkg/config"
	"github.com/reviewdb/reviewdb/pkg/log"
)

var (
	gamesCatalog *catalog.Catalog
	chartStore   *charts.Store
)

func Init(c *catalog.Catalog, s *charts.Store) {
	gamesCatalog = c
	chartStore = s
}

func setHeaders(w http.ResponseWriter, contentType string) {

	csp := []string{
		"default-src 'none'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self'",
		"connect-src 'self'",
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "SAMEORIGIN")
	w.Header().Set("Content-Security-Policy", strings.Join(csp, "; "))
	w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
}

func returnJSON(w http.ResponseWriter, r *http.Request, i interface{}) {

	setHeaders(w, "application/json")

	b, err := json.Marshal(i)
	if err != nil {
		log.ErrS(err)
		return
	}

	_, err = w.Write(b)
	if err != nil && !strings.Contains(err.Error(), "write: broken pipe") {
		log.ErrS(err)
	}
}

var templatesBox = packr.New("templates", "../templates")

func returnTemplate(w http.ResponseWriter, r *http.Request, page string, pageData interface{}) {

	setHeaders(w, "text/html")

	t := template.New("t")
	t = t.Funcs(getTemplateFuncMap())

	templates := []string{
		"_header.gohtml",
		"_footer.gohtml",
		page + ".gohtml",
	}

	for _, v := range templates {

		s, err := templatesBox.FindString(v)
		if err != nil {
			log.ErrS(err)
			continue
		}

		t, err = t.Parse(s)
		if err != nil {
			log.ErrS(err)
			continue
		}
	}

	buf := &bytes.Buffer{}
	err := t.ExecuteTemplate(buf, path.Base(page), pageData)
	if err != nil {
		log.ErrS(err)
		http.Error(w, "Looks like I messed something up, will be fixed soon!", http.StatusInternalServerError)
		return
	}

	_, err = buf.WriteTo(w)
	if err != nil && !strings.Contains(err.Error(), "write: broken pipe") {
		log.ErrS(err)
	}
}

func getTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"comma":  func(i int) string { return humanize.Comma(int64(i)) },
		"commaf": func(f float64) string { return humanize.Commaf(f) },
		"round":  func(f float64) int { return int(math.Round(f)) },
	}
}

type globalTemplate struct {
	Title       string
	Description template.HTML
	Path        string
	Env         string
}

func (t *globalTemplate) fill(w http.ResponseWriter, r *http.Request, title string, description template.HTML) {

	t.Title = title + " - Steam Reviews Explorer"
	t.Description = description
	t.Path = r.URL.Path
	t.Env = config.C.Environment
}

type errorTemplate struct {
	globalTemplate
	Code    int
	Message string
}

func returnErrorTemplate(w http.ResponseWriter, r *http.Request, t errorTemplate) {

	if t.Title == "" {
		t.fill(w, r, "Error", "")
	}

	setHeaders(w, "text/html")
	w.WriteHeader(t.Code)

	returnTemplate(w, r, "error", t)
}

func Error404Handler(w http.ResponseWriter, r *http.Request) {
	returnErrorTemplate(w, r, errorTemplate{Code: http.StatusNotFound, Message: "Page not found"})
}
