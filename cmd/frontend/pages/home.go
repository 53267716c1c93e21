package pages

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/reviewdb/reviewdb/pkg/catalog"
)

const defaultMaxReviews = 100

type homeTemplate struct {
	globalTemplate
	Query   string
	Matches []catalog.Game
	Max     int
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {

	t := homeTemplate{}
	t.fill(w, r, "Home", "How long do players actually spend with a game?")
	t.Query = r.URL.Query().Get("search")
	t.Matches = gamesCatalog.Search(t.Query)
	t.Max = clampMaxReviews(r.URL.Query().Get("max"))

	returnTemplate(w, r, "home", t)
}

// SearchAjaxHandler backs the dropdown, (name, id) pairs in catalog order.
func SearchAjaxHandler(w http.ResponseWriter, r *http.Request) {

	type searchResult struct {
		Name  string `json:"name"`
		AppID int    `json:"appid"`
	}

	results := make([]searchResult, 0)
	for _, game := range gamesCatalog.Search(r.URL.Query().Get("search")) {
		results = append(results, searchResult{Name: game.Name, AppID: game.AppID})
	}

	returnJSON(w, r, results)
}

// ReviewsFormHandler bounces the submitted form to the canonical game page.
func ReviewsFormHandler(w http.ResponseWriter, r *http.Request) {

	appID, err := strconv.Atoi(r.URL.Query().Get("appid"))
	if err != nil {
		Error404Handler(w, r)
		return
	}

	q := url.Values{}
	q.Set("max", strconv.Itoa(clampMaxReviews(r.URL.Query().Get("max"))))

	http.Redirect(w, r, "/games/"+strconv.Itoa(appID)+"/reviews?"+q.Encode(), http.StatusFound)
}

// The form bounds max reviews to 100-500 in steps of 100
func clampMaxReviews(val string) int {

	max, err := strconv.Atoi(val)
	if err != nil {
		return defaultMaxReviews
	}

	if max < 100 {
		return 100
	}
	if max > 500 {
		return 500
	}

	return max - max%100
}
