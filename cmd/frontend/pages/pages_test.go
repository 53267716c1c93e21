package pages

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/reviewdb/reviewdb/pkg/catalog"
	"github.com/reviewdb/reviewdb/pkg/charts"
	"github.com/reviewdb/reviewdb/pkg/config"
)

func setup(t *testing.T) {

	t.Helper()

	config.C.CatalogPath = "testdata/catalog.json"
	t.Cleanup(func() { config.C.CatalogPath = "" })

	c, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}

	Init(c, charts.NewStore(time.Minute))
}

func fakeSteam(t *testing.T, handler http.HandlerFunc) {

	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Cleanup(func() { config.C.ReviewsURL = "" })

	config.C.ReviewsURL = server.URL
}

func testRouter() http.Handler {

	r := chi.NewRouter()
	r.Get("/", HomeHandler)
	r.Get("/search.json", SearchAjaxHandler)
	r.Get("/reviews", ReviewsFormHandler)
	r.Mount("/games", GamesRouter())
	r.Mount("/charts", ChartsRouter())
	return r
}

func TestSearchAjaxHandler(t *testing.T) {

	setup(t)

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/search.json?search=half", nil))

	if w.Code != 200 {
		t.Fatal(w.Code)
	}

	var results []struct {
		Name  string `json:"name"`
		AppID int    `json:"appid"`
	}

	err := json.Unmarshal(w.Body.Bytes(), &results)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 {
		t.Fatal(results)
	}
	if results[0].Name != "Half-Life" || results[0].AppID != 10 {
		t.Error(results[0])
	}
}

func TestHomeHandler(t *testing.T) {

	setup(t)

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/?search=portal", nil))

	if w.Code != 200 {
		t.Fatal(w.Code)
	}
	if !strings.Contains(w.Body.String(), "Portal") {
		t.Error("missing match")
	}
}

func TestReviewsFormHandler(t *testing.T) {

	setup(t)

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/reviews?appid=10&max=300", nil))

	if w.Code != http.StatusFound {
		t.Fatal(w.Code)
	}
	if w.Header().Get("Location") != "/games/10/reviews?max=300" {
		t.Error(w.Header().Get("Location"))
	}
}

func TestReviewsHandler(t *testing.T) {

	setup(t)

	fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {

		type review struct {
			Author struct {
				PlaytimeForever int `json:"playtime_forever"`
			} `json:"author"`
			VotedUp bool `json:"voted_up"`
		}

		var resp struct {
			Success int      `json:"success"`
			Cursor  string   `json:"cursor"`
			Reviews []review `json:"reviews"`
		}

		resp.Success = 1
		for i := 0; i < 60; i++ {
			var rev review
			rev.Author.PlaytimeForever = 30 * (i + 1)
			rev.VotedUp = i%3 != 0
			resp.Reviews = append(resp.Reviews, rev)
		}

		err := json.NewEncoder(w).Encode(resp)
		if err != nil {
			t.Error(err)
		}
	})

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/games/10/reviews?max=100", nil))

	if w.Code != 200 {
		t.Fatal(w.Code, w.Body.String())
	}

	body := w.Body.String()
	if !strings.Contains(body, "Steam review score") {
		t.Error("missing score line")
	}
	if !strings.Contains(body, "/charts/") {
		t.Error("missing chart panels")
	}
}

func TestReviewsHandlerSmallSubset(t *testing.T) {

	setup(t)

	// Two disliked reviews must still summarize and render
	fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{"success": 1, "cursor": "", "reviews": [
			{"author": {"playtime_forever": 60}, "voted_up": true},
			{"author": {"playtime_forever": 120}, "voted_up": true},
			{"author": {"playtime_forever": 180}, "voted_up": true},
			{"author": {"playtime_forever": 30}, "voted_up": false},
			{"author": {"playtime_forever": 90}, "voted_up": false}
		]}`))
		if err != nil {
			t.Error(err)
		}
	})

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/games/10/reviews?max=100", nil))

	if w.Code != 200 {
		t.Fatal(w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "/charts/") {
		t.Error("missing chart panels")
	}
}

func TestReviewsHandlerFetchError(t *testing.T) {

	setup(t)

	fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/games/10/reviews?max=100", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatal(w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to fetch reviews") {
		t.Error("missing error message")
	}
}

func TestReviewsHandlerEmptySubset(t *testing.T) {

	setup(t)

	fakeSteam(t, func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{"success": 1, "cursor": "", "reviews": []}`))
		if err != nil {
			t.Error(err)
		}
	})

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/games/10/reviews?max=100", nil))

	if w.Code != 200 {
		t.Fatal(w.Code)
	}
	if !strings.Contains(w.Body.String(), "No data to summarize") {
		t.Error("missing empty subset message")
	}
}

func TestReviewsHandlerUnknownGame(t *testing.T) {

	setup(t)

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/games/999/reviews", nil))

	if w.Code != http.StatusNotFound {
		t.Fatal(w.Code)
	}
}

func TestChartHandler(t *testing.T) {

	setup(t)

	chartStore.Add("test-key", []byte("fake png"))

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/charts/test-key.png", nil))

	if w.Code != 200 {
		t.Fatal(w.Code)
	}
	if w.Header().Get("Content-Type") != "image/png" {
		t.Error(w.Header().Get("Content-Type"))
	}
	if w.Body.String() != "fake png" {
		t.Error(w.Body.String())
	}

	w = httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest("GET", "/charts/expired.png", nil))

	if w.Code != http.StatusNotFound {
		t.Fatal(w.Code)
	}
}

func TestClampMaxReviews(t *testing.T) {

	cases := map[string]int{
		"":    100,
		"x":   100,
		"50":  100,
		"100": 100,
		"250": 200,
		"300": 300,
		"999": 500,
	}

	for val, expected := range cases {
		if got := clampMaxReviews(val); got != expected {
			t.Error(val, got)
		}
	}
}
