package pages

import (
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/reviewdb/reviewdb/pkg/charts"
	"github.com/reviewdb/reviewdb/pkg/helpers"
	"github.com/reviewdb/reviewdb/pkg/log"
	"github.com/reviewdb/reviewdb/pkg/reviews"
	"github.com/reviewdb/reviewdb/pkg/steam"
)

func GamesRouter() http.Handler {

	r := chi.NewRouter()
	r.Get("/{id:[0-9]+}/reviews", reviewsHandler)
	return r
}

type reviewsTemplate struct {
	globalTemplate
	Name          string
	Score         float64
	Total         int
	Liked         subsetBlock
	Disliked      subsetBlock
	ComparisonKey string
}

type subsetBlock struct {
	Count    int
	Mean     int
	Median   int
	P25      int
	P75      int
	ChartKey string
}

// reviewsHandler is the whole fetch-and-render cycle. It blocks for the
// duration of the paginated fetch, a failed cycle shows only the error.
func reviewsHandler(w http.ResponseWriter, r *http.Request) {

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		Error404Handler(w, r)
		return
	}

	game, ok := gamesCatalog.Get(id)
	if !ok {
		returnErrorTemplate(w, r, errorTemplate{Code: http.StatusNotFound, Message: "That game is not in the catalog"})
		return
	}

	max := clampMaxReviews(r.URL.Query().Get("max"))

	raw, err := steam.GetReviews(game.AppID, max, steam.Params{})
	if err != nil {
		log.ErrS(err)
		returnErrorTemplate(w, r, errorTemplate{Code: http.StatusBadGateway, Message: "Failed to fetch reviews: " + err.Error()})
		return
	}

	rows := reviews.Transform(raw, game.Name)
	liked, disliked := reviews.Split(rows)

	t := reviewsTemplate{}
	t.fill(w, r, game.Name, template.HTML("Playtime of players who liked and disliked "+game.Name))
	t.Name = game.Name
	t.Score = helpers.RoundFloatTo2DP(game.ReviewScore() * 100)
	t.Total = len(rows)

	t.Liked, err = buildSubset(liked, game.Name, "liked")
	if err != nil {
		returnSubsetError(w, r, err, "liked", game.Name)
		return
	}

	t.Disliked, err = buildSubset(disliked, game.Name, "did not like")
	if err != nil {
		returnSubsetError(w, r, err, "did not like", game.Name)
		return
	}

	png, err := charts.Comparison(liked, disliked, game.Name+" playtime, liked vs did not like")
	if err != nil {
		log.ErrS(err)
		returnErrorTemplate(w, r, errorTemplate{Code: http.StatusInternalServerError, Message: "Failed to render charts"})
		return
	}

	t.ComparisonKey = charts.Key(game.Name, "comparison")
	chartStore.Add(t.ComparisonKey, png)

	returnTemplate(w, r, "reviews", t)
}

func returnSubsetError(w http.ResponseWriter, r *http.Request, err error, kind string, name string) {

	if err == reviews.ErrNoReviews {
		returnErrorTemplate(w, r, errorTemplate{Code: http.StatusOK, Message: "No data to summarize for players who " + kind + " " + name})
		return
	}

	log.ErrS(err)
	returnErrorTemplate(w, r, errorTemplate{Code: http.StatusInternalServerError, Message: "Failed to render charts"})
}

func buildSubset(rows []reviews.Row, title string, kind string) (block subsetBlock, err error) {

	sum, err := reviews.Summarize(rows)
	if err != nil {
		return block, err
	}

	png, err := charts.Histogram(rows, sum, "Players who "+kind+" "+title)
	if err != nil {
		return block, err
	}

	block.Count = sum.Count
	block.Mean = int(math.Round(sum.MeanHours))
	block.Median = int(math.Round(sum.MedianHours))
	block.P25 = int(math.Round(sum.P25Hours))
	block.P75 = int(math.Round(sum.P75Hours))
	block.ChartKey = charts.Key(title, kind)

	chartStore.Add(block.ChartKey, png)

	return block, nil
}
