package steam

import (
	"net/url"
	"strconv"
	"time"

	"github.com/Jleagle/steam-go/steamapi"
	"github.com/reviewdb/reviewdb/pkg/config"
	"github.com/reviewdb/reviewdb/pkg/helpers"
	"github.com/reviewdb/reviewdb/pkg/log"
	"go.uber.org/zap"
)

const defaultEndpoint = "https://store.steampowered.com/appreviews"

// The wildcard cursor asks for the first page
const startCursor = "*"

// Review is the wire shape of one store review. Only the fields this tool
// reads are decoded.
type Review struct {
	Author struct {
		PlaytimeForever int `json:"playtime_forever"` // Minutes
	} `json:"author"`
	VotedUp bool `json:"voted_up"`
}

type reviewsResponse struct {
	Success int      `json:"success"`
	Cursor  string   `json:"cursor"`
	Reviews []Review `json:"reviews"`
}

// Params are the page parameters threaded through every request of one fetch.
// Zero values fall back to config, then to the store defaults.
type Params struct {
	Language   string
	NumPerPage int
	Filter     string
}

func (p Params) values(cursor string) url.Values {

	language := p.Language
	if language == "" {
		language = config.C.ReviewsLanguage
	}
	if language == "" {
		language = string(steamapi.LanguageEnglish)
	}

	perPage := p.NumPerPage
	if perPage == 0 {
		perPage = config.C.ReviewsPerPage
	}
	if perPage == 0 {
		perPage = 100
	}

	filter := p.Filter
	if filter == "" {
		filter = config.C.ReviewsFilter
	}
	if filter == "" {
		filter = "recent"
	}

	vals := url.Values{}
	vals.Set("json", "1")
	vals.Set("language", language)
	vals.Set("cursor", cursor)
	vals.Set("num_per_page", strconv.Itoa(perPage))
	vals.Set("filter", filter)

	return vals
}

// Error is a non-200 response from the reviews endpoint. Terminal for the
// current fetch, never retried.
type Error struct {
	Status int
}

func (e Error) Error() string {
	return "steam: reviews endpoint returned status " + strconv.Itoa(e.Status)
}

// GetReviews pages through the reviews of one app until the accumulator
// reaches max or the store stops returning a cursor. The final page is kept
// whole, so up to one page past max can come back. Cursor state never
// survives between calls.
func GetReviews(appID int, max int, params Params) (revs []Review, err error) {

	cursor := startCursor

	for len(revs) < max-1 {

		resp, err := getReviewsPage(appID, params, cursor)
		if err != nil {
			return nil, err
		}

		revs = append(revs, resp.Reviews...)

		// No cursor means no more pages. An empty page guards against the
		// store re-serving the final cursor forever.
		if resp.Cursor == "" || len(resp.Reviews) == 0 {
			break
		}

		cursor = resp.Cursor
	}

	log.Debug("Fetched reviews", zap.Int("app", appID), zap.Int("count", len(revs)))

	return revs, nil
}

func getReviewsPage(appID int, params Params, cursor string) (resp reviewsResponse, err error) {

	base := config.C.ReviewsURL
	if base == "" {
		base = defaultEndpoint
	}

	link := base + "/" + strconv.Itoa(appID) + "?" + params.values(cursor).Encode()

	timeout := time.Duration(config.C.ReviewsTimeout) * time.Second

	body, code, err := helpers.GetWithTimeout(link, timeout)
	if err != nil {
		return resp, err
	}

	if code != 200 {
		return resp, Error{Status: code}
	}

	err = helpers.Unmarshal(body, &resp)
	return resp, err
}
