package reviews

import (
	"errors"

	"github.com/montanaflynn/stats"
	"github.com/reviewdb/reviewdb/pkg/steam"
)

var ErrNoReviews = errors.New("no reviews to summarise")

// Row is one parsed review, tagged with the game it belongs to.
type Row struct {
	Playtime      int // Minutes
	PlaytimeHours float64
	VotedUp       bool
	Title         string
}

// Transform maps raw reviews to rows, one to one. Pure, no filtering.
func Transform(raw []steam.Review, title string) (rows []Row) {

	for _, review := range raw {
		rows = append(rows, Row{
			Playtime:      review.Author.PlaytimeForever,
			PlaytimeHours: float64(review.Author.PlaytimeForever) / 60,
			VotedUp:       review.VotedUp,
			Title:         title,
		})
	}

	return rows
}

// Split partitions rows on the voted-up flag, keeping order.
func Split(rows []Row) (liked []Row, disliked []Row) {

	for _, row := range rows {
		if row.VotedUp {
			liked = append(liked, row)
		} else {
			disliked = append(disliked, row)
		}
	}

	return liked, disliked
}

// Summary holds descriptive playtime statistics for one subset of rows.
// Values are exact hours, display rounding happens at the presentation edge.
type Summary struct {
	MeanHours   float64
	MedianHours float64
	P25Hours    float64
	P75Hours    float64
	Count       int
}

// Summarize returns ErrNoReviews on an empty subset rather than producing a
// degenerate result.
func Summarize(rows []Row) (sum Summary, err error) {

	if len(rows) == 0 {
		return sum, ErrNoReviews
	}

	var hours stats.Float64Data
	for _, row := range rows {
		hours = append(hours, row.PlaytimeHours)
	}

	sum.Count = len(rows)

	sum.MeanHours, err = stats.Mean(hours)
	if err != nil {
		return sum, err
	}

	sum.MedianHours, err = stats.Median(hours)
	if err != nil {
		return sum, err
	}

	// Nearest-rank quartiles, the interpolating form rejects subsets
	// smaller than four rows.
	sum.P25Hours, err = stats.PercentileNearestRank(hours, 25)
	if err != nil {
		return sum, err
	}

	sum.P75Hours, err = stats.PercentileNearestRank(hours, 75)
	return sum, err
}
