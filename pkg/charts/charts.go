package charts

import (
	"bytes"
	"math/rand"
	"strconv"

	"github.com/reviewdb/reviewdb/pkg/helpers"
	"github.com/reviewdb/reviewdb/pkg/reviews"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colourDark   = drawing.ColorFromHex("1b2738")
	colourLight  = drawing.ColorFromHex("e9ecef")
	colourGreen  = drawing.ColorFromHex("28a745")
	colourRed    = drawing.ColorFromHex("dc3545")
	colourBlue   = drawing.ColorFromHex("007bff")
	colourOrange = drawing.ColorFromHex("fd7e14")
)

const histogramBins = 20

// Histogram renders binned playtime-hours counts for one subset, with
// vertical reference lines at the mean and the median.
func Histogram(rows []reviews.Row, sum reviews.Summary, title string) ([]byte, error) {

	var hours []float64
	for _, row := range rows {
		hours = append(hours, row.PlaytimeHours)
	}

	top := helpers.Max(hours...)
	if top <= 0 {
		top = 1
	}

	width := top / histogramBins
	counts := make([]float64, histogramBins)

	for _, h := range hours {
		bin := int(h / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}

	// Step outline of the bins
	var xs, ys []float64
	for i, count := range counts {
		xs = append(xs, float64(i)*width, float64(i+1)*width)
		ys = append(ys, count, count)
	}

	peak := helpers.Max(counts...)

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontColor: colourLight,
		},
		Background: chart.Style{
			FillColor: colourDark,
		},
		Canvas: chart.Style{
			FillColor: colourDark,
		},
		XAxis: chart.XAxis{
			Name:      "Hours played",
			NameStyle: chart.Style{FontColor: colourLight},
			Style: chart.Style{
				FontColor:   colourLight,
				StrokeColor: colourLight,
			},
		},
		YAxis: chart.YAxis{
			Name:      "Reviews",
			NameStyle: chart.Style{FontColor: colourLight},
			Style: chart.Style{
				FontColor:   colourLight,
				StrokeColor: colourLight,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: peak + 1,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "reviews",
				Style: chart.Style{
					StrokeColor: colourBlue,
					StrokeWidth: 1,
					FillColor:   colourBlue.WithAlpha(90),
				},
				XValues: xs,
				YValues: ys,
			},
			verticalLine("mean "+formatHours(sum.MeanHours), sum.MeanHours, peak+1, colourGreen),
			verticalLine("median "+formatHours(sum.MedianHours), sum.MedianHours, peak+1, colourRed),
		},
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return render(graph)
}

// Comparison renders one figure with two categorical columns of jittered
// playtime dots, liked on the left, disliked on the right.
func Comparison(liked []reviews.Row, disliked []reviews.Row, title string) ([]byte, error) {

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontColor: colourLight,
		},
		Background: chart.Style{
			FillColor: colourDark,
		},
		Canvas: chart.Style{
			FillColor: colourDark,
		},
		XAxis: chart.XAxis{
			Style: chart.Style{
				FontColor:   colourLight,
				StrokeColor: colourLight,
			},
			Range: &chart.ContinuousRange{
				Min: -0.5,
				Max: 1.5,
			},
			Ticks: []chart.Tick{
				{Value: -0.5, Label: ""},
				{Value: 0, Label: "liked"},
				{Value: 1, Label: "did not like"},
				{Value: 1.5, Label: ""},
			},
		},
		YAxis: chart.YAxis{
			Name:      "Hours played",
			NameStyle: chart.Style{FontColor: colourLight},
			Style: chart.Style{
				FontColor:   colourLight,
				StrokeColor: colourLight,
			},
		},
		Series: []chart.Series{
			swarm("liked", 0, liked, colourGreen),
			swarm("did not like", 1, disliked, colourOrange),
		},
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return render(graph)
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(helpers.RoundFloatTo1DP(hours), 'f', -1, 64) + "h"
}

func verticalLine(name string, x float64, top float64, colour drawing.Color) chart.Series {

	return chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor: colour,
			StrokeWidth: 1,
		},
		XValues: []float64{x, x},
		YValues: []float64{0, top},
	}
}

func swarm(name string, column float64, rows []reviews.Row, colour drawing.Color) chart.Series {

	var xs, ys []float64
	for _, row := range rows {
		xs = append(xs, column+(rand.Float64()-0.5)*0.4)
		ys = append(ys, row.PlaytimeHours)
	}

	// go-chart needs at least two points per series
	if len(rows) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	// Points only, no connecting line
	return chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeWidth: 0,
			DotWidth:    4,
			DotColor:    colour,
		},
		XValues: xs,
		YValues: ys,
	}
}

func render(graph chart.Chart) ([]byte, error) {

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
