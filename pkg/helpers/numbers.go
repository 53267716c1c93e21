package helpers

import (
	"math"
)

func RoundFloatTo1DP(f float64) float64 {
	return math.Round(f*10) / 10
}

func RoundFloatTo2DP(f float64) float64 {
	return math.Round(f*100) / 100
}

func Max(vals ...float64) float64 {
	max := math.MaxFloat64 * -1
	for _, v := range vals {
		max = math.Max(max, v)
	}
	return max
}
