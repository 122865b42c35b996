package service

import (
	"math"

	"storehub/internal/httpapi/models"
)

// RatingSummary is the derived view of a store's ratings. It is computed on
// demand and never stored.
type RatingSummary struct {
	Average     float64
	Count       int64
	ViewerValue *int
}

// Summarize aggregates a store's ratings. Average is the mean rounded to two
// decimal places, 0 when there are no ratings. When viewerID is non-empty and
// one of the ratings belongs to the viewer, ViewerValue carries their value.
//
// Every read path that surfaces store averages goes through this function so
// the figures never disagree between endpoints.
func Summarize(ratings []models.Rating, viewerID string) RatingSummary {
	summary := RatingSummary{Count: int64(len(ratings))}
	if len(ratings) == 0 {
		return summary
	}

	sum := 0
	for i := range ratings {
		sum += ratings[i].Value
		if viewerID != "" && ratings[i].UserID == viewerID {
			v := ratings[i].Value
			summary.ViewerValue = &v
		}
	}
	summary.Average = round2(float64(sum) / float64(len(ratings)))
	return summary
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
