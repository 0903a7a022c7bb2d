// Package stats computes dashboard aggregates over a feedback set.
package stats

import (
	"sort"
	"strconv"

	"feedback-portal/internal/models"
)

// RecentLimit is the number of newest records included in Stats.RecentFeedback.
const RecentLimit = 10

// Aggregate computes totals, per-category breakdowns, the rating histogram and the
// newest records. An empty input yields zero totals and empty maps; the rating
// histogram is only populated for a non-empty set.
func Aggregate(all []models.Feedback) models.Stats {
	if len(all) == 0 {
		return models.Stats{
			CategoryBreakdown:  map[string]models.CategoryStats{},
			RatingDistribution: map[string]int{},
			RecentFeedback:     []models.Feedback{},
		}
	}

	return models.Stats{
		TotalFeedback:      len(all),
		AvgRating:          avgRating(all),
		CategoryBreakdown:  categoryBreakdown(all),
		RatingDistribution: ratingDistribution(all),
		RecentFeedback:     Recent(all, RecentLimit),
	}
}

func avgRating(set []models.Feedback) float64 {
	sum := 0
	for i := range set {
		sum += set[i].Rating
	}
	return float64(sum) / float64(len(set))
}

func categoryBreakdown(all []models.Feedback) map[string]models.CategoryStats {
	type acc struct {
		count     int
		ratings   int
		sentiment float64
	}
	sums := make(map[models.Category]*acc, len(models.Categories))
	for i := range all {
		a, ok := sums[all[i].Category]
		if !ok {
			a = &acc{}
			sums[all[i].Category] = a
		}
		a.count++
		a.ratings += all[i].Rating
		a.sentiment += all[i].Sentiment()
	}

	breakdown := make(map[string]models.CategoryStats, len(sums))
	for _, c := range models.Categories {
		a, ok := sums[c]
		if !ok {
			continue
		}
		breakdown[string(c)] = models.CategoryStats{
			Count:        a.count,
			AvgRating:    float64(a.ratings) / float64(a.count),
			AvgSentiment: a.sentiment / float64(a.count),
		}
	}
	return breakdown
}

func ratingDistribution(all []models.Feedback) map[string]int {
	dist := make(map[string]int, models.MaxRating)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		dist[strconv.Itoa(r)] = 0
	}
	for i := range all {
		key := strconv.Itoa(all[i].Rating)
		if _, ok := dist[key]; ok {
			dist[key]++
		}
	}
	return dist
}

// Recent returns up to n records ordered by timestamp, newest first. Equal
// timestamps are ordered by id so the output is stable across calls.
func Recent(all []models.Feedback, n int) []models.Feedback {
	sorted := make([]models.Feedback, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.After(sorted[j].Timestamp)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
