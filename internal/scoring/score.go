package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

type MetricStatus string

const (
	StatusPass MetricStatus = "pass"
	StatusWarn MetricStatus = "warn"
	StatusFail MetricStatus = "fail"
)

const (
	PassThreshold = 80
	WarnThreshold = 60
)

// StatusOf grades a single 0-100 metric.
func StatusOf(score int) MetricStatus {
	switch {
	case score >= PassThreshold:
		return StatusPass
	case score >= WarnThreshold:
		return StatusWarn
	default:
		return StatusFail
	}
}

// RoundMean returns the arithmetic mean of values rounded half-up. An empty
// slice yields 0.
func RoundMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Floor(float64(sum)/float64(len(values)) + 0.5))
}

// OverallScore averages the five category scores. Room scores are display
// only and never enter this figure.
func OverallScore(c model.CategoryScores) int {
	return RoundMean(c.Values())
}

// Quarter returns 1-4 for the calendar quarter containing t.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// Category is a named metric with its grade.
type Category struct {
	Name   string       `json:"name"`
	Score  int          `json:"score"`
	Status MetricStatus `json:"status"`
}

var categoryNames = []string{"structural", "mechanical", "aesthetic", "efficiency", "safety"}

// Breakdown grades each category score in canonical order.
func Breakdown(c model.CategoryScores) []Category {
	values := c.Values()
	out := make([]Category, len(values))
	for i, v := range values {
		out[i] = Category{Name: categoryNames[i], Score: v, Status: StatusOf(v)}
	}
	return out
}

// HomeScore builds the quarterly snapshot for a set of category scores and
// room findings, stamped at now.
func HomeScore(c model.CategoryScores, rooms []model.RoomInspection, now time.Time) model.HomeScore {
	improvements := []string{}
	for _, cat := range Breakdown(c) {
		if cat.Status != StatusPass {
			improvements = append(improvements, fmt.Sprintf("Improve %s (%d, %s)", cat.Name, cat.Score, cat.Status))
		}
	}

	recommendations := []string{}
	seen := map[string]bool{}
	for _, room := range rooms {
		for _, rec := range room.Recommendations {
			if rec == "" || seen[rec] {
				continue
			}
			seen[rec] = true
			recommendations = append(recommendations, rec)
		}
	}

	return model.HomeScore{
		Score:           OverallScore(c),
		Quarter:         Quarter(now),
		Year:            now.Year(),
		Categories:      c,
		Improvements:    improvements,
		Recommendations: recommendations,
		CreatedAt:       now,
	}
}
