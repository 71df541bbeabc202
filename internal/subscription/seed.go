package subscription

import (
	"time"

	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/recurrence"
	"github.com/dukerupert/hudson/internal/scoring"
)

type task struct {
	title    string
	category string
}

var seasonalTasks = map[string][]task{
	"winter": {
		{"Inspect furnace and replace filter", "hvac"},
		{"Check exposed pipes for freeze risk", "plumbing"},
		{"Test smoke and CO detectors", "safety"},
		{"Inspect door and window weatherstripping", "efficiency"},
	},
	"spring": {
		{"Clean gutters and downspouts", "exterior"},
		{"Service air conditioning unit", "hvac"},
		{"Inspect roof for winter damage", "structural"},
		{"Test sump pump", "plumbing"},
	},
	"summer": {
		{"Inspect deck and patio surfaces", "exterior"},
		{"Clean dryer vent", "safety"},
		{"Check irrigation and hose bibs", "plumbing"},
		{"Replace HVAC filter", "hvac"},
	},
	"fall": {
		{"Winterize outdoor faucets", "plumbing"},
		{"Clear leaves from gutters", "exterior"},
		{"Service furnace before heating season", "hvac"},
		{"Seal gaps around windows and doors", "efficiency"},
	},
}

var everyVisit = []task{
	{"Whole-home walkthrough", "general"},
	{"Check for water leaks under sinks", "plumbing"},
}

var technicians = []string{"Jordan Reyes", "Priya Nair", "Marcus Bell"}

// Season names the season a month falls in (northern hemisphere).
func Season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "fall"
	}
}

// Checklist returns the task list for a visit in the given month.
func Checklist(m time.Month, newID func() string) []model.VisitTask {
	tasks := append(append([]task{}, everyVisit...), seasonalTasks[Season(m)]...)
	out := make([]model.VisitTask, len(tasks))
	for i, t := range tasks {
		out[i] = model.VisitTask{ID: newID(), Title: t.title, Category: t.category}
	}
	return out
}

// SeedVisits returns five completed monthly visits ending one month ago and
// one visit scheduled one month out, oldest first.
func SeedVisits(now time.Time, newID func() string) []model.Visit {
	monthly := recurrence.Months(1)
	visits := make([]model.Visit, 0, 6)

	for k := -5; k <= -1; k++ {
		date := recurrence.Nth(monthly, now, k)
		completedAt := date
		tasks := Checklist(date.Month(), newID)
		for i := range tasks {
			tasks[i].Completed = true
		}
		visits = append(visits, model.Visit{
			ID:             newID(),
			ScheduledDate:  date,
			CompletedDate:  &completedAt,
			Status:         model.VisitCompleted,
			TechnicianName: technicianFor(date),
			Tasks:          tasks,
		})
	}

	next := recurrence.Nth(monthly, now, 1)
	visits = append(visits, model.Visit{
		ID:             newID(),
		ScheduledDate:  next,
		Status:         model.VisitScheduled,
		TechnicianName: technicianFor(next),
		Tasks:          Checklist(next.Month(), newID),
	})
	return visits
}

// baselineScores seed a new subscription's first quarterly score until a
// real inspection replaces it.
var baselineScores = model.CategoryScores{
	Structural: 85,
	Mechanical: 80,
	Aesthetic:  82,
	Efficiency: 75,
	Safety:     90,
}

func InitialScore(now time.Time) model.HomeScore {
	return scoring.HomeScore(baselineScores, nil, now)
}

func technicianFor(t time.Time) string {
	return technicians[int(t.Month())%len(technicians)]
}
