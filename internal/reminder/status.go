package reminder

import (
	"slices"
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusUpcoming  Status = "upcoming"
	StatusLater     Status = "later"
)

// DefaultHorizonDays is the look-ahead window for upcoming reminders.
const DefaultHorizonDays = 30

// Classify places a reminder into exactly one of the four buckets relative
// to now. Upcoming is inclusive on both ends: now <= due <= now+horizon.
func Classify(r model.Reminder, now time.Time, horizonDays int) Status {
	if r.Completed {
		return StatusCompleted
	}
	if r.DueDate.Before(now) {
		return StatusOverdue
	}
	if !r.DueDate.After(now.AddDate(0, 0, horizonDays)) {
		return StatusUpcoming
	}
	return StatusLater
}

// Upcoming returns open reminders due within horizonDays of now, earliest first.
func Upcoming(reminders []model.Reminder, now time.Time, horizonDays int) []model.Reminder {
	return filterSorted(reminders, now, horizonDays, StatusUpcoming)
}

// Overdue returns open reminders whose due date has passed, earliest first.
func Overdue(reminders []model.Reminder, now time.Time) []model.Reminder {
	return filterSorted(reminders, now, DefaultHorizonDays, StatusOverdue)
}

// Partition groups every reminder by its status. Each reminder appears in
// exactly one group.
func Partition(reminders []model.Reminder, now time.Time, horizonDays int) map[Status][]model.Reminder {
	out := make(map[Status][]model.Reminder, 4)
	for _, r := range reminders {
		s := Classify(r, now, horizonDays)
		out[s] = append(out[s], r)
	}
	for _, group := range out {
		sortByDue(group)
	}
	return out
}

func filterSorted(reminders []model.Reminder, now time.Time, horizonDays int, want Status) []model.Reminder {
	out := []model.Reminder{}
	for _, r := range reminders {
		if Classify(r, now, horizonDays) == want {
			out = append(out, r)
		}
	}
	sortByDue(out)
	return out
}

func sortByDue(rs []model.Reminder) {
	slices.SortStableFunc(rs, func(a, b model.Reminder) int {
		return a.DueDate.Compare(b.DueDate)
	})
}
