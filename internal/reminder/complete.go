package reminder

import (
	"slices"
	"time"

	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/recurrence"
)

// Completion is the outcome of completing one reminder.
type Completion struct {
	Reminders []model.Reminder
	Completed model.Reminder
	Successor *model.Reminder
}

// NextDue returns the successor due date of a recurring reminder. ok is false
// when the reminder does not recur or its interval is not positive.
func NextDue(r model.Reminder) (time.Time, bool) {
	if !r.Recurring {
		return time.Time{}, false
	}
	rule, ok := recurrence.Days(r.RecurringInterval)
	if !ok {
		return time.Time{}, false
	}
	return recurrence.Next(rule, r.DueDate), true
}

// Complete marks the reminder with the given id completed at now and, when it
// recurs, appends exactly one open successor. The input slice is not
// modified. ok is false when the id is unknown or the reminder is already
// completed; the returned Reminders then equal the input.
func Complete(reminders []model.Reminder, id string, now time.Time, newID func() string) (Completion, bool) {
	idx := slices.IndexFunc(reminders, func(r model.Reminder) bool { return r.ID == id })
	if idx < 0 || reminders[idx].Completed {
		return Completion{Reminders: reminders}, false
	}

	out := make([]model.Reminder, len(reminders), len(reminders)+1)
	copy(out, reminders)

	done := out[idx]
	completedAt := now
	done.Completed = true
	done.CompletedDate = &completedAt
	out[idx] = done

	c := Completion{Completed: done}
	if due, ok := NextDue(done); ok {
		next := model.Reminder{
			ID:                newID(),
			Title:             done.Title,
			Description:       done.Description,
			Type:              done.Type,
			Priority:          done.Priority,
			DueDate:           due,
			Recurring:         done.Recurring,
			RecurringInterval: done.RecurringInterval,
			CreatedAt:         now,
		}
		out = append(out, next)
		c.Successor = &next
	}
	c.Reminders = out
	return c, true
}
