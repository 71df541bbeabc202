package reminder

import (
	"fmt"
	"testing"
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func TestCompleteRecurringProducesOneSuccessor(t *testing.T) {
	today := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, 10)
	reminders := []model.Reminder{{
		ID: "r1", Title: "Replace HVAC filter", Type: model.ReminderMaintenance,
		Priority: model.PriorityHigh, DueDate: due, Recurring: true, RecurringInterval: 30,
	}}

	c, ok := Complete(reminders, "r1", today, seqIDs())
	if !ok {
		t.Fatal("expected completion")
	}
	if len(c.Reminders) != 2 {
		t.Fatalf("len = %d, want 2", len(c.Reminders))
	}

	orig := c.Reminders[0]
	if !orig.Completed {
		t.Error("original should be completed")
	}
	if orig.CompletedDate == nil || !orig.CompletedDate.Equal(today) {
		t.Errorf("completedDate = %v, want %v", orig.CompletedDate, today)
	}

	next := c.Reminders[1]
	if c.Successor == nil || c.Successor.ID != next.ID {
		t.Fatalf("successor = %+v, want %+v", c.Successor, next)
	}
	if next.Completed {
		t.Error("successor should not be completed")
	}
	want := today.AddDate(0, 0, 40)
	if !next.DueDate.Equal(want) {
		t.Errorf("successor due = %v, want %v", next.DueDate, want)
	}
	if next.ID == "r1" || next.ID == "" {
		t.Errorf("successor id = %q, want a fresh id", next.ID)
	}
	if next.Title != orig.Title || next.Type != orig.Type || next.Priority != orig.Priority {
		t.Errorf("successor fields not carried over: %+v", next)
	}
	if !next.Recurring || next.RecurringInterval != 30 {
		t.Errorf("successor recurrence = %v/%d, want true/30", next.Recurring, next.RecurringInterval)
	}

	// Input untouched.
	if reminders[0].Completed {
		t.Error("input slice was mutated")
	}
}

func TestCompleteNonRecurring(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	tests := []model.Reminder{
		{ID: "a", DueDate: now},
		{ID: "a", DueDate: now, Recurring: true},
		{ID: "a", DueDate: now, Recurring: true, RecurringInterval: -3},
		{ID: "a", DueDate: now, RecurringInterval: 30},
	}
	for i, r := range tests {
		c, ok := Complete([]model.Reminder{r}, "a", now, seqIDs())
		if !ok {
			t.Errorf("case %d: expected completion", i)
			continue
		}
		if c.Successor != nil || len(c.Reminders) != 1 {
			t.Errorf("case %d: successor generated for non-recurring reminder", i)
		}
		if !c.Reminders[0].Completed {
			t.Errorf("case %d: not completed", i)
		}
	}
}

func TestCompleteIsNoopForUnknownOrCompleted(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	done := now.AddDate(0, 0, -1)
	reminders := []model.Reminder{
		{ID: "done", DueDate: now, Completed: true, CompletedDate: &done, Recurring: true, RecurringInterval: 7},
	}

	if _, ok := Complete(reminders, "missing", now, seqIDs()); ok {
		t.Error("unknown id should be a no-op")
	}
	c, ok := Complete(reminders, "done", now, seqIDs())
	if ok {
		t.Error("completing twice should be a no-op")
	}
	if len(c.Reminders) != 1 {
		t.Errorf("len = %d, want 1", len(c.Reminders))
	}
}

func TestNextDueIsPure(t *testing.T) {
	r := model.Reminder{DueDate: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), Recurring: true, RecurringInterval: 30}
	a, _ := NextDue(r)
	b, _ := NextDue(r)
	if !a.Equal(b) {
		t.Errorf("NextDue differs across calls: %v vs %v", a, b)
	}
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); !a.Equal(want) {
		t.Errorf("NextDue = %v, want %v", a, want)
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		r    model.Reminder
		want Status
	}{
		{"completed wins over overdue", model.Reminder{DueDate: now.AddDate(0, 0, -5), Completed: true}, StatusCompleted},
		{"past is overdue", model.Reminder{DueDate: now.Add(-time.Minute)}, StatusOverdue},
		{"now is upcoming", model.Reminder{DueDate: now}, StatusUpcoming},
		{"horizon edge is upcoming", model.Reminder{DueDate: now.AddDate(0, 0, 30)}, StatusUpcoming},
		{"past horizon is later", model.Reminder{DueDate: now.AddDate(0, 0, 30).Add(time.Second)}, StatusLater},
	}
	for _, tt := range tests {
		if got := Classify(tt.r, now, DefaultHorizonDays); got != tt.want {
			t.Errorf("%s: Classify = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestUpcomingAndOverdueSorted(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	reminders := []model.Reminder{
		{ID: "u2", DueDate: now.AddDate(0, 0, 20)},
		{ID: "o1", DueDate: now.AddDate(0, 0, -10)},
		{ID: "u1", DueDate: now.AddDate(0, 0, 2)},
		{ID: "later", DueDate: now.AddDate(0, 0, 90)},
		{ID: "o2", DueDate: now.AddDate(0, 0, -1)},
		{ID: "done", DueDate: now.AddDate(0, 0, 1), Completed: true},
	}

	up := Upcoming(reminders, now, DefaultHorizonDays)
	if got := ids(up); got != "u1,u2" {
		t.Errorf("upcoming = %s, want u1,u2", got)
	}
	over := Overdue(reminders, now)
	if got := ids(over); got != "o1,o2" {
		t.Errorf("overdue = %s, want o1,o2", got)
	}

	wider := Upcoming(reminders, now, 120)
	if got := ids(wider); got != "u1,u2,later" {
		t.Errorf("upcoming(120) = %s, want u1,u2,later", got)
	}
}

func TestPartitionCoversEveryReminderOnce(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	var reminders []model.Reminder
	for d := -40; d <= 80; d += 7 {
		reminders = append(reminders, model.Reminder{
			ID:        fmt.Sprintf("r%d", d),
			DueDate:   now.AddDate(0, 0, d),
			Completed: d%3 == 0,
		})
	}

	parts := Partition(reminders, now, DefaultHorizonDays)
	seen := map[string]int{}
	total := 0
	for _, group := range parts {
		for _, r := range group {
			seen[r.ID]++
			total++
		}
	}
	if total != len(reminders) {
		t.Errorf("partition size = %d, want %d", total, len(reminders))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("%s appears %d times", id, n)
		}
	}
	if len(parts[StatusOverdue]) != len(Overdue(reminders, now)) {
		t.Error("overdue group disagrees with Overdue")
	}
	if len(parts[StatusUpcoming]) != len(Upcoming(reminders, now, DefaultHorizonDays)) {
		t.Error("upcoming group disagrees with Upcoming")
	}
}

func ids(rs []model.Reminder) string {
	s := ""
	for i, r := range rs {
		if i > 0 {
			s += ","
		}
		s += r.ID
	}
	return s
}
