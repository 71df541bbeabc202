package service

import (
	"strings"
	"testing"
	"time"
)

func TestCheckUsesJSONNames(t *testing.T) {
	err := check(ReminderInput{Priority: "urgent"})
	msgs := ValidationMessages(err)
	if msgs["title"] != "is required" {
		t.Errorf("title = %q", msgs["title"])
	}
	if msgs["dueDate"] != "is required" {
		t.Errorf("dueDate = %q", msgs["dueDate"])
	}
	if msgs["priority"] != "is not an allowed value" {
		t.Errorf("priority = %q", msgs["priority"])
	}
	if !strings.HasPrefix(err.Error(), "invalid input: ") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRecurringNeedsInterval(t *testing.T) {
	base := ReminderInput{Title: "Gutters", DueDate: time.Now()}

	if err := check(base); err != nil {
		t.Errorf("non-recurring: %v", err)
	}

	base.Recurring = true
	if msgs := ValidationMessages(check(base)); msgs["recurringInterval"] == "" {
		t.Errorf("recurring without interval: %v", msgs)
	}

	base.RecurringInterval = 90
	if err := check(base); err != nil {
		t.Errorf("recurring with interval: %v", err)
	}
}

func TestValidationMessagesIgnoresOtherErrors(t *testing.T) {
	if msgs := ValidationMessages(ErrNotFound); msgs != nil {
		t.Errorf("msgs = %v, want nil", msgs)
	}
}

func TestPlanWindow(t *testing.T) {
	for year, want := range map[int]bool{2025: false, 2026: true, 2030: true, 2031: false} {
		if got := planWindow(2026, year); got != want {
			t.Errorf("planWindow(2026, %d) = %v, want %v", year, got, want)
		}
	}
}
