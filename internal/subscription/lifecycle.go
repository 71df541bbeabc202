package subscription

import (
	"errors"
	"time"

	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/recurrence"
)

var (
	ErrAlreadyActive = errors.New("property already has an active subscription")
	ErrNotActive     = errors.New("subscription is not active")
	ErrVisitClosed   = errors.New("visit is already completed")
)

const DefaultMonthlyPrice = 49.99

// New creates an active subscription seeded with visit history, an initial
// quarterly score and an empty plan starting this year.
func New(propertyID, userID string, price float64, now time.Time, newID func() string) model.Subscription {
	score := InitialScore(now)
	return model.Subscription{
		ID:              newID(),
		PropertyID:      propertyID,
		UserID:          userID,
		Status:          model.SubscriptionActive,
		MonthlyPrice:    price,
		StartDate:       now,
		NextBillingDate: recurrence.Next(recurrence.Months(1), now),
		Visits:          SeedVisits(now, newID),
		CurrentScore:    &score,
		Blueprint: model.Blueprint{
			Plan:          model.FiveYearPlan{StartYear: now.Year(), Items: []model.PlanItem{}},
			History:       []model.HistoryEntry{},
			Notifications: []model.Notification{},
			UpdatedAt:     now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Cancel marks an active or inactive subscription cancelled. Visits and the
// blueprint are kept.
func Cancel(sub model.Subscription, now time.Time) (model.Subscription, error) {
	if sub.Status == model.SubscriptionCancelled {
		return sub, ErrNotActive
	}
	cancelledAt := now
	sub.Status = model.SubscriptionCancelled
	sub.CancelledAt = &cancelledAt
	sub.UpdatedAt = now
	return sub, nil
}

// Reactivate resumes a cancelled or inactive subscription on its existing
// record: visit history, score and blueprint carry over, and a visit one
// month out is scheduled if none is pending.
func Reactivate(sub model.Subscription, now time.Time, newID func() string) (model.Subscription, error) {
	if sub.Status == model.SubscriptionActive {
		return sub, ErrAlreadyActive
	}
	sub.Status = model.SubscriptionActive
	sub.CancelledAt = nil
	sub.NextBillingDate = recurrence.Next(recurrence.Months(1), now)
	sub.UpdatedAt = now

	pending := false
	for _, v := range sub.Visits {
		if v.Status == model.VisitScheduled && v.ScheduledDate.After(now) {
			pending = true
			break
		}
	}
	if !pending {
		visits := make([]model.Visit, len(sub.Visits), len(sub.Visits)+1)
		copy(visits, sub.Visits)
		date := recurrence.Next(recurrence.Months(1), now)
		sub.Visits = append(visits, model.Visit{
			ID:             newID(),
			ScheduledDate:  date,
			Status:         model.VisitScheduled,
			TechnicianName: technicianFor(date),
			Tasks:          Checklist(date.Month(), newID),
		})
	}
	return sub, nil
}
