package subscription

import (
	"slices"
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

// ToggleTask flips one checklist task on a scheduled visit. Unknown ids
// return sub unchanged with ok=false.
func ToggleTask(sub model.Subscription, visitID, taskID string, now time.Time) (out model.Subscription, ok bool, err error) {
	vi := slices.IndexFunc(sub.Visits, func(v model.Visit) bool { return v.ID == visitID })
	if vi < 0 {
		return sub, false, nil
	}
	visit := sub.Visits[vi]
	if visit.Status == model.VisitCompleted {
		return sub, false, ErrVisitClosed
	}
	ti := slices.IndexFunc(visit.Tasks, func(t model.VisitTask) bool { return t.ID == taskID })
	if ti < 0 {
		return sub, false, nil
	}

	visit.Tasks = slices.Clone(visit.Tasks)
	visit.Tasks[ti].Completed = !visit.Tasks[ti].Completed

	sub.Visits = slices.Clone(sub.Visits)
	sub.Visits[vi] = visit
	sub.UpdatedAt = now
	return sub, true, nil
}

// CompleteVisit moves a scheduled visit to completed and stamps its
// completion date. Unknown ids return sub unchanged with ok=false.
func CompleteVisit(sub model.Subscription, visitID, notes string, now time.Time) (out model.Subscription, ok bool, err error) {
	vi := slices.IndexFunc(sub.Visits, func(v model.Visit) bool { return v.ID == visitID })
	if vi < 0 {
		return sub, false, nil
	}
	visit := sub.Visits[vi]
	if visit.Status == model.VisitCompleted {
		return sub, false, ErrVisitClosed
	}

	completedAt := now
	visit.Status = model.VisitCompleted
	visit.CompletedDate = &completedAt
	if notes != "" {
		visit.Notes = notes
	}

	sub.Visits = slices.Clone(sub.Visits)
	sub.Visits[vi] = visit
	sub.UpdatedAt = now
	return sub, true, nil
}
