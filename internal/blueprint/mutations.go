package blueprint

import (
	"fmt"
	"slices"
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

// Auditor applies plan mutations and records who made them.
type Auditor struct {
	Recipients RecipientRule
	Now        func() time.Time
	NewID      func() string
}

// PlanItemPatch lists the fields an update may change. Nil means unchanged.
type PlanItemPatch struct {
	Year          *int
	Month         *int
	Title         *string
	Description   *string
	Category      *string
	Priority      *model.Priority
	Status        *model.PlanStatus
	EstimatedCost *float64
}

// AddPlanItem appends item to the plan. The item keeps the caller's status
// (planned when empty).
func (a *Auditor) AddPlanItem(bp model.Blueprint, actor model.Actor, item model.PlanItem) (model.Blueprint, model.PlanItem, error) {
	if item.Status == "" {
		item.Status = model.PlanPlanned
	}
	if !ValidStatus(item.Status) {
		return bp, model.PlanItem{}, ErrInvalidStatus
	}

	now := a.Now()
	item.ID = a.NewID()
	item.CreatedBy = actor.UserID
	item.CreatedByRole = actor.Role
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == model.PlanCompleted {
		completedAt := now
		item.CompletedDate = &completedAt
	}

	plan := clonePlan(bp.Plan)
	plan.Items = append(plan.Items, item)
	sortItems(plan.Items)

	desc := fmt.Sprintf("%s added %q for %s %d", actor.UserName, item.Title, time.Month(item.Month), item.Year)
	return a.commit(bp, &plan, actor, model.ActionPlanItemAdded, desc, item.ID, nil, now), item, nil
}

// UpdatePlanItem applies patch to the item with the given id. An unknown id
// or a patch that changes nothing returns bp unchanged with ok=false.
func (a *Auditor) UpdatePlanItem(bp model.Blueprint, actor model.Actor, id string, patch PlanItemPatch) (out model.Blueprint, ok bool, err error) {
	idx := slices.IndexFunc(bp.Plan.Items, func(it model.PlanItem) bool { return it.ID == id })
	if idx < 0 {
		return bp, false, nil
	}
	old := bp.Plan.Items[idx]
	if old.Status.Terminal() {
		return bp, false, ErrItemClosed
	}
	if patch.Status != nil {
		if !ValidStatus(*patch.Status) {
			return bp, false, ErrInvalidStatus
		}
		if !CanTransition(old.Status, *patch.Status) {
			return bp, false, fmt.Errorf("%s -> %s: %w", old.Status, *patch.Status, ErrInvalidTransition)
		}
	}

	now := a.Now()
	item, changes := applyPatch(old, patch)
	if len(changes) == 0 {
		return bp, false, nil
	}
	item.UpdatedAt = now

	action := model.ActionPlanItemUpdated
	desc := fmt.Sprintf("%s updated %q", actor.UserName, item.Title)
	if item.Status == model.PlanCompleted {
		completedAt := now
		item.CompletedDate = &completedAt
		action = model.ActionPlanItemCompleted
		desc = fmt.Sprintf("%s completed %q", actor.UserName, item.Title)
	}

	plan := clonePlan(bp.Plan)
	plan.Items[idx] = item
	sortItems(plan.Items)
	return a.commit(bp, &plan, actor, action, desc, item.ID, changes, now), true, nil
}

// RemovePlanItem deletes the item regardless of its status. An unknown id
// returns bp unchanged with ok=false.
func (a *Auditor) RemovePlanItem(bp model.Blueprint, actor model.Actor, id string) (model.Blueprint, bool) {
	idx := slices.IndexFunc(bp.Plan.Items, func(it model.PlanItem) bool { return it.ID == id })
	if idx < 0 {
		return bp, false
	}
	removed := bp.Plan.Items[idx]

	plan := clonePlan(bp.Plan)
	plan.Items = slices.Delete(plan.Items, idx, idx+1)

	desc := fmt.Sprintf("%s removed %q", actor.UserName, removed.Title)
	return a.commit(bp, &plan, actor, model.ActionPlanItemRemoved, desc, removed.ID, nil, a.Now()), true
}

// ReplacePlan swaps in a whole new five-year plan. Items without an id get
// one, and unattributed items are attributed to actor.
func (a *Auditor) ReplacePlan(bp model.Blueprint, actor model.Actor, plan model.FiveYearPlan) (model.Blueprint, error) {
	now := a.Now()
	next := clonePlan(plan)
	for i := range next.Items {
		it := &next.Items[i]
		if it.Status == "" {
			it.Status = model.PlanPlanned
		}
		if !ValidStatus(it.Status) {
			return bp, ErrInvalidStatus
		}
		if it.ID == "" {
			it.ID = a.NewID()
		}
		if it.CreatedBy == "" {
			it.CreatedBy = actor.UserID
			it.CreatedByRole = actor.Role
		}
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		if it.Status == model.PlanCompleted && it.CompletedDate == nil {
			completedAt := now
			it.CompletedDate = &completedAt
		}
		it.UpdatedAt = now
	}
	sortItems(next.Items)

	changes := map[string]model.Change{
		"items": {From: len(bp.Plan.Items), To: len(next.Items)},
	}
	if bp.Plan.StartYear != next.StartYear {
		changes["startYear"] = model.Change{From: bp.Plan.StartYear, To: next.StartYear}
	}
	desc := fmt.Sprintf("%s replaced the five-year plan (%d items)", actor.UserName, len(next.Items))
	return a.commit(bp, &next, actor, model.ActionPlanReplaced, desc, "", changes, now), nil
}

func (a *Auditor) commit(bp model.Blueprint, plan *model.FiveYearPlan, actor model.Actor, action model.HistoryAction, desc, itemID string, changes map[string]model.Change, now time.Time) model.Blueprint {
	entry := &HistoryDraft{
		Action:        action,
		Description:   desc,
		Actor:         actor,
		RelatedItemID: itemID,
		Changes:       changes,
	}

	rule := a.Recipients
	if rule == nil {
		rule = Complement
	}
	var notes []NotificationDraft
	for _, role := range rule(actor.Role) {
		notes = append(notes, NotificationDraft{
			Type:          model.NotificationPlanModified,
			Message:       desc,
			Actor:         actor,
			RecipientRole: role,
			RelatedItemID: itemID,
		})
	}

	return Apply(bp, Update{Plan: plan}, entry, notes, now, a.NewID)
}

func applyPatch(it model.PlanItem, p PlanItemPatch) (model.PlanItem, map[string]model.Change) {
	changes := map[string]model.Change{}
	if p.Year != nil && *p.Year != it.Year {
		changes["year"] = model.Change{From: it.Year, To: *p.Year}
		it.Year = *p.Year
	}
	if p.Month != nil && *p.Month != it.Month {
		changes["month"] = model.Change{From: it.Month, To: *p.Month}
		it.Month = *p.Month
	}
	if p.Title != nil && *p.Title != it.Title {
		changes["title"] = model.Change{From: it.Title, To: *p.Title}
		it.Title = *p.Title
	}
	if p.Description != nil && *p.Description != it.Description {
		changes["description"] = model.Change{From: it.Description, To: *p.Description}
		it.Description = *p.Description
	}
	if p.Category != nil && *p.Category != it.Category {
		changes["category"] = model.Change{From: it.Category, To: *p.Category}
		it.Category = *p.Category
	}
	if p.Priority != nil && *p.Priority != it.Priority {
		changes["priority"] = model.Change{From: it.Priority, To: *p.Priority}
		it.Priority = *p.Priority
	}
	if p.Status != nil && *p.Status != it.Status {
		changes["status"] = model.Change{From: it.Status, To: *p.Status}
		it.Status = *p.Status
	}
	if p.EstimatedCost != nil && (it.EstimatedCost == nil || *it.EstimatedCost != *p.EstimatedCost) {
		var from any
		if it.EstimatedCost != nil {
			from = *it.EstimatedCost
		}
		changes["estimatedCost"] = model.Change{From: from, To: *p.EstimatedCost}
		cost := *p.EstimatedCost
		it.EstimatedCost = &cost
	}
	return it, changes
}

func clonePlan(p model.FiveYearPlan) model.FiveYearPlan {
	return model.FiveYearPlan{StartYear: p.StartYear, Items: slices.Clone(p.Items)}
}

// sortItems orders the timeline by year then month, keeping insertion order
// within a month.
func sortItems(items []model.PlanItem) {
	slices.SortStableFunc(items, func(a, b model.PlanItem) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Month - b.Month
	})
}
