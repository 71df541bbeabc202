package service

import (
	"context"
	"errors"

	"github.com/dukerupert/hudson/internal/blueprint"
	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/subscription"
)

// HistoryView is the audit trail of a blueprint together with the result of
// re-verifying its digest chain.
type HistoryView struct {
	Entries  []model.HistoryEntry `json:"entries"`
	Verified bool                 `json:"verified"`
}

func (s *SubscriptionService) History(_ context.Context, propertyID string) (*HistoryView, error) {
	sub, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	view := &HistoryView{Entries: sub.Blueprint.History, Verified: true}
	if view.Entries == nil {
		view.Entries = []model.HistoryEntry{}
	}
	if err := blueprint.VerifyHistory(sub.Blueprint.History); err != nil {
		s.opts.Logger.Error("blueprint history failed verification", "property", propertyID, "error", err)
		view.Verified = false
	}
	return view, nil
}

// editable loads a subscription whose blueprint may be changed. Cancelled
// subscriptions keep their blueprint read-only.
func (s *SubscriptionService) editable(propertyID string) (*model.Subscription, error) {
	sub, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	if sub.Status != model.SubscriptionActive {
		return nil, subscription.ErrNotActive
	}
	return sub, nil
}

func (s *SubscriptionService) commitBlueprint(ctx context.Context, sub model.Subscription, bp model.Blueprint, action model.HistoryAction, itemID string) (*model.Subscription, error) {
	if !blueprint.ExtendsHistory(sub.Blueprint.History, bp.History) {
		return nil, errors.New("blueprint history was rewritten")
	}
	sub.Blueprint = bp
	sub.UpdatedAt = bp.UpdatedAt
	id := itemID
	if id == "" {
		id = sub.ID
	}
	return s.save(ctx, sub, "blueprint", string(action), id)
}

func (s *SubscriptionService) AddPlanItem(ctx context.Context, actor model.Actor, propertyID string, in PlanItemInput) (*model.Subscription, *model.PlanItem, error) {
	if err := check(in); err != nil {
		return nil, nil, err
	}
	sub, err := s.editable(propertyID)
	if err != nil {
		return nil, nil, err
	}
	if !planWindow(sub.Blueprint.Plan.StartYear, in.Year) {
		return nil, nil, invalid("year", "is outside the five-year plan")
	}

	bp, item, err := s.auditor.AddPlanItem(sub.Blueprint, actor, in.item())
	if err != nil {
		return nil, nil, err
	}
	saved, err := s.commitBlueprint(ctx, *sub, bp, model.ActionPlanItemAdded, item.ID)
	if err != nil {
		return nil, nil, err
	}
	return saved, &item, nil
}

// UpdatePlanItem applies a partial update. An unknown item or an update that
// changes nothing returns the stored subscription without writing.
func (s *SubscriptionService) UpdatePlanItem(ctx context.Context, actor model.Actor, propertyID, itemID string, in PlanItemUpdate) (*model.Subscription, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	sub, err := s.editable(propertyID)
	if err != nil {
		return nil, err
	}
	if in.Year != nil && !planWindow(sub.Blueprint.Plan.StartYear, *in.Year) {
		return nil, invalid("year", "is outside the five-year plan")
	}

	bp, ok, err := s.auditor.UpdatePlanItem(sub.Blueprint, actor, itemID, in.patch())
	if err != nil {
		return nil, err
	}
	if !ok {
		return sub, nil
	}
	action := bp.History[len(bp.History)-1].Action
	return s.commitBlueprint(ctx, *sub, bp, action, itemID)
}

func (s *SubscriptionService) RemovePlanItem(ctx context.Context, actor model.Actor, propertyID, itemID string) (*model.Subscription, error) {
	sub, err := s.editable(propertyID)
	if err != nil {
		return nil, err
	}
	bp, ok := s.auditor.RemovePlanItem(sub.Blueprint, actor, itemID)
	if !ok {
		return sub, nil
	}
	return s.commitBlueprint(ctx, *sub, bp, model.ActionPlanItemRemoved, itemID)
}

func (s *SubscriptionService) ReplacePlan(ctx context.Context, actor model.Actor, propertyID string, in PlanInput) (*model.Subscription, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		if !planWindow(in.StartYear, it.Year) {
			return nil, invalid("items", "contain a year outside the five-year plan")
		}
	}
	sub, err := s.editable(propertyID)
	if err != nil {
		return nil, err
	}

	plan := model.FiveYearPlan{StartYear: in.StartYear, Items: make([]model.PlanItem, len(in.Items))}
	for i, it := range in.Items {
		plan.Items[i] = it.item()
	}
	bp, err := s.auditor.ReplacePlan(sub.Blueprint, actor, plan)
	if err != nil {
		return nil, err
	}
	return s.commitBlueprint(ctx, *sub, bp, model.ActionPlanReplaced, "")
}

// Notifications returns the unread notifications addressed to the actor's
// role.
func (s *SubscriptionService) Notifications(_ context.Context, actor model.Actor, propertyID string) ([]model.Notification, error) {
	sub, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	return blueprint.UnreadNotifications(sub.Blueprint, actor.Role), nil
}

// MarkNotificationRead flips one read flag. It is not an audited change, so
// no history entry is written.
func (s *SubscriptionService) MarkNotificationRead(ctx context.Context, propertyID, notificationID string) (*model.Subscription, error) {
	sub, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	bp, ok := blueprint.MarkNotificationRead(sub.Blueprint, notificationID)
	if !ok {
		return sub, nil
	}
	next := *sub
	next.Blueprint = bp
	return s.save(ctx, next, "notification", "read", notificationID)
}
