package service

import (
	"context"
	"fmt"

	"github.com/dukerupert/hudson/internal/blueprint"
	"github.com/dukerupert/hudson/internal/events"
	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/store"
	"github.com/dukerupert/hudson/internal/subscription"
)

// SubscriptionService runs the maintenance subscription of a property and
// the blueprint attached to it.
type SubscriptionService struct {
	subs         *store.SubscriptionStore
	properties   *store.PropertyStore
	auditor      *blueprint.Auditor
	monthlyPrice float64
	opts         Options
}

func NewSubscriptionService(subs *store.SubscriptionStore, properties *store.PropertyStore, recipients blueprint.RecipientRule, monthlyPrice float64, opts Options) *SubscriptionService {
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.With("component", "subscription_service")
	if recipients == nil {
		recipients = blueprint.Complement
	}
	return &SubscriptionService{
		subs:         subs,
		properties:   properties,
		auditor:      &blueprint.Auditor{Recipients: recipients, Now: opts.Now, NewID: opts.NewID},
		monthlyPrice: monthlyPrice,
		opts:         opts,
	}
}

func (s *SubscriptionService) load(propertyID string) (*model.Subscription, error) {
	sub, err := s.subs.GetByProperty(propertyID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if sub == nil {
		return nil, fmt.Errorf("subscription for %s: %w", propertyID, ErrNotFound)
	}
	return sub, nil
}

func (s *SubscriptionService) save(ctx context.Context, sub model.Subscription, entity, action, id string) (*model.Subscription, error) {
	saved, err := s.subs.Save(sub)
	if err != nil {
		return nil, persistErr("save subscription", err)
	}
	publish(ctx, s.opts, events.New(entity, action, id).WithProperty(saved.PropertyID, saved.Version))
	return saved, nil
}

func (s *SubscriptionService) Get(_ context.Context, propertyID string) (*model.Subscription, error) {
	return s.load(propertyID)
}

// Subscribe starts a subscription for the property. A cancelled or inactive
// one is reactivated in place with its history; an active one is rejected.
func (s *SubscriptionService) Subscribe(ctx context.Context, actor model.Actor, propertyID string) (*model.Subscription, error) {
	p, err := s.properties.GetByID(propertyID)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("property %s: %w", propertyID, ErrNotFound)
	}

	existing, err := s.subs.GetByProperty(propertyID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	now := s.opts.Now()

	if existing != nil {
		next, err := subscription.Reactivate(*existing, now, s.opts.NewID)
		if err != nil {
			return nil, err
		}
		saved, err := s.save(ctx, next, "subscription", "reactivated", next.ID)
		if err != nil {
			return nil, err
		}
		s.opts.Logger.Info("subscription reactivated", "property", propertyID, "id", saved.ID)
		return saved, nil
	}

	userID := p.OwnerID
	if actor.Role == model.RoleHomeowner {
		userID = actor.UserID
	}
	sub := subscription.New(propertyID, userID, s.monthlyPrice, now, s.opts.NewID)
	created, err := s.subs.Create(sub)
	if err != nil {
		return nil, persistErr("create subscription", err)
	}
	s.opts.Logger.Info("subscription created", "property", propertyID, "id", created.ID, "visits", len(created.Visits))
	publish(ctx, s.opts, events.New("subscription", "created", created.ID).WithProperty(propertyID, created.Version))
	return created, nil
}

func (s *SubscriptionService) Cancel(ctx context.Context, propertyID string) (*model.Subscription, error) {
	sub, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	next, err := subscription.Cancel(*sub, s.opts.Now())
	if err != nil {
		return nil, err
	}
	saved, err := s.save(ctx, next, "subscription", "cancelled", next.ID)
	if err != nil {
		return nil, err
	}
	s.opts.Logger.Info("subscription cancelled", "property", propertyID, "id", saved.ID)
	return saved, nil
}

func (s *SubscriptionService) ToggleVisitTask(ctx context.Context, propertyID, visitID, taskID string) (*model.Subscription, error) {
	sub, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	next, ok, err := subscription.ToggleTask(*sub, visitID, taskID, s.opts.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return sub, nil
	}
	return s.save(ctx, next, "visit", "task_toggled", visitID)
}

func (s *SubscriptionService) CompleteVisit(ctx context.Context, propertyID, visitID, notes string) (*model.Subscription, error) {
	sub, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	next, ok, err := subscription.CompleteVisit(*sub, visitID, notes, s.opts.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return sub, nil
	}
	return s.save(ctx, next, "visit", "completed", visitID)
}
