package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dukerupert/hudson/internal/category"
	"github.com/dukerupert/hudson/internal/events"
	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/recurrence"
	"github.com/dukerupert/hudson/internal/reminder"
	"github.com/dukerupert/hudson/internal/store"
)

type PropertyService struct {
	properties  *store.PropertyStore
	horizonDays int
	opts        Options
}

func NewPropertyService(properties *store.PropertyStore, horizonDays int, opts Options) *PropertyService {
	if horizonDays < 1 {
		horizonDays = reminder.DefaultHorizonDays
	}
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.With("component", "property_service")
	return &PropertyService{properties: properties, horizonDays: horizonDays, opts: opts}
}

func (s *PropertyService) load(id string) (*model.Property, error) {
	p, err := s.properties.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("property %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *PropertyService) save(ctx context.Context, p model.Property, action string) (*model.Property, error) {
	saved, err := s.properties.Save(p)
	if err != nil {
		return nil, persistErr("save property", err)
	}
	publish(ctx, s.opts, events.New("property", action, saved.ID).WithProperty(saved.ID, saved.Version))
	return saved, nil
}

// Create adds a property for actor. An owner's first property is primary.
func (s *PropertyService) Create(ctx context.Context, actor model.Actor, in PropertyInput) (*model.Property, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	existing, err := s.properties.ListByOwner(actor.UserID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	p := model.Property{
		ID:        s.opts.NewID(),
		OwnerID:   actor.UserID,
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		IsPrimary: in.IsPrimary || len(existing) == 0,
		Insights:  []model.Insight{},
		Reminders: []model.Reminder{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.properties.Create(p)
	if err != nil {
		return nil, persistErr("create property", err)
	}
	s.opts.Logger.Info("property created", "id", created.ID, "owner", created.OwnerID, "primary", created.IsPrimary)
	publish(ctx, s.opts, events.New("property", "created", created.ID).WithProperty(created.ID, created.Version))
	return created, nil
}

func (s *PropertyService) Get(_ context.Context, id string) (*model.Property, error) {
	return s.load(id)
}

func (s *PropertyService) ListForOwner(_ context.Context, ownerID string) ([]model.Property, error) {
	return s.properties.ListByOwner(ownerID)
}

// SetPrimary makes id the actor's primary property.
func (s *PropertyService) SetPrimary(ctx context.Context, actor model.Actor, id string) (*model.Property, error) {
	p, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.UserID {
		return nil, fmt.Errorf("set primary on %s: %w", id, ErrForbidden)
	}
	if p.IsPrimary {
		return p, nil
	}
	if err := s.properties.SetPrimary(actor.UserID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("property %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	publish(ctx, s.opts, events.New("property", "primary_changed", id).WithProperty(id, p.Version))
	return s.load(id)
}

func (s *PropertyService) AddInsight(ctx context.Context, propertyID string, in InsightInput) (*model.Property, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	p, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	cat := in.Category
	if cat == "" {
		cat = category.Categorize(in.Title)
	}
	next := *p
	next.Insights = append(append([]model.Insight{}, p.Insights...), model.Insight{
		ID:                  s.opts.NewID(),
		Title:               in.Title,
		Description:         in.Description,
		Category:            cat,
		Priority:            priority,
		RecommendedInterval: in.RecommendedInterval,
		LastServiced:        in.LastServiced,
		CreatedAt:           now,
	})
	next.UpdatedAt = now
	return s.save(ctx, next, "insight_added")
}

func (s *PropertyService) AddReminder(ctx context.Context, propertyID string, in ReminderInput) (*model.Property, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	p, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	typ := in.Type
	if typ == "" {
		typ = model.ReminderMaintenance
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	next := *p
	next.Reminders = append(append([]model.Reminder{}, p.Reminders...), model.Reminder{
		ID:                s.opts.NewID(),
		Title:             in.Title,
		Description:       in.Description,
		Type:              typ,
		Priority:          priority,
		DueDate:           in.DueDate,
		Recurring:         in.Recurring,
		RecurringInterval: in.RecurringInterval,
		CreatedAt:         now,
	})
	next.UpdatedAt = now
	return s.save(ctx, next, "reminder_added")
}

// CompleteReminder completes one reminder and schedules its successor when
// it recurs. Unknown or already completed ids leave the property untouched
// and return it as stored.
func (s *PropertyService) CompleteReminder(ctx context.Context, propertyID, reminderID string) (*model.Property, error) {
	p, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	c, ok := reminder.Complete(p.Reminders, reminderID, now, s.opts.NewID)
	if !ok {
		return p, nil
	}
	next := *p
	next.Reminders = c.Reminders
	next.UpdatedAt = now

	saved, err := s.save(ctx, next, "reminder_completed")
	if err != nil {
		return nil, err
	}
	if c.Successor != nil {
		rule, _ := recurrence.Days(c.Completed.RecurringInterval)
		s.opts.Logger.Info("recurring reminder rescheduled", "property", propertyID, "reminder", reminderID, "successor", c.Successor.ID, "due", c.Successor.DueDate, "rule", rule.Describe())
	}
	return saved, nil
}

// UpcomingReminders lists open reminders due within days from now. days<1
// uses the configured horizon.
func (s *PropertyService) UpcomingReminders(_ context.Context, propertyID string, days int) ([]model.Reminder, error) {
	p, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		days = s.horizonDays
	}
	return reminder.Upcoming(p.Reminders, s.opts.Now(), days), nil
}

func (s *PropertyService) OverdueReminders(_ context.Context, propertyID string) ([]model.Reminder, error) {
	p, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	return reminder.Overdue(p.Reminders, s.opts.Now()), nil
}

// ReminderBoard groups every reminder of the property by status.
func (s *PropertyService) ReminderBoard(_ context.Context, propertyID string) (map[reminder.Status][]model.Reminder, error) {
	p, err := s.load(propertyID)
	if err != nil {
		return nil, err
	}
	return reminder.Partition(p.Reminders, s.opts.Now(), s.horizonDays), nil
}
