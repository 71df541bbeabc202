package service

import (
	"context"
	"fmt"

	"github.com/dukerupert/hudson/internal/events"
	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/scoring"
	"github.com/dukerupert/hudson/internal/store"
)

type InspectionService struct {
	inspections *store.InspectionStore
	subs        *store.SubscriptionStore
	properties  *store.PropertyStore
	opts        Options
}

func NewInspectionService(inspections *store.InspectionStore, subs *store.SubscriptionStore, properties *store.PropertyStore, opts Options) *InspectionService {
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.With("component", "inspection_service")
	return &InspectionService{inspections: inspections, subs: subs, properties: properties, opts: opts}
}

func (s *InspectionService) load(id string) (*model.Inspection, error) {
	in, err := s.inspections.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load inspection: %w", err)
	}
	if in == nil {
		return nil, fmt.Errorf("inspection %s: %w", id, ErrNotFound)
	}
	return in, nil
}

func (s *InspectionService) requireProperty(id string) error {
	p, err := s.properties.GetByID(id)
	if err != nil {
		return fmt.Errorf("load property: %w", err)
	}
	if p == nil {
		return fmt.Errorf("property %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *InspectionService) save(ctx context.Context, in model.Inspection, action string) (*model.Inspection, error) {
	saved, err := s.inspections.Save(in)
	if err != nil {
		return nil, persistErr("save inspection", err)
	}
	publish(ctx, s.opts, events.New("inspection", action, saved.ID).WithProperty(saved.PropertyID, saved.Version))
	return saved, nil
}

// Create schedules an inspection. The property may be left empty and
// assigned later.
func (s *InspectionService) Create(ctx context.Context, actor model.Actor, in InspectionInput) (*model.Inspection, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	if in.PropertyID != "" {
		if err := s.requireProperty(in.PropertyID); err != nil {
			return nil, err
		}
	}

	now := s.opts.Now()
	name := in.InspectorName
	if name == "" {
		name = actor.UserName
	}
	scheduled := in.ScheduledDate
	if scheduled.IsZero() {
		scheduled = now
	}
	insp := model.Inspection{
		ID:            s.opts.NewID(),
		PropertyID:    in.PropertyID,
		Status:        model.InspectionScheduled,
		InspectorID:   actor.UserID,
		InspectorName: name,
		ScheduledDate: scheduled,
		Rooms:         []model.RoomInspection{},
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := s.inspections.Create(insp)
	if err != nil {
		return nil, persistErr("create inspection", err)
	}
	publish(ctx, s.opts, events.New("inspection", "created", created.ID).WithProperty(created.PropertyID, created.Version))
	return created, nil
}

func (s *InspectionService) Get(_ context.Context, id string) (*model.Inspection, error) {
	return s.load(id)
}

func (s *InspectionService) ListForProperty(_ context.Context, propertyID string) ([]model.Inspection, error) {
	if err := s.requireProperty(propertyID); err != nil {
		return nil, err
	}
	return s.inspections.ListByProperty(propertyID)
}

func (s *InspectionService) Assign(ctx context.Context, id, propertyID string) (*model.Inspection, error) {
	if propertyID == "" {
		return nil, invalid("propertyId", "is required")
	}
	if err := s.requireProperty(propertyID); err != nil {
		return nil, err
	}
	insp, err := s.load(id)
	if err != nil {
		return nil, err
	}
	next, err := scoring.Assign(*insp, propertyID, s.opts.Now())
	if err != nil {
		return nil, err
	}
	return s.save(ctx, next, "assigned")
}

// UpsertRoom replaces the room with roomID or appends it.
func (s *InspectionService) UpsertRoom(ctx context.Context, id, roomID string, in RoomInput) (*model.Inspection, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	insp, err := s.load(id)
	if err != nil {
		return nil, err
	}
	next, err := scoring.UpsertRoom(*insp, in.room(roomID), s.opts.Now())
	if err != nil {
		return nil, err
	}
	return s.save(ctx, next, "room_saved")
}

func (s *InspectionService) SetScores(ctx context.Context, id string, scores model.CategoryScores) (*model.Inspection, error) {
	if err := check(scores); err != nil {
		return nil, err
	}
	insp, err := s.load(id)
	if err != nil {
		return nil, err
	}
	next, err := scoring.SetScores(*insp, scores, s.opts.Now())
	if err != nil {
		return nil, err
	}
	return s.save(ctx, next, "scores_saved")
}

// Complete closes the inspection and makes its score the property's current
// score. The inspection and the subscription are written together.
func (s *InspectionService) Complete(ctx context.Context, id string) (*scoring.Result, error) {
	insp, err := s.load(id)
	if err != nil {
		return nil, err
	}
	res, err := scoring.Complete(*insp, s.opts.Now())
	if err != nil {
		return nil, err
	}

	sub, err := s.subs.GetByProperty(res.Inspection.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}

	var saved *model.Inspection
	if sub == nil {
		saved, err = s.inspections.Save(res.Inspection)
		if err != nil {
			return nil, persistErr("save inspection", err)
		}
	} else {
		next := *sub
		score := res.Score
		next.CurrentScore = &score
		next.UpdatedAt = res.Score.CreatedAt
		var savedSub *model.Subscription
		saved, savedSub, err = s.inspections.SaveCompletion(res.Inspection, next)
		if err != nil {
			return nil, persistErr("complete inspection", err)
		}
		publish(ctx, s.opts, events.New("subscription", "score_updated", savedSub.ID).WithProperty(savedSub.PropertyID, savedSub.Version))
	}

	s.opts.Logger.Info("inspection completed", "id", saved.ID, "property", saved.PropertyID, "score", res.Score.Score, "quarter", res.Score.Quarter, "year", res.Score.Year)
	publish(ctx, s.opts, events.New("inspection", "completed", saved.ID).WithProperty(saved.PropertyID, saved.Version))
	return &scoring.Result{Inspection: *saved, Score: res.Score}, nil
}
