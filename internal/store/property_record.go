package store

import (
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

// propertyRecord is the stored form of a property. Primary flag and version
// live in their own columns.
type propertyRecord struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"owner_id"`
	Name      string           `json:"name"`
	Address   string           `json:"address"`
	City      string           `json:"city"`
	State     string           `json:"state"`
	ZipCode   string           `json:"zip_code"`
	Insights  []insightRecord  `json:"insights"`
	Reminders []reminderRecord `json:"reminders"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type insightRecord struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Category            string     `json:"category"`
	Priority            string     `json:"priority"`
	RecommendedInterval int        `json:"recommended_interval"`
	LastServiced        *time.Time `json:"last_serviced,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type reminderRecord struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Type              string     `json:"type"`
	Priority          string     `json:"priority"`
	DueDate           time.Time  `json:"due_date"`
	Completed         bool       `json:"completed"`
	CompletedDate     *time.Time `json:"completed_date,omitempty"`
	Recurring         bool       `json:"recurring"`
	RecurringInterval int        `json:"recurring_interval,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func toPropertyRecord(p model.Property) propertyRecord {
	r := propertyRecord{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		ZipCode:   p.ZipCode,
		Insights:  make([]insightRecord, len(p.Insights)),
		Reminders: make([]reminderRecord, len(p.Reminders)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for i, in := range p.Insights {
		r.Insights[i] = insightRecord{
			ID:                  in.ID,
			Title:               in.Title,
			Description:         in.Description,
			Category:            in.Category,
			Priority:            string(in.Priority),
			RecommendedInterval: in.RecommendedInterval,
			LastServiced:        in.LastServiced,
			CreatedAt:           in.CreatedAt,
		}
	}
	for i, rm := range p.Reminders {
		r.Reminders[i] = reminderRecord{
			ID:                rm.ID,
			Title:             rm.Title,
			Description:       rm.Description,
			Type:              string(rm.Type),
			Priority:          string(rm.Priority),
			DueDate:           rm.DueDate,
			Completed:         rm.Completed,
			CompletedDate:     rm.CompletedDate,
			Recurring:         rm.Recurring,
			RecurringInterval: rm.RecurringInterval,
			CreatedAt:         rm.CreatedAt,
		}
	}
	return r
}

func (r propertyRecord) model(isPrimary bool, version int64) model.Property {
	p := model.Property{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Address:   r.Address,
		City:      r.City,
		State:     r.State,
		ZipCode:   r.ZipCode,
		IsPrimary: isPrimary,
		Insights:  make([]model.Insight, len(r.Insights)),
		Reminders: make([]model.Reminder, len(r.Reminders)),
		Version:   version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for i, in := range r.Insights {
		p.Insights[i] = model.Insight{
			ID:                  in.ID,
			Title:               in.Title,
			Description:         in.Description,
			Category:            in.Category,
			Priority:            model.Priority(in.Priority),
			RecommendedInterval: in.RecommendedInterval,
			LastServiced:        in.LastServiced,
			CreatedAt:           in.CreatedAt,
		}
	}
	for i, rm := range r.Reminders {
		p.Reminders[i] = model.Reminder{
			ID:                rm.ID,
			Title:             rm.Title,
			Description:       rm.Description,
			Type:              model.ReminderType(rm.Type),
			Priority:          model.Priority(rm.Priority),
			DueDate:           rm.DueDate,
			Completed:         rm.Completed,
			CompletedDate:     rm.CompletedDate,
			Recurring:         rm.Recurring,
			RecurringInterval: rm.RecurringInterval,
			CreatedAt:         rm.CreatedAt,
		}
	}
	return p
}
