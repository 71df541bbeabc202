package service

import (
	"time"

	"github.com/dukerupert/hudson/internal/blueprint"
	"github.com/dukerupert/hudson/internal/category"
	"github.com/dukerupert/hudson/internal/model"
)

type PropertyInput struct {
	Name      string `json:"name" validate:"required,max=200"`
	Address   string `json:"address" validate:"required,max=200"`
	City      string `json:"city" validate:"max=100"`
	State     string `json:"state" validate:"max=50"`
	ZipCode   string `json:"zipCode" validate:"max=20"`
	IsPrimary bool   `json:"isPrimary"`
}

type InsightInput struct {
	Title               string         `json:"title" validate:"required,max=200"`
	Description         string         `json:"description"`
	Category            string         `json:"category" validate:"max=50"`
	Priority            model.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	RecommendedInterval int            `json:"recommendedInterval" validate:"gte=0"`
	LastServiced        *time.Time     `json:"lastServiced"`
}

type ReminderInput struct {
	Title             string             `json:"title" validate:"required,max=200"`
	Description       string             `json:"description"`
	Type              model.ReminderType `json:"type" validate:"omitempty,oneof=maintenance inspection seasonal custom"`
	Priority          model.Priority     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate           time.Time          `json:"dueDate" validate:"required"`
	Recurring         bool               `json:"recurring"`
	RecurringInterval int                `json:"recurringInterval" validate:"gte=0"`
}

type PlanItemInput struct {
	Year          int              `json:"year" validate:"required"`
	Month         int              `json:"month" validate:"min=1,max=12"`
	Title         string           `json:"title" validate:"required,max=200"`
	Description   string           `json:"description"`
	Category      string           `json:"category" validate:"max=50"`
	Priority      model.Priority   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status        model.PlanStatus `json:"status" validate:"omitempty,oneof=planned in-progress completed skipped"`
	EstimatedCost *float64         `json:"estimatedCost" validate:"omitempty,gte=0"`
}

func (in PlanItemInput) item() model.PlanItem {
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	cat := in.Category
	if cat == "" {
		cat = category.Categorize(in.Title)
	}
	return model.PlanItem{
		Year:          in.Year,
		Month:         in.Month,
		Title:         in.Title,
		Description:   in.Description,
		Category:      cat,
		Priority:      priority,
		Status:        in.Status,
		EstimatedCost: in.EstimatedCost,
	}
}

// PlanItemUpdate is a partial update; omitted fields stay unchanged.
type PlanItemUpdate struct {
	Year          *int              `json:"year"`
	Month         *int              `json:"month" validate:"omitempty,min=1,max=12"`
	Title         *string           `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string           `json:"description"`
	Category      *string           `json:"category" validate:"omitempty,min=1"`
	Priority      *model.Priority   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status        *model.PlanStatus `json:"status" validate:"omitempty,oneof=planned in-progress completed skipped"`
	EstimatedCost *float64          `json:"estimatedCost" validate:"omitempty,gte=0"`
}

func (u PlanItemUpdate) patch() blueprint.PlanItemPatch {
	return blueprint.PlanItemPatch{
		Year:          u.Year,
		Month:         u.Month,
		Title:         u.Title,
		Description:   u.Description,
		Category:      u.Category,
		Priority:      u.Priority,
		Status:        u.Status,
		EstimatedCost: u.EstimatedCost,
	}
}

type PlanInput struct {
	StartYear int             `json:"startYear" validate:"required"`
	Items     []PlanItemInput `json:"items" validate:"dive"`
}

type InspectionInput struct {
	PropertyID    string    `json:"propertyId"`
	InspectorName string    `json:"inspectorName" validate:"max=200"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Notes         string    `json:"notes"`
}

type RoomInput struct {
	Name            string   `json:"name" validate:"required,max=100"`
	RoomType        string   `json:"roomType"`
	Score           int      `json:"score" validate:"min=0,max=100"`
	Photos          []string `json:"photos" validate:"dive,required"`
	AudioNotes      []string `json:"audioNotes" validate:"dive,required"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Notes           string   `json:"notes"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (in RoomInput) room(id string) model.RoomInspection {
	return model.RoomInspection{
		ID:              id,
		Name:            in.Name,
		RoomType:        in.RoomType,
		Score:           in.Score,
		Photos:          nonNil(in.Photos),
		AudioNotes:      nonNil(in.AudioNotes),
		Issues:          nonNil(in.Issues),
		Recommendations: nonNil(in.Recommendations),
		Notes:           in.Notes,
	}
}

// planWindow reports whether year falls inside the five years starting at
// startYear.
func planWindow(startYear, year int) bool {
	return year >= startYear && year < startYear+5
}
