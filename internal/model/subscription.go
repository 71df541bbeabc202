package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	ID              string             `json:"id"`
	PropertyID      string             `json:"propertyId"`
	UserID          string             `json:"userId"`
	Status          SubscriptionStatus `json:"status"`
	MonthlyPrice    float64            `json:"monthlyPrice"`
	StartDate       time.Time          `json:"startDate"`
	NextBillingDate time.Time          `json:"nextBillingDate"`
	CancelledAt     *time.Time         `json:"cancelledAt,omitempty"`
	Visits          []Visit            `json:"visits"`
	CurrentScore    *HomeScore         `json:"currentScore,omitempty"`
	Blueprint       Blueprint          `json:"blueprint"`
	Version         int64              `json:"version"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitCompleted VisitStatus = "completed"
)

// Visit is one maintenance call by a technician.
type Visit struct {
	ID             string      `json:"id"`
	ScheduledDate  time.Time   `json:"scheduledDate"`
	CompletedDate  *time.Time  `json:"completedDate,omitempty"`
	Status         VisitStatus `json:"status"`
	TechnicianName string      `json:"technicianName"`
	Tasks          []VisitTask `json:"tasks"`
	Notes          string      `json:"notes,omitempty"`
}

type VisitTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

type CategoryScores struct {
	Structural int `json:"structural" validate:"min=0,max=100"`
	Mechanical int `json:"mechanical" validate:"min=0,max=100"`
	Aesthetic  int `json:"aesthetic" validate:"min=0,max=100"`
	Efficiency int `json:"efficiency" validate:"min=0,max=100"`
	Safety     int `json:"safety" validate:"min=0,max=100"`
}

// Values returns the scores in their canonical order.
func (c CategoryScores) Values() []int {
	return []int{c.Structural, c.Mechanical, c.Aesthetic, c.Efficiency, c.Safety}
}

// HomeScore is the per-quarter health snapshot of a property.
type HomeScore struct {
	Score           int            `json:"score"`
	Quarter         int            `json:"quarter"`
	Year            int            `json:"year"`
	Categories      CategoryScores `json:"categories"`
	Improvements    []string       `json:"improvements"`
	Recommendations []string       `json:"recommendations"`
	CreatedAt       time.Time      `json:"createdAt"`
}
