package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ReminderType string

const (
	ReminderMaintenance ReminderType = "maintenance"
	ReminderInspection  ReminderType = "inspection"
	ReminderSeasonal    ReminderType = "seasonal"
	ReminderCustom      ReminderType = "custom"
)

type Property struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	City      string     `json:"city"`
	State     string     `json:"state"`
	ZipCode   string     `json:"zipCode"`
	IsPrimary bool       `json:"isPrimary"`
	Insights  []Insight  `json:"insights"`
	Reminders []Reminder `json:"reminders"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Insight struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Category            string     `json:"category"`
	Priority            Priority   `json:"priority"`
	RecommendedInterval int        `json:"recommendedInterval"`
	LastServiced        *time.Time `json:"lastServiced,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type Reminder struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Type              ReminderType `json:"type"`
	Priority          Priority     `json:"priority"`
	DueDate           time.Time    `json:"dueDate"`
	Completed         bool         `json:"completed"`
	CompletedDate     *time.Time   `json:"completedDate,omitempty"`
	Recurring         bool         `json:"recurring"`
	RecurringInterval int          `json:"recurringInterval,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
}
