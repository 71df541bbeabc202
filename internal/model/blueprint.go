package model

import "time"

// Blueprint is the long-range maintenance plan attached to a subscription.
// Its History and Notifications only ever grow.
type Blueprint struct {
	Plan          FiveYearPlan   `json:"fiveYearPlan"`
	History       []HistoryEntry `json:"history"`
	Notifications []Notification `json:"notifications"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type FiveYearPlan struct {
	StartYear int        `json:"startYear"`
	Items     []PlanItem `json:"items"`
}

type PlanStatus string

const (
	PlanPlanned    PlanStatus = "planned"
	PlanInProgress PlanStatus = "in-progress"
	PlanCompleted  PlanStatus = "completed"
	PlanSkipped    PlanStatus = "skipped"
)

// Terminal reports whether no further transition is allowed from s.
func (s PlanStatus) Terminal() bool {
	return s == PlanCompleted || s == PlanSkipped
}

type PlanItem struct {
	ID            string     `json:"id"`
	Year          int        `json:"year"`
	Month         int        `json:"month"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Priority      Priority   `json:"priority"`
	Status        PlanStatus `json:"status"`
	EstimatedCost *float64   `json:"estimatedCost,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	CreatedBy     string     `json:"createdBy"`
	CreatedByRole Role       `json:"createdByRole"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type HistoryAction string

const (
	ActionPlanItemAdded     HistoryAction = "plan_item_added"
	ActionPlanItemUpdated   HistoryAction = "plan_item_updated"
	ActionPlanItemCompleted HistoryAction = "plan_item_completed"
	ActionPlanItemRemoved   HistoryAction = "plan_item_removed"
	ActionPlanReplaced      HistoryAction = "plan_replaced"
)

// Change records one field's before and after values.
type Change struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// HistoryEntry is immutable once appended. Digest chains it to the entry
// before it.
type HistoryEntry struct {
	ID            string            `json:"id"`
	Action        HistoryAction     `json:"action"`
	Description   string            `json:"description"`
	UserID        string            `json:"userId"`
	UserName      string            `json:"userName"`
	UserRole      Role              `json:"userRole"`
	Timestamp     time.Time         `json:"timestamp"`
	RelatedItemID string            `json:"relatedItemId,omitempty"`
	Changes       map[string]Change `json:"changes,omitempty"`
	Digest        string            `json:"digest"`
}

type NotificationType string

const NotificationPlanModified NotificationType = "plan_modified"

type Notification struct {
	ID            string           `json:"id"`
	Type          NotificationType `json:"type"`
	Message       string           `json:"message"`
	UserID        string           `json:"userId"`
	UserName      string           `json:"userName"`
	UserRole      Role             `json:"userRole"`
	RecipientRole Role             `json:"recipientRole"`
	RelatedItemID string           `json:"relatedItemId,omitempty"`
	Read          bool             `json:"read"`
	CreatedAt     time.Time        `json:"createdAt"`
}
