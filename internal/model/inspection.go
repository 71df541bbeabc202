package model

import "time"

type InspectionStatus string

const (
	InspectionScheduled  InspectionStatus = "scheduled"
	InspectionInProgress InspectionStatus = "in-progress"
	InspectionCompleted  InspectionStatus = "completed"
)

// Inspection is a room-by-room snapshot assessment of a property. PropertyID
// stays empty until the inspection is assigned.
type Inspection struct {
	ID            string           `json:"id"`
	PropertyID    string           `json:"propertyId,omitempty"`
	Status        InspectionStatus `json:"status"`
	InspectorID   string           `json:"inspectorId"`
	InspectorName string           `json:"inspectorName"`
	ScheduledDate time.Time        `json:"scheduledDate"`
	StartedAt     *time.Time       `json:"startedAt,omitempty"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
	Rooms         []RoomInspection `json:"rooms"`
	Scores        CategoryScores   `json:"scores"`
	OverallScore  *int             `json:"overallScore,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	Version       int64            `json:"version"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// RoomInspection carries its own display score; it does not feed the
// overall score. Photos and AudioNotes are opaque media URIs.
type RoomInspection struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	RoomType        string   `json:"roomType"`
	Score           int      `json:"score"`
	Photos          []string `json:"photos"`
	AudioNotes      []string `json:"audioNotes"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Notes           string   `json:"notes,omitempty"`
}
