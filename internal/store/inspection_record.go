package store

import (
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

type inspectionRecord struct {
	ID            string         `json:"id"`
	PropertyID    string         `json:"property_id,omitempty"`
	Status        string         `json:"status"`
	InspectorID   string         `json:"inspector_id"`
	InspectorName string         `json:"inspector_name"`
	ScheduledDate time.Time      `json:"scheduled_date"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	Rooms         []roomRecord   `json:"rooms"`
	Scores        categoryRecord `json:"scores"`
	OverallScore  *int           `json:"overall_score,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type roomRecord struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	RoomType        string   `json:"room_type"`
	Score           int      `json:"score"`
	Photos          []string `json:"photos"`
	AudioNotes      []string `json:"audio_notes"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Notes           string   `json:"notes,omitempty"`
}

type categoryRecord struct {
	Structural int `json:"structural"`
	Mechanical int `json:"mechanical"`
	Aesthetic  int `json:"aesthetic"`
	Efficiency int `json:"efficiency"`
	Safety     int `json:"safety"`
}

func toCategoryRecord(c model.CategoryScores) categoryRecord {
	return categoryRecord(c)
}

func (c categoryRecord) model() model.CategoryScores {
	return model.CategoryScores(c)
}

func toInspectionRecord(in model.Inspection) inspectionRecord {
	r := inspectionRecord{
		ID:            in.ID,
		PropertyID:    in.PropertyID,
		Status:        string(in.Status),
		InspectorID:   in.InspectorID,
		InspectorName: in.InspectorName,
		ScheduledDate: in.ScheduledDate,
		StartedAt:     in.StartedAt,
		CompletedAt:   in.CompletedAt,
		Rooms:         make([]roomRecord, len(in.Rooms)),
		Scores:        toCategoryRecord(in.Scores),
		OverallScore:  in.OverallScore,
		Notes:         in.Notes,
		CreatedAt:     in.CreatedAt,
		UpdatedAt:     in.UpdatedAt,
	}
	for i, room := range in.Rooms {
		r.Rooms[i] = roomRecord{
			ID:              room.ID,
			Name:            room.Name,
			RoomType:        room.RoomType,
			Score:           room.Score,
			Photos:          room.Photos,
			AudioNotes:      room.AudioNotes,
			Issues:          room.Issues,
			Recommendations: room.Recommendations,
			Notes:           room.Notes,
		}
	}
	return r
}

func (r inspectionRecord) model(version int64) model.Inspection {
	in := model.Inspection{
		ID:            r.ID,
		PropertyID:    r.PropertyID,
		Status:        model.InspectionStatus(r.Status),
		InspectorID:   r.InspectorID,
		InspectorName: r.InspectorName,
		ScheduledDate: r.ScheduledDate,
		StartedAt:     r.StartedAt,
		CompletedAt:   r.CompletedAt,
		Rooms:         make([]model.RoomInspection, len(r.Rooms)),
		Scores:        r.Scores.model(),
		OverallScore:  r.OverallScore,
		Notes:         r.Notes,
		Version:       version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for i, room := range r.Rooms {
		in.Rooms[i] = model.RoomInspection{
			ID:              room.ID,
			Name:            room.Name,
			RoomType:        room.RoomType,
			Score:           room.Score,
			Photos:          room.Photos,
			AudioNotes:      room.AudioNotes,
			Issues:          room.Issues,
			Recommendations: room.Recommendations,
			Notes:           room.Notes,
		}
	}
	return in
}
