package scoring

import (
	"errors"
	"slices"
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

var (
	ErrNoRooms    = errors.New("inspection has no rooms")
	ErrUnassigned = errors.New("inspection is not assigned to a property")
	ErrClosed     = errors.New("inspection is already completed")
)

// Result is a completed inspection together with the score it produced.
type Result struct {
	Inspection model.Inspection `json:"inspection"`
	Score      model.HomeScore  `json:"score"`
}

// Complete finalizes an inspection. It fails without side effects when the
// inspection has no rooms, has no property, or is already completed.
func Complete(insp model.Inspection, now time.Time) (Result, error) {
	if insp.Status == model.InspectionCompleted {
		return Result{}, ErrClosed
	}
	if len(insp.Rooms) == 0 {
		return Result{}, ErrNoRooms
	}
	if insp.PropertyID == "" {
		return Result{}, ErrUnassigned
	}

	score := HomeScore(insp.Scores, insp.Rooms, now)
	overall := score.Score
	completedAt := now

	out := insp
	out.Rooms = slices.Clone(insp.Rooms)
	out.Status = model.InspectionCompleted
	out.CompletedAt = &completedAt
	out.OverallScore = &overall
	out.UpdatedAt = now
	return Result{Inspection: out, Score: score}, nil
}

// Assign attaches the inspection to a property.
func Assign(insp model.Inspection, propertyID string, now time.Time) (model.Inspection, error) {
	if insp.Status == model.InspectionCompleted {
		return insp, ErrClosed
	}
	insp.PropertyID = propertyID
	insp.UpdatedAt = now
	return insp, nil
}

// UpsertRoom replaces the room with the same id or appends it. The first
// room edit moves a scheduled inspection into progress.
func UpsertRoom(insp model.Inspection, room model.RoomInspection, now time.Time) (model.Inspection, error) {
	if insp.Status == model.InspectionCompleted {
		return insp, ErrClosed
	}
	rooms := slices.Clone(insp.Rooms)
	if i := slices.IndexFunc(rooms, func(r model.RoomInspection) bool { return r.ID == room.ID }); i >= 0 {
		rooms[i] = room
	} else {
		rooms = append(rooms, room)
	}
	insp.Rooms = rooms
	return start(insp, now), nil
}

// SetScores replaces the five category scores.
func SetScores(insp model.Inspection, scores model.CategoryScores, now time.Time) (model.Inspection, error) {
	if insp.Status == model.InspectionCompleted {
		return insp, ErrClosed
	}
	insp.Scores = scores
	return start(insp, now), nil
}

func start(insp model.Inspection, now time.Time) model.Inspection {
	if insp.Status == model.InspectionScheduled {
		startedAt := now
		insp.Status = model.InspectionInProgress
		insp.StartedAt = &startedAt
	}
	insp.UpdatedAt = now
	return insp
}
