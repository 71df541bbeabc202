package blueprint

import (
	"errors"

	"github.com/dukerupert/hudson/internal/model"
)

var (
	ErrInvalidTransition = errors.New("invalid plan item status transition")
	ErrItemClosed        = errors.New("plan item is completed or skipped")
	ErrInvalidStatus     = errors.New("unknown plan item status")
	ErrHistoryTampered   = errors.New("blueprint history digest mismatch")
)

var transitions = map[model.PlanStatus][]model.PlanStatus{
	model.PlanPlanned:    {model.PlanInProgress, model.PlanCompleted, model.PlanSkipped},
	model.PlanInProgress: {model.PlanCompleted, model.PlanSkipped},
}

// ValidStatus reports whether s is a known plan item status.
func ValidStatus(s model.PlanStatus) bool {
	switch s {
	case model.PlanPlanned, model.PlanInProgress, model.PlanCompleted, model.PlanSkipped:
		return true
	}
	return false
}

// CanTransition reports whether an item may move from one status to another.
// Staying in the same non-terminal status is allowed.
func CanTransition(from, to model.PlanStatus) bool {
	if from.Terminal() {
		return false
	}
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
