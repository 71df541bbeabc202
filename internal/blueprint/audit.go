// Package blueprint implements the audited mutation protocol for a
// subscription's long-range plan. Every function here is pure: it takes a
// blueprint value and returns a new one, leaving the input untouched.
package blueprint

import (
	"slices"
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

// Update holds the top-level fields to merge onto a blueprint. A nil field
// leaves the current value in place.
type Update struct {
	Plan *model.FiveYearPlan
}

// HistoryDraft is a history entry before it is stamped and chained.
type HistoryDraft struct {
	Action        model.HistoryAction
	Description   string
	Actor         model.Actor
	RelatedItemID string
	Changes       map[string]model.Change
}

// NotificationDraft is a notification before it is stamped.
type NotificationDraft struct {
	Type          model.NotificationType
	Message       string
	Actor         model.Actor
	RecipientRole model.Role
	RelatedItemID string
}

// Apply merges upd onto bp, then appends the history entry (if any) and the
// notifications. The history entry gets an id, a timestamp of now and a
// digest chained to the previous entry; notifications get an id, created_at
// of now and read=false. Existing entries are never modified.
func Apply(bp model.Blueprint, upd Update, entry *HistoryDraft, notes []NotificationDraft, now time.Time, newID func() string) model.Blueprint {
	out := bp
	if upd.Plan != nil {
		out.Plan = model.FiveYearPlan{
			StartYear: upd.Plan.StartYear,
			Items:     slices.Clone(upd.Plan.Items),
		}
	}

	// Clip so appends never write into an array shared with bp.
	out.History = slices.Clip(bp.History)
	out.Notifications = slices.Clip(bp.Notifications)

	if entry != nil {
		h := model.HistoryEntry{
			ID:            newID(),
			Action:        entry.Action,
			Description:   entry.Description,
			UserID:        entry.Actor.UserID,
			UserName:      entry.Actor.UserName,
			UserRole:      entry.Actor.Role,
			Timestamp:     now,
			RelatedItemID: entry.RelatedItemID,
			Changes:       entry.Changes,
		}
		h.Digest = Digest(lastDigest(out.History), h)
		out.History = append(out.History, h)
	}

	for _, n := range notes {
		out.Notifications = append(out.Notifications, model.Notification{
			ID:            newID(),
			Type:          n.Type,
			Message:       n.Message,
			UserID:        n.Actor.UserID,
			UserName:      n.Actor.UserName,
			UserRole:      n.Actor.Role,
			RecipientRole: n.RecipientRole,
			RelatedItemID: n.RelatedItemID,
			Read:          false,
			CreatedAt:     now,
		})
	}

	out.UpdatedAt = now
	return out
}

func lastDigest(history []model.HistoryEntry) string {
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Digest
}
