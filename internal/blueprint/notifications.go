package blueprint

import (
	"slices"

	"github.com/dukerupert/hudson/internal/model"
)

// UnreadNotifications returns unread notifications addressed to role, in
// the order they were created.
func UnreadNotifications(bp model.Blueprint, role model.Role) []model.Notification {
	out := []model.Notification{}
	for _, n := range bp.Notifications {
		if !n.Read && n.RecipientRole == role {
			out = append(out, n)
		}
	}
	return out
}

// MarkNotificationRead flips the read flag of one notification. An unknown
// or already-read id returns bp unchanged with ok=false.
func MarkNotificationRead(bp model.Blueprint, id string) (model.Blueprint, bool) {
	idx := slices.IndexFunc(bp.Notifications, func(n model.Notification) bool { return n.ID == id })
	if idx < 0 || bp.Notifications[idx].Read {
		return bp, false
	}
	out := bp
	out.Notifications = slices.Clone(bp.Notifications)
	out.Notifications[idx].Read = true
	return out, true
}
