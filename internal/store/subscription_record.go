package store

import (
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

type subscriptionRecord struct {
	ID              string           `json:"id"`
	PropertyID      string           `json:"property_id"`
	UserID          string           `json:"user_id"`
	Status          string           `json:"status"`
	MonthlyPrice    float64          `json:"monthly_price"`
	StartDate       time.Time        `json:"start_date"`
	NextBillingDate time.Time        `json:"next_billing_date"`
	CancelledAt     *time.Time       `json:"cancelled_at,omitempty"`
	Visits          []visitRecord    `json:"visits"`
	CurrentScore    *homeScoreRecord `json:"current_score,omitempty"`
	Blueprint       blueprintRecord  `json:"blueprint"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type visitRecord struct {
	ID             string       `json:"id"`
	ScheduledDate  time.Time    `json:"scheduled_date"`
	CompletedDate  *time.Time   `json:"completed_date,omitempty"`
	Status         string       `json:"status"`
	TechnicianName string       `json:"technician_name"`
	Tasks          []taskRecord `json:"tasks"`
	Notes          string       `json:"notes,omitempty"`
}

type taskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

type homeScoreRecord struct {
	Score           int            `json:"score"`
	Quarter         int            `json:"quarter"`
	Year            int            `json:"year"`
	Categories      categoryRecord `json:"categories"`
	Improvements    []string       `json:"improvements"`
	Recommendations []string       `json:"recommendations"`
	CreatedAt       time.Time      `json:"created_at"`
}

type blueprintRecord struct {
	StartYear     int                  `json:"start_year"`
	Items         []planItemRecord     `json:"items"`
	History       []historyRecord      `json:"history"`
	Notifications []notificationRecord `json:"notifications"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type planItemRecord struct {
	ID            string     `json:"id"`
	Year          int        `json:"year"`
	Month         int        `json:"month"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedByRole string     `json:"created_by_role"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// historyRecord keeps Changes nil when the entry had none so the digest
// recomputes identically after a reload.
type historyRecord struct {
	ID            string                  `json:"id"`
	Action        string                  `json:"action"`
	Description   string                  `json:"description"`
	UserID        string                  `json:"user_id"`
	UserName      string                  `json:"user_name"`
	UserRole      string                  `json:"user_role"`
	Timestamp     time.Time               `json:"timestamp"`
	RelatedItemID string                  `json:"related_item_id,omitempty"`
	Changes       map[string]model.Change `json:"changes"`
	Digest        string                  `json:"digest"`
}

type notificationRecord struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserRole      string    `json:"user_role"`
	RecipientRole string    `json:"recipient_role"`
	RelatedItemID string    `json:"related_item_id,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

func toSubscriptionRecord(s model.Subscription) subscriptionRecord {
	r := subscriptionRecord{
		ID:              s.ID,
		PropertyID:      s.PropertyID,
		UserID:          s.UserID,
		Status:          string(s.Status),
		MonthlyPrice:    s.MonthlyPrice,
		StartDate:       s.StartDate,
		NextBillingDate: s.NextBillingDate,
		CancelledAt:     s.CancelledAt,
		Visits:          make([]visitRecord, len(s.Visits)),
		Blueprint:       toBlueprintRecord(s.Blueprint),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	for i, v := range s.Visits {
		vr := visitRecord{
			ID:             v.ID,
			ScheduledDate:  v.ScheduledDate,
			CompletedDate:  v.CompletedDate,
			Status:         string(v.Status),
			TechnicianName: v.TechnicianName,
			Tasks:          make([]taskRecord, len(v.Tasks)),
			Notes:          v.Notes,
		}
		for j, t := range v.Tasks {
			vr.Tasks[j] = taskRecord(t)
		}
		r.Visits[i] = vr
	}
	if s.CurrentScore != nil {
		hs := s.CurrentScore
		r.CurrentScore = &homeScoreRecord{
			Score:           hs.Score,
			Quarter:         hs.Quarter,
			Year:            hs.Year,
			Categories:      toCategoryRecord(hs.Categories),
			Improvements:    hs.Improvements,
			Recommendations: hs.Recommendations,
			CreatedAt:       hs.CreatedAt,
		}
	}
	return r
}

func toBlueprintRecord(bp model.Blueprint) blueprintRecord {
	r := blueprintRecord{
		StartYear:     bp.Plan.StartYear,
		Items:         make([]planItemRecord, len(bp.Plan.Items)),
		History:       make([]historyRecord, len(bp.History)),
		Notifications: make([]notificationRecord, len(bp.Notifications)),
		UpdatedAt:     bp.UpdatedAt,
	}
	for i, it := range bp.Plan.Items {
		r.Items[i] = planItemRecord{
			ID:            it.ID,
			Year:          it.Year,
			Month:         it.Month,
			Title:         it.Title,
			Description:   it.Description,
			Category:      it.Category,
			Priority:      string(it.Priority),
			Status:        string(it.Status),
			EstimatedCost: it.EstimatedCost,
			CompletedDate: it.CompletedDate,
			CreatedBy:     it.CreatedBy,
			CreatedByRole: string(it.CreatedByRole),
			CreatedAt:     it.CreatedAt,
			UpdatedAt:     it.UpdatedAt,
		}
	}
	for i, h := range bp.History {
		r.History[i] = historyRecord{
			ID:            h.ID,
			Action:        string(h.Action),
			Description:   h.Description,
			UserID:        h.UserID,
			UserName:      h.UserName,
			UserRole:      string(h.UserRole),
			Timestamp:     h.Timestamp,
			RelatedItemID: h.RelatedItemID,
			Changes:       h.Changes,
			Digest:        h.Digest,
		}
	}
	for i, n := range bp.Notifications {
		r.Notifications[i] = notificationRecord{
			ID:            n.ID,
			Type:          string(n.Type),
			Message:       n.Message,
			UserID:        n.UserID,
			UserName:      n.UserName,
			UserRole:      string(n.UserRole),
			RecipientRole: string(n.RecipientRole),
			RelatedItemID: n.RelatedItemID,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt,
		}
	}
	return r
}

func (r subscriptionRecord) model(version int64) model.Subscription {
	s := model.Subscription{
		ID:              r.ID,
		PropertyID:      r.PropertyID,
		UserID:          r.UserID,
		Status:          model.SubscriptionStatus(r.Status),
		MonthlyPrice:    r.MonthlyPrice,
		StartDate:       r.StartDate,
		NextBillingDate: r.NextBillingDate,
		CancelledAt:     r.CancelledAt,
		Visits:          make([]model.Visit, len(r.Visits)),
		Blueprint:       r.Blueprint.model(),
		Version:         version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for i, vr := range r.Visits {
		v := model.Visit{
			ID:             vr.ID,
			ScheduledDate:  vr.ScheduledDate,
			CompletedDate:  vr.CompletedDate,
			Status:         model.VisitStatus(vr.Status),
			TechnicianName: vr.TechnicianName,
			Tasks:          make([]model.VisitTask, len(vr.Tasks)),
			Notes:          vr.Notes,
		}
		for j, t := range vr.Tasks {
			v.Tasks[j] = model.VisitTask(t)
		}
		s.Visits[i] = v
	}
	if r.CurrentScore != nil {
		hs := r.CurrentScore
		s.CurrentScore = &model.HomeScore{
			Score:           hs.Score,
			Quarter:         hs.Quarter,
			Year:            hs.Year,
			Categories:      hs.Categories.model(),
			Improvements:    hs.Improvements,
			Recommendations: hs.Recommendations,
			CreatedAt:       hs.CreatedAt,
		}
	}
	return s
}

func (r blueprintRecord) model() model.Blueprint {
	bp := model.Blueprint{
		Plan: model.FiveYearPlan{
			StartYear: r.StartYear,
			Items:     make([]model.PlanItem, len(r.Items)),
		},
		History:       make([]model.HistoryEntry, len(r.History)),
		Notifications: make([]model.Notification, len(r.Notifications)),
		UpdatedAt:     r.UpdatedAt,
	}
	for i, it := range r.Items {
		bp.Plan.Items[i] = model.PlanItem{
			ID:            it.ID,
			Year:          it.Year,
			Month:         it.Month,
			Title:         it.Title,
			Description:   it.Description,
			Category:      it.Category,
			Priority:      model.Priority(it.Priority),
			Status:        model.PlanStatus(it.Status),
			EstimatedCost: it.EstimatedCost,
			CompletedDate: it.CompletedDate,
			CreatedBy:     it.CreatedBy,
			CreatedByRole: model.Role(it.CreatedByRole),
			CreatedAt:     it.CreatedAt,
			UpdatedAt:     it.UpdatedAt,
		}
	}
	for i, h := range r.History {
		bp.History[i] = model.HistoryEntry{
			ID:            h.ID,
			Action:        model.HistoryAction(h.Action),
			Description:   h.Description,
			UserID:        h.UserID,
			UserName:      h.UserName,
			UserRole:      model.Role(h.UserRole),
			Timestamp:     h.Timestamp,
			RelatedItemID: h.RelatedItemID,
			Changes:       h.Changes,
			Digest:        h.Digest,
		}
	}
	for i, n := range r.Notifications {
		bp.Notifications[i] = model.Notification{
			ID:            n.ID,
			Type:          model.NotificationType(n.Type),
			Message:       n.Message,
			UserID:        n.UserID,
			UserName:      n.UserName,
			UserRole:      model.Role(n.UserRole),
			RecipientRole: model.Role(n.RecipientRole),
			RelatedItemID: n.RelatedItemID,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt,
		}
	}
	return bp
}
