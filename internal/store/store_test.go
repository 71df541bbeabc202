package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dukerupert/hudson/internal/blueprint"
	"github.com/dukerupert/hudson/internal/database"
	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/subscription"
)

var now = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seqID(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newProperty(id, owner string, primary bool) model.Property {
	return model.Property{
		ID:        id,
		OwnerID:   owner,
		Name:      "House " + id,
		Address:   "12 Elm St",
		City:      "Helena",
		State:     "MT",
		ZipCode:   "59601",
		IsPrimary: primary,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPropertyRoundTrip(t *testing.T) {
	ps := NewPropertyStore(setupTestDB(t))

	p := newProperty("p1", "u1", true)
	serviced := now.AddDate(0, -2, 0)
	p.Insights = []model.Insight{{ID: "i1", Title: "Furnace", Priority: model.PriorityHigh, RecommendedInterval: 365, LastServiced: &serviced}}
	p.Reminders = []model.Reminder{{ID: "r1", Title: "Filter", Type: model.ReminderMaintenance, DueDate: now, Recurring: true, RecurringInterval: 90}}

	created, err := ps.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Version != 1 {
		t.Errorf("version = %d, want 1", created.Version)
	}

	got, err := ps.GetByID("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected property")
	}
	if !got.IsPrimary || got.ZipCode != "59601" || got.Version != 1 {
		t.Errorf("got %+v", got)
	}
	if len(got.Insights) != 1 || got.Insights[0].RecommendedInterval != 365 || !got.Insights[0].LastServiced.Equal(serviced) {
		t.Errorf("insights = %+v", got.Insights)
	}
	if len(got.Reminders) != 1 || got.Reminders[0].RecurringInterval != 90 || !got.Reminders[0].DueDate.Equal(now) {
		t.Errorf("reminders = %+v", got.Reminders)
	}

	missing, err := ps.GetByID("nope")
	if err != nil || missing != nil {
		t.Errorf("missing = %v, %v; want nil, nil", missing, err)
	}
}

func TestPropertyRecordIsSnakeCase(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPropertyStore(db)

	p := newProperty("p1", "u1", false)
	p.Reminders = []model.Reminder{{ID: "r1", DueDate: now}}
	if _, err := ps.Create(p); err != nil {
		t.Fatalf("create: %v", err)
	}

	var owner, due string
	err := db.QueryRow(`SELECT json_extract(record, '$.owner_id'), json_extract(record, '$.reminders[0].due_date') FROM properties WHERE id = 'p1'`).Scan(&owner, &due)
	if err != nil {
		t.Fatalf("query record: %v", err)
	}
	if owner != "u1" || due == "" {
		t.Errorf("owner_id = %q, due_date = %q", owner, due)
	}
}

func TestPropertySaveVersionConflict(t *testing.T) {
	ps := NewPropertyStore(setupTestDB(t))

	base, err := ps.Create(newProperty("p1", "u1", false))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first := *base
	first.Name = "First"
	saved, err := ps.Save(first)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Version != 2 {
		t.Errorf("version = %d, want 2", saved.Version)
	}

	stale := *base
	stale.Name = "Stale"
	if _, err := ps.Save(stale); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}

	got, _ := ps.GetByID("p1")
	if got.Name != "First" || got.Version != 2 {
		t.Errorf("stored = %q v%d, want First v2", got.Name, got.Version)
	}
}

func TestPropertyPrimary(t *testing.T) {
	ps := NewPropertyStore(setupTestDB(t))

	for _, p := range []model.Property{
		newProperty("p1", "u1", true),
		newProperty("p2", "u1", false),
		newProperty("p3", "u2", true),
	} {
		if _, err := ps.Create(p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	if err := ps.SetPrimary("u1", "p2"); err != nil {
		t.Fatalf("set primary: %v", err)
	}
	list, err := ps.ListByOwner("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d properties, want 2", len(list))
	}
	if list[0].ID != "p2" || !list[0].IsPrimary || list[1].IsPrimary {
		t.Errorf("list = %+v", list)
	}

	// creating a new primary demotes the old one
	if _, err := ps.Create(newProperty("p4", "u1", true)); err != nil {
		t.Fatalf("create primary: %v", err)
	}
	p2, _ := ps.GetByID("p2")
	if p2.IsPrimary {
		t.Error("p2 should no longer be primary")
	}

	if err := ps.SetPrimary("u1", "p3"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows for another owner's property", err)
	}
	p4, _ := ps.GetByID("p4")
	if !p4.IsPrimary {
		t.Error("failed SetPrimary should roll back")
	}

	empty, err := ps.ListByOwner("nobody")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty list = %v, %v", empty, err)
	}
}

func TestSubscriptionRoundTripKeepsDigestChain(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPropertyStore(db)
	ss := NewSubscriptionStore(db)
	if _, err := ps.Create(newProperty("p1", "u1", true)); err != nil {
		t.Fatalf("create property: %v", err)
	}

	sub := subscription.New("p1", "u1", 49.99, now, seqID("s"))
	a := &blueprint.Auditor{Recipients: blueprint.Complement, Now: func() time.Time { return now }, NewID: seqID("bp")}
	tech := model.Actor{UserID: "t1", UserName: "Tess", Role: model.RoleTech}
	cost := 1250.5
	bp, item, err := a.AddPlanItem(sub.Blueprint, tech, model.PlanItem{Year: 2027, Month: 4, Title: "Replace roof", EstimatedCost: &cost})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	status := model.PlanInProgress
	bp, _, err = a.UpdatePlanItem(bp, tech, item.ID, blueprint.PlanItemPatch{Status: &status, EstimatedCost: new(float64)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	sub.Blueprint = bp

	if _, err := ss.Create(sub); err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	got, err := ss.GetByProperty("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected subscription")
	}
	if len(got.Visits) != 6 || got.CurrentScore == nil || got.CurrentScore.Score != sub.CurrentScore.Score {
		t.Errorf("got visits=%d score=%v", len(got.Visits), got.CurrentScore)
	}
	if len(got.Blueprint.History) != 2 || len(got.Blueprint.Notifications) != 2 {
		t.Fatalf("history=%d notifications=%d", len(got.Blueprint.History), len(got.Blueprint.Notifications))
	}
	if got.Blueprint.Notifications[0].RecipientRole != model.RoleHomeowner {
		t.Errorf("recipient = %q", got.Blueprint.Notifications[0].RecipientRole)
	}
	if err := blueprint.VerifyHistory(got.Blueprint.History); err != nil {
		t.Errorf("history after reload: %v", err)
	}

	none, err := ss.GetByProperty("p2")
	if err != nil || none != nil {
		t.Errorf("missing = %v, %v", none, err)
	}
}

func TestSubscriptionSaveConflict(t *testing.T) {
	db := setupTestDB(t)
	if _, err := NewPropertyStore(db).Create(newProperty("p1", "u1", true)); err != nil {
		t.Fatalf("create property: %v", err)
	}
	ss := NewSubscriptionStore(db)
	base, err := ss.Create(subscription.New("p1", "u1", 49.99, now, seqID("s")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled, _ := subscription.Cancel(*base, now)
	saved, err := ss.Save(cancelled)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Version != 2 {
		t.Errorf("version = %d, want 2", saved.Version)
	}
	if _, err := ss.Save(*base); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("err = %v, want ErrVersionConflict", err)
	}

	var status string
	if err := db.QueryRow(`SELECT status FROM subscriptions WHERE property_id = 'p1'`).Scan(&status); err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != "cancelled" {
		t.Errorf("status column = %q, want cancelled", status)
	}
}

func TestInspectionCompletionIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	if _, err := NewPropertyStore(db).Create(newProperty("p1", "u1", true)); err != nil {
		t.Fatalf("create property: %v", err)
	}
	ss := NewSubscriptionStore(db)
	is := NewInspectionStore(db)

	sub, err := ss.Create(subscription.New("p1", "u1", 49.99, now, seqID("s")))
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	insp, err := is.Create(model.Inspection{
		ID:        "in1",
		Status:    model.InspectionScheduled,
		Rooms:     []model.RoomInspection{{ID: "room1", Name: "Kitchen", Score: 70, Photos: []string{"file:///a.jpg"}}},
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("create inspection: %v", err)
	}

	done := *insp
	done.PropertyID = "p1"
	done.Status = model.InspectionCompleted
	overall := 88
	done.OverallScore = &overall

	// a stale subscription must roll back the inspection write too
	stale := *sub
	stale.Version = 99
	if _, _, err := is.SaveCompletion(done, stale); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
	got, _ := is.GetByID("in1")
	if got.Status != model.InspectionScheduled || got.Version != 1 {
		t.Errorf("inspection after rollback = %s v%d", got.Status, got.Version)
	}

	savedInsp, savedSub, err := is.SaveCompletion(done, *sub)
	if err != nil {
		t.Fatalf("save completion: %v", err)
	}
	if savedInsp.Version != 2 || savedSub.Version != 2 {
		t.Errorf("versions = %d/%d, want 2/2", savedInsp.Version, savedSub.Version)
	}
	got, _ = is.GetByID("in1")
	if got.Status != model.InspectionCompleted || got.OverallScore == nil || *got.OverallScore != 88 {
		t.Errorf("inspection = %+v", got)
	}
	if len(got.Rooms) != 1 || got.Rooms[0].Photos[0] != "file:///a.jpg" {
		t.Errorf("rooms = %+v", got.Rooms)
	}

	list, err := is.ListByProperty("p1")
	if err != nil || len(list) != 1 {
		t.Errorf("list = %v, %v", list, err)
	}
}
