package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/hudson/internal/model"
)

func TestOverallScore(t *testing.T) {
	tests := []struct {
		scores model.CategoryScores
		want   int
	}{
		{model.CategoryScores{}, 0},
		{model.CategoryScores{Structural: 100, Mechanical: 100, Aesthetic: 100, Efficiency: 100, Safety: 100}, 100},
		{model.CategoryScores{Structural: 90, Mechanical: 85, Aesthetic: 88, Efficiency: 82, Safety: 95}, 88},
		{model.CategoryScores{Structural: 90, Mechanical: 90, Aesthetic: 90, Efficiency: 90, Safety: 93}, 91}, // 90.6
		{model.CategoryScores{Structural: 90, Mechanical: 90, Aesthetic: 90, Efficiency: 90, Safety: 92}, 90}, // 90.4
	}
	for _, tt := range tests {
		if got := OverallScore(tt.scores); got != tt.want {
			t.Errorf("OverallScore(%+v) = %d, want %d", tt.scores, got, tt.want)
		}
	}
}

func TestRoundMeanHalfUp(t *testing.T) {
	if got := RoundMean([]int{1, 2}); got != 2 {
		t.Errorf("RoundMean(1,2) = %d, want 2", got)
	}
	if got := RoundMean([]int{2, 3, 3, 2}); got != 3 {
		t.Errorf("RoundMean(2,3,3,2) = %d, want 3", got)
	}
	if got := RoundMean(nil); got != 0 {
		t.Errorf("RoundMean(nil) = %d, want 0", got)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		score int
		want  MetricStatus
	}{
		{100, StatusPass}, {80, StatusPass}, {79, StatusWarn}, {60, StatusWarn}, {59, StatusFail}, {0, StatusFail},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.score); got != tt.want {
			t.Errorf("StatusOf(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestQuarter(t *testing.T) {
	for month, want := range map[time.Month]int{
		time.January: 1, time.March: 1, time.April: 2, time.June: 2,
		time.July: 3, time.September: 3, time.October: 4, time.December: 4,
	} {
		if got := Quarter(time.Date(2026, month, 15, 0, 0, 0, 0, time.UTC)); got != want {
			t.Errorf("Quarter(%s) = %d, want %d", month, got, want)
		}
	}
}

func readyInspection() model.Inspection {
	return model.Inspection{
		ID:         "insp-1",
		PropertyID: "prop-1",
		Status:     model.InspectionInProgress,
		Rooms: []model.RoomInspection{
			{ID: "kitchen", Name: "Kitchen", Score: 40, Recommendations: []string{"Reseal grout", "Replace faucet"}},
			{ID: "bath", Name: "Bathroom", Score: 100, Recommendations: []string{"Reseal grout"}},
		},
		Scores: model.CategoryScores{Structural: 90, Mechanical: 85, Aesthetic: 88, Efficiency: 82, Safety: 95},
	}
}

func TestCompleteProducesScore(t *testing.T) {
	now := time.Date(2026, 8, 3, 14, 0, 0, 0, time.UTC)
	res, err := Complete(readyInspection(), now)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if res.Inspection.Status != model.InspectionCompleted {
		t.Errorf("status = %q, want completed", res.Inspection.Status)
	}
	if res.Inspection.CompletedAt == nil || !res.Inspection.CompletedAt.Equal(now) {
		t.Errorf("completedAt = %v, want %v", res.Inspection.CompletedAt, now)
	}
	if res.Inspection.OverallScore == nil || *res.Inspection.OverallScore != 88 {
		t.Errorf("overallScore = %v, want 88", res.Inspection.OverallScore)
	}
	if res.Score.Score != 88 {
		t.Errorf("score = %d, want 88 (room scores must not be folded in)", res.Score.Score)
	}
	if res.Score.Quarter != 3 || res.Score.Year != 2026 {
		t.Errorf("quarter/year = Q%d %d, want Q3 2026", res.Score.Quarter, res.Score.Year)
	}
	if len(res.Score.Recommendations) != 2 {
		t.Errorf("recommendations = %v, want 2 deduplicated entries", res.Score.Recommendations)
	}
	if len(res.Score.Improvements) != 0 {
		t.Errorf("improvements = %v, want none for all-pass scores", res.Score.Improvements)
	}
}

func TestCompletePreconditions(t *testing.T) {
	now := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	noRooms := readyInspection()
	noRooms.Rooms = nil
	if _, err := Complete(noRooms, now); !errors.Is(err, ErrNoRooms) {
		t.Errorf("no rooms: err = %v, want ErrNoRooms", err)
	}

	unassigned := readyInspection()
	unassigned.PropertyID = ""
	if _, err := Complete(unassigned, now); !errors.Is(err, ErrUnassigned) {
		t.Errorf("unassigned: err = %v, want ErrUnassigned", err)
	}

	res, _ := Complete(readyInspection(), now)
	if _, err := Complete(res.Inspection, now); !errors.Is(err, ErrClosed) {
		t.Errorf("twice: err = %v, want ErrClosed", err)
	}
}

func TestEditsRejectedAfterCompletion(t *testing.T) {
	now := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	res, _ := Complete(readyInspection(), now)

	if _, err := UpsertRoom(res.Inspection, model.RoomInspection{ID: "garage"}, now); !errors.Is(err, ErrClosed) {
		t.Errorf("UpsertRoom err = %v, want ErrClosed", err)
	}
	if _, err := SetScores(res.Inspection, model.CategoryScores{}, now); !errors.Is(err, ErrClosed) {
		t.Errorf("SetScores err = %v, want ErrClosed", err)
	}
	if _, err := Assign(res.Inspection, "other", now); !errors.Is(err, ErrClosed) {
		t.Errorf("Assign err = %v, want ErrClosed", err)
	}
}

func TestUpsertRoomStartsInspection(t *testing.T) {
	now := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	insp := model.Inspection{ID: "i", Status: model.InspectionScheduled}

	insp, err := UpsertRoom(insp, model.RoomInspection{ID: "kitchen", Score: 70}, now)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if insp.Status != model.InspectionInProgress || insp.StartedAt == nil {
		t.Errorf("status = %q startedAt = %v, want in-progress", insp.Status, insp.StartedAt)
	}

	insp, _ = UpsertRoom(insp, model.RoomInspection{ID: "kitchen", Score: 85}, now)
	if len(insp.Rooms) != 1 || insp.Rooms[0].Score != 85 {
		t.Errorf("rooms = %+v, want single kitchen with score 85", insp.Rooms)
	}
}

func TestHomeScoreImprovements(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	hs := HomeScore(model.CategoryScores{Structural: 90, Mechanical: 70, Aesthetic: 50, Efficiency: 80, Safety: 100}, nil, now)
	if len(hs.Improvements) != 2 {
		t.Fatalf("improvements = %v, want 2", hs.Improvements)
	}
	if hs.Improvements[0] != "Improve mechanical (70, warn)" {
		t.Errorf("improvements[0] = %q", hs.Improvements[0])
	}
	if hs.Improvements[1] != "Improve aesthetic (50, fail)" {
		t.Errorf("improvements[1] = %q", hs.Improvements[1])
	}
}
