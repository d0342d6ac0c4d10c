package devotion

import (
	"testing"

	"github.com/sarangchurch/quiettime/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSpansMidnight(t *testing.T) {
	tests := []struct {
		name       string
		start, end *string
		want       bool
	}{
		{"normal interval", strPtr("06:00"), strPtr("06:30"), false},
		{"crosses midnight", strPtr("23:00"), strPtr("01:00"), true},
		{"ends exactly at midnight next day", strPtr("23:30"), strPtr("00:00"), true},
		{"zero-length interval", strPtr("22:00"), strPtr("22:00"), false},
		{"missing start", nil, strPtr("01:00"), false},
		{"missing end", strPtr("23:00"), nil, false},
		{"empty strings", strPtr(""), strPtr(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpansMidnight(tt.start, tt.end); got != tt.want {
				t.Errorf("SpansMidnight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlanSplitSpanning(t *testing.T) {
	primary := model.Checkin{
		ID:              "chk-1",
		UserID:          "user-1",
		CheckinDate:     "2026-03-01",
		StartTime:       strPtr("23:00"),
		EndTime:         strPtr("01:00"),
		DurationMinutes: intPtr(120),
		Memo:            strPtr("late night"),
	}

	plan := PlanSplit(primary)

	if plan.Primary.EndTime == nil || *plan.Primary.EndTime != model.EndOfDay {
		t.Fatalf("primary end_time = %v, want %q", plan.Primary.EndTime, model.EndOfDay)
	}
	if *plan.Primary.StartTime != "23:00" {
		t.Errorf("primary start_time changed: %s", *plan.Primary.StartTime)
	}

	child := plan.Child
	if child == nil {
		t.Fatal("expected a child record")
	}
	if child.CheckinDate != "2026-03-02" {
		t.Errorf("child date = %s, want 2026-03-02", child.CheckinDate)
	}
	if *child.StartTime != "00:00" || *child.EndTime != "01:00" {
		t.Errorf("child interval = %s-%s, want 00:00-01:00", *child.StartTime, *child.EndTime)
	}
	if child.ParentID == nil || *child.ParentID != "chk-1" {
		t.Errorf("child parent_id = %v, want chk-1", child.ParentID)
	}
	if *child.DurationMinutes != 120 || *child.Memo != "late night" {
		t.Error("duration and memo must carry over to the child")
	}
	if child.UserID != "user-1" {
		t.Errorf("child user_id = %s", child.UserID)
	}
}

func TestPlanSplitSpanningAcrossMonthAndYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-01-31", "2026-02-01"},
		{"2026-12-31", "2027-01-01"},
		{"2028-02-28", "2028-02-29"},
	}

	for _, tt := range tests {
		plan := PlanSplit(model.Checkin{
			ID:          "chk-1",
			UserID:      "user-1",
			CheckinDate: tt.date,
			StartTime:   strPtr("23:59"),
			EndTime:     strPtr("00:30"),
		})
		if plan.Child == nil {
			t.Fatalf("%s: expected child", tt.date)
		}
		if plan.Child.CheckinDate != tt.want {
			t.Errorf("%s: child date = %s, want %s", tt.date, plan.Child.CheckinDate, tt.want)
		}
	}
}

func TestPlanSplitNotSpanning(t *testing.T) {
	primary := model.Checkin{
		ID:          "chk-1",
		UserID:      "user-1",
		CheckinDate: "2026-03-01",
		StartTime:   strPtr("20:00"),
		EndTime:     strPtr("21:00"),
	}

	plan := PlanSplit(primary)

	if plan.Child != nil {
		t.Error("non-spanning interval must not produce a child")
	}
	if *plan.Primary.EndTime != "21:00" {
		t.Errorf("end_time = %s, want stored verbatim", *plan.Primary.EndTime)
	}
}

func TestPlanSplitNoTimes(t *testing.T) {
	plan := PlanSplit(model.Checkin{
		ID:          "chk-1",
		UserID:      "user-1",
		CheckinDate: "2026-03-01",
		Memo:        strPtr("duration only"),
	})

	if plan.Child != nil {
		t.Error("check-in without times must not split")
	}
	if plan.Primary.EndTime != nil {
		t.Error("end_time must stay unset")
	}
}
