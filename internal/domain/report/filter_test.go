package report

import (
	"testing"
	"time"
)

func mkReport(created time.Time, reason string, status *string) *Report {
	return &Report{CreatedAt: created, VisitReason: reason, HealthStatus: status}
}

func strPtr(s string) *string { return &s }

func TestApply_EmptyFilterPreservesInput(t *testing.T) {
	reports := []*Report{
		mkReport(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), ReasonEmergency, nil),
		mkReport(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), ReasonFirstMeet, strPtr(StatusImproving)),
		mkReport(time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), ReasonRegularCheckup, nil),
	}

	got := Apply(reports, Filter{})
	if len(got) != len(reports) {
		t.Fatalf("expected %d reports, got %d", len(reports), len(got))
	}
	for i := range reports {
		if got[i] != reports[i] {
			t.Errorf("order changed at %d", i)
		}
	}
}

func TestApply_EndDateCoversWholeDay(t *testing.T) {
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	lateOnEndDay := mkReport(time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC), ReasonRegularCheckup, nil)
	nextMorning := mkReport(time.Date(2025, 3, 16, 0, 0, 1, 0, time.UTC), ReasonRegularCheckup, nil)

	got := Apply([]*Report{lateOnEndDay, nextMorning}, Filter{EndDate: &end})
	if len(got) != 1 || got[0] != lateOnEndDay {
		t.Fatalf("expected only the report inside the end day, got %d", len(got))
	}
}

func TestApply_StartDateInclusive(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	atMidnight := mkReport(start, ReasonRegularCheckup, nil)
	before := mkReport(start.Add(-time.Second), ReasonRegularCheckup, nil)

	got := Apply([]*Report{atMidnight, before}, Filter{StartDate: &start})
	if len(got) != 1 || got[0] != atMidnight {
		t.Fatalf("expected only the report at the boundary, got %d", len(got))
	}
}

func TestApply_FieldCriteria(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	reports := []*Report{
		mkReport(created, ReasonEmergency, strPtr(StatusDeteriorating)),
		mkReport(created, ReasonEmergency, nil),
		mkReport(created, ReasonFirstMeet, strPtr(StatusDeteriorating)),
	}

	got := Apply(reports, Filter{VisitReason: ReasonEmergency})
	if len(got) != 2 {
		t.Errorf("visit reason filter: expected 2, got %d", len(got))
	}

	got = Apply(reports, Filter{HealthStatus: StatusDeteriorating})
	if len(got) != 2 {
		t.Errorf("health status filter: expected 2, got %d", len(got))
	}

	// Unset health status never matches a status criterion.
	got = Apply(reports[1:2], Filter{HealthStatus: StatusImproving})
	if len(got) != 0 {
		t.Errorf("expected nil status excluded, got %d", len(got))
	}

	got = Apply(reports, Filter{VisitReason: ReasonEmergency, HealthStatus: StatusDeteriorating})
	if len(got) != 1 {
		t.Errorf("combined filter: expected 1, got %d", len(got))
	}
}

func TestApply_OrderPreserved(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	a := mkReport(created.Add(2*time.Hour), ReasonEmergency, nil)
	b := mkReport(created, ReasonEmergency, nil)
	c := mkReport(created.Add(time.Hour), ReasonEmergency, nil)

	got := Apply([]*Report{a, b, c}, Filter{VisitReason: ReasonEmergency})
	if got[0] != a || got[1] != b || got[2] != c {
		t.Error("expected input order preserved, not re-sorted")
	}
}
