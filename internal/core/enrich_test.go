package core

import "testing"

func testRoster() Roster {
	return NewRoster([]Employee{
		{Matricule: "M100", FullName: "Ada Gray", Gender: "Female", Project: "P1", CostCenter: "CC10"},
		{Matricule: "M101", FullName: "Bo Lind", Gender: "Male", Project: "P2", CostCenter: "CC20"},
	})
}

func TestRosterLookup(t *testing.T) {
	roster := testRoster()

	if _, ok := roster.Lookup("M100"); !ok {
		t.Fatal("expected match for M100")
	}
	// Identifier normalization: surrounding whitespace must not matter.
	if _, ok := roster.Lookup("  M101 "); !ok {
		t.Fatal("expected match for padded M101")
	}
	if _, ok := roster.Lookup(""); ok {
		t.Fatal("empty identifier must not match")
	}
	if _, ok := roster.Lookup("M999"); ok {
		t.Fatal("unknown identifier must not match")
	}
}

func TestEnrichRecordKnownTrainee(t *testing.T) {
	rec := TrainingRecord{Date: NewDate(2024, 7, 9), TraineeID: "M100", Type: Qualification, Hours: 2}
	got := EnrichRecord(rec, testRoster())

	if got.FullName != "Ada Gray" || got.Gender != "Female" || got.Project != "P1" || got.CostCenter != "CC10" {
		t.Fatalf("roster fields not applied: %+v", got)
	}
	if got.MonthName != "July" {
		t.Fatalf("MonthName = %q, want July", got.MonthName)
	}
	if got.WeekLabel != "Week 2" {
		t.Fatalf("WeekLabel = %q, want Week 2", got.WeekLabel)
	}
}

func TestEnrichRecordUnknownTrainee(t *testing.T) {
	rec := TrainingRecord{Date: NewDate(2024, 3, 1), TraineeID: "NOPE", Type: Qualification, Hours: 1}
	got := EnrichRecord(rec, testRoster())

	for name, v := range map[string]string{
		"FullName":   got.FullName,
		"Gender":     got.Gender,
		"Project":    got.Project,
		"CostCenter": got.CostCenter,
	} {
		if v != Unknown {
			t.Fatalf("%s = %q, want %q", name, v, Unknown)
		}
	}
}

func TestEnrichRecordOverwritesStaleFields(t *testing.T) {
	rec := TrainingRecord{
		Date:      NewDate(2024, 2, 20),
		TraineeID: "M101",
		FullName:  "Stale Name",
		Gender:    "Stale",
		MonthName: "Stale",
		WeekLabel: "Stale",
	}
	got := EnrichRecord(rec, testRoster())
	if got.FullName != "Bo Lind" || got.Gender != "Male" {
		t.Fatalf("stale roster fields survived: %+v", got)
	}
	if got.MonthName != "February" || got.WeekLabel != "Week 3" {
		t.Fatalf("stale date buckets survived: %+v", got)
	}
}

func TestEnrichPlan(t *testing.T) {
	p := EnrichPlan(PlannedSession{Date: NewDate(2024, 11, 5)})
	if p.MonthName != "November" {
		t.Fatalf("MonthName = %q, want November", p.MonthName)
	}
	zero := EnrichPlan(PlannedSession{})
	if zero.MonthName != "" {
		t.Fatalf("zero date plan must have empty month, got %q", zero.MonthName)
	}
}
