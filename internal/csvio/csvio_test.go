package csvio

import (
	"bytes"
	"strings"
	"testing"

	"trainlog/internal/core"
)

func TestRecordsRoundTrip(t *testing.T) {
	in := []core.TrainingRecord{
		{
			ID:        "r1",
			Date:      core.NewDate(2024, 7, 9),
			TraineeID: "M100",
			Type:      core.Qualification,
			Process:   "Welding",
			Hours:     2.5,
			Sector:    "Assembly",
			Trainer:   "Alice",
		},
		{
			ID:              "r2",
			Date:            core.NewDate(2024, 8, 1),
			TraineeID:       "M200",
			Type:            core.Refreshment,
			Process:         "Soldering",
			RefreshmentKind: "Annual",
			Hours:           1,
			Sector:          "Line 2",
			Trainer:         "Bob",
		},
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, in); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}

	out, err := ReadRecords(&buf)
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d records, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("record %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestReadRecordsLenientFields(t *testing.T) {
	csv := strings.Join([]string{
		"ID,Training Date,Trainee's ID Number,Training Type,Process,Refreshment Type,Number of Training Hours,Sector,Trainer",
		"r1,not-a-date,M100,Qualification,Welding,,abc,Assembly,Alice",
		`r2,2024-07-09,M200,Qualification,Welding,,"1,5",Assembly,Alice`,
	}, "\n")

	out, err := ReadRecords(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if !out[0].Date.IsZero() {
		t.Errorf("unparseable date should come back zero, got %v", out[0].Date)
	}
	if out[0].Hours != 0 {
		t.Errorf("unparseable hours = %v, want 0", out[0].Hours)
	}
	if out[1].Hours != 1.5 {
		t.Errorf("comma decimal hours = %v, want 1.5", out[1].Hours)
	}
}

func TestReadRecordsMalformedFile(t *testing.T) {
	// Unbalanced quote makes the file structurally invalid.
	if _, err := ReadRecords(strings.NewReader("ID,Trainer\n\"broken")); err == nil {
		t.Fatal("expected error for malformed csv")
	}
	if _, err := ReadRecords(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestReadRosterSkipsBlankMatricule(t *testing.T) {
	csv := strings.Join([]string{
		"Matricule,Full Name,Gender,Project,Cost Center",
		"M100,Ada Gray,Female,P1,CC10",
		",Ghost Row,Male,P1,CC10",
		" M200 ,Bo Lee,Male,P2,CC20",
	}, "\n")

	employees, err := ReadRoster(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadRoster() error = %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("got %d employees, want 2", len(employees))
	}
	if employees[1].Matricule != "M200" {
		t.Errorf("matricule not trimmed: %q", employees[1].Matricule)
	}
}

func TestReadRosterColumnsByName(t *testing.T) {
	// Column order differs from the canonical export; lookup is by header.
	csv := strings.Join([]string{
		"Full Name,Matricule,Cost Center,Gender,Project",
		"Ada Gray,M100,CC10,Female,P1",
	}, "\n")

	employees, err := ReadRoster(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadRoster() error = %v", err)
	}
	want := core.Employee{Matricule: "M100", FullName: "Ada Gray", Gender: "Female", Project: "P1", CostCenter: "CC10"}
	if employees[0] != want {
		t.Errorf("employee = %+v, want %+v", employees[0], want)
	}
}
