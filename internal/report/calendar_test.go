package report

import (
	"testing"

	"trainlog/internal/core"
)

func TestMonthGridShape(t *testing.T) {
	// July 2024 starts on a Monday and has 31 days: 5 weeks exactly.
	weeks := MonthGrid(nil, 2024, 7)
	if len(weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(weeks))
	}
	if weeks[0][0].Day != 1 {
		t.Fatalf("July 1 2024 should sit in the Monday column, got day %d", weeks[0][0].Day)
	}
	if weeks[4][2].Day != 31 {
		t.Fatalf("July 31 2024 should sit in the Wednesday column, got day %d", weeks[4][2].Day)
	}
	// Padding cells carry day 0.
	if weeks[4][3].Day != 0 {
		t.Fatalf("expected padding cell after the 31st, got day %d", weeks[4][3].Day)
	}
}

func TestMonthGridEvents(t *testing.T) {
	plans := []core.PlannedSession{
		{
			ID:         "p1",
			Date:       core.NewDate(2024, 7, 10),
			Trainer:    "Alice",
			Type:       core.Qualification,
			Status:     core.StatusPlanned,
			TraineeIDs: []string{"M100", "M101"},
		},
		{
			ID:   "p2",
			Date: core.NewDate(2024, 8, 10), // different month, excluded
		},
		{
			ID: "p3", // zero date, excluded
		},
	}
	weeks := MonthGrid(plans, 2024, 7)

	var cell CalendarDay
	for _, w := range weeks {
		for _, d := range w {
			if d.Day == 10 {
				cell = d
			}
		}
	}
	if len(cell.Events) != 1 {
		t.Fatalf("expected 1 event on day 10, got %d", len(cell.Events))
	}
	ev := cell.Events[0]
	if ev.ID != "p1" || ev.Trainees != 2 || ev.Status != core.StatusPlanned {
		t.Fatalf("unexpected event: %+v", ev)
	}

	total := 0
	for _, w := range weeks {
		for _, d := range w {
			total += len(d.Events)
		}
	}
	if total != 1 {
		t.Fatalf("events leaked into other cells: %d", total)
	}
}
