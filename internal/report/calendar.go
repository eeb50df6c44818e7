package report

import (
	"time"

	"trainlog/internal/core"
)

// PlanEvent is the calendar-cell projection of a planned session.
type PlanEvent struct {
	ID       string            `json:"id"`
	Trainer  string            `json:"trainer"`
	Type     core.TrainingType `json:"type"`
	Status   core.PlanStatus   `json:"status"`
	Trainees int               `json:"trainees"`
}

// CalendarDay is one cell of the month grid. Day is 0 for padding cells that
// belong to the adjacent months.
type CalendarDay struct {
	Day    int         `json:"day"`
	Events []PlanEvent `json:"events,omitempty"`
}

// CalendarWeek is a Monday-first row of the month grid.
type CalendarWeek [7]CalendarDay

// MonthGrid lays the given month out as calendar weeks and places each
// planned session in its date cell.
func MonthGrid(plans []core.PlannedSession, year, month int) []CalendarWeek {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	eventsByDay := map[int][]PlanEvent{}
	for _, p := range plans {
		if p.Date.IsZero() || p.Date.Year() != year || int(p.Date.Time.Month()) != month {
			continue
		}
		day := p.Date.Day()
		eventsByDay[day] = append(eventsByDay[day], PlanEvent{
			ID:       p.ID,
			Trainer:  p.Trainer,
			Type:     p.Type,
			Status:   p.Status,
			Trainees: len(p.TraineeIDs),
		})
	}

	// Monday-first column index of the 1st.
	offset := (int(first.Weekday()) + 6) % 7

	var weeks []CalendarWeek
	var week CalendarWeek
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		week[col] = CalendarDay{Day: day, Events: eventsByDay[day]}
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = CalendarWeek{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
