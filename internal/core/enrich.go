package core

import "strings"

// Roster is the read-only employee directory loaded at login.
type Roster struct {
	employees []Employee
	byID      map[string]int
}

// NewRoster builds a roster with a matricule index. Later duplicates of the
// same matricule are ignored.
func NewRoster(employees []Employee) Roster {
	r := Roster{
		employees: make([]Employee, 0, len(employees)),
		byID:      make(map[string]int, len(employees)),
	}
	for _, e := range employees {
		id := strings.TrimSpace(e.Matricule)
		if id == "" {
			continue
		}
		if _, dup := r.byID[id]; dup {
			continue
		}
		e.Matricule = id
		r.byID[id] = len(r.employees)
		r.employees = append(r.employees, e)
	}
	return r
}

// Lookup normalizes the identifier and searches the roster. The second return
// is false for empty input or no match.
func (r Roster) Lookup(id string) (Employee, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Employee{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return Employee{}, false
	}
	return r.employees[i], true
}

// Len returns the number of roster entries.
func (r Roster) Len() int {
	return len(r.employees)
}

// Employees returns a copy of the roster entries.
func (r Roster) Employees() []Employee {
	out := make([]Employee, len(r.employees))
	copy(out, r.employees)
	return out
}

// EnrichRecord returns a copy of rec with every derived field recomputed from
// the roster and the training date. Records whose trainee has no roster match
// get explicit "Unknown" placeholders so they stay visible in aggregates.
func EnrichRecord(rec TrainingRecord, roster Roster) TrainingRecord {
	rec.TraineeID = strings.TrimSpace(rec.TraineeID)

	emp, ok := roster.Lookup(rec.TraineeID)
	if ok {
		rec.FullName = orUnknown(emp.FullName)
		rec.Gender = orUnknown(emp.Gender)
		rec.Project = orUnknown(emp.Project)
		rec.CostCenter = orUnknown(emp.CostCenter)
	} else {
		rec.FullName = Unknown
		rec.Gender = Unknown
		rec.Project = Unknown
		rec.CostCenter = Unknown
	}

	rec.MonthName = MonthName(rec.Date)
	rec.WeekLabel = WeekLabel(rec.Date)
	return rec
}

// EnrichPlan recomputes the derived month name of a planned session.
func EnrichPlan(p PlannedSession) PlannedSession {
	p.MonthName = MonthName(p.Date)
	return p
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}
