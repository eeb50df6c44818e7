package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Qualification TrainingType = "Qualification"
	Refreshment   TrainingType = "Refreshment"
)

const (
	StatusPlanned    PlanStatus = "Planned"
	StatusInProgress PlanStatus = "In Progress"
	StatusCompleted  PlanStatus = "Completed"
	StatusCanceled   PlanStatus = "Canceled"
)

// Unknown is the fallback label for any categorical value that cannot be
// resolved (missing roster match, blank sector, unparseable date bucket).
const Unknown = "Unknown"

type (
	TrainingType string
	PlanStatus   string

	Date struct {
		time.Time
	}

	// Employee is a roster entry. The roster is supplied at login and is
	// read-only for the session.
	Employee struct {
		Matricule  string `json:"matricule"`
		FullName   string `json:"full_name"`
		Gender     string `json:"gender"`
		Project    string `json:"project"`
		CostCenter string `json:"cost_center"`
	}

	TrainingRecord struct {
		ID              string       `json:"id"`
		Date            Date         `json:"date"`
		TraineeID       string       `json:"trainee_id"`
		Type            TrainingType `json:"type"`
		Process         string       `json:"process"`
		RefreshmentKind string       `json:"refreshment_kind,omitempty"`
		Hours           float64      `json:"hours"`
		Sector          string       `json:"sector"`
		Trainer         string       `json:"trainer"`

		// Enriched fields. Recomputed from the roster and the training date
		// on every write; never trusted from imports or edits.
		FullName   string `json:"full_name"`
		Gender     string `json:"gender"`
		Project    string `json:"project"`
		CostCenter string `json:"cost_center"`
		MonthName  string `json:"month_name"`
		WeekLabel  string `json:"week_label"`
	}

	PlannedSession struct {
		ID              string       `json:"id"`
		Date            Date         `json:"date"`
		Trainer         string       `json:"trainer"`
		TraineeIDs      []string     `json:"trainee_ids"`
		Type            TrainingType `json:"type"`
		Process         string       `json:"process"`
		RefreshmentKind string       `json:"refreshment_kind,omitempty"`
		EstimatedHours  float64      `json:"estimated_hours"`
		Sector          string       `json:"sector"`
		Status          PlanStatus   `json:"status"`
		MonthName       string       `json:"month_name"`
	}
)

var (
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidHours           = errors.New("hours must be positive")
	ErrMissingTrainee         = errors.New("missing trainee identifier")
	ErrMissingTrainees        = errors.New("plan needs at least one trainee")
	ErrInvalidTrainingType    = errors.New("invalid training type")
	ErrMissingRefreshmentKind = errors.New("missing refreshment subtype")
	ErrMissingProcess         = errors.New("empty process")
	ErrMissingSector          = errors.New("empty sector")
	ErrInvalidStatus          = errors.New("invalid plan status")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. Unparseable input yields a zero Date
// rather than an error: downstream code treats a zero date as "no bucket".
func ParseDate(s string) Date {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or "" for a zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON is lenient: a malformed date becomes a zero Date so that one
// bad field never poisons a whole persisted collection.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	*d = ParseDate(s)
	return nil
}

func (t TrainingType) Valid() bool {
	return t == Qualification || t == Refreshment
}

func (s PlanStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Validate performs field-level validation for a record. It is a boundary
// concern: the store never calls it.
func (r TrainingRecord) Validate() error {
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(r.TraineeID) == "" {
		return ErrMissingTrainee
	}
	if !r.Type.Valid() {
		return ErrInvalidTrainingType
	}
	if r.Type == Refreshment && strings.TrimSpace(r.RefreshmentKind) == "" {
		return ErrMissingRefreshmentKind
	}
	if strings.TrimSpace(r.Process) == "" {
		return ErrMissingProcess
	}
	if r.Hours <= 0 {
		return ErrInvalidHours
	}
	if strings.TrimSpace(r.Sector) == "" {
		return ErrMissingSector
	}
	return nil
}

func (p PlannedSession) Validate() error {
	if p.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(p.TraineeIDs) == 0 {
		return ErrMissingTrainees
	}
	for _, id := range p.TraineeIDs {
		if strings.TrimSpace(id) == "" {
			return ErrMissingTrainee
		}
	}
	if !p.Type.Valid() {
		return ErrInvalidTrainingType
	}
	if p.Type == Refreshment && strings.TrimSpace(p.RefreshmentKind) == "" {
		return ErrMissingRefreshmentKind
	}
	if strings.TrimSpace(p.Process) == "" {
		return ErrMissingProcess
	}
	if p.EstimatedHours <= 0 {
		return ErrInvalidHours
	}
	if strings.TrimSpace(p.Sector) == "" {
		return ErrMissingSector
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
