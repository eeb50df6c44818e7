package report

import (
	"sort"

	"trainlog/internal/core"
)

// KPITotals are the headline figures of the dashboard view.
type KPITotals struct {
	TotalHours         float64 `json:"total_hours"`
	TotalSessions      int     `json:"total_sessions"`
	DistinctTrainees   int     `json:"distinct_trainees"`
	AvgHoursPerTrainee float64 `json:"avg_hours_per_trainee"`
}

// Totals computes the KPI figures over the full record set. Averages are
// zero-guarded: no sessions means 0, never NaN.
func Totals(records []core.TrainingRecord) KPITotals {
	k := KPITotals{TotalSessions: len(records)}
	trainees := map[string]struct{}{}
	for _, r := range records {
		k.TotalHours += r.Hours
		trainees[r.TraineeID] = struct{}{}
	}
	k.DistinctTrainees = len(trainees)
	if k.DistinctTrainees > 0 {
		k.AvgHoursPerTrainee = k.TotalHours / float64(k.DistinctTrainees)
	}
	return k
}

// TrainerAverages is one row of the per-trainer matrix: average hours per
// session in each gender x type cell, plus overall volume.
type TrainerAverages struct {
	Trainer string `json:"trainer"`

	MaleQualification   float64 `json:"male_qualification"`
	MaleRefreshment     float64 `json:"male_refreshment"`
	FemaleQualification float64 `json:"female_qualification"`
	FemaleRefreshment   float64 `json:"female_refreshment"`

	Sessions   int     `json:"sessions"`
	TotalHours float64 `json:"total_hours"`
}

type avgCell struct {
	hours    float64
	sessions int
}

func (c avgCell) average() float64 {
	if c.sessions == 0 {
		return 0
	}
	return c.hours / float64(c.sessions)
}

// AveragesByTrainer groups records per trainer and computes the average hours
// of each gender x type cell. Records with an unrecognized gender still count
// toward the trainer's session and hour totals, just not toward any cell.
// A blank trainer falls back to the "Unknown" label.
func AveragesByTrainer(records []core.TrainingRecord) []TrainerAverages {
	type cells struct {
		mq, mr, fq, fr avgCell
		sessions       int
		hours          float64
	}
	byTrainer := map[string]*cells{}

	for _, r := range records {
		trainer := r.Trainer
		if trainer == "" {
			trainer = core.Unknown
		}
		c, ok := byTrainer[trainer]
		if !ok {
			c = &cells{}
			byTrainer[trainer] = c
		}
		c.sessions++
		c.hours += r.Hours

		var cell *avgCell
		switch {
		case r.Gender == "Male" && r.Type == core.Qualification:
			cell = &c.mq
		case r.Gender == "Male" && r.Type == core.Refreshment:
			cell = &c.mr
		case r.Gender == "Female" && r.Type == core.Qualification:
			cell = &c.fq
		case r.Gender == "Female" && r.Type == core.Refreshment:
			cell = &c.fr
		}
		if cell != nil {
			cell.sessions++
			cell.hours += r.Hours
		}
	}

	rows := make([]TrainerAverages, 0, len(byTrainer))
	for trainer, c := range byTrainer {
		rows = append(rows, TrainerAverages{
			Trainer:             trainer,
			MaleQualification:   c.mq.average(),
			MaleRefreshment:     c.mr.average(),
			FemaleQualification: c.fq.average(),
			FemaleRefreshment:   c.fr.average(),
			Sessions:            c.sessions,
			TotalHours:          c.hours,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Trainer < rows[j].Trainer })
	return rows
}
