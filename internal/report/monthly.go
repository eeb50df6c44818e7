// Package report derives summary tables and chart series from the enriched
// record collections. Everything here is a pure function over snapshots: no
// caching, recomputed on every request.
package report

import (
	"sort"

	"trainlog/internal/core"
)

// FiscalMonthSummary is one row of the fiscal-year table, covering a single
// fiscal month.
type FiscalMonthSummary struct {
	Month string `json:"month"`

	// Distinct trainees trained in the month, per type. One trainee counted
	// once however many sessions they attended.
	OperatorsQualified int `json:"operators_qualified"`
	OperatorsRefreshed int `json:"operators_refreshed"`

	QualificationHours float64 `json:"qualification_hours"`
	RefreshmentHours   float64 `json:"refreshment_hours"`

	// Realized session counts (row counts, not distinct trainees).
	QualificationsRealised int `json:"qualifications_realised"`
	RefreshmentsRealised   int `json:"refreshments_realised"`

	// Planned trainee-slots: the sum of trainee-list lengths of the month's
	// planned sessions, not the number of sessions.
	PlannedQualificationSlots int `json:"planned_qualification_slots"`
	PlannedRefreshmentSlots   int `json:"planned_refreshment_slots"`
}

// MonthlyFiscalSummary partitions records and planned sessions of one fiscal
// year into the 12 fiscal months, July first.
func MonthlyFiscalSummary(records []core.TrainingRecord, plans []core.PlannedSession, fiscalYear string) []FiscalMonthSummary {
	rows := make([]FiscalMonthSummary, 0, len(core.FiscalMonthOrder))

	for _, month := range core.FiscalMonthOrder {
		row := FiscalMonthSummary{Month: month}
		qualified := map[string]struct{}{}
		refreshed := map[string]struct{}{}

		for _, r := range records {
			if core.FiscalYear(r.Date) != fiscalYear || r.MonthName != month {
				continue
			}
			switch r.Type {
			case core.Qualification:
				row.QualificationsRealised++
				row.QualificationHours += r.Hours
				qualified[r.TraineeID] = struct{}{}
			case core.Refreshment:
				row.RefreshmentsRealised++
				row.RefreshmentHours += r.Hours
				refreshed[r.TraineeID] = struct{}{}
			}
		}

		for _, p := range plans {
			if core.FiscalYear(p.Date) != fiscalYear || p.MonthName != month {
				continue
			}
			switch p.Type {
			case core.Qualification:
				row.PlannedQualificationSlots += len(p.TraineeIDs)
			case core.Refreshment:
				row.PlannedRefreshmentSlots += len(p.TraineeIDs)
			}
		}

		row.OperatorsQualified = len(qualified)
		row.OperatorsRefreshed = len(refreshed)
		rows = append(rows, row)
	}

	return rows
}

// FiscalYears lists the fiscal-year labels present in the records, newest
// first, skipping records without a valid date.
func FiscalYears(records []core.TrainingRecord) []string {
	seen := map[string]struct{}{}
	var years []string
	for _, r := range records {
		fy := core.FiscalYear(r.Date)
		if fy == "" {
			continue
		}
		if _, ok := seen[fy]; ok {
			continue
		}
		seen[fy] = struct{}{}
		years = append(years, fy)
	}
	// Labels are "FY {year}", so lexicographic order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}
