package report

import (
	"sort"

	"trainlog/internal/core"
)

// CrossTabRow accumulates summed hours for one "{bucket}-{sector}" key, split
// into two series.
type CrossTabRow struct {
	Key    string  `json:"key"`
	Bucket string  `json:"bucket"`
	Sector string  `json:"sector"`
	First  float64 `json:"first"`
	Second float64 `json:"second"`
}

// crossTab sums hours per composite key. classify returns which series a
// record belongs to (0 or 1); records it rejects are excluded from this chart
// but remain in KPIs and row counts elsewhere.
func crossTab(records []core.TrainingRecord, bucket func(core.TrainingRecord) string, classify func(core.TrainingRecord) (int, bool)) []CrossTabRow {
	byKey := map[string]*CrossTabRow{}

	for _, r := range records {
		series, ok := classify(r)
		if !ok {
			continue
		}
		b := bucket(r)
		if b == "" {
			b = core.Unknown
		}
		sector := r.Sector
		if sector == "" {
			sector = core.Unknown
		}
		key := b + "-" + sector
		row, exists := byKey[key]
		if !exists {
			row = &CrossTabRow{Key: key, Bucket: b, Sector: sector}
			byKey[key] = row
		}
		switch series {
		case 0:
			row.First += r.Hours
		case 1:
			row.Second += r.Hours
		}
	}

	rows := make([]CrossTabRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// WeeklyHoursByGender cross-tabulates hours by "Week N-sector" into
// Male (first) and Female (second) series. Other gender values are excluded
// from this chart only.
func WeeklyHoursByGender(records []core.TrainingRecord) []CrossTabRow {
	return crossTab(records,
		func(r core.TrainingRecord) string { return r.WeekLabel },
		classifyGender)
}

// MonthlyHoursByGender cross-tabulates hours by "Month-sector" into
// Male and Female series.
func MonthlyHoursByGender(records []core.TrainingRecord) []CrossTabRow {
	return crossTab(records,
		func(r core.TrainingRecord) string { return r.MonthName },
		classifyGender)
}

// MonthlyHoursByType cross-tabulates hours by "Month-sector" into
// Qualification (first) and Refreshment (second) series.
func MonthlyHoursByType(records []core.TrainingRecord) []CrossTabRow {
	return crossTab(records,
		func(r core.TrainingRecord) string { return r.MonthName },
		classifyType)
}

func classifyGender(r core.TrainingRecord) (int, bool) {
	switch r.Gender {
	case "Male":
		return 0, true
	case "Female":
		return 1, true
	}
	return 0, false
}

func classifyType(r core.TrainingRecord) (int, bool) {
	switch r.Type {
	case core.Qualification:
		return 0, true
	case core.Refreshment:
		return 1, true
	}
	return 0, false
}
