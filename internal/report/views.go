package report

import "trainlog/internal/core"

// View models: pure "data in, view-model out" builders consumed by the HTTP
// layer. They take read-only snapshots from the store and return everything a
// presentation layer needs to render the view.

type DashboardView struct {
	KPIs   KPITotals             `json:"kpis"`
	Recent []core.TrainingRecord `json:"recent"`
}

// Dashboard builds the KPI view plus the most recent records. The snapshot is
// already sorted by training date descending.
func Dashboard(records []core.TrainingRecord, recent int) DashboardView {
	if recent > len(records) {
		recent = len(records)
	}
	return DashboardView{
		KPIs:   Totals(records),
		Recent: records[:recent],
	}
}

type PlanningView struct {
	Year     int                   `json:"year"`
	Month    int                   `json:"month"`
	Plans    []core.PlannedSession `json:"plans"`
	Calendar []CalendarWeek        `json:"calendar"`
}

// Planning builds the planning view: all plans plus the month grid for the
// requested month.
func Planning(plans []core.PlannedSession, year, month int) PlanningView {
	return PlanningView{
		Year:     year,
		Month:    month,
		Plans:    plans,
		Calendar: MonthGrid(plans, year, month),
	}
}

type CrossTabView struct {
	Series [2]string     `json:"series"`
	Rows   []CrossTabRow `json:"rows"`
}

// Weekly builds the weekly hours chart, split by gender.
func Weekly(records []core.TrainingRecord) CrossTabView {
	return CrossTabView{
		Series: [2]string{"Male", "Female"},
		Rows:   WeeklyHoursByGender(records),
	}
}

type MonthlyView struct {
	ByType   CrossTabView `json:"by_type"`
	ByGender CrossTabView `json:"by_gender"`
}

// Monthly builds the monthly hours charts, split by training type and by
// gender.
func Monthly(records []core.TrainingRecord) MonthlyView {
	return MonthlyView{
		ByType: CrossTabView{
			Series: [2]string{string(core.Qualification), string(core.Refreshment)},
			Rows:   MonthlyHoursByType(records),
		},
		ByGender: CrossTabView{
			Series: [2]string{"Male", "Female"},
			Rows:   MonthlyHoursByGender(records),
		},
	}
}

type FiscalView struct {
	FiscalYear string               `json:"fiscal_year"`
	Available  []string             `json:"available"`
	Months     []FiscalMonthSummary `json:"months"`
}

// Fiscal builds the fiscal-year summary table. When fy is empty the most
// recent fiscal year present in the records is used.
func Fiscal(records []core.TrainingRecord, plans []core.PlannedSession, fy string) FiscalView {
	available := FiscalYears(records)
	if fy == "" && len(available) > 0 {
		fy = available[0]
	}
	return FiscalView{
		FiscalYear: fy,
		Available:  available,
		Months:     MonthlyFiscalSummary(records, plans, fy),
	}
}

type TrainersView struct {
	Trainers []TrainerAverages `json:"trainers"`
}

// Trainers builds the per-trainer average-hours matrix.
func Trainers(records []core.TrainingRecord) TrainersView {
	return TrainersView{Trainers: AveragesByTrainer(records)}
}
