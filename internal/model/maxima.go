package model

// Maxima holds per-dataset column maxima for the calculation attributes,
// used as normalization denominators by the impact scorer.
type Maxima struct {
	MonthlyIncome     float64
	TotalWorkingYears float64
	YearsAtCompany    float64
	PerformanceRating float64
}

// ComputeMaxima scans the dataset once and returns the column maximum for
// each calculation attribute. Zero or absent maxima are replaced with safe
// denominators (4 for PerformanceRating, 1 otherwise) so normalization never
// divides by zero.
func ComputeMaxima(rows []Row) Maxima {
	var m Maxima
	for _, r := range rows {
		m.MonthlyIncome = maxf(m.MonthlyIncome, r.Float(FieldMonthlyIncome, 0))
		m.TotalWorkingYears = maxf(m.TotalWorkingYears, r.Float(FieldTotalWorkingYears, 0))
		m.YearsAtCompany = maxf(m.YearsAtCompany, r.Float(FieldYearsAtCompany, 0))
		m.PerformanceRating = maxf(m.PerformanceRating, r.Float(FieldPerformanceRating, 0))
	}
	if m.PerformanceRating == 0 {
		m.PerformanceRating = 4
	}
	if m.TotalWorkingYears == 0 {
		m.TotalWorkingYears = 1
	}
	if m.YearsAtCompany == 0 {
		m.YearsAtCompany = 1
	}
	if m.MonthlyIncome == 0 {
		m.MonthlyIncome = 1
	}
	return m
}

func maxf(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}
