package model

// RiskBreakdown counts employees per risk tier.
type RiskBreakdown struct {
	High   int `json:"High"`
	Medium int `json:"Medium"`
	Low    int `json:"Low"`
}

// FactorCount is one (key factor, occurrence count) pair.
type FactorCount struct {
	Factor string `json:"factor"`
	Count  int    `json:"count"`
}

// Summary aggregates the current ranked employee list for the dashboard.
type Summary struct {
	TotalEmployees int            `json:"total_employees"`
	RiskBreakdown  RiskBreakdown  `json:"risk_breakdown"`
	CriticalTalent int            `json:"critical_talent"`
	DepartmentRisk map[string]int `json:"department_risk"`
	TopRiskFactors []FactorCount  `json:"top_risk_factors"`
	Insights       []string       `json:"insights"`
}
