package model

// Risk labels produced by the risk scorer.
const (
	RiskHigh   = "High Risk"
	RiskMedium = "Medium Risk"
	RiskLow    = "Low Risk"
)

// Impact categories produced by the impact scorer.
const (
	ImpactCritical  = "Critical"
	ImpactImportant = "Important"
	ImpactStandard  = "Standard"
)

// RiskAssessment is the classifier's verdict for one employee.
type RiskAssessment struct {
	Label       string  `json:"Label"`
	Probability float64 `json:"Probability"`
}

// ImpactAssessment is the normalized business-impact verdict for one employee.
type ImpactAssessment struct {
	Score       float64 `json:"score"`
	Category    string  `json:"category"`
	Explanation string  `json:"explanation"`
}

// EmployeeResult is the canonical per-employee output of a scoring pass.
// JSON field names match the wire format the dashboard frontend consumes.
type EmployeeResult struct {
	EmployeeID         string           `json:"EmployeeID"`
	Name               string           `json:"Name"`
	Department         string           `json:"Department"`
	Risk               RiskAssessment   `json:"Risk"`
	Impact             ImpactAssessment `json:"Impact"`
	PriorityScore      float64          `json:"PriorityScore"`
	KeyFactors         []string         `json:"KeyFactors"`
	RecommendedActions []string         `json:"RecommendedActions"`
	// RawData keeps the original attribute mapping so the simulator can
	// re-run the classifier with overrides applied.
	RawData Row `json:"RawData"`
}
