package explain

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// defaultLabels maps raw classifier feature names to the phrasing shown to
// HR users. Unknown features fall back to the raw name.
var defaultLabels = map[string]string{
	"OverTime":                "Excessive overtime",
	"MonthlyIncome":           "Compensation level",
	"DistanceFromHome":        "Commute distance",
	"TotalWorkingYears":       "Career tenure",
	"EnvironmentSatisfaction": "Work environment satisfaction",
	"JobSatisfaction":         "Job satisfaction score",
	"WorkLifeBalance":         "Work-life balance",
	"YearsSinceLastPromotion": "Time since last promotion",
}

// Labels resolves feature names to friendly display labels.
type Labels struct {
	byFeature map[string]string
}

// DefaultLabels returns the built-in label set.
func DefaultLabels() *Labels {
	m := make(map[string]string, len(defaultLabels))
	for k, v := range defaultLabels {
		m[k] = v
	}
	return &Labels{byFeature: m}
}

// LoadLabels returns the built-in label set merged with overrides from a
// YAML file mapping feature name to label. An empty path returns the
// defaults unchanged.
func LoadLabels(path string) (*Labels, error) {
	labels := DefaultLabels()
	if path == "" {
		return labels, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "explain: read labels file")
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, eris.Wrap(err, "explain: parse labels file")
	}

	for k, v := range overrides {
		labels.byFeature[k] = v
	}
	return labels, nil
}

// Resolve returns the friendly label for a feature, or the raw feature name
// when no label is known.
func (l *Labels) Resolve(feature string) string {
	if label, ok := l.byFeature[feature]; ok {
		return label
	}
	return feature
}
