package model

import (
	"strconv"
	"strings"
)

// Calculation attribute names. These four columns drive impact scoring and
// are guaranteed numeric on any ingested dataset.
const (
	FieldMonthlyIncome     = "MonthlyIncome"
	FieldTotalWorkingYears = "TotalWorkingYears"
	FieldYearsAtCompany    = "YearsAtCompany"
	FieldPerformanceRating = "PerformanceRating"
)

// CalcFields lists the calculation attributes in canonical order.
var CalcFields = []string{
	FieldMonthlyIncome,
	FieldTotalWorkingYears,
	FieldYearsAtCompany,
	FieldPerformanceRating,
}

// Row is one employee record: a loosely-typed mapping of attribute name to
// value. Ingestion guarantees the calculation attributes are present and
// numeric; everything else is passed through to the classifier as-is.
type Row map[string]any

// Float returns the named attribute coerced to float64, or def when the
// attribute is absent or not coercible.
func (r Row) Float(key string, def float64) float64 {
	v, ok := r[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return def
}

// Str returns the named attribute as a string, or def when absent or empty.
func (r Row) Str(key, def string) string {
	v, ok := r[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Truthy reports whether the named attribute is set to a truthy value:
// true, a non-zero number, or the strings "yes"/"true"/"1" (case-insensitive).
func (r Row) Truthy(key string) bool {
	v, ok := r[key]
	if !ok {
		return false
	}
	switch n := v.(type) {
	case bool:
		return n
	case float64:
		return n != 0
	case int:
		return n != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "yes", "true", "1":
			return true
		}
	}
	return false
}

// Clone returns a shallow copy of the row. Attribute values are scalars, so
// a one-level copy is sufficient for simulation overrides.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
