package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/retentionai/retention-cli/internal/model"
)

var headerFold = cases.Fold()

// columnAliases maps folded header variants to canonical column names.
var columnAliases = map[string]string{
	"employee id":         "EmployeeID",
	"id":                  "EmployeeID",
	"employee_id":         "EmployeeID",
	"monthly income":      model.FieldMonthlyIncome,
	"income":              model.FieldMonthlyIncome,
	"salary":              model.FieldMonthlyIncome,
	"total working years": model.FieldTotalWorkingYears,
	"experience":          model.FieldTotalWorkingYears,
	"working years":       model.FieldTotalWorkingYears,
	"years at company":    model.FieldYearsAtCompany,
	"tenure":              model.FieldYearsAtCompany,
	"years in company":    model.FieldYearsAtCompany,
	"performance rating":  model.FieldPerformanceRating,
	"rating":              model.FieldPerformanceRating,
	"performance":         model.FieldPerformanceRating,
	"name":                "Name",
	"employee name":       "Name",
}

// canonicalColumn maps a raw header to its canonical name. Headers with no
// alias keep their original (trimmed) spelling.
func canonicalColumn(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canon, ok := columnAliases[headerFold.String(trimmed)]; ok {
		return canon
	}
	return trimmed
}

// buildDataset turns a header row plus string records into a validated
// Dataset: headers are canonicalized, cell values typed (numeric where
// parseable), EmployeeIDs generated as GEN-{1000+i} when the column is
// missing, and the four calculation attributes forced present and numeric
// (non-numeric or missing values become 0).
func buildDataset(header []string, records [][]string) *Dataset {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = canonicalColumn(h)
	}

	hasID := false
	for _, c := range columns {
		if c == "EmployeeID" {
			hasID = true
			break
		}
	}

	rows := make([]model.Row, 0, len(records))
	for i, rec := range records {
		row := make(model.Row, len(columns)+len(model.CalcFields)+1)
		for j, col := range columns {
			if col == "" {
				continue
			}
			var cell string
			if j < len(rec) {
				cell = strings.TrimSpace(rec[j])
			}
			row[col] = typeCell(cell)
		}

		if !hasID {
			row["EmployeeID"] = fmt.Sprintf("GEN-%d", 1000+i)
		} else {
			// IDs are identifiers, not quantities.
			if id, ok := row["EmployeeID"]; ok {
				row["EmployeeID"] = stringify(id)
			}
		}

		for _, field := range model.CalcFields {
			row[field] = coerceNumeric(row[field])
		}

		rows = append(rows, row)
	}

	ds := &Dataset{Columns: columns, Rows: rows}
	ensureCalcColumns(ds)
	return ds
}

// ensureCalcColumns appends any missing calculation column to the column
// list so downstream consumers see the full schema.
func ensureCalcColumns(ds *Dataset) {
	present := make(map[string]bool, len(ds.Columns))
	for _, c := range ds.Columns {
		present[c] = true
	}
	for _, field := range model.CalcFields {
		if !present[field] {
			ds.Columns = append(ds.Columns, field)
		}
	}
	if !present["EmployeeID"] {
		ds.Columns = append(ds.Columns, "EmployeeID")
	}
}

// typeCell parses a cell as float64 where possible, otherwise keeps the
// string.
func typeCell(cell string) any {
	if cell == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

// coerceNumeric forces a calculation attribute to float64; anything not
// parseable becomes 0.
func coerceNumeric(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

func stringify(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		// Whole-number IDs read from spreadsheets should not render as "7.000000".
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
