package explain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLabels(t *testing.T) {
	labels := DefaultLabels()

	assert.Equal(t, "Excessive overtime", labels.Resolve("OverTime"))
	assert.Equal(t, "Work-life balance", labels.Resolve("WorkLifeBalance"))
	assert.Equal(t, "SomeNewFeature", labels.Resolve("SomeNewFeature"))
}

func TestLoadLabelsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	content := "OverTime: Heavy overtime load\nJobLevel: Seniority level\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	labels, err := LoadLabels(path)
	require.NoError(t, err)

	assert.Equal(t, "Heavy overtime load", labels.Resolve("OverTime"))
	assert.Equal(t, "Seniority level", labels.Resolve("JobLevel"))
	// Untouched defaults survive the merge.
	assert.Equal(t, "Commute distance", labels.Resolve("DistanceFromHome"))
}

func TestLoadLabelsEmptyPath(t *testing.T) {
	labels, err := LoadLabels("")
	require.NoError(t, err)
	assert.Equal(t, "Compensation level", labels.Resolve("MonthlyIncome"))
}

func TestLoadLabelsMissingFile(t *testing.T) {
	_, err := LoadLabels(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadLabelsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	_, err := LoadLabels(path)
	assert.Error(t, err)
}
