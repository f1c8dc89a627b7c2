package store

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retentionai/retention-cli/internal/model"
)

func snapshotOf(ids ...string) *Snapshot {
	employees := make([]model.EmployeeResult, len(ids))
	for i, id := range ids {
		employees[i] = model.EmployeeResult{EmployeeID: id}
	}
	return NewSnapshot(employees, model.Summary{TotalEmployees: len(ids)})
}

func TestEmptyStore(t *testing.T) {
	s := New()

	assert.Nil(t, s.Current())
	assert.Nil(t, s.Employees())

	_, loaded := s.Summary()
	assert.False(t, loaded)

	_, err := s.Lookup("anything")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestReplaceAndLookup(t *testing.T) {
	s := New()
	s.Replace(snapshotOf("E1", "E2", "E3"))

	require.Len(t, s.Employees(), 3)

	summary, loaded := s.Summary()
	assert.True(t, loaded)
	assert.Equal(t, 3, summary.TotalEmployees)

	emp, err := s.Lookup("E2")
	require.NoError(t, err)
	assert.Equal(t, "E2", emp.EmployeeID)

	_, err = s.Lookup("E9")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestReplaceSwapsWholesale(t *testing.T) {
	s := New()
	s.Replace(snapshotOf("E1", "E2"))
	first := s.Current()

	s.Replace(snapshotOf("E3"))

	// Old snapshot stays intact for readers still holding it.
	assert.Len(t, first.Employees, 2)

	assert.Len(t, s.Employees(), 1)
	_, err := s.Lookup("E1")
	assert.Error(t, err)

	emp, err := s.Lookup("E3")
	require.NoError(t, err)
	assert.Equal(t, "E3", emp.EmployeeID)
}

func TestSnapshotIdentity(t *testing.T) {
	a := snapshotOf("E1")
	b := snapshotOf("E1")

	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}
