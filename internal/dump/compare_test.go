package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_WorkedExample(t *testing.T) {
	main := mustParse(t, `{"Foo": {"1": {"size": 100}, "2": {"size": 200}}}`)
	other := mustParse(t, `{"Foo": {"1": {"size": 150}, "3": {"size": 50}}}`)

	result := Compare(main, other)
	require.Contains(t, result, "Foo")

	entry := result["Foo"]
	assert.Equal(t, 2, entry.NumObjectsMain)
	assert.Equal(t, 2, entry.NumObjectsOther)
	assert.Equal(t, 0, entry.NumNewObjects)
	assert.Equal(t, 0, entry.NumDeletedObjects)
	assert.Equal(t, int64(300), entry.TotalSizeMain.Bytes())
	assert.Equal(t, int64(200), entry.TotalSizeOther.Bytes())
	assert.Equal(t, int64(-100), entry.SizeChange.Bytes())
	assert.InDelta(t, -33.333, entry.SizePercentChange, 0.001)
}

func TestCompare_TypeOnlyInOneSide(t *testing.T) {
	main := mustParse(t, `{"OnlyMain": {"1": {"size": 100}, "2": {"size": 10}}}`)
	other := mustParse(t, `{"OnlyOther": {"a": {"size": 40}}}`)

	result := Compare(main, other)
	require.Len(t, result, 2)

	onlyMain := result["OnlyMain"]
	assert.Equal(t, 2, onlyMain.NumObjectsMain)
	assert.Equal(t, 0, onlyMain.NumObjectsOther)
	assert.Equal(t, 0, onlyMain.NumNewObjects)
	assert.Equal(t, 2, onlyMain.NumDeletedObjects)
	assert.Equal(t, int64(-110), onlyMain.SizeChange.Bytes())
	assert.InDelta(t, -100, onlyMain.SizePercentChange, 0.001)

	onlyOther := result["OnlyOther"]
	assert.Equal(t, 1, onlyOther.NumNewObjects)
	assert.Equal(t, 0, onlyOther.NumDeletedObjects)
	assert.Equal(t, int64(40), onlyOther.SizeChange.Bytes())
	// Zero-division convention: no prior footprint reports 0, never NaN.
	assert.Equal(t, float64(0), onlyOther.SizePercentChange)
}

func TestCompare_Antisymmetric(t *testing.T) {
	a := mustParse(t, `{
		"Foo": {"1": {"size": 100}, "2": {"size": 200}},
		"Bar": {"x": {"size": 10}}
	}`)
	b := mustParse(t, `{
		"Foo": {"1": {"size": 150}},
		"Baz": {"y": {"size": 5}}
	}`)

	forward := Compare(a, b)
	backward := Compare(b, a)

	require.Equal(t, len(forward), len(backward))
	for name, entry := range forward {
		assert.Equal(t, -entry.SizeChange, backward[name].SizeChange, "type %s", name)
		assert.Equal(t, entry.NumNewObjects, backward[name].NumDeletedObjects, "type %s", name)
		assert.Equal(t, entry.NumDeletedObjects, backward[name].NumNewObjects, "type %s", name)
	}
}

func TestFilterComparisonByStatus(t *testing.T) {
	main := mustParse(t, `{
		"Stable":  {"1": {"size": 10}},
		"Grew":    {"1": {"size": 10}},
		"Shrank":  {"1": {"size": 10}, "2": {"size": 10}},
		"Churned": {"1": {"size": 10}, "2": {"size": 10}}
	}`)
	other := mustParse(t, `{
		"Stable":  {"1": {"size": 10}},
		"Grew":    {"1": {"size": 10}, "2": {"size": 10}},
		"Shrank":  {"1": {"size": 10}},
		"Churned": {"3": {"size": 10}, "4": {"size": 10}}
	}`)

	comparison := Compare(main, other)

	tests := []struct {
		name     string
		statuses []ObjectStatus
		want     []string
	}{
		{"empty list applies no filtering", nil, []string{"Stable", "Grew", "Shrank", "Churned"}},
		{"new", []ObjectStatus{StatusNew}, []string{"Grew"}},
		{"deleted", []ObjectStatus{StatusDeleted}, []string{"Shrank"}},
		// Churned swapped every object but kept equal counts, so the
		// aggregate rule calls it Old, not Modified.
		{"old", []ObjectStatus{StatusOld}, []string{"Stable", "Churned"}},
		{"modified", []ObjectStatus{StatusModified}, []string{"Grew", "Shrank"}},
		{"new or deleted", []ObjectStatus{StatusNew, StatusDeleted}, []string{"Grew", "Shrank"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterComparisonByStatus(comparison, tt.statuses)
			require.Len(t, got, len(tt.want))
			for _, name := range tt.want {
				assert.Contains(t, got, name)
			}
		})
	}
}

func TestCompare_DoesNotMutateInputs(t *testing.T) {
	main := mustParse(t, `{"Foo": {"1": {"size": 100}}}`)
	other := mustParse(t, `{"Bar": {"1": {"size": 50}}}`)

	mainTotal, otherTotal := main.TotalSize, other.TotalSize
	Compare(main, other)

	assert.Equal(t, mainTotal, main.TotalSize)
	assert.Equal(t, otherTotal, other.TotalSize)
	assert.Len(t, main.Types, 1)
	assert.Len(t, other.Types, 1)
}
