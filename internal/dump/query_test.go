package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SingleStore(t *testing.T) {
	store := mustParse(t, `{
		"Foo": {"1": {"size": 500}},
		"Bar": {"1": {"size": 50}}
	}`)

	result := Run(store, nil, Query{MinSize: sizePtr("100")})

	require.Len(t, result.Aggregates, 1)
	assert.Contains(t, result.Aggregates, "Foo")
	assert.Nil(t, result.Comparison)
}

func TestRun_AllFiltersConjunctive(t *testing.T) {
	store := mustParse(t, `{
		"Foo": {"keep-1": {"size": 300, "attr": {"state": "live"}},
		        "drop-2": {"size": 300, "attr": {"state": "dead"}}},
		"Bar": {"keep-9": {"size": 300, "attr": {"state": "live"}}},
		"Tiny": {"keep-3": {"size": 1, "attr": {"state": "live"}}}
	}`)

	result := Run(store, nil, Query{
		MinSize:       sizePtr("100"),
		Types:         []string{"Foo", "Tiny"},
		IDSubstring:   "keep",
		AttrSubstring: "live",
	})

	// Tiny fails size, Bar fails type, drop-2 fails attr.
	require.Len(t, result.Aggregates, 1)
	require.Contains(t, result.Aggregates, "Foo")
	assert.Equal(t, 1, result.Aggregates["Foo"].NumObjects)
	assert.Contains(t, result.Aggregates["Foo"].Objects, "keep-1")
}

func TestRun_ComparisonWithStatusFilter(t *testing.T) {
	main := mustParse(t, `{
		"Stable": {"1": {"size": 10}},
		"Grew":   {"1": {"size": 10}}
	}`)
	other := mustParse(t, `{
		"Stable": {"1": {"size": 10}},
		"Grew":   {"1": {"size": 10}, "2": {"size": 10}}
	}`)

	result := Run(main, other, Query{Statuses: []ObjectStatus{StatusNew}})

	require.NotNil(t, result.Comparison)
	require.Len(t, result.Comparison, 1)
	assert.Contains(t, result.Comparison, "Grew")
	// No aggregate filters were active, so the main aggregates pass whole.
	assert.Len(t, result.Aggregates, 2)
}

func TestRun_AggregateFiltersNarrowComparison(t *testing.T) {
	main := mustParse(t, `{
		"Big":   {"1": {"size": 1000}},
		"Small": {"1": {"size": 1}}
	}`)
	other := mustParse(t, `{
		"Big":   {"1": {"size": 2000}},
		"Small": {"1": {"size": 2}}
	}`)

	result := Run(main, other, Query{MinSize: sizePtr("100")})

	require.NotNil(t, result.Comparison)
	require.Len(t, result.Comparison, 1)
	assert.Contains(t, result.Comparison, "Big")
}

func TestRun_EmptyQueryPassesEverything(t *testing.T) {
	main := mustParse(t, `{"Foo": {"1": {"size": 1}}}`)
	other := mustParse(t, `{"Bar": {"1": {"size": 2}}}`)

	result := Run(main, other, Query{})

	assert.Len(t, result.Aggregates, 1)
	// Comparison keeps the union when no filter is active.
	assert.Len(t, result.Comparison, 2)
}
