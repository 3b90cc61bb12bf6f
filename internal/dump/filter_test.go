package dump

import (
	"testing"

	"github.com/mabhi256/heapdiff/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizePtr(s string) *utils.MemorySize {
	size := utils.MustParseMemorySize(s)
	return &size
}

func filterFixture(t *testing.T) *Store {
	t.Helper()
	return mustParse(t, `{
		"Small":  {"1": {"size": 50}},
		"Medium": {"1": {"size": 300}, "2": {"size": 200}},
		"Large":  {"1": {"size": 5000}}
	}`)
}

func TestFilterBySize(t *testing.T) {
	store := filterFixture(t)

	t.Run("both bounds", func(t *testing.T) {
		result := store.FilterBySize(sizePtr("100"), sizePtr("1000"))
		require.Len(t, result, 1)
		assert.Contains(t, result, "Medium")
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		result := store.FilterBySize(sizePtr("50"), sizePtr("5000"))
		assert.Len(t, result, 3)
	})

	t.Run("nil min is unbounded below", func(t *testing.T) {
		result := store.FilterBySize(nil, sizePtr("500"))
		assert.Len(t, result, 2)
		assert.Contains(t, result, "Small")
		assert.Contains(t, result, "Medium")
	})

	t.Run("nil max is unbounded above", func(t *testing.T) {
		result := store.FilterBySize(sizePtr("500"), nil)
		require.Len(t, result, 1)
		assert.Contains(t, result, "Large")
	})

	t.Run("both nil keeps everything", func(t *testing.T) {
		assert.Len(t, store.FilterBySize(nil, nil), 3)
	})
}

func TestFilterByType(t *testing.T) {
	store := filterFixture(t)

	result := store.FilterByType([]string{"Small", "Large", "Missing"})
	require.Len(t, result, 2)

	// Aggregates are preserved unchanged, same index.
	assert.Same(t, store.Types["Small"], result["Small"])
	assert.Same(t, store.Types["Large"], result["Large"])
}

func TestSearchObjects(t *testing.T) {
	store := mustParse(t, `{
		"User": {
			"user-100": {"size": 10, "attr": {"name": "alice", "role": "admin"}},
			"user-200": {"size": 20, "attr": {"name": "bob"}},
			"other":    {"size": 30, "attr": {"name": "malice"}}
		},
		"Session": {
			"sess-100": {"size": 5, "attr": {"owner": ["User", "user-100"]}}
		}
	}`)

	t.Run("id substring", func(t *testing.T) {
		result := store.SearchObjects(SearchQuery{Type: "User", IDSubstring: "user-"})
		require.Contains(t, result, "User")
		assert.Equal(t, 2, result["User"].NumObjects)
	})

	t.Run("attr substring", func(t *testing.T) {
		result := store.SearchObjects(SearchQuery{Type: "User", AttrSubstring: "alice"})
		require.Contains(t, result, "User")
		// "alice" is a substring of "malice" too.
		assert.Equal(t, 2, result["User"].NumObjects)
	})

	t.Run("predicates are conjunctive", func(t *testing.T) {
		result := store.SearchObjects(SearchQuery{
			Type:          "User",
			IDSubstring:   "user-",
			AttrSubstring: "alice",
		})
		require.Contains(t, result, "User")
		assert.Equal(t, 1, result["User"].NumObjects)
		assert.Contains(t, result["User"].Objects, "user-100")
	})

	t.Run("aggregates are recomputed, not inherited", func(t *testing.T) {
		result := store.SearchObjects(SearchQuery{Type: "User", IDSubstring: "user-100"})
		require.Contains(t, result, "User")
		assert.Equal(t, 1, result["User"].NumObjects)
		assert.Equal(t, int64(10), result["User"].TotalSize.Bytes())
	})

	t.Run("no predicates returns the type unfiltered", func(t *testing.T) {
		result := store.SearchObjects(SearchQuery{Type: "User"})
		require.Contains(t, result, "User")
		assert.Equal(t, 3, result["User"].NumObjects)
	})

	t.Run("all types searches reference text too", func(t *testing.T) {
		result := store.SearchObjects(SearchQuery{AllTypes: true, AttrSubstring: "user-100"})
		require.Contains(t, result, "Session")
		assert.Equal(t, 1, result["Session"].NumObjects)
	})

	t.Run("unknown type yields empty result", func(t *testing.T) {
		assert.Empty(t, store.SearchObjects(SearchQuery{Type: "Ghost", IDSubstring: "x"}))
	})
}

// Size and type filters must commute: each operates over whatever subset
// it is given.
func TestFilters_Conjunction_OrderIndependent(t *testing.T) {
	store := mustParse(t, `{
		"Foo": {"1": {"size": 500}},
		"Bar": {"1": {"size": 500}},
		"Baz": {"1": {"size": 5}}
	}`)

	sizeFirst := filterByType(store.FilterBySize(sizePtr("100"), sizePtr("1000")), []string{"Foo"})
	typeFirst := filterBySize(store.FilterByType([]string{"Foo"}), sizePtr("100"), sizePtr("1000"))

	require.Len(t, sizeFirst, 1)
	require.Len(t, typeFirst, 1)
	assert.Same(t, sizeFirst["Foo"], typeFirst["Foo"])
}
