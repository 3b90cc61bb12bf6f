package dump

import "github.com/mabhi256/heapdiff/utils"

// Query is the single surface the presentation layer depends on: every
// filter/search parameter the UI can set, applied conjunctively.
type Query struct {
	MinSize       *utils.MemorySize
	MaxSize       *utils.MemorySize
	Types         []string
	IDSubstring   string
	AttrSubstring string
	Statuses      []ObjectStatus
}

func (q Query) hasAggregateFilters() bool {
	return q.MinSize != nil || q.MaxSize != nil || len(q.Types) > 0 ||
		q.IDSubstring != "" || q.AttrSubstring != ""
}

// Result carries whatever the UI should render: the filtered per-type
// aggregates of the main store, and the filtered comparison when an other
// store was supplied.
type Result struct {
	Aggregates map[string]*TypeAggregate
	Comparison map[string]*ComparisonEntry
}

// Run applies the query's filters in sequence, each over the subset the
// previous one produced, and intersects the comparison with the surviving
// type set. A type survives only if it passes every active filter. other
// may be nil for single-dump queries.
func Run(main, other *Store, q Query) *Result {
	aggs := main.Types
	if q.MinSize != nil || q.MaxSize != nil {
		aggs = filterBySize(aggs, q.MinSize, q.MaxSize)
	}
	if len(q.Types) > 0 {
		aggs = filterByType(aggs, q.Types)
	}
	if q.IDSubstring != "" || q.AttrSubstring != "" {
		aggs = searchObjects(aggs, q.IDSubstring, q.AttrSubstring)
	}

	result := &Result{Aggregates: aggs}

	if other != nil {
		comparison := Compare(main, other)
		comparison = FilterComparisonByStatus(comparison, q.Statuses)
		if q.hasAggregateFilters() {
			narrowed := make(map[string]*ComparisonEntry)
			for name, entry := range comparison {
				if _, ok := aggs[name]; ok {
					narrowed[name] = entry
				}
			}
			comparison = narrowed
		}
		result.Comparison = comparison
	}

	return result
}
