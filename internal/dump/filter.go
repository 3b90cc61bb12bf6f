package dump

import (
	"slices"
	"strings"

	"github.com/mabhi256/heapdiff/utils"
)

// FilterBySize keeps types whose total size lies within [min, max]. Either
// bound may be nil, meaning unbounded on that side.
func (s *Store) FilterBySize(min, max *utils.MemorySize) map[string]*TypeAggregate {
	return filterBySize(s.Types, min, max)
}

func filterBySize(aggs map[string]*TypeAggregate, min, max *utils.MemorySize) map[string]*TypeAggregate {
	result := make(map[string]*TypeAggregate)
	for name, agg := range aggs {
		if min != nil && agg.TotalSize < *min {
			continue
		}
		if max != nil && agg.TotalSize > *max {
			continue
		}
		result[name] = agg
	}
	return result
}

// FilterByType restricts the index to the named types, aggregates
// unchanged.
func (s *Store) FilterByType(types []string) map[string]*TypeAggregate {
	return filterByType(s.Types, types)
}

func filterByType(aggs map[string]*TypeAggregate, types []string) map[string]*TypeAggregate {
	result := make(map[string]*TypeAggregate, len(types))
	for name, agg := range aggs {
		if slices.Contains(types, name) {
			result[name] = agg
		}
	}
	return result
}

// SearchQuery narrows objects by id and attribute-value substrings. Both
// predicates are optional and conjunctive. Type names the candidate type
// unless AllTypes is set.
type SearchQuery struct {
	Type          string
	IDSubstring   string
	AttrSubstring string
	AllTypes      bool
}

// SearchObjects keeps objects whose id contains IDSubstring and whose
// attribute values (coerced to text) contain AttrSubstring in at least one
// attribute. Surviving types get freshly computed aggregates, not
// inherited ones.
func (s *Store) SearchObjects(q SearchQuery) map[string]*TypeAggregate {
	candidates := s.Types
	if !q.AllTypes {
		candidates = make(map[string]*TypeAggregate, 1)
		if agg, ok := s.Types[q.Type]; ok {
			candidates[q.Type] = agg
		}
	}
	return searchObjects(candidates, q.IDSubstring, q.AttrSubstring)
}

func searchObjects(aggs map[string]*TypeAggregate, idSubstring, attrSubstring string) map[string]*TypeAggregate {
	if idSubstring == "" && attrSubstring == "" {
		result := make(map[string]*TypeAggregate, len(aggs))
		for name, agg := range aggs {
			result[name] = agg
		}
		return result
	}

	result := make(map[string]*TypeAggregate)
	for name, agg := range aggs {
		matched := make(map[string]*RawObject)
		for objID, obj := range agg.Objects {
			if idSubstring != "" && !strings.Contains(objID, idSubstring) {
				continue
			}
			if attrSubstring != "" && !anyAttrContains(obj, attrSubstring) {
				continue
			}
			matched[objID] = obj
		}
		if len(matched) > 0 {
			result[name] = newAggregate(matched)
		}
	}
	return result
}

func anyAttrContains(obj *RawObject, substring string) bool {
	for _, val := range obj.Attrs {
		if strings.Contains(val.Text(), substring) {
			return true
		}
	}
	return false
}

// newAggregate recomputes count and size over a surviving object set.
func newAggregate(objects map[string]*RawObject) *TypeAggregate {
	agg := &TypeAggregate{
		NumObjects: len(objects),
		Objects:    objects,
	}
	for _, obj := range objects {
		agg.TotalSize += obj.Size
	}
	return agg
}
