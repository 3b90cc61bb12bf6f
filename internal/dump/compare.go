package dump

import "github.com/mabhi256/heapdiff/utils"

// ComparisonEntry is the type-level diff between two dumps. Main is the
// baseline, Other the dump compared against it.
type ComparisonEntry struct {
	NumObjectsMain    int
	NumObjectsOther   int
	NumNewObjects     int
	NumDeletedObjects int
	TotalSizeMain     utils.MemorySize
	TotalSizeOther    utils.MemorySize
	SizeChange        utils.MemorySize
	SizePercentChange float64
}

var zeroAggregate = &TypeAggregate{}

// Compare produces one entry per type present in either store. A type
// missing on one side contributes a zero-valued aggregate for that side,
// never an error. Neither input store is mutated.
func Compare(main, other *Store) map[string]*ComparisonEntry {
	result := make(map[string]*ComparisonEntry, max(len(main.Types), len(other.Types)))

	for _, name := range unionTypeNames(main, other) {
		mainAgg, ok := main.Types[name]
		if !ok {
			mainAgg = zeroAggregate
		}
		otherAgg, ok := other.Types[name]
		if !ok {
			otherAgg = zeroAggregate
		}

		entry := &ComparisonEntry{
			NumObjectsMain:  mainAgg.NumObjects,
			NumObjectsOther: otherAgg.NumObjects,
			TotalSizeMain:   mainAgg.TotalSize,
			TotalSizeOther:  otherAgg.TotalSize,
			SizeChange:      otherAgg.TotalSize - mainAgg.TotalSize,
		}
		entry.NumNewObjects = max(otherAgg.NumObjects-mainAgg.NumObjects, 0)
		entry.NumDeletedObjects = max(mainAgg.NumObjects-otherAgg.NumObjects, 0)

		// A type with no prior footprint has no meaningful percent
		// change; report 0 rather than infinity or NaN.
		if mainAgg.TotalSize > 0 {
			entry.SizePercentChange = float64(entry.SizeChange) / float64(mainAgg.TotalSize) * 100
		}

		result[name] = entry
	}
	return result
}

func unionTypeNames(main, other *Store) []string {
	names := make([]string, 0, len(main.Types))
	for name := range main.Types {
		names = append(names, name)
	}
	for name := range other.Types {
		if _, ok := main.Types[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}

// FilterComparisonByStatus keeps a type's entry if any requested status
// matches: New needs new objects, Deleted needs deleted objects, Old needs
// equal counts with no churn, Modified needs differing counts. The
// Modified rule is a deliberate aggregate-level approximation; it says
// nothing about whether any individual object changed fields (that is what
// Store.ObjectStatuses answers). An empty status list applies no
// filtering.
func FilterComparisonByStatus(comparison map[string]*ComparisonEntry, statuses []ObjectStatus) map[string]*ComparisonEntry {
	if len(statuses) == 0 {
		return comparison
	}

	result := make(map[string]*ComparisonEntry)
	for name, entry := range comparison {
		for _, status := range statuses {
			if entryMatchesStatus(entry, status) {
				result[name] = entry
				break
			}
		}
	}
	return result
}

func entryMatchesStatus(entry *ComparisonEntry, status ObjectStatus) bool {
	switch status {
	case StatusNew:
		return entry.NumNewObjects > 0
	case StatusDeleted:
		return entry.NumDeletedObjects > 0
	case StatusOld:
		return entry.NumObjectsMain == entry.NumObjectsOther &&
			entry.NumNewObjects == 0 && entry.NumDeletedObjects == 0
	case StatusModified:
		return entry.NumObjectsMain != entry.NumObjectsOther
	default:
		return false
	}
}
