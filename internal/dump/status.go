package dump

import (
	"fmt"
	"strings"
)

// ObjectStatus classifies one object id across two dumps.
type ObjectStatus int

const (
	// StatusOld: present unchanged in both dumps.
	StatusOld ObjectStatus = iota
	// StatusModified: present in both but the records differ.
	StatusModified
	// StatusDeleted: present only in the main dump.
	StatusDeleted
	// StatusNew: present only in the other dump.
	StatusNew
)

func (s ObjectStatus) String() string {
	switch s {
	case StatusOld:
		return "Old"
	case StatusModified:
		return "Modified"
	case StatusDeleted:
		return "Deleted"
	case StatusNew:
		return "New"
	default:
		return fmt.Sprintf("ObjectStatus(%d)", int(s))
	}
}

// ParseObjectStatus parses a status name, case-insensitively.
func ParseObjectStatus(s string) (ObjectStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old":
		return StatusOld, nil
	case "modified":
		return StatusModified, nil
	case "deleted":
		return StatusDeleted, nil
	case "new":
		return StatusNew, nil
	default:
		return 0, fmt.Errorf("unknown object status %q (valid: old, modified, deleted, new)", s)
	}
}

// ObjectStatuses classifies every object id of objType present in either
// store. The four statuses partition the id union: each id gets exactly
// one. Modified triggers on any field difference of the full record, not
// just size.
func (s *Store) ObjectStatuses(objType string, other *Store) map[string]ObjectStatus {
	var mainObjects, otherObjects map[string]*RawObject
	if agg, ok := s.Types[objType]; ok {
		mainObjects = agg.Objects
	}
	if agg, ok := other.Types[objType]; ok {
		otherObjects = agg.Objects
	}

	statuses := make(map[string]ObjectStatus, max(len(mainObjects), len(otherObjects)))

	for objID, mainObj := range mainObjects {
		otherObj, ok := otherObjects[objID]
		switch {
		case !ok:
			statuses[objID] = StatusDeleted
		case mainObj.Equal(otherObj):
			statuses[objID] = StatusOld
		default:
			statuses[objID] = StatusModified
		}
	}
	for objID := range otherObjects {
		if _, ok := mainObjects[objID]; !ok {
			statuses[objID] = StatusNew
		}
	}

	return statuses
}
