package dump

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/mabhi256/heapdiff/utils"
)

// Store holds one loaded dump: the per-type aggregate index plus grand
// totals. A Store is built once by Load and read-only afterwards; no query
// mutates it.
type Store struct {
	Path     string
	Types    map[string]*TypeAggregate
	Warnings []FieldWarning

	TotalObjects int
	TotalSize    utils.MemorySize
}

// Load reads, validates and indexes a dump file. Fatal errors
// (ErrFileNotFound, ErrParse, ErrValidation) abort atomically: no partial
// store is ever returned.
func Load(path string) (*Store, error) {
	return LoadWithProgress(path, nil)
}

// LoadWithProgress is Load with an advisory bytes-read callback, for
// interactive callers that want feedback on large files.
func LoadWithProgress(path string, progress ProgressFunc) (*Store, error) {
	data, err := readAll(path, progress)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse builds a store from raw dump bytes. Validation is a full fail-fast
// structural pass before any aggregation begins.
func Parse(path string, data []byte) (*Store, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	rawDump, ok := root.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "top level is not a mapping"}
	}
	if len(rawDump) == 0 {
		return nil, ErrEmptyDump
	}

	for objType, objsRaw := range rawDump {
		objs, ok := objsRaw.(map[string]any)
		if !ok {
			return nil, &ValidationError{Type: objType, Reason: "type value is not a mapping"}
		}
		for objID, objRaw := range objs {
			if _, ok := objRaw.(map[string]any); !ok {
				return nil, &ValidationError{Type: objType, ID: objID, Reason: "object value is not a mapping"}
			}
		}
	}

	store := &Store{
		Path:  path,
		Types: make(map[string]*TypeAggregate, len(rawDump)),
	}

	for objType, objsRaw := range rawDump {
		objs := objsRaw.(map[string]any)
		objects := make(map[string]*RawObject, len(objs))
		for objID, objRaw := range objs {
			obj, warnings := decodeObject(objType, objID, objRaw.(map[string]any))
			objects[objID] = obj
			store.Warnings = append(store.Warnings, warnings...)
		}
		store.Types[objType] = &TypeAggregate{Objects: objects}
	}

	for _, w := range store.Warnings {
		log.Warn().
			Str("type", w.Type).
			Str("id", w.ID).
			Str("field", w.Field).
			Msg(w.Reason)
	}

	store.process()
	return store, nil
}

// process is a single linear pass over every type and object, accumulating
// per-type counts/sizes and grand totals. Idempotent.
func (s *Store) process() {
	s.TotalObjects = 0
	s.TotalSize = 0

	for _, agg := range s.Types {
		agg.NumObjects = len(agg.Objects)
		agg.TotalSize = 0
		for _, obj := range agg.Objects {
			agg.TotalSize += obj.Size
		}
		s.TotalObjects += agg.NumObjects
		s.TotalSize += agg.TotalSize
	}
}

// TypeNames returns the object type names present in the store.
func (s *Store) TypeNames() []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	return names
}
