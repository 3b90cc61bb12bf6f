package dump

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mabhi256/heapdiff/utils"
)

// ObjectRef identifies another object in the dump by type name and id.
type ObjectRef struct {
	Type string
	ID   string
}

func (r ObjectRef) String() string {
	return r.Type + ":" + r.ID
}

// AttrValue is an attribute value: either a scalar or a cross-object
// reference. The wire format encodes references as ["Type", "id"] pairs;
// the distinction is resolved once at decode time and carried as a typed
// variant, so a legitimate two-element array value is never re-read as a
// reference downstream.
type AttrValue struct {
	Scalar any        // string, float64, bool or nil; unused when Ref is set
	Ref    *ObjectRef // set when the value is a cross-object reference
}

func (v AttrValue) IsRef() bool {
	return v.Ref != nil
}

// Text returns the searchable text form of the value.
func (v AttrValue) Text() string {
	if v.Ref != nil {
		return v.Ref.String()
	}
	switch s := v.Scalar.(type) {
	case nil:
		return "null"
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

func (v AttrValue) Equal(other AttrValue) bool {
	if (v.Ref == nil) != (other.Ref == nil) {
		return false
	}
	if v.Ref != nil {
		return *v.Ref == *other.Ref
	}
	// Scalars that survived decoding as composite values (arrays that are
	// not reference pairs) need structural comparison.
	return reflect.DeepEqual(v.Scalar, other.Scalar)
}

// SourceInfo carries the optional debug fields of an object.
type SourceInfo struct {
	Name     string
	Filename string
	Line     int
}

// RawObject is one object record from the dump. Every wire field is
// optional; Size defaults to 0 with a FieldWarning when absent or
// non-numeric.
type RawObject struct {
	Size  utils.MemorySize
	Refs  []ObjectRef
	Attrs map[string]AttrValue
	Src   *SourceInfo
}

// Equal is a deep structural comparison of the full record. Any field
// difference makes two objects unequal, not just size.
func (o *RawObject) Equal(other *RawObject) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.Size != other.Size {
		return false
	}
	if len(o.Refs) != len(other.Refs) {
		return false
	}
	// Reference order is part of the record.
	for i := range o.Refs {
		if o.Refs[i] != other.Refs[i] {
			return false
		}
	}
	if len(o.Attrs) != len(other.Attrs) {
		return false
	}
	for name, val := range o.Attrs {
		otherVal, ok := other.Attrs[name]
		if !ok || !val.Equal(otherVal) {
			return false
		}
	}
	if (o.Src == nil) != (other.Src == nil) {
		return false
	}
	if o.Src != nil && *o.Src != *other.Src {
		return false
	}
	return true
}

// TypeAggregate is the per-type index computed by process(): object count,
// summed size and the owning object mapping. Immutable until the next load.
type TypeAggregate struct {
	NumObjects int
	TotalSize  utils.MemorySize
	Objects    map[string]*RawObject
}
