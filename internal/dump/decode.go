package dump

import (
	"math"

	"github.com/mabhi256/heapdiff/utils"
)

// decodeObject converts one already shape-validated object mapping into a
// typed RawObject. Per-field problems degrade to defaults with a warning;
// malformed single entries are common in large dumps and must not fail the
// whole file.
func decodeObject(objType, objID string, raw map[string]any) (*RawObject, []FieldWarning) {
	obj := &RawObject{}
	var warnings []FieldWarning

	warn := func(field, reason string) {
		warnings = append(warnings, FieldWarning{
			Type:   objType,
			ID:     objID,
			Field:  field,
			Reason: reason,
		})
	}

	if sizeRaw, ok := raw["size"]; !ok {
		warn("size", "missing, treating as 0")
	} else if size, ok := sizeRaw.(float64); !ok {
		warn("size", "not numeric, treating as 0")
	} else if size < 0 || math.Trunc(size) != size {
		warn("size", "not a non-negative integer, treating as 0")
	} else {
		obj.Size = utils.MemorySize(size)
	}

	if refsRaw, ok := raw["ref"]; ok {
		refs, ok := refsRaw.([]any)
		if !ok {
			warn("ref", "not a list, ignoring")
		}
		for _, refRaw := range refs {
			ref, ok := asObjectRef(refRaw)
			if !ok {
				warn("ref", "entry is not a [type, id] pair, skipping")
				continue
			}
			obj.Refs = append(obj.Refs, ref)
		}
	}

	if attrsRaw, ok := raw["attr"]; ok {
		if attrs, ok := attrsRaw.(map[string]any); ok {
			obj.Attrs = make(map[string]AttrValue, len(attrs))
			for name, valRaw := range attrs {
				obj.Attrs[name] = decodeAttrValue(valRaw)
			}
		} else {
			warn("attr", "not a mapping, ignoring")
		}
	}

	if srcRaw, ok := raw["src"]; ok {
		if src, ok := srcRaw.(map[string]any); ok {
			obj.Src = decodeSourceInfo(src)
		} else {
			warn("src", "not a mapping, ignoring")
		}
	}

	return obj, warnings
}

// decodeAttrValue resolves the scalar-vs-reference variant: a two-element
// array of two strings is a cross-object reference, anything else stays a
// scalar.
func decodeAttrValue(raw any) AttrValue {
	if ref, ok := asObjectRef(raw); ok {
		return AttrValue{Ref: &ref}
	}
	return AttrValue{Scalar: raw}
}

func asObjectRef(raw any) (ObjectRef, bool) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return ObjectRef{}, false
	}
	refType, ok := pair[0].(string)
	if !ok {
		return ObjectRef{}, false
	}
	refID, ok := pair[1].(string)
	if !ok {
		return ObjectRef{}, false
	}
	return ObjectRef{Type: refType, ID: refID}, true
}

func decodeSourceInfo(raw map[string]any) *SourceInfo {
	src := &SourceInfo{}
	if name, ok := raw["name"].(string); ok {
		src.Name = name
	}
	if filename, ok := raw["filename"].(string); ok {
		src.Filename = filename
	}
	if line, ok := raw["line"].(float64); ok {
		src.Line = int(line)
	}
	return src
}
