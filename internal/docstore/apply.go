package docstore

import (
	"encoding/json"
	"reflect"
	"time"
)

// applyFields merges fields into doc, resolving transforms the way Firestore
// does. Array transforms always build a new slice; stored slices are never
// mutated in place.
func applyFields(doc, fields map[string]any, now time.Time) {
	for k, v := range fields {
		switch t := v.(type) {
		case serverTimestamp:
			doc[k] = now
		case arrayUnion:
			doc[k] = unionValues(asSlice(doc[k]), t.elems)
		case arrayRemove:
			doc[k] = removeValues(asSlice(doc[k]), t.elems)
		default:
			doc[k] = v
		}
	}
}

// resolveCreate returns a new document built from data with transforms resolved.
func resolveCreate(data map[string]any, now time.Time) map[string]any {
	doc := make(map[string]any, len(data))
	applyFields(doc, data, now)
	return doc
}

func unionValues(existing []any, elems []any) []any {
	out := make([]any, 0, len(existing)+len(elems))
	out = append(out, existing...)
	for _, e := range elems {
		n := normalize(e)
		if !containsValue(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func removeValues(existing []any, elems []any) []any {
	drop := make([]any, 0, len(elems))
	for _, e := range elems {
		drop = append(drop, normalize(e))
	}
	out := make([]any, 0, len(existing))
	for _, v := range existing {
		if !containsValue(drop, v) {
			out = append(out, v)
		}
	}
	return out
}

func containsValue(list []any, v any) bool {
	for _, item := range list {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}

// asSlice converts any stored array into normalized elements. A missing or
// non-array field is treated as empty, matching Firestore's transform rules.
func asSlice(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, normalize(rv.Index(i).Interface()))
	}
	return out
}

// normalize gives array elements the shape they have after a JSON round trip
// so equality does not depend on the Go type the caller used.
func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func copyDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
