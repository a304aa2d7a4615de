package prop

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Equal reports deep structural equality of two Property trees: ids, types
// by id, values, defaults, metadata, constraints and children. Registry
// attachment and live subscription state are not part of a Property and so
// never participate. Types compare by id only; expanding them would loop
// on the self-referential root.
func Equal(a, b *Property) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.ID != b.ID {
		return false
	}
	if !typeEqual(a.Type, b.Type) {
		return false
	}
	if !valueEqual(a.Value, b.Value) {
		return false
	}
	if !valueEqual(a.Default, b.Default) {
		return false
	}
	return mapEqual(a.Metadata, b.Metadata) &&
		mapEqual(a.Constraints, b.Constraints) &&
		mapEqual(a.Children, b.Children)
}

func typeEqual(a, b *Property) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.ID == b.ID
}

func valueEqual(a, b any) bool {
	ap, aok := a.(*Property)
	bp, bok := b.(*Property)
	if aok && bok {
		return Equal(ap, bp)
	}
	if reflect.DeepEqual(a, b) {
		return true
	}
	return jsonEqual(a, b)
}

// jsonEqual compares payloads by JSON-canonical form. The wire form erases
// Go-level representation (int vs json.Number, []string vs []any, a map
// payload rendered identically to an expression object), so round-tripped
// trees must still compare equal to their originals. Canonicalization goes
// through decode, not raw marshal bytes, so key order never matters.
func jsonEqual(a, b any) bool {
	ca, ok := canonicalJSON(a)
	if !ok {
		return false
	}
	cb, ok := canonicalJSON(b)
	if !ok {
		return false
	}
	return reflect.DeepEqual(ca, cb)
}

func canonicalJSON(v any) (any, bool) {
	d, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var res any
	if err := dec.Decode(&res); err != nil {
		return nil, false
	}
	return res, true
}

func mapEqual(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a == nil {
		return true
	}
	ak, bk := a.Keys(), b.Keys()
	for i, k := range ak {
		if bk[i] != k {
			return false
		}
		if !Equal(a.Get(k), b.Get(k)) {
			return false
		}
	}
	return true
}
