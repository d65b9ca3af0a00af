// Package data provides the typed key-value payload a branch may carry.
//
// Values are grouped by type, one map per type. A key may exist in more than
// one map; lookups are always typed.
package data

import (
	"iter"
	"maps"
	"slices"

	"golang.org/x/image/math/f64"
)

// Data is a bag of named scalar, vector, bool and string values.
type Data struct {
	Floats  map[string]float64
	Vec2s   map[string]f64.Vec2
	Vec3s   map[string]f64.Vec3
	Vec4s   map[string]f64.Vec4
	Bools   map[string]bool
	Strings map[string]string
}

// New returns an empty Data with all maps allocated.
func New() *Data {
	return &Data{
		Floats:  make(map[string]float64),
		Vec2s:   make(map[string]f64.Vec2),
		Vec3s:   make(map[string]f64.Vec3),
		Vec4s:   make(map[string]f64.Vec4),
		Bools:   make(map[string]bool),
		Strings: make(map[string]string),
	}
}

// Float returns the float stored under key.
func (d *Data) Float(key string) (float64, bool) { return lookup(d.Floats, key) }

// Vec2 returns the 2-vector stored under key.
func (d *Data) Vec2(key string) (f64.Vec2, bool) { return lookup(d.Vec2s, key) }

// Vec3 returns the 3-vector stored under key.
func (d *Data) Vec3(key string) (f64.Vec3, bool) { return lookup(d.Vec3s, key) }

// Vec4 returns the 4-vector stored under key.
func (d *Data) Vec4(key string) (f64.Vec4, bool) { return lookup(d.Vec4s, key) }

// Bool returns the bool stored under key.
func (d *Data) Bool(key string) (bool, bool) { return lookup(d.Bools, key) }

// String returns the string stored under key.
func (d *Data) String(key string) (string, bool) { return lookup(d.Strings, key) }

// SetFloat stores a float under key.
func (d *Data) SetFloat(key string, v float64) { d.Floats = store(d.Floats, key, v) }

// SetVec2 stores a 2-vector under key.
func (d *Data) SetVec2(key string, v f64.Vec2) { d.Vec2s = store(d.Vec2s, key, v) }

// SetVec3 stores a 3-vector under key.
func (d *Data) SetVec3(key string, v f64.Vec3) { d.Vec3s = store(d.Vec3s, key, v) }

// SetVec4 stores a 4-vector under key.
func (d *Data) SetVec4(key string, v f64.Vec4) { d.Vec4s = store(d.Vec4s, key, v) }

// SetBool stores a bool under key.
func (d *Data) SetBool(key string, v bool) { d.Bools = store(d.Bools, key, v) }

// SetString stores a string under key.
func (d *Data) SetString(key string, v string) { d.Strings = store(d.Strings, key, v) }

// Delete removes key from every typed map.
func (d *Data) Delete(key string) {
	delete(d.Floats, key)
	delete(d.Vec2s, key)
	delete(d.Vec3s, key)
	delete(d.Vec4s, key)
	delete(d.Bools, key)
	delete(d.Strings, key)
}

// Len returns the total number of stored values across all types.
func (d *Data) Len() int {
	return len(d.Floats) + len(d.Vec2s) + len(d.Vec3s) + len(d.Vec4s) + len(d.Bools) + len(d.Strings)
}

// Keys returns every distinct key in ascending order.
func (d *Data) Keys() []string {
	seen := make(map[string]struct{}, d.Len())
	for _, m := range []iter.Seq[string]{
		maps.Keys(d.Floats), maps.Keys(d.Vec2s), maps.Keys(d.Vec3s),
		maps.Keys(d.Vec4s), maps.Keys(d.Bools), maps.Keys(d.Strings),
	} {
		for k := range m {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func lookup[V any](m map[string]V, key string) (V, bool) {
	v, ok := m[key]
	return v, ok
}

// store writes into m, allocating it first when a zero Data is used.
func store[V any](m map[string]V, key string, v V) map[string]V {
	if m == nil {
		m = make(map[string]V)
	}
	m[key] = v
	return m
}
