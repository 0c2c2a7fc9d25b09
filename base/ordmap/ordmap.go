// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap implements a minimal generic ordered map: a slice
// that retains insertion order, plus a map for fast key lookup.
// Iteration order is deterministic, which matters for resource
// registries that are walked for accounting and teardown.
package ordmap

// KeyValue represents a key-value pair.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map. Adding and key access are fast;
// deleting is relatively slow because the index map must be rebuilt.
type Map[K comparable, V any] struct {

	// Order is an ordered list of values and associated keys,
	// in the order added.
	Order []KeyValue[K, V]

	// index is the key to Order index mapping.
	index map[K]int
}

// New returns a new ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

func (om *Map[K, V]) init() {
	if om.index == nil {
		om.index = make(map[K]int)
	}
}

// Add adds a value for the given key. If the key already exists,
// its value is replaced at the existing position.
func (om *Map[K, V]) Add(key K, val V) {
	om.init()
	if i, ok := om.index[key]; ok {
		om.Order[i].Value = val
		return
	}
	om.index[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
}

// ValueByKey returns the value for the given key, and whether it exists.
func (om *Map[K, V]) ValueByKey(key K) (V, bool) {
	if i, ok := om.index[key]; ok {
		return om.Order[i].Value, true
	}
	var zv V
	return zv, false
}

// HasKey returns whether the given key exists.
func (om *Map[K, V]) HasKey(key K) bool {
	_, ok := om.index[key]
	return ok
}

// DeleteKey removes the value for the given key, returning whether
// it was present.
func (om *Map[K, V]) DeleteKey(key K) bool {
	i, ok := om.index[key]
	if !ok {
		return false
	}
	om.Order = append(om.Order[:i], om.Order[i+1:]...)
	delete(om.index, key)
	for j := i; j < len(om.Order); j++ {
		om.index[om.Order[j].Key] = j
	}
	return true
}

// Len returns the number of items in the map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// Reset removes all elements.
func (om *Map[K, V]) Reset() {
	om.Order = nil
	om.index = nil
}
