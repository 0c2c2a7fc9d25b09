// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	om := New[string, int]()
	om.Add("a", 1)
	om.Add("b", 2)
	om.Add("c", 3)
	assert.Equal(t, 3, om.Len())

	v, ok := om.ValueByKey("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	om.Add("b", 20) // replace keeps position
	assert.Equal(t, 3, om.Len())
	assert.Equal(t, "b", om.Order[1].Key)
	assert.Equal(t, 20, om.Order[1].Value)

	assert.True(t, om.DeleteKey("a"))
	assert.False(t, om.DeleteKey("a"))
	assert.Equal(t, 2, om.Len())
	// index stays consistent after deletion
	v, ok = om.ValueByKey("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, []string{"b", "c"}, keys(om))

	om.Reset()
	assert.Equal(t, 0, om.Len())
}

func TestMapZeroValue(t *testing.T) {
	var om Map[string, int]
	om.Add("x", 1)
	assert.True(t, om.HasKey("x"))
	assert.Equal(t, 1, om.Len())
}

func keys(om *Map[string, int]) []string {
	ks := make([]string, 0, om.Len())
	for _, kv := range om.Order {
		ks = append(ks, kv.Key)
	}
	return ks
}
