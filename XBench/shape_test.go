// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShape(t *testing.T) {
	for _, shape := range Shapes {
		parsed, err := ParseShape(shape.String())
		assert.NoError(t, err)
		assert.Equal(t, shape, parsed)
	}

	assert.IsType(t, &ZeroRelation{}, ShapeZero.New())
	assert.IsType(t, &OneRelation{}, ShapeOne.New())
	assert.IsType(t, &TwoRelation{}, ShapeTwo.New())
	assert.Equal(t, "two_relation", ShapeTwo.New().TableName())
	assert.Equal(t, 2, ShapeTwo.Relations())

	tests := map[string]Shape{"zero": ShapeZero, " One ": ShapeOne, "tworelation": ShapeTwo, "1": ShapeOne}
	for input, expected := range tests {
		shape, err := ParseShape(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, shape, input)
	}

	_, err := ParseShape("three")
	assert.Error(t, err)
	assert.Equal(t, "Unknown", Shape(9).String())
}
