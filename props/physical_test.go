// Copyright 2024 The CascadeSQL Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package props_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cascadesql/cascadesql/props"
)

func TestSortOrderSatisfies(t *testing.T) {
	tests := []struct {
		name      string
		required  props.SortOrder
		delivered props.SortOrder
		want      bool
	}{
		{"empty required satisfied by anything", props.SortOrder{}, props.SortOrder{Keys: []string{"a"}}, true},
		{"exact match", props.SortOrder{Keys: []string{"a", "b"}}, props.SortOrder{Keys: []string{"a", "b"}}, true},
		{"delivered prefix superset", props.SortOrder{Keys: []string{"a"}}, props.SortOrder{Keys: []string{"a", "b"}}, true},
		{"delivered too short", props.SortOrder{Keys: []string{"a", "b"}}, props.SortOrder{Keys: []string{"a"}}, false},
		{"delivered wrong order", props.SortOrder{Keys: []string{"a", "b"}}, props.SortOrder{Keys: []string{"b", "a"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.required.Satisfies(tt.delivered))
		})
	}
}

func TestDistributionSatisfies(t *testing.T) {
	any := props.Distribution{Kind: props.Any}
	single := props.Distribution{Kind: props.SinglePartition}
	hashAB := props.Distribution{Kind: props.HashPartitioned, Keys: []string{"a", "b"}}
	hashBA := props.Distribution{Kind: props.HashPartitioned, Keys: []string{"b", "a"}}
	hashA := props.Distribution{Kind: props.HashPartitioned, Keys: []string{"a"}}

	assert.True(t, any.Satisfies(single))
	assert.False(t, single.Satisfies(any))
	assert.True(t, hashAB.Satisfies(hashBA), "hash partitioning key set comparison should ignore order")
	assert.False(t, hashAB.Satisfies(hashA))
}

func TestPhysicalPropertySetIsEmpty(t *testing.T) {
	assert.True(t, props.Empty().IsEmpty())
	nonEmpty := props.PhysicalPropertySet{Ordering: props.SortOrder{Keys: []string{"a"}}}
	assert.False(t, nonEmpty.IsEmpty())
}

func TestPhysicalPropertySetKeyStable(t *testing.T) {
	a := props.PhysicalPropertySet{
		Distribution: props.Distribution{Kind: props.HashPartitioned, Keys: []string{"x", "y"}},
		Ordering:     props.SortOrder{Keys: []string{"a"}},
	}
	b := props.PhysicalPropertySet{
		Distribution: props.Distribution{Kind: props.HashPartitioned, Keys: []string{"y", "x"}},
		Ordering:     props.SortOrder{Keys: []string{"a"}},
	}
	assert.Equal(t, a.Key(), b.Key(), "Key must not depend on hash-key slice order")
}

func TestPhysicalPropertySetSatisfies(t *testing.T) {
	required := props.PhysicalPropertySet{Ordering: props.SortOrder{Keys: []string{"a"}}}
	delivered := props.PhysicalPropertySet{Ordering: props.SortOrder{Keys: []string{"a", "b"}}}
	assert.True(t, required.Satisfies(delivered))

	deliveredWrong := props.PhysicalPropertySet{Ordering: props.SortOrder{Keys: []string{"b"}}}
	assert.False(t, required.Satisfies(deliveredWrong))
}
