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

package props

import (
	"fmt"
	"sort"
	"strings"
)

// DistributionKind enumerates the canonical Distribution physical property
// values named in spec section 3.
type DistributionKind uint8

const (
	// Any means no distribution is required or known; it is the default. As
	// a requirement it is satisfied by every delivered distribution; as a
	// delivered distribution it satisfies only an Any requirement.
	Any DistributionKind = iota
	SinglePartition
	HashPartitioned
)

// Distribution is a physical property describing how rows are spread across
// partitions. Keys is only meaningful when Kind == HashPartitioned.
type Distribution struct {
	Kind DistributionKind
	Keys []string
}

func (d Distribution) String() string {
	switch d.Kind {
	case Any:
		return "any"
	case SinglePartition:
		return "single"
	case HashPartitioned:
		return "hash(" + strings.Join(d.Keys, ",") + ")"
	default:
		return "unknown"
	}
}

// Satisfies reports whether a delivered Distribution satisfies this
// (required) Distribution: delivered ⊇ required.
func (required Distribution) Satisfies(delivered Distribution) bool {
	if required.Kind == Any {
		return true
	}
	if required.Kind != delivered.Kind {
		return false
	}
	if required.Kind != HashPartitioned {
		return true
	}
	return sameKeySet(required.Keys, delivered.Keys)
}

func sameKeySet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// SortOrder is a physical property requiring output rows to be ordered by a
// sequence of column names (ascending). An empty SortOrder means "no
// ordering required" and is satisfied by anything.
type SortOrder struct {
	Keys []string
}

func (s SortOrder) String() string {
	if len(s.Keys) == 0 {
		return "none"
	}
	return strings.Join(s.Keys, ",")
}

// Satisfies reports whether a delivered SortOrder satisfies this (required)
// SortOrder: delivered must provide at least the required prefix.
func (required SortOrder) Satisfies(delivered SortOrder) bool {
	if len(required.Keys) == 0 {
		return true
	}
	if len(delivered.Keys) < len(required.Keys) {
		return false
	}
	for i, k := range required.Keys {
		if delivered.Keys[i] != k {
			return false
		}
	}
	return true
}

func (s SortOrder) Any() bool { return len(s.Keys) == 0 }

// PhysicalPropertySet bundles the physical properties a memo group may be
// required to deliver, or may deliver. The empty set satisfies itself, and
// is satisfied by everything (Distribution.Kind == Any, SortOrder empty).
type PhysicalPropertySet struct {
	Distribution Distribution
	Ordering     SortOrder
}

// Empty is the default, least-restrictive property set.
func Empty() PhysicalPropertySet {
	return PhysicalPropertySet{Distribution: Distribution{Kind: Any}}
}

func (p PhysicalPropertySet) String() string {
	return fmt.Sprintf("{dist: %s, order: %s}", p.Distribution, p.Ordering)
}

// Satisfies reports whether delivered satisfies this required property set:
// every required component must be satisfied by the corresponding delivered
// component.
func (required PhysicalPropertySet) Satisfies(delivered PhysicalPropertySet) bool {
	return required.Distribution.Satisfies(delivered.Distribution) &&
		required.Ordering.Satisfies(delivered.Ordering)
}

// IsEmpty reports whether this set imposes no requirement at all, which the
// scheduler uses to decide whether exploration/enforcement can be skipped.
func (p PhysicalPropertySet) IsEmpty() bool {
	return p.Distribution.Kind == Any && p.Ordering.Any()
}

// Key renders a PhysicalPropertySet into a comparable, hashable string for
// use as a map key in the memo's winners table.
func (p PhysicalPropertySet) Key() string {
	return fmt.Sprintf("d%d:%s|o:%s", p.Distribution.Kind, strings.Join(sortedCopy(p.Distribution.Keys), ","), p.Ordering)
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
