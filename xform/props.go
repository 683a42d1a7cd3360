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

package xform

import (
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/props"
)

// childRequiredProps decides what physical properties a physical operator
// requires of each of its children in order to itself satisfy required.
// Filter/Limit/Projection are order-preserving pass-throughs, so whatever
// ordering their parent needs, their child must provide directly (possibly
// via the child's own enforcer). HashJoin imposes no ordering requirement on
// either input. SortEnforcer needs nothing from its child beyond what it
// would need regardless of required, since it is the thing satisfying
// required in the first place.
func childRequiredProps(op operator.Operator, required props.PhysicalPropertySet) []props.PhysicalPropertySet {
	switch op.(type) {
	case operator.Filter, operator.Limit, operator.Projection:
		return []props.PhysicalPropertySet{required}
	case operator.HashJoin:
		return []props.PhysicalPropertySet{{}, {}}
	case operator.SortEnforcer:
		return []props.PhysicalPropertySet{{}}
	default: // operator.TableScan and any other childless physical operator
		return nil
	}
}

// satisfiesDirectly reports whether a physical member of op's kind can
// satisfy required entirely on its own (without the scheduler wrapping it in
// an enforcer), given that its children will be made to hold up their end via
// childRequiredProps. Pass-through operators forward required to their child
// via childRequiredProps, but none of them changes how rows are distributed
// across partitions, so they only qualify when required doesn't ask for a
// distribution they can't actually deliver. TableScan and HashJoin never
// deliver anything but Any distribution or ordering, since no operator or
// enforcer in this module produces a non-Any distribution (spec section 8
// scenario 5: a SinglePartition/HashPartitioned requirement can never be
// satisfied directly and has no enforcer either, so it must surface as
// NoWinner).
func satisfiesDirectly(op operator.Operator, required props.PhysicalPropertySet) bool {
	switch o := op.(type) {
	case operator.SortEnforcer:
		delivered := props.PhysicalPropertySet{Ordering: props.SortOrder{Keys: o.Keys}}
		return required.Satisfies(delivered)
	case operator.Filter, operator.Limit, operator.Projection:
		return required.Distribution.Kind == props.Any
	default:
		return required.Distribution.Kind == props.Any && required.Ordering.Any()
	}
}
