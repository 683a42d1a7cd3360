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

// Package operator defines the tagged Operator variant used throughout the
// optimizer: logical operators describe what a query means, physical
// operators describe how it is executed. Operators are immutable value types;
// equality is always structural, never pointer identity.
package operator

import "fmt"

// Operator is the sum type over LogicalOperator and PhysicalOperator. Every
// concrete operator (Scan, Filter, HashJoin, ...) implements it.
type Operator interface {
	fmt.Stringer

	// IsPhysical reports whether this operator is a physical implementation
	// rather than a logical description.
	IsPhysical() bool

	// Equal performs a structural comparison. Operators of different
	// concrete types are never equal.
	Equal(other Operator) bool
}

// LogicalOperator is implemented by operators describing relational algebra
// without committing to an execution strategy.
type LogicalOperator interface {
	Operator
	isLogical()
}

// PhysicalOperator is implemented by operators that describe a concrete
// execution strategy, including enforcers inserted solely to convert
// delivered physical properties into required ones.
type PhysicalOperator interface {
	Operator
	isPhysical()
}

// logicalBase is embedded by every LogicalOperator implementation so that
// IsPhysical and isLogical don't need to be repeated per type.
type logicalBase struct{}

func (logicalBase) IsPhysical() bool { return false }
func (logicalBase) isLogical()       {}

// physicalBase is embedded by every PhysicalOperator implementation.
type physicalBase struct{}

func (physicalBase) IsPhysical() bool { return true }
func (physicalBase) isPhysical()      {}

// JoinType enumerates the join semantics carried by Join and its physical
// implementations. Only Inner is exercised by the rule set in this module,
// but the remaining variants are carried because join group expressions
// need a concrete type to name even when no rule distinguishes them yet.
type JoinType uint8

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	SemiJoin
	AntiJoin
	CrossJoin
)

func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "Inner"
	case LeftJoin:
		return "Left"
	case RightJoin:
		return "Right"
	case SemiJoin:
		return "Semi"
	case AntiJoin:
		return "Anti"
	case CrossJoin:
		return "Cross"
	default:
		return "Unknown"
	}
}
