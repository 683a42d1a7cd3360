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

// Package errkind declares the optimizer's error kinds (spec section 7), in
// the teacher's go-errors.v1 style: each kind is a *errors.Kind a caller
// tests against with Kind.Is, instantiated with .New(args...) to attach a
// message and stack trace at the point of failure.
package errkind

import "gopkg.in/src-d/go-errors.v1"

var (
	// UnsupportedOperator is raised by the bridge when asked to convert a
	// host plan node, or an optimizer core operator, that the conversion
	// direction in question does not support (spec section 9: FromHost's
	// Join case is intentionally unsupported).
	UnsupportedOperator = errors.NewKind("unsupported operator for this conversion direction: %s")

	// PatternMismatch would indicate a rule's Apply was invoked against a
	// binding its own Pattern should never have produced; present as a
	// defensive invariant check, not something callers are expected to
	// trigger in normal operation.
	PatternMismatch = errors.NewKind("rule %s applied to an expression its pattern does not match")

	// NoWinner is raised when a group has no recorded winner for a required
	// physical property set once optimization has otherwise completed,
	// meaning no physical alternative (with or without an enforcer) could
	// satisfy it.
	NoWinner = errors.NewKind("no winning plan for group %s satisfying required properties %s")

	// InvariantViolation names internal consistency failures (e.g. a
	// dangling group reference, or merged groups with different logical
	// properties). No code in this module returns it: the memo does not run
	// these checks.
	InvariantViolation = errors.NewKind("optimizer invariant violated: %s")

	// ConversionError is raised by the bridge for a structurally supported
	// node that nonetheless carries a value the conversion cannot handle,
	// such as a Limit whose fetch expression is not a literal integer (spec
	// section 9, following original_source's to_df_logical Limit handling).
	ConversionError = errors.NewKind("conversion error: %s")
)
