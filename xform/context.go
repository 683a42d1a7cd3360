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
	"github.com/sirupsen/logrus"

	"github.com/cascadesql/cascadesql/memo"
	"github.com/cascadesql/cascadesql/pattern"
)

// ruleContext is the memo-backed rule.Context the scheduler hands to every
// rule it applies.
type ruleContext struct {
	m   *memo.Memo
	log *logrus.Entry
}

func (c *ruleContext) ChildHandles(h pattern.Handle) []pattern.Handle {
	return c.m.ChildHandles(h)
}

func (c *ruleContext) Log() *logrus.Entry { return c.log }
