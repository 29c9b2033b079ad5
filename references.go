// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package mmark

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LinkDefinition is the destination and optional title registered by a
// link/image reference definition.
type LinkDefinition struct {
	URI   string
	Title *string
}

// referenceTable is the document-global map from normalized label to
// definition. Mutation happens only during the block pass; it is
// read-only once the inline pass begins.
type referenceTable struct {
	defs map[string]LinkDefinition
	// order preserves registration order, used to report candidate labels
	// in CouldNotFindReferenceDefinition diagnostics.
	order []string
}

func newReferenceTable() *referenceTable {
	return &referenceTable{defs: make(map[string]LinkDefinition)}
}

// mkLabel normalizes a reference label for lookup: leading/trailing
// whitespace is trimmed, internal whitespace runs collapse to a single
// space, and the result is Unicode-NFC normalized so labels that differ
// only in combining-character composition still match. Case is left
// untouched: reference labels are matched case-sensitively after
// whitespace/Unicode normalization, not case-folded.
func mkLabel(raw string) string {
	fields := strings.Fields(raw)
	return norm.NFC.String(strings.Join(fields, " "))
}

// define registers a label with its definition. It returns false (and
// does not store anything) if the normalized label already exists,
// matching the "first definition wins" rule for duplicate labels.
func (t *referenceTable) define(raw string, def LinkDefinition) bool {
	label := mkLabel(raw)
	if _, exists := t.defs[label]; exists {
		return false
	}
	t.defs[label] = def
	t.order = append(t.order, label)
	return true
}

// lookup resolves a raw (not yet normalized) label.
func (t *referenceTable) lookup(raw string) (LinkDefinition, bool) {
	def, ok := t.defs[mkLabel(raw)]
	return def, ok
}

// candidates returns the known labels, in registration order, for use in
// a CouldNotFindReferenceDefinition diagnostic.
func (t *referenceTable) candidates() []string {
	if len(t.order) == 0 {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
