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

import "fmt"

// SourcePos identifies a single point in a named source document by its
// 1-based line and column.
type SourcePos struct {
	Filename string
	Line     int
	Column   int
}

// String formats the position as "filename:line:column".
func (p SourcePos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Less reports whether p sorts before other, ordering first by line then
// by column. Filename is not considered, since diagnostics for a single
// parse always share one filename.
func (p SourcePos) Less(other SourcePos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Diagnostics is a non-empty list of [Diagnostic] values returned by
// [Parse] when the input could not be fully parsed. It implements error.
type Diagnostics []Diagnostic

// Error renders every diagnostic, one per line, sorted by source position.
func (ds Diagnostics) Error() string {
	sorted := make([]Diagnostic, len(ds))
	copy(sorted, ds)
	sortDiagnostics(sorted)
	s := ""
	for i, d := range sorted {
		if i > 0 {
			s += "\n"
		}
		s += d.String()
	}
	return s
}

func sortDiagnostics(ds []Diagnostic) {
	// Simple insertion sort: diagnostic counts per parse are small and this
	// keeps the dependency surface limited to what the position type needs.
	for i := 1; i < len(ds); i++ {
		for j := i; j > 0 && ds[j].firstPosition().Less(ds[j-1].firstPosition()); j-- {
			ds[j], ds[j-1] = ds[j-1], ds[j]
		}
	}
}
