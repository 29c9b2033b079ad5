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

// Isp ("inline source payload") is the unparsed inline span the block
// pass attaches to Heading1..6, Naked, and Paragraph blocks. It
// is either a raw text run anchored at a source position, or a deferred
// diagnostic that must surface verbatim when the block is inlined
// instead of being reparsed.
type Isp struct {
	pos  SourcePos
	text string
	err  *Diagnostic
}

func ispSpan(pos SourcePos, text string) *Isp {
	return &Isp{pos: pos, text: text}
}

func ispError(d Diagnostic) *Isp {
	return &Isp{err: &d}
}

// Position returns the anchor position of a text span.
func (isp *Isp) Position() SourcePos { return isp.pos }

// Text returns the raw, not-yet-reparsed text of a span.
func (isp *Isp) Text() string { return isp.text }

// Err returns the deferred diagnostic carried by an IspError, or nil for
// an IspSpan.
func (isp *Isp) Err() *Diagnostic { return isp.err }
