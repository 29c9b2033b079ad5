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
	"testing"

	"github.com/google/go-cmp/cmp"
)

// blockTreeCmp compares two block trees by their debug outline rather
// than field-by-field, since Block and Inline carry unexported
// bookkeeping (source positions, attached diagnostics) that conformance
// cases don't care about.
var blockTreeCmp = cmp.Comparer(func(a, b *Block) bool {
	return a.String() == b.String()
})

// specCases is a small conformance table drawn straight from the
// literal scenarios this module's behavior is specified against: a
// minimal front-matter document, a reference-style link, and the
// strikeout/subscript/superscript extensions CommonMark itself doesn't
// have.
var specCases = []struct {
	name   string
	src    string
	yaml   any
	blocks []*Block
}{
	{
		name: "front matter then paragraph",
		src:  "---\nfoo: 1\n---\nhi\n",
		yaml: map[string]any{"foo": 1},
		blocks: []*Block{
			{kind: ParagraphKind, content: []Inline{plain(SourcePos{}, "hi")}},
		},
	},
	{
		name: "reference style link",
		src:  "[foo][bar]\n\n[bar]: /url\n",
		yaml: nil,
		blocks: []*Block{
			{kind: ParagraphKind, content: []Inline{
				linkInline(SourcePos{}, []Inline{plain(SourcePos{}, "foo")}, "/url", nil),
			}},
		},
	},
	{
		// Subscript/superscript open only when preceded by whitespace or
		// start of span (not by ordinary text), per this pass's
		// simplified flanking rule, so each frame here is set off by
		// spaces rather than written chemical-formula style.
		name: "strikeout subscript superscript",
		src:  "~~a~~ b ~c~ d ^e^\n",
		yaml: nil,
		blocks: []*Block{
			{kind: ParagraphKind, content: []Inline{
				frame(StrikeoutKind, SourcePos{}, []Inline{plain(SourcePos{}, "a")}),
				plain(SourcePos{}, " b "),
				frame(SubscriptKind, SourcePos{}, []Inline{plain(SourcePos{}, "c")}),
				plain(SourcePos{}, " d "),
				frame(SuperscriptKind, SourcePos{}, []Inline{plain(SourcePos{}, "e")}),
			}},
		},
	},
}

func TestSpecCases(t *testing.T) {
	for _, tc := range specCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse("case.mmark", []byte(tc.src))
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.src, err)
			}
			if diff := cmp.Diff(tc.yaml, doc.YAML); diff != "" {
				t.Errorf("YAML mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.blocks, doc.Blocks, blockTreeCmp); diff != "" {
				t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
