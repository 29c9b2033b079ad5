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

// BlockKind is an enumeration of values returned by [*Block.Kind].
type BlockKind uint8

const (
	ThematicBreakKind BlockKind = 1 + iota
	Heading1Kind
	Heading2Kind
	Heading3Kind
	Heading4Kind
	Heading5Kind
	Heading6Kind
	CodeBlockKind
	NakedKind
	ParagraphKind
	BlockquoteKind
	OrderedListKind
	UnorderedListKind
)

var blockKindNames = map[BlockKind]string{
	ThematicBreakKind:  "ThematicBreak",
	Heading1Kind:       "Heading1",
	Heading2Kind:       "Heading2",
	Heading3Kind:       "Heading3",
	Heading4Kind:       "Heading4",
	Heading5Kind:       "Heading5",
	Heading6Kind:       "Heading6",
	CodeBlockKind:      "CodeBlock",
	NakedKind:          "Naked",
	ParagraphKind:      "Paragraph",
	BlockquoteKind:     "Blockquote",
	OrderedListKind:    "OrderedList",
	UnorderedListKind:  "UnorderedList",
}

func (k BlockKind) String() string {
	if s, ok := blockKindNames[k]; ok {
		return s
	}
	return "BlockKind(0)"
}

// Block is a structural element of an MMark document. It is a
// tagged union: which fields are meaningful depends on Kind. Block holds
// inline content as an *Isp immediately after the block pass and as a
// resolved, non-empty []Inline after the inline pass runs; [*Block.Isp]
// and [*Block.Content] report which phase produced the value.
type Block struct {
	kind BlockKind
	pos  SourcePos

	// Heading1..6, Naked, Paragraph: inline content.
	isp     *Isp
	content []Inline

	// CodeBlock.
	info *string
	body string

	// Blockquote.
	blockChildren []*Block

	// OrderedList / UnorderedList.
	start uint32 // ordered list start index
	items [][]*Block

	// diagnostics attached to this block by the block pass itself (e.g.
	// ListStartIndexTooBig, ListIndexOutOfOrder) that must surface
	// regardless of whether the block's own inline content parses.
	attached []Diagnostic
}

// Kind reports the block's variant.
func (b *Block) Kind() BlockKind { return b.kind }

// Position reports the source position of the first character of the
// block.
func (b *Block) Position() SourcePos { return b.pos }

// Isp returns the block's unparsed inline span, for Heading1..6, Naked,
// and Paragraph blocks before the inline pass has run. It returns nil
// after [*Block.Content] has been populated or for blocks with no inline
// content.
func (b *Block) Isp() *Isp { return b.isp }

// Content returns the block's parsed inline content for Heading1..6,
// Naked, and Paragraph blocks. It is nil before the inline pass runs.
func (b *Block) Content() []Inline { return b.content }

// Level returns the 1-based heading level for Heading1..6 blocks, or 0
// otherwise.
func (b *Block) Level() int {
	switch b.kind {
	case Heading1Kind, Heading2Kind, Heading3Kind, Heading4Kind, Heading5Kind, Heading6Kind:
		return int(b.kind-Heading1Kind) + 1
	default:
		return 0
	}
}

// Info returns the fenced code block's info string, or nil if absent or
// the block is not a CodeBlock.
func (b *Block) Info() *string { return b.info }

// Body returns the code block's body text (including a trailing LF if the
// block was non-empty), or "" if the block is not a CodeBlock.
func (b *Block) Body() string { return b.body }

// Children returns the inner blocks of a Blockquote.
func (b *Block) Children() []*Block { return b.blockChildren }

// Start returns an OrderedList's first index.
func (b *Block) Start() uint32 { return b.start }

// Items returns the blocks of each list item, for OrderedList and
// UnorderedList blocks.
func (b *Block) Items() [][]*Block { return b.items }

func headingKind(level int) BlockKind {
	return Heading1Kind + BlockKind(level-1)
}
