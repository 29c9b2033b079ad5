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

// InlineKind is an enumeration of values returned by [Inline.Kind].
type InlineKind uint8

const (
	PlainKind InlineKind = 1 + iota
	LineBreakKind
	EmphasisKind
	StrongKind
	StrikeoutKind
	SubscriptKind
	SuperscriptKind
	CodeSpanKind
	LinkKind
	ImageKind
)

var inlineKindNames = map[InlineKind]string{
	PlainKind:        "Plain",
	LineBreakKind:    "LineBreak",
	EmphasisKind:     "Emphasis",
	StrongKind:       "Strong",
	StrikeoutKind:    "Strikeout",
	SubscriptKind:    "Subscript",
	SuperscriptKind:  "Superscript",
	CodeSpanKind:     "CodeSpan",
	LinkKind:         "Link",
	ImageKind:        "Image",
}

func (k InlineKind) String() string {
	if s, ok := inlineKindNames[k]; ok {
		return s
	}
	return "InlineKind(0)"
}

// Inline is a leaf or frame of parsed inline content. Like
// [Block], it is a tagged union: which fields matter depends on Kind.
type Inline struct {
	kind InlineKind
	pos  SourcePos

	text     string  // Plain, CodeSpan
	children []Inline // Emphasis, Strong, Strikeout, Subscript, Superscript, Link (inner), Image (alt)

	// Link, Image.
	uri   string
	title *string
}

// Kind reports the inline node's variant.
func (in Inline) Kind() InlineKind { return in.kind }

// Position reports the source position of the first character of the
// node.
func (in Inline) Position() SourcePos { return in.pos }

// Text returns the literal text of a Plain or CodeSpan node.
func (in Inline) Text() string { return in.text }

// Children returns the inner inline sequence of a frame node (Emphasis,
// Strong, Strikeout, Subscript, Superscript), the link text of a Link, or
// the alt text of an Image.
func (in Inline) Children() []Inline { return in.children }

// URI returns the destination of a Link or Image.
func (in Inline) URI() string { return in.uri }

// Title returns the optional title of a Link or Image.
func (in Inline) Title() *string { return in.title }

func plain(pos SourcePos, text string) Inline {
	return Inline{kind: PlainKind, pos: pos, text: text}
}

func lineBreak(pos SourcePos) Inline {
	return Inline{kind: LineBreakKind, pos: pos}
}

func codeSpan(pos SourcePos, text string) Inline {
	return Inline{kind: CodeSpanKind, pos: pos, text: text}
}

func frame(kind InlineKind, pos SourcePos, children []Inline) Inline {
	return Inline{kind: kind, pos: pos, children: children}
}

func linkInline(pos SourcePos, inner []Inline, uri string, title *string) Inline {
	return Inline{kind: LinkKind, pos: pos, children: inner, uri: uri, title: title}
}

func imageInline(pos SourcePos, alt []Inline, uri string, title *string) Inline {
	return Inline{kind: ImageKind, pos: pos, children: alt, uri: uri, title: title}
}

// plainText renders the literal text content of an inline sequence by
// concatenating Plain text and recursing into frames, used for collapsed
// and shortcut reference-link label lookups.
func plainText(inlines []Inline) string {
	var s []byte
	for _, in := range inlines {
		switch in.kind {
		case PlainKind, CodeSpanKind:
			s = append(s, in.text...)
		case LineBreakKind:
			s = append(s, ' ')
		default:
			s = append(s, plainText(in.children)...)
		}
	}
	return string(s)
}
