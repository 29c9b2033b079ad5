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

// Package mmark parses MMark documents: CommonMark extended with optional
// YAML front matter, strikeout, subscript, superscript, and strict,
// multi-error reference-definition validation.
package mmark

import (
	"go.uber.org/zap"

	"github.com/mmark-go/mmark/internal/panicrecover"
)

// Document is the result of a successful [Parse]: an optional decoded
// YAML front matter value followed by the document's top-level blocks,
// each carrying fully resolved inline content.
type Document struct {
	YAML   any
	Blocks []*Block
}

// Parse decodes src (a full MMark document, associated with filename for
// diagnostic positions) into a Document. On any parse error, Parse
// returns a nil Document and a non-nil [Diagnostics] listing every
// diagnostic raised during the parse, sorted by source position; no
// partial Document is ever returned alongside errors.
func Parse(filename string, src []byte, opts ...Option) (*Document, error) {
	cfg := newParseConfig(opts)

	var doc *Document
	var diags Diagnostics
	runErr := panicrecover.Guard(func() error {
		doc, diags = parse(filename, src, cfg.log)
		return nil
	})
	if runErr != nil {
		pos := SourcePos{Filename: filename, Line: 1, Column: 1}
		return nil, Diagnostics{customDiag(pos, InternalError{Err: runErr})}
	}
	if len(diags) > 0 {
		return nil, diags
	}
	return doc, nil
}

// parse runs the full pipeline: front matter, the block pass, and the
// inline pass over every Isp in the resulting tree. Diagnostics from every
// phase are concatenated rather than short-circuited, so a single Parse
// call reports as many independent problems as it can find.
func parse(filename string, src []byte, log *zap.Logger) (*Document, Diagnostics) {
	c := newCursor(filename, src, 1, 1)

	yamlValue, fmDiag := parseFrontMatter(c)
	defs := newReferenceTable()
	blocks, blockDiags := parseBlocks(c, defs, log)

	var diags Diagnostics
	if fmDiag != nil {
		// The front matter failure is threaded through the same IspError
		// recovery point that malformed block content uses, so it surfaces
		// without a special case in resolveInlines.
		blocks = append([]*Block{{
			kind: NakedKind,
			pos:  fmDiag.firstPosition(),
			isp:  ispError(*fmDiag),
		}}, blocks...)
	}
	diags = append(diags, blockDiags...)
	diags = append(diags, resolveInlines(blocks, defs)...)

	if len(diags) > 0 {
		sortDiagnostics(diags)
		return nil, diags
	}
	return &Document{YAML: yamlValue, Blocks: blocks}, nil
}

// resolveInlines reparses every block's Isp into Content, recursing into
// Blockquote children and list items, and collects every diagnostic
// encountered: attached block-level diagnostics (list numbering) as well
// as inline-parse failures.
func resolveInlines(blocks []*Block, defs *referenceTable) []Diagnostic {
	var diags []Diagnostic
	for _, b := range blocks {
		diags = append(diags, b.attached...)
		switch b.kind {
		case Heading1Kind, Heading2Kind, Heading3Kind, Heading4Kind, Heading5Kind, Heading6Kind, NakedKind, ParagraphKind:
			if b.isp == nil {
				continue
			}
			content, diag := parseInlineSpan(b.isp, defs)
			if diag != nil {
				diags = append(diags, *diag)
				continue
			}
			b.content = content
			b.isp = nil
		case BlockquoteKind:
			diags = append(diags, resolveInlines(b.blockChildren, defs)...)
		case OrderedListKind, UnorderedListKind:
			for _, item := range b.items {
				diags = append(diags, resolveInlines(item, defs)...)
			}
		}
	}
	return diags
}
