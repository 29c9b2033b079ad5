// Copyright 2024 Ross Light
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

// WalkOptions is the set of callbacks invoked by [Walk]. Each is
// optional; a nil callback is simply skipped. Returning false from a Pre
// callback skips that node's children (and its Post callback); returning
// false from a Post callback stops the walk entirely.
type WalkOptions struct {
	// PreBlock is called before a Block's children are traversed.
	PreBlock func(b *Block) bool
	// PostBlock is called after a Block's children are traversed.
	PostBlock func(b *Block) bool
	// PreInline is called before an Inline's children are traversed. parent
	// is the nearest enclosing Block.
	PreInline func(in Inline, parent *Block) bool
	// PostInline is called after an Inline's children are traversed.
	PostInline func(in Inline, parent *Block) bool
}

// Walk traverses a document's block tree depth-first, recursing into
// Blockquote children, list items, and resolved inline content.
// [Document.Blocks] is a natural root, but Walk accepts any block slice
// so callers can start from a single subtree.
func Walk(blocks []*Block, opts *WalkOptions) {
	walkBlocks(blocks, opts)
}

func walkBlocks(blocks []*Block, opts *WalkOptions) bool {
	for _, b := range blocks {
		if !walkBlock(b, opts) {
			return false
		}
	}
	return true
}

func walkBlock(b *Block, opts *WalkOptions) bool {
	if opts.PreBlock != nil && !opts.PreBlock(b) {
		return true
	}
	switch b.kind {
	case BlockquoteKind:
		if !walkBlocks(b.blockChildren, opts) {
			return false
		}
	case OrderedListKind, UnorderedListKind:
		for _, item := range b.items {
			if !walkBlocks(item, opts) {
				return false
			}
		}
	default:
		for _, in := range b.content {
			if !walkInline(in, b, opts) {
				return false
			}
		}
	}
	if opts.PostBlock != nil && !opts.PostBlock(b) {
		return false
	}
	return true
}

func walkInline(in Inline, parent *Block, opts *WalkOptions) bool {
	if opts.PreInline != nil && !opts.PreInline(in, parent) {
		return true
	}
	for _, child := range in.children {
		if !walkInline(child, parent, opts) {
			return false
		}
	}
	if opts.PostInline != nil && !opts.PostInline(in, parent) {
		return false
	}
	return true
}
