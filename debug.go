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
	"fmt"
	"strings"
)

// String renders an indented outline of the block for debugging and test
// failure output. It is not a renderer: there is no HTML or markdown
// emission here, just enough structure to tell two trees apart at a
// glance.
func (b *Block) String() string {
	var sb strings.Builder
	b.dump(&sb, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

func (b *Block) dump(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s", indent, b.kind)
	switch b.kind {
	case CodeBlockKind:
		if b.info != nil {
			fmt.Fprintf(sb, " info=%q", *b.info)
		}
	case OrderedListKind:
		fmt.Fprintf(sb, " start=%d", b.start)
	}
	sb.WriteByte('\n')
	switch b.kind {
	case BlockquoteKind:
		for _, child := range b.blockChildren {
			child.dump(sb, depth+1)
		}
	case OrderedListKind, UnorderedListKind:
		for i, item := range b.items {
			fmt.Fprintf(sb, "%s  item[%d]\n", indent, i)
			for _, child := range item {
				child.dump(sb, depth+2)
			}
		}
	default:
		for _, in := range b.content {
			in.dump(sb, depth+1)
		}
	}
}

// String renders an indented outline of the inline node, following the
// same convention as [*Block.String].
func (in Inline) String() string {
	var sb strings.Builder
	in.dump(&sb, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

func (in Inline) dump(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s", indent, in.kind)
	switch in.kind {
	case PlainKind, CodeSpanKind:
		fmt.Fprintf(sb, " %q", in.text)
	case LinkKind, ImageKind:
		fmt.Fprintf(sb, " uri=%q", in.uri)
		if in.title != nil {
			fmt.Fprintf(sb, " title=%q", *in.title)
		}
	}
	sb.WriteByte('\n')
	for _, child := range in.children {
		child.dump(sb, depth+1)
	}
}
