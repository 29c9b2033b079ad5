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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyDocument(t *testing.T) {
	doc, err := Parse("empty.mmark", []byte(""))
	require.NoError(t, err)
	assert.Nil(t, doc.YAML)
	assert.Empty(t, doc.Blocks)
}

func TestParseParagraph(t *testing.T) {
	doc, err := Parse("p.mmark", []byte("hello *world*\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	b := doc.Blocks[0]
	assert.Equal(t, ParagraphKind, b.Kind())
	require.Len(t, b.Content(), 2)
	assert.Equal(t, PlainKind, b.Content()[0].Kind())
	assert.Equal(t, "hello ", b.Content()[0].Text())
	assert.Equal(t, EmphasisKind, b.Content()[1].Kind())
	assert.Equal(t, "world", plainText(b.Content()[1].Children()))
}

func TestParseHeadingLevels(t *testing.T) {
	doc, err := Parse("h.mmark", []byte("# one\n\n## two\n\n###### six\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, 1, doc.Blocks[0].Level())
	assert.Equal(t, 2, doc.Blocks[1].Level())
	assert.Equal(t, 6, doc.Blocks[2].Level())
}

func TestParseThematicBreakAndList(t *testing.T) {
	doc, err := Parse("l.mmark", []byte("- a\n- b\n\n---\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, UnorderedListKind, doc.Blocks[0].Kind())
	assert.Len(t, doc.Blocks[0].Items(), 2)
	assert.Equal(t, ThematicBreakKind, doc.Blocks[1].Kind())
}

func TestParseFencedCodeBlock(t *testing.T) {
	doc, err := Parse("c.mmark", []byte("```go\nfmt.Println(1)\n```\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	b := doc.Blocks[0]
	require.Equal(t, CodeBlockKind, b.Kind())
	require.NotNil(t, b.Info())
	assert.Equal(t, "go", *b.Info())
	assert.Equal(t, "fmt.Println(1)\n", b.Body())
}

func TestParseStrikeoutSubSuperscript(t *testing.T) {
	doc, err := Parse("s.mmark", []byte("~~gone~~ and ~sub~ and ^sup^\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	kinds := make([]InlineKind, 0)
	for _, in := range doc.Blocks[0].Content() {
		kinds = append(kinds, in.Kind())
	}
	assert.Contains(t, kinds, StrikeoutKind)
	assert.Contains(t, kinds, SubscriptKind)
	assert.Contains(t, kinds, SuperscriptKind)
}

func TestParseReferenceLinkResolves(t *testing.T) {
	doc, err := Parse("r.mmark", []byte("[foo][bar]\n\n[bar]: /url \"Title\"\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	require.Len(t, doc.Blocks[0].Content(), 1)
	link := doc.Blocks[0].Content()[0]
	require.Equal(t, LinkKind, link.Kind())
	assert.Equal(t, "/url", link.URI())
	require.NotNil(t, link.Title())
	assert.Equal(t, "Title", *link.Title())
}

func TestParseUndefinedReferenceIsDiagnostic(t *testing.T) {
	doc, err := Parse("r.mmark", []byte("[foo][nope]\n"))
	require.Error(t, err)
	assert.Nil(t, doc)
	var diags Diagnostics
	require.ErrorAs(t, err, &diags)
	require.Len(t, diags, 1)
	_, ok := diags[0].Kind.(FancyCustom)
	require.True(t, ok)
}

func TestParseDuplicateReferenceDefinition(t *testing.T) {
	doc, err := Parse("r.mmark", []byte("[a]: /one\n[a]: /two\n\n[a]\n"))
	require.Error(t, err)
	assert.Nil(t, doc)
	var diags Diagnostics
	require.ErrorAs(t, err, &diags)
	found := false
	for _, d := range diags {
		if fc, ok := d.Kind.(FancyCustom); ok {
			if _, ok := fc.Err.(DuplicateReferenceDefinition); ok {
				found = true
			}
		}
	}
	assert.True(t, found, "expected a DuplicateReferenceDefinition diagnostic, got %v", diags)
}

func TestParseFrontMatterYAML(t *testing.T) {
	doc, err := Parse("fm.mmark", []byte("---\ntitle: Hi\ncount: 3\n---\nbody\n"))
	require.NoError(t, err)
	m, ok := doc.YAML.(map[string]any)
	require.True(t, ok, "YAML = %#v", doc.YAML)
	assert.Equal(t, "Hi", m["title"])
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "body", plainText(doc.Blocks[0].Content()))
}

func TestParseMalformedFrontMatterIsDiagnostic(t *testing.T) {
	doc, err := Parse("fm.mmark", []byte("---\n: : not yaml :::\n---\nbody\n"))
	require.Error(t, err)
	assert.Nil(t, doc)
}

func TestParseBlockquoteNesting(t *testing.T) {
	doc, err := Parse("bq.mmark", []byte("> > inner\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	outer := doc.Blocks[0]
	require.Equal(t, BlockquoteKind, outer.Kind())
	require.Len(t, outer.Children(), 1)
	inner := outer.Children()[0]
	require.Equal(t, BlockquoteKind, inner.Kind())
	require.Len(t, inner.Children(), 1)
	assert.Equal(t, ParagraphKind, inner.Children()[0].Kind())
	assert.Equal(t, "inner", plainText(inner.Children()[0].Content()))
}
