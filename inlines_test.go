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

func parseOneSpan(t *testing.T, text string) []Inline {
	t.Helper()
	isp := ispSpan(SourcePos{Filename: "t", Line: 1, Column: 1}, text)
	inlines, diag := parseInlineSpan(isp, newReferenceTable())
	require.Nil(t, diag, "parseInlineSpan(%q) diagnostic: %v", text, diag)
	return inlines
}

func TestParseCodeSpanCollapsesWhitespace(t *testing.T) {
	got := parseOneSpan(t, "`` a   b\nc ``")
	require.Len(t, got, 1)
	assert.Equal(t, CodeSpanKind, got[0].Kind())
	assert.Equal(t, "a b c", got[0].Text())
}

func TestParseStrongRequiresMatchingDelimiter(t *testing.T) {
	got := parseOneSpan(t, "**bold**")
	require.Len(t, got, 1)
	assert.Equal(t, StrongKind, got[0].Kind())
	assert.Equal(t, "bold", plainText(got[0].Children()))
}

func TestParseNestedStrongEmphasisOpensImmediately(t *testing.T) {
	got := parseOneSpan(t, "**_foo_**")
	require.Len(t, got, 1)
	require.Equal(t, StrongKind, got[0].Kind())
	inner := got[0].Children()
	require.Len(t, inner, 1)
	assert.Equal(t, EmphasisKind, inner[0].Kind())
	assert.Equal(t, "foo", plainText(inner[0].Children()))
}

func TestParseUnterminatedEmphasisIsDiagnostic(t *testing.T) {
	isp := ispSpan(SourcePos{Filename: "t", Line: 1, Column: 1}, "*oops")
	_, diag := parseInlineSpan(isp, newReferenceTable())
	require.NotNil(t, diag)
}

func TestParseBackslashEscape(t *testing.T) {
	got := parseOneSpan(t, `\*not emphasis\*`)
	assert.Equal(t, "*not emphasis*", plainText(got))
}

func TestParseHardLineBreak(t *testing.T) {
	got := parseOneSpan(t, "a\\\nb")
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Text())
	assert.Equal(t, LineBreakKind, got[1].Kind())
	assert.Equal(t, "b", got[2].Text())
}

func TestParseNamedEntity(t *testing.T) {
	got := parseOneSpan(t, "&amp;")
	require.Len(t, got, 1)
	assert.Equal(t, "&", got[0].Text())
}

func TestParseNumericEntity(t *testing.T) {
	got := parseOneSpan(t, "&#65;&#x42;")
	require.Len(t, got, 1)
	assert.Equal(t, "AB", got[0].Text())
}

func TestParseUnknownEntityIsDiagnostic(t *testing.T) {
	isp := ispSpan(SourcePos{Filename: "t", Line: 1, Column: 1}, "&notarealentity;")
	_, diag := parseInlineSpan(isp, newReferenceTable())
	require.NotNil(t, diag)
}

func TestParseAutolinkURI(t *testing.T) {
	got := parseOneSpan(t, "<https://example.com/path>")
	require.Len(t, got, 1)
	require.Equal(t, LinkKind, got[0].Kind())
	assert.Equal(t, "https://example.com/path", got[0].URI())
}

func TestParseAutolinkEmail(t *testing.T) {
	got := parseOneSpan(t, "<foo@example.com>")
	require.Len(t, got, 1)
	require.Equal(t, LinkKind, got[0].Kind())
	assert.Equal(t, "mailto:foo@example.com", got[0].URI())
}

func TestParseInlineLinkWithTitle(t *testing.T) {
	got := parseOneSpan(t, `[text](/url "a title")`)
	require.Len(t, got, 1)
	require.Equal(t, LinkKind, got[0].Kind())
	assert.Equal(t, "/url", got[0].URI())
	require.NotNil(t, got[0].Title())
	assert.Equal(t, "a title", *got[0].Title())
	assert.Equal(t, "text", plainText(got[0].Children()))
}

func TestParseImage(t *testing.T) {
	got := parseOneSpan(t, `![alt](/img.png)`)
	require.Len(t, got, 1)
	require.Equal(t, ImageKind, got[0].Kind())
	assert.Equal(t, "/img.png", got[0].URI())
	assert.Equal(t, "alt", plainText(got[0].Children()))
}
