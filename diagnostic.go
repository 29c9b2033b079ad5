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

// Diagnostic is a single parse error tied to one or more source positions.
// Position holds at least one entry; later entries (if any) are additional
// context positions (e.g. the position of a matching opening delimiter).
type Diagnostic struct {
	Position []SourcePos
	Kind     ErrorKind
}

func (d Diagnostic) firstPosition() SourcePos {
	if len(d.Position) == 0 {
		return SourcePos{}
	}
	return d.Position[0]
}

// String formats the diagnostic as "filename:line:col: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.firstPosition(), d.Kind.String())
}

func newDiagnostic(pos SourcePos, kind ErrorKind) Diagnostic {
	return Diagnostic{Position: []SourcePos{pos}, Kind: kind}
}

// ErrorKind is the tagged union of diagnostic causes: either a trivial
// "unexpected token" mismatch surfaced by the primitive scanners, or a
// [FancyCustom] domain-specific [MMarkErr].
type ErrorKind interface {
	errorKind()
	String() string
}

// TrivialUnexpected reports that the parser found Item (or nothing, at
// EOF) where one of Expected was required.
type TrivialUnexpected struct {
	Item     string // empty means EOF
	Expected []string
}

func (TrivialUnexpected) errorKind() {}

func (t TrivialUnexpected) String() string {
	got := t.Item
	if got == "" {
		got = "end of input"
	}
	if len(t.Expected) == 0 {
		return fmt.Sprintf("unexpected %s", got)
	}
	return fmt.Sprintf("unexpected %s, expected %s", got, strings.Join(t.Expected, " or "))
}

// FancyCustom wraps a domain-specific [MMarkErr].
type FancyCustom struct {
	Err MMarkErr
}

func (FancyCustom) errorKind() {}

func (f FancyCustom) String() string {
	return f.Err.Error()
}

// MMarkErr is the set of domain-specific diagnostic causes.
type MMarkErr interface {
	error
	mmarkErr()
}

// YamlParseError reports a failure decoding YAML front matter. Message is
// the decoder's own error text.
type YamlParseError struct {
	Message string
}

func (YamlParseError) mmarkErr() {}
func (e YamlParseError) Error() string {
	return fmt.Sprintf("could not parse YAML front matter: %s", e.Message)
}

// ListStartIndexTooBig reports an ordered list whose first index exceeds
// the supported range (10^9 - 1).
type ListStartIndexTooBig struct {
	Index uint32
}

func (ListStartIndexTooBig) mmarkErr() {}
func (e ListStartIndexTooBig) Error() string {
	return fmt.Sprintf("list start index %d is too big", e.Index)
}

// ListIndexOutOfOrder reports an ordered list item whose numeric marker
// did not continue the expected sequence. Parsing continues regardless.
type ListIndexOutOfOrder struct {
	Actual   uint32
	Expected uint32
}

func (ListIndexOutOfOrder) mmarkErr() {}
func (e ListIndexOutOfOrder) Error() string {
	return fmt.Sprintf("list item index %d out of order (expected %d)", e.Actual, e.Expected)
}

// DuplicateReferenceDefinition reports that Label was already registered
// by an earlier reference definition; the later definition is discarded.
type DuplicateReferenceDefinition struct {
	Label string
}

func (DuplicateReferenceDefinition) mmarkErr() {}
func (e DuplicateReferenceDefinition) Error() string {
	return fmt.Sprintf("duplicate reference definition %q", e.Label)
}

// CouldNotFindReferenceDefinition reports a link or image label with no
// matching reference definition. Candidates lists other known labels, for
// "did you mean" style reporting by callers.
type CouldNotFindReferenceDefinition struct {
	Label      string
	Candidates []string
}

func (CouldNotFindReferenceDefinition) mmarkErr() {}
func (e CouldNotFindReferenceDefinition) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("could not find reference definition for %q", e.Label)
	}
	return fmt.Sprintf("could not find reference definition for %q (candidates: %s)", e.Label, strings.Join(e.Candidates, ", "))
}

// UnknownHtmlEntityName reports a named character reference (e.g. "&foo;")
// absent from the HTML5 entity table.
type UnknownHtmlEntityName struct {
	Name string
}

func (UnknownHtmlEntityName) mmarkErr() {}
func (e UnknownHtmlEntityName) Error() string {
	return fmt.Sprintf("unknown HTML entity name %q", e.Name)
}

// InvalidNumericCharacter reports a numeric character reference (e.g.
// "&#x110000;") outside the valid Unicode scalar range, or equal to zero.
type InvalidNumericCharacter struct {
	Value uint32
}

func (InvalidNumericCharacter) mmarkErr() {}
func (e InvalidNumericCharacter) Error() string {
	return fmt.Sprintf("invalid numeric character reference &#%d;", e.Value)
}

// NonFlankingDelimiterRun reports a run of emphasis/strike/sub/sup
// delimiter characters that could not be classified as a flanking opener
// or closer (CommonMark's "left-flanking"/"right-flanking" rules).
type NonFlankingDelimiterRun struct {
	Chars string
}

func (NonFlankingDelimiterRun) mmarkErr() {}
func (e NonFlankingDelimiterRun) Error() string {
	return fmt.Sprintf("delimiter run %q is not left- or right-flanking here", e.Chars)
}

// InternalError wraps a recovered panic from somewhere inside the parser
// itself, so that a bug never crashes a caller's process outright.
type InternalError struct {
	Err error
}

func (InternalError) mmarkErr() {}
func (e InternalError) Error() string {
	return fmt.Sprintf("internal parser error: %s", e.Err)
}

func customDiag(pos SourcePos, err MMarkErr) Diagnostic {
	return newDiagnostic(pos, FancyCustom{Err: err})
}

func trivialDiag(pos SourcePos, item string, expected ...string) Diagnostic {
	return newDiagnostic(pos, TrivialUnexpected{Item: item, Expected: expected})
}
