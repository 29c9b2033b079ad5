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
	"go4.org/bytereplacer"
	"golang.org/x/net/html"
)

// collapseWhitespace implements the code-span content normalization rule:
// leading/trailing spaces are trimmed and internal runs of space/tab/LF
// collapse to a single space. Newlines and tabs are normalized to spaces
// first with a byte-level replacer, then consecutive spaces are folded.
var codeSpanWhitespace = bytereplacer.New("\t", " ", "\n", " ", "\r", " ")

func collapseWhitespace(s string) string {
	b := codeSpanWhitespace.Replace([]byte(s))
	out := make([]byte, 0, len(b))
	inRun := false
	for _, c := range b {
		if c == ' ' {
			if inRun {
				continue
			}
			inRun = true
		} else {
			inRun = false
		}
		out = append(out, c)
	}
	start, end := 0, len(out)
	for start < end && out[start] == ' ' {
		start++
	}
	for end > start && out[end-1] == ' ' {
		end--
	}
	return string(out[start:end])
}

// maxUnicodeScalar is the largest valid Unicode code point, per §4.A.
const maxUnicodeScalar = 0x10FFFF

// decodeNumericReference parses the body of a numeric character reference
// (everything between "&#" and the terminating ";", including an optional
// leading "x"/"X") and returns its replacement text.
func decodeNumericReference(body string) (string, MMarkErr) {
	var value uint64
	var err error
	if len(body) > 0 && (body[0] == 'x' || body[0] == 'X') {
		value, err = parseUint(body[1:], 16)
	} else {
		value, err = parseUint(body, 10)
	}
	if err != nil || value == 0 || value > maxUnicodeScalar {
		return "", InvalidNumericCharacter{Value: uint32(value)}
	}
	return string(rune(value)), nil
}

func parseUint(s string, base int) (uint64, error) {
	if s == "" {
		return 0, errInvalidNumber
	}
	var v uint64
	for _, r := range s {
		var digit uint64
		switch {
		case r >= '0' && r <= '9':
			digit = uint64(r - '0')
		case base == 16 && r >= 'a' && r <= 'f':
			digit = uint64(r-'a') + 10
		case base == 16 && r >= 'A' && r <= 'F':
			digit = uint64(r-'A') + 10
		default:
			return 0, errInvalidNumber
		}
		if digit >= uint64(base) {
			return 0, errInvalidNumber
		}
		v = v*uint64(base) + digit
		if v > maxUnicodeScalar*16 {
			// Clamp rather than overflow; callers reject anything over
			// maxUnicodeScalar regardless.
			v = maxUnicodeScalar + 1
		}
	}
	return v, nil
}

var errInvalidNumber = errInvalidNumberType{}

type errInvalidNumberType struct{}

func (errInvalidNumberType) Error() string { return "invalid numeric reference digits" }

// decodeNamedEntity looks up name (without the surrounding "&"/";") in the
// HTML5 entity table and returns its replacement text. The table itself is
// an external collaborator; this wraps golang.org/x/net/html's copy of
// the HTML5 entity list rather than vendoring one.
func decodeNamedEntity(name string) (string, MMarkErr) {
	// html.Entity/Entity2 are keyed with the trailing ";" for nearly all
	// entries; only a couple hundred legacy names (e.g. "amp", "copy")
	// also have a bare-name key. The caller always consumes and strips
	// the ";", so look it up first and fall back to the bare name.
	withSemi := name + ";"
	if repl, ok := html.Entity[withSemi]; ok {
		return repl, nil
	}
	if repl, ok := html.Entity2[withSemi]; ok {
		return string(repl[0]) + string(repl[1]), nil
	}
	if repl, ok := html.Entity[name]; ok {
		return repl, nil
	}
	if repl, ok := html.Entity2[name]; ok {
		return string(repl[0]) + string(repl[1]), nil
	}
	return "", UnknownHtmlEntityName{Name: name}
}
