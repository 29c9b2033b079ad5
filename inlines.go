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
	"net/mail"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// inlineParser reparses one [Isp] span into a non-empty sequence of
// [Inline] nodes, using defs (populated by the block pass) to resolve
// link and image reference definitions.
//
// Unlike the block pass's many independent recovery points, a single
// Isp's inline parse is all-or-nothing: any diagnostic aborts the rest of
// that span. The diagnostic still doesn't abort sibling blocks — that
// independence is enforced by the driver in driver.go.
type inlineParser struct {
	c    *cursor
	defs *referenceTable
}

// parseInlineSpan runs the inline pass over a single Isp. An Isp carrying
// a deferred diagnostic surfaces it directly without reparsing anything.
func parseInlineSpan(isp *Isp, defs *referenceTable) ([]Inline, *Diagnostic) {
	if isp.err != nil {
		return nil, isp.err
	}
	c := newCursor(isp.pos.Filename, []byte(isp.text), isp.pos.Line, isp.pos.Column)
	ip := &inlineParser{c: c, defs: defs}
	env := newInlineEnv()
	return ip.parseRun(env, nil, false, "")
}

// parseRun parses a sequence of inlines under env. If closerCheck is
// non-nil, it is consulted (with the running lastChar state) before each
// iteration; when it reports true, the loop stops without consuming
// anything, leaving the closer for the caller to consume. If EOF is
// reached before closerCheck fires and closerRequired is set, parseRun
// reports a diagnostic naming closerDesc. A result that ends up empty
// is itself an error unless env explicitly allows it.
func (ip *inlineParser) parseRun(env inlineEnv, closerCheck func(lastCharClass) bool, closerRequired bool, closerDesc string) ([]Inline, *Diagnostic) {
	var out []Inline
	cur := env
	for {
		if closerCheck != nil && closerCheck(cur.lastChar) {
			break
		}
		if ip.c.eof() {
			if closerRequired {
				d := trivialDiag(ip.c.position(), "", closerDesc)
				return nil, &d
			}
			break
		}
		in, lc, diag := ip.parseOne(cur)
		if diag != nil {
			return nil, diag
		}
		cur.lastChar = lc
		out = append(out, in)
	}
	if !cur.allowEmpty && len(out) == 0 {
		d := trivialDiag(ip.c.position(), "", "inline content")
		return nil, &d
	}
	return out, nil
}

// parseOne dispatches a single inline construct based on the next byte.
func (ip *inlineParser) parseOne(env inlineEnv) (Inline, lastCharClass, *Diagnostic) {
	b, _ := ip.c.peek()
	switch b {
	case '`':
		return ip.parseCodeSpan()
	case '[':
		if env.allowLinks {
			return ip.parseLinkOrImage(env, false)
		}
		pos := ip.c.position()
		ip.c.advance()
		d := trivialDiag(pos, "[", "text")
		return Inline{}, lastOther, &d
	case '!':
		if nb, ok := ip.c.peekAt(1); ok && nb == '[' && env.allowImages {
			return ip.parseLinkOrImage(env, true)
		}
		pos := ip.c.position()
		ip.c.advance()
		return plain(pos, "!"), lastOther, nil
	case '<':
		if env.allowLinks {
			if in, ok := ip.tryAutolink(); ok {
				return in, lastOther, nil
			}
		}
		pos := ip.c.position()
		ip.c.advance()
		return plain(pos, "<"), lastOther, nil
	case '\\':
		return ip.parseBackslash()
	default:
		if isFrameConstituent(rune(b)) {
			return ip.parseEnclosed(env)
		}
		return ip.parsePlainRun(env)
	}
}

// --- plain text, entities, soft breaks ---

func (ip *inlineParser) parsePlainRun(env inlineEnv) (Inline, lastCharClass, *Diagnostic) {
	pos := ip.c.position()
	var sb strings.Builder
	last := env.lastChar
	for {
		if ip.c.eof() {
			break
		}
		b, _ := ip.c.peek()
		if isEOLByte(b) {
			trimTrailingSpace(&sb)
			ip.c.eol()
			ip.c.scSCPrime()
			if ip.c.eof() {
				break
			}
			if nb, _ := ip.c.peek(); isStopByte(nb) {
				sb.WriteByte(' ')
				last = lastSpace
				break
			}
			sb.WriteByte(' ')
			last = lastSpace
			continue
		}
		if isStopByte(b) {
			break
		}
		// "]" closes link text or image alt; a run that starts on one
		// (no enclosing closer claimed it) keeps it as literal text.
		if b == ']' && sb.Len() > 0 {
			break
		}
		if b == '&' {
			text, consumed, diag := ip.tryEntity()
			if diag != nil {
				return Inline{}, lastOther, diag
			}
			if consumed {
				sb.WriteString(text)
				last = classifyTail(text, last)
				continue
			}
			ip.c.advance()
			sb.WriteByte('&')
			last = lastOther
			continue
		}
		r, size := utf8.DecodeRune(ip.c.rest())
		ip.c.advanceN(size)
		sb.WriteRune(r)
		if unicode.IsSpace(r) {
			last = lastSpace
		} else {
			last = lastOther
		}
	}
	return plain(pos, sb.String()), last, nil
}

// isStopByte reports whether b is a byte that ends a run of plain text
// because some other pInlines alternative claims it.
func isStopByte(b byte) bool {
	switch b {
	case '`', '[', '!', '<', '\\', '*', '_', '~', '^':
		return true
	default:
		return false
	}
}

func classifyTail(s string, fallback lastCharClass) lastCharClass {
	if s == "" {
		return fallback
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	if unicode.IsSpace(r) {
		return lastSpace
	}
	return lastOther
}

func trimTrailingSpace(sb *strings.Builder) {
	s := sb.String()
	trimmed := strings.TrimRight(s, " \t")
	if len(trimmed) == len(s) {
		return
	}
	sb.Reset()
	sb.WriteString(trimmed)
}

// tryEntity attempts to consume a named or numeric character reference
// starting at the cursor's '&'. consumed reports whether the "&...;"
// shape matched at all; when it did not, the cursor is left untouched and
// the caller treats '&' as a literal character.
func (ip *inlineParser) tryEntity() (string, bool, *Diagnostic) {
	startPos := ip.c.position()
	s := ip.c.save()
	ip.c.advance() // '&'
	if b, ok := ip.c.peek(); ok && b == '#' {
		ip.c.advance()
		hex := false
		if b, ok := ip.c.peek(); ok && (b == 'x' || b == 'X') {
			hex = true
			ip.c.advance()
		}
		start := ip.c.pos
		for {
			b, ok := ip.c.peek()
			if !ok {
				break
			}
			if hex && isHexDigit(b) || !hex && isDigit(b) {
				ip.c.advance()
				continue
			}
			break
		}
		digits := string(ip.c.src[start:ip.c.pos])
		if digits == "" {
			ip.c.restore(s)
			return "", false, nil
		}
		if b, ok := ip.c.peek(); !ok || b != ';' {
			ip.c.restore(s)
			return "", false, nil
		}
		body := digits
		if hex {
			body = "x" + digits
		}
		ip.c.advance() // ';'
		text, err := decodeNumericReference(body)
		if err != nil {
			d := customDiag(startPos, err)
			return "", true, &d
		}
		return text, true, nil
	}
	start := ip.c.pos
	for {
		b, ok := ip.c.peek()
		if !ok || !isAlnum(b) {
			break
		}
		ip.c.advance()
	}
	name := string(ip.c.src[start:ip.c.pos])
	if name == "" {
		ip.c.restore(s)
		return "", false, nil
	}
	if b, ok := ip.c.peek(); !ok || b != ';' {
		ip.c.restore(s)
		return "", false, nil
	}
	ip.c.advance() // ';'
	text, err := decodeNamedEntity(name)
	if err != nil {
		d := customDiag(startPos, err)
		return "", true, &d
	}
	return text, true, nil
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlnum(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// --- backslash: hard break or escaped character ---

func (ip *inlineParser) parseBackslash() (Inline, lastCharClass, *Diagnostic) {
	pos := ip.c.position()
	ip.c.advance() // '\'
	if b, ok := ip.c.peek(); ok && isEOLByte(b) {
		ip.c.eol()
		ip.c.scSCPrime()
		if ip.c.eof() {
			return lineBreak(pos), lastSpace, nil
		}
		return lineBreak(pos), lastSpace, nil
	}
	if ip.c.eof() {
		return plain(pos, "\\"), lastOther, nil
	}
	r, size := utf8.DecodeRune(ip.c.rest())
	if isASCIIPunct(r) {
		ip.c.advanceN(size)
		return plain(pos, string(r)), lastOther, nil
	}
	return plain(pos, "\\"), lastOther, nil
}

// --- code spans ---

func runLength(c *cursor, b byte) int {
	n := 0
	for {
		nb, ok := c.peekAt(n)
		if !ok || nb != b {
			return n
		}
		n++
	}
}

func (ip *inlineParser) parseCodeSpan() (Inline, lastCharClass, *Diagnostic) {
	pos := ip.c.position()
	n := runLength(ip.c, '`')
	ip.c.advanceN(n)
	start := ip.c.pos
	for {
		if ip.c.eof() {
			d := trivialDiag(ip.c.position(), "", fmt.Sprintf("closing run of %d backticks", n))
			return Inline{}, lastOther, &d
		}
		b, _ := ip.c.peek()
		if b == '`' {
			run := runLength(ip.c, '`')
			if run == n {
				content := string(ip.c.src[start:ip.c.pos])
				ip.c.advanceN(run)
				return codeSpan(pos, collapseWhitespace(content)), lastOther, nil
			}
			ip.c.advanceN(run)
			continue
		}
		ip.c.advance()
	}
}

// --- emphasis / strong / strikeout / subscript / superscript ---

// delimKindFor reports the frame kind and delimiter length for the run of
// b at the cursor, preferring the longer (two-character) delimiter when
// both lengths are eligible.
func delimKindFor(c *cursor, b byte) (InlineKind, int) {
	run := runLength(c, b)
	switch b {
	case '*', '_':
		if run >= 2 {
			return StrongKind, 2
		}
		return EmphasisKind, 1
	case '~':
		if run >= 2 {
			return StrikeoutKind, 2
		}
		return SubscriptKind, 1
	case '^':
		return SuperscriptKind, 1
	}
	return 0, 0
}

func (ip *inlineParser) parseEnclosed(env inlineEnv) (Inline, lastCharClass, *Diagnostic) {
	pos := ip.c.position()
	b, _ := ip.c.peek()
	kind, delimLen := delimKindFor(ip.c, b)

	// Left-flanking: a run opens only when it is not preceded by
	// ordinary text (must follow whitespace or start) and is not
	// followed by whitespace or end of span. This is stricter than
	// CommonMark's own flanking rule (which allows "a*b*c" to open on
	// "*") but matches the simplified lastChar-class model used
	// throughout this pass.
	lastOK := env.lastChar != lastOther
	r, _ := utf8.DecodeRune(ip.c.src[ip.c.pos+delimLen:])
	nextExists := ip.c.pos+delimLen < len(ip.c.src)
	nextOK := nextExists && !isTransparent(r)
	if !lastOK || !nextOK {
		d := customDiag(pos, NonFlankingDelimiterRun{Chars: strings.Repeat(string(b), delimLen)})
		return Inline{}, lastOther, &d
	}

	ip.c.advanceN(delimLen)
	closer := func(last lastCharClass) bool {
		return matchesCloser(ip.c, b, delimLen, last)
	}
	// The position right after an opening run has nothing "ordinary"
	// behind it yet, the same as the start of a span — in particular
	// this lets a second nestable delimiter open immediately
	// (the "**_foo_**" double-frame case) instead of being rejected as
	// non-flanking because it directly follows the outer opener.
	inner := env.withAllowEmpty(false).withLastChar(lastNothing)
	content, diag := ip.parseRun(inner, closer, true, fmt.Sprintf("closing %q", strings.Repeat(string(b), delimLen)))
	if diag != nil {
		return Inline{}, lastOther, diag
	}
	ip.c.advanceN(delimLen)
	return frame(kind, pos, content), lastOther, nil
}

// matchesCloser reports whether a valid right-flanking closer for a
// delimLen-byte run of b begins at the cursor, given the class of the
// most recently emitted character.
func matchesCloser(c *cursor, b byte, delimLen int, last lastCharClass) bool {
	if last == lastSpace {
		return false
	}
	run := runLength(c, b)
	if run < delimLen {
		return false
	}
	if _, ok := c.peekAt(delimLen); !ok {
		return true
	}
	r, _ := utf8.DecodeRune(c.src[c.pos+delimLen:])
	return isTransparent(r) || isMarkupChar(r)
}

// --- links and images ---

func (ip *inlineParser) parseLinkOrImage(env inlineEnv, image bool) (Inline, lastCharClass, *Diagnostic) {
	pos := ip.c.position()
	if image {
		ip.c.advance() // '!'
	}
	ip.c.advance() // '['

	inner := env.withAllowEmpty(false).withLastChar(lastNothing)
	if image {
		inner = inner.withAllowImages(false)
	} else {
		inner = inner.withAllowLinks(false)
	}
	closer := func(lastCharClass) bool {
		b, ok := ip.c.peek()
		return ok && b == ']'
	}
	content, diag := ip.parseRun(inner, closer, true, "]")
	if diag != nil {
		return Inline{}, lastOther, diag
	}
	ip.c.advance() // ']'

	uri, title, labelPos, label, form, diag2 := ip.parseLinkLocation(content)
	if diag2 != nil {
		return Inline{}, lastOther, diag2
	}
	if form != locationInline {
		def, ok := ip.defs.lookup(label)
		if !ok {
			d := customDiag(labelPos, CouldNotFindReferenceDefinition{Label: mkLabel(label), Candidates: ip.defs.candidates()})
			return Inline{}, lastOther, &d
		}
		uri = def.URI
		title = def.Title
	}
	if image {
		return imageInline(pos, content, uri, title), lastOther, nil
	}
	return linkInline(pos, content, uri, title), lastOther, nil
}

type linkLocationForm int

const (
	locationInline linkLocationForm = iota
	locationReference
	locationCollapsed
	locationShortcut
)

// parseLinkLocation parses the location following "[...]" and reports
// either a resolved (uri, title) for the inline form, or a label plus
// form for the reference/collapsed/shortcut forms, which the caller
// resolves against the reference table.
func (ip *inlineParser) parseLinkLocation(inner []Inline) (uri string, title *string, labelPos SourcePos, label string, form linkLocationForm, diag *Diagnostic) {
	if b, ok := ip.c.peek(); ok && b == '(' {
		pos := ip.c.position()
		ip.c.advance()
		ip.c.scSCPrime()
		u := ip.readBareOrBracketedInlineURI()
		if u == "" {
			d := trivialDiag(ip.c.position(), "", "URI")
			return "", nil, pos, "", locationInline, &d
		}
		ip.c.scSCPrime()
		t, hadTitle := ip.readOptionalInlineTitle()
		ip.c.scSCPrime()
		if b, ok := ip.c.peek(); !ok || b != ')' {
			d := trivialDiag(ip.c.position(), "", ")")
			return "", nil, pos, "", locationInline, &d
		}
		ip.c.advance()
		var tp *string
		if hadTitle {
			tp = &t
		}
		return u, tp, pos, "", locationInline, nil
	}
	if b, ok := ip.c.peek(); ok && b == '[' {
		if nb, ok2 := ip.c.peekAt(1); ok2 && nb == ']' {
			pos := ip.c.position()
			ip.c.advanceN(2)
			return "", nil, pos, plainText(inner), locationCollapsed, nil
		}
		ip.c.advance()
		start := ip.c.pos
		labelPos = ip.c.position()
		for {
			b, ok := ip.c.peek()
			if !ok || b == ']' {
				break
			}
			ip.c.advance()
		}
		lbl := string(ip.c.src[start:ip.c.pos])
		if b, ok := ip.c.peek(); ok && b == ']' {
			ip.c.advance()
		}
		return "", nil, labelPos, lbl, locationReference, nil
	}
	return "", nil, ip.c.position(), plainText(inner), locationShortcut, nil
}

func (ip *inlineParser) readBareOrBracketedInlineURI() string {
	if b, ok := ip.c.peek(); ok && b == '<' {
		ip.c.advance()
		start := ip.c.pos
		for {
			b, ok := ip.c.peek()
			if !ok || b == '>' || isEOLByte(b) {
				break
			}
			ip.c.advance()
		}
		raw := string(ip.c.src[start:ip.c.pos])
		if b, ok := ip.c.peek(); ok && b == '>' {
			ip.c.advance()
		}
		if _, err := url.Parse(raw); err != nil {
			return ""
		}
		return raw
	}
	start := ip.c.pos
	for {
		b, ok := ip.c.peek()
		if !ok || b == ' ' || b == ')' || isEOLByte(b) {
			break
		}
		ip.c.advance()
	}
	return string(ip.c.src[start:ip.c.pos])
}

func (ip *inlineParser) readOptionalInlineTitle() (string, bool) {
	b, ok := ip.c.peek()
	if !ok {
		return "", false
	}
	var closer byte
	switch b {
	case '"':
		closer = '"'
	case '\'':
		closer = '\''
	default:
		return "", false
	}
	ip.c.advance()
	var sb strings.Builder
	sawEOL := false
	for {
		b, ok := ip.c.peek()
		if !ok {
			return "", false
		}
		if b == closer {
			ip.c.advance()
			return sb.String(), true
		}
		if isEOLByte(b) {
			if sawEOL {
				return "", false
			}
			sawEOL = true
			ip.c.eol()
			sb.WriteByte(' ')
			continue
		}
		sb.WriteByte(b)
		ip.c.advance()
	}
}

// --- autolinks ---

func (ip *inlineParser) tryAutolink() (Inline, bool) {
	s := ip.c.save()
	pos := ip.c.position()
	if b, ok := ip.c.peek(); !ok || b != '<' {
		return Inline{}, false
	}
	ip.c.advance()
	start := ip.c.pos
	for {
		b, ok := ip.c.peek()
		if !ok || b == '>' || isEOLByte(b) || b == ' ' || b == '\t' {
			break
		}
		ip.c.advance()
	}
	raw := string(ip.c.src[start:ip.c.pos])
	if b, ok := ip.c.peek(); !ok || b != '>' {
		ip.c.restore(s)
		return Inline{}, false
	}
	ip.c.advance()

	if email, ok := validAutolinkEmail(raw); ok {
		return linkInline(pos, []Inline{plain(pos, email)}, "mailto:"+email, nil), true
	}
	if validAutolinkURI(raw) {
		return linkInline(pos, []Inline{plain(pos, raw)}, raw, nil), true
	}
	ip.c.restore(s)
	return Inline{}, false
}

// validAutolinkURI wraps net/url to reject anything without a scheme or
// containing whitespace.
func validAutolinkURI(raw string) bool {
	if raw == "" || strings.ContainsAny(raw, " \t\n\r") {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

// validAutolinkEmail wraps net/mail: a single-segment, schemeless
// autolink body that parses as one address is rewritten to a "mailto:"
// link.
func validAutolinkEmail(raw string) (string, bool) {
	if raw == "" || strings.Contains(raw, "://") || strings.Count(raw, "@") != 1 {
		return "", false
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", false
	}
	return raw, true
}
