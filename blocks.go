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
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// blockParser turns source bytes into a skeleton of [Block] values whose
// inline content remains an unparsed [Isp], plus a populated
// reference-definition table.
type blockParser struct {
	c   *cursor
	log *zap.Logger

	// pendingDiagnostics collects diagnostics raised directly by the block
	// pass (currently only DuplicateReferenceDefinition) that are not tied
	// to any single block's Isp and must be surfaced by the driver
	// regardless of which block they occurred alongside.
	pendingDiagnostics []Diagnostic
	// quoteStartLine records the source line at which the most recently
	// reassembled blockquote body begins, for accurate inner positions.
	quoteStartLine int
}

// parseBlocks runs the top-level block pass (pMMark minus the YAML
// preamble, which [parseFrontMatter] already consumed) starting at c and
// returns the document's top-level blocks.
func parseBlocks(c *cursor, defs *referenceTable, log *zap.Logger) ([]*Block, []Diagnostic) {
	bp := &blockParser{c: c, log: log}
	env := newBlockEnv(defs)
	blocks := bp.parseSequence(env)
	return blocks, bp.pendingDiagnostics
}

// parseSequence implements pBlock's loop: it repeatedly dispatches a
// single block construct until the container's reference level is
// violated or input is exhausted.
func (bp *blockParser) parseSequence(env blockEnv) []*Block {
	var blocks []*Block
	for {
		bp.c.scSC()
		if bp.c.eof() {
			return blocks
		}
		alevel := bp.c.indentLevel()
		if alevel < env.refLevel {
			return blocks
		}
		var b *Block
		if alevel < ilevel(env.refLevel) {
			b = bp.dispatchShallow(env)
		} else {
			bp.logConstruct("indented_code_block", env)
			b = bp.parseIndentedCodeBlock(env)
		}
		if b != nil {
			blocks = append(blocks, b)
		}
	}
}

// dispatchShallow tries, in spec order, the block constructs that can
// start at a column shallower than ilevel(refLevel): thematic break, ATX
// heading, fenced code, unordered list, ordered list, blockquote,
// reference definition (which yields no block), and finally paragraph,
// which always succeeds.
func (bp *blockParser) dispatchShallow(env blockEnv) *Block {
	if b, ok := bp.tryThematicBreak(); ok {
		bp.logConstruct("thematic_break", env)
		return b
	}
	if b, ok := bp.tryATXHeading(); ok {
		bp.logConstruct("atx_heading", env)
		return b
	}
	if b, ok := bp.tryFencedCodeBlock(env); ok {
		bp.logConstruct("fenced_code_block", env)
		return b
	}
	if b, ok := bp.tryUnorderedList(env); ok {
		bp.logConstruct("unordered_list", env)
		return b
	}
	if b, ok := bp.tryOrderedList(env); ok {
		bp.logConstruct("ordered_list", env)
		return b
	}
	if b, ok := bp.tryBlockquote(env); ok {
		bp.logConstruct("blockquote", env)
		return b
	}
	if bp.tryReferenceDefinition(env) {
		bp.logConstruct("reference_definition", env)
		return nil
	}
	bp.logConstruct("paragraph", env)
	return bp.parseParagraph(env)
}

// logConstruct traces which block construct was recognized at the
// current reference level. A nop logger (the default) makes this free.
func (bp *blockParser) logConstruct(construct string, env blockEnv) {
	bp.log.Debug("recognized block construct",
		zap.String("construct", construct),
		zap.Int("refLevel", env.refLevel),
	)
}

// looksLikeBlockStart reports whether the current line, at an
// indentation within [env.refLevel, ilevel(env.refLevel)), opens some
// block construct other than a paragraph. It performs lookahead only: no
// input is consumed. This implements the rule that certain block types
// (thematic breaks, ATX headings, fenced code, blockquotes, lists) can
// interrupt an open paragraph without a blank line separating them,
// while a plain text line cannot. A line starting with "[" (a possible
// reference definition) also counts as a block start, whether or not it
// is a complete definition.
func (bp *blockParser) looksLikeBlockStart(env blockEnv) bool {
	alevel := bp.c.indentLevel()
	if alevel < env.refLevel || alevel >= ilevel(env.refLevel) {
		return false
	}
	s := bp.c.save()
	defer bp.c.restore(s)
	bp.c.scSCPrime()
	if isThematicBreakLine(bp.c.peekLineBytes()) {
		return true
	}
	if b, _ := bp.peekByte(0); b == '#' {
		n := 0
		for {
			if b2, ok := bp.peekByte(n); ok && b2 == '#' {
				n++
				continue
			}
			break
		}
		if n >= 1 && n <= 6 {
			if b2, ok := bp.peekByte(n); !ok || isSpaceOrTab(b2) || isEOLByte(b2) {
				return true
			}
		}
	}
	if b, ok := bp.peekByte(0); ok && (b == '`' || b == '~') {
		if n, _ := countFenceRun(bp.c, b); n >= 3 {
			return true
		}
	}
	if b, ok := bp.peekByte(0); ok && (b == '-' || b == '+' || b == '*') {
		if b2, ok2 := bp.peekByte(1); !ok2 || isSpaceOrTab(b2) || isEOLByte(b2) {
			return true
		}
	}
	if n := digitRunLength(bp.c); n > 0 {
		if b, ok := bp.peekByte(n); ok && (b == '.' || b == ')') {
			if b2, ok2 := bp.peekByte(n + 1); !ok2 || isSpaceOrTab(b2) || isEOLByte(b2) {
				return true
			}
		}
	}
	if b, ok := bp.peekByte(0); ok && b == '>' {
		return true
	}
	if b, ok := bp.peekByte(0); ok && b == '[' {
		return true
	}
	return false
}

func (bp *blockParser) peekByte(n int) (byte, bool) {
	return bp.c.peekAt(n)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func digitRunLength(c *cursor) int {
	n := 0
	for {
		b, ok := c.peekAt(n)
		if !ok || !isDigit(b) {
			return n
		}
		n++
		if n > 10 {
			return n
		}
	}
}

// --- thematic break ---

func isThematicBreakLine(line []byte) bool {
	var marker byte
	count := 0
	for _, b := range line {
		if b == ' ' || b == '\t' {
			continue
		}
		if b != '*' && b != '-' && b != '_' {
			return false
		}
		if marker == 0 {
			marker = b
		} else if b != marker {
			return false
		}
		count++
	}
	return count >= 3
}

func (bp *blockParser) tryThematicBreak() (*Block, bool) {
	s := bp.c.save()
	bp.c.scSCPrime()
	pos := bp.c.position()
	line := bp.c.peekLineBytes()
	if !isThematicBreakLine(line) {
		bp.c.restore(s)
		return nil, false
	}
	bp.c.consumeLine()
	return &Block{kind: ThematicBreakKind, pos: pos}, true
}

// --- ATX heading ---

func (bp *blockParser) tryATXHeading() (*Block, bool) {
	s := bp.c.save()
	bp.c.scSCPrime()
	pos := bp.c.position()
	level := 0
	for {
		b, ok := bp.c.peek()
		if !ok || b != '#' {
			break
		}
		bp.c.advance()
		level++
	}
	if level < 1 || level > 6 {
		bp.c.restore(s)
		return nil, false
	}
	if b, ok := bp.c.peek(); ok && !isSpaceOrTab(b) && !isEOLByte(b) {
		bp.c.restore(s)
		return nil, false
	}
	bp.c.scSCPrime()
	rawLine := string(bp.c.peekLineBytes())
	content, contentPos := extractATXContent(rawLine, bp.c)
	bp.c.consumeLine()
	return &Block{kind: headingKind(level), pos: pos, isp: ispSpan(contentPos, content)}, true
}

// extractATXContent strips an optional closing sequence ("space+ #+")
// from the raw remainder of an ATX heading line and reports the trimmed
// content plus the source position of its first byte.
func extractATXContent(raw string, afterHashes *cursor) (string, SourcePos) {
	trimmed := strings.TrimRight(raw, " \t")
	hashEnd := len(trimmed)
	hashStart := hashEnd
	for hashStart > 0 && trimmed[hashStart-1] == '#' {
		hashStart--
	}
	if hashStart < hashEnd && hashStart > 0 && (trimmed[hashStart-1] == ' ' || trimmed[hashStart-1] == '\t') {
		trimmed = strings.TrimRight(trimmed[:hashStart], " \t")
	}
	leading := 0
	for leading < len(trimmed) && (trimmed[leading] == ' ' || trimmed[leading] == '\t') {
		leading++
	}
	return trimmed[leading:], afterHashes.positionAfter(leading)
}

// --- fenced code block ---

// countFenceRun reports the number of consecutive occurrences of marker
// at the cursor's current position, without consuming input.
func countFenceRun(c *cursor, marker byte) (int, bool) {
	n := 0
	for {
		b, ok := c.peekAt(n)
		if !ok || b != marker {
			break
		}
		n++
	}
	return n, n >= 3
}

func (bp *blockParser) tryFencedCodeBlock(env blockEnv) (*Block, bool) {
	s := bp.c.save()
	bp.c.scSCPrime()
	pos := bp.c.position()
	indent := bp.c.col - 1
	marker, ok := bp.c.peek()
	if !ok || (marker != '`' && marker != '~') {
		bp.c.restore(s)
		return nil, false
	}
	openCount, enough := countFenceRun(bp.c, marker)
	if !enough {
		bp.c.restore(s)
		return nil, false
	}
	bp.c.advanceN(openCount)
	bp.c.scSCPrime()
	infoRaw := string(bp.c.peekLineBytes())
	if marker == '`' && strings.ContainsRune(infoRaw, '`') {
		bp.c.restore(s)
		return nil, false
	}
	info := strings.TrimSpace(infoRaw)
	bp.c.consumeLine()

	var lines []string
	for {
		if bp.c.eof() {
			break
		}
		lineStart := bp.c.save()
		lineAlevel := bp.c.indentLevel()
		closeCandidate := bp.c.save()
		bp.c.scSCPrime()
		closeRun, closeEnough := countFenceRun(bp.c, marker)
		if lineAlevel < ilevel(env.refLevel) && closeEnough && closeRun >= openCount {
			bp.c.advanceN(closeRun)
			bp.c.scSCPrime()
			if b, ok := bp.c.peek(); !ok || isEOLByte(b) {
				bp.c.eol()
				goto closed
			}
		}
		bp.c.restore(closeCandidate)
		bp.c.restore(lineStart)
		lines = append(lines, stripIndent(bp.c.consumeLine(), indent))
		continue
	}
closed:
	var body string
	if len(lines) > 0 {
		body = strings.Join(lines, "\n") + "\n"
	}
	var infoPtr *string
	if info != "" {
		infoPtr = &info
	}
	return &Block{kind: CodeBlockKind, pos: pos, info: infoPtr, body: body}, true
}

// stripIndent removes up to n columns of leading whitespace from line,
// counting a tab as advancing to the next multiple of 4.
func stripIndent(line []byte, n int) string {
	col := 0
	i := 0
	for i < len(line) && col < n {
		switch line[i] {
		case ' ':
			col++
			i++
		case '\t':
			col = ((col / tabStopSize) + 1) * tabStopSize
			i++
		default:
			return string(line[i:])
		}
	}
	return string(line[i:])
}

// --- indented code block ---

func (bp *blockParser) parseIndentedCodeBlock(env blockEnv) *Block {
	pos := bp.c.position()
	firstAlevel := bp.c.indentLevel()
	var lines []string
	first := true
	for {
		if bp.c.eof() {
			break
		}
		alevel := bp.c.indentLevel()
		if alevel < ilevel(env.refLevel) && !isBlankRemainder(bp.c) {
			break
		}
		raw := bp.c.consumeLine()
		stripped := stripIndent(raw, env.refLevel+3)
		if first {
			stripped = strings.Repeat(" ", max0(firstAlevel-1-(env.refLevel+3))) + stripped
			first = false
		}
		lines = append(lines, stripped)
		bp.c.scSCPrime()
		if bp.c.eof() {
			break
		}
		if isEOLByte(mustPeek(bp.c)) {
			continue
		}
		if bp.c.indentLevel() < ilevel(env.refLevel) {
			break
		}
	}
	body := ""
	if len(lines) > 0 {
		body = strings.Join(lines, "\n") + "\n"
	}
	return &Block{kind: CodeBlockKind, pos: pos, body: body}
}

func isBlankRemainder(c *cursor) bool {
	s := c.save()
	defer c.restore(s)
	c.scSCPrime()
	b, ok := c.peek()
	return !ok || isEOLByte(b)
}

func mustPeek(c *cursor) byte {
	b, _ := c.peek()
	return b
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// --- blockquote ---

func (bp *blockParser) tryBlockquote(env blockEnv) (*Block, bool) {
	s := bp.c.save()
	bp.c.scSCPrime()
	pos := bp.c.position()
	if b, ok := bp.c.peek(); !ok || b != '>' {
		bp.c.restore(s)
		return nil, false
	}
	bp.c.advance()
	bp.c.scSC1Prime() // a following space doesn't count toward inner indentation
	newRefLevel := bp.c.col
	bp.c.restore(s)
	bp.c.scSCPrime()
	bp.c.advance()
	bp.c.scSC1Prime()

	inner := bp.parseBlockquoteBody(env, newRefLevel)
	return &Block{kind: BlockquoteKind, pos: pos, blockChildren: inner}, true
}

// parseBlockquoteBody parses the lines belonging to one blockquote:
// consecutive lines that either continue with another ">" marker at
// env.refLevel, or lazily continue a paragraph.
func (bp *blockParser) parseBlockquoteBody(env blockEnv, markerRefLevel int) []*Block {
	quoteLines := bp.collectQuoteLines(env, markerRefLevel)
	sub := newCursor(bp.c.filename, []byte(strings.Join(quoteLines, "\n")+"\n"), bp.quoteStartLine, 1)
	innerParser := &blockParser{c: sub, log: bp.log}
	blocks := innerParser.parseSequence(env.sub(false, 1))
	bp.pendingDiagnostics = append(bp.pendingDiagnostics, innerParser.pendingDiagnostics...)
	return blocks
}

// collectQuoteLines reassembles a blockquote's body lines (marker
// stripped) and records the start line in bp.quoteStartLine so the
// nested parse reports accurate positions.
func (bp *blockParser) collectQuoteLines(env blockEnv, markerRefLevel int) []string {
	var lines []string
	bp.quoteStartLine = bp.c.line
	// The rest of the opening line, after its ">" marker, always belongs
	// to the quote, even when it opens another block construct.
	lines = append(lines, string(bp.c.consumeLine()))
	for {
		if bp.c.eof() {
			break
		}
		s := bp.c.save()
		bp.c.scSCPrime()
		if b, ok := bp.c.peek(); ok && b == '>' {
			bp.c.advance()
			bp.c.scSC1Prime()
			lines = append(lines, string(bp.c.consumeLine()))
			continue
		}
		bp.c.restore(s)
		if isBlankRemainder(bp.c) {
			break
		}
		alevel := bp.c.indentLevel()
		if alevel < env.refLevel {
			break
		}
		if bp.looksLikeBlockStart(env) {
			break
		}
		lines = append(lines, string(bp.c.consumeLine()))
	}
	return lines
}

// --- reference definition ---

func (bp *blockParser) tryReferenceDefinition(env blockEnv) bool {
	s := bp.c.save()
	bp.c.scSCPrime()
	labelPos := bp.c.position()
	if b, ok := bp.c.peek(); !ok || b != '[' {
		bp.c.restore(s)
		return false
	}
	bp.c.advance()
	var label strings.Builder
	for {
		b, ok := bp.c.peek()
		if !ok || b == ']' {
			break
		}
		if b == '\n' {
			bp.c.restore(s)
			return false
		}
		label.WriteByte(b)
		bp.c.advance()
	}
	if b, ok := bp.c.peek(); !ok || b != ']' {
		bp.c.restore(s)
		return false
	}
	bp.c.advance()
	if b, ok := bp.c.peek(); !ok || b != ':' {
		bp.c.restore(s)
		return false
	}
	bp.c.advance()
	bp.c.scSCPrime()
	bp.c.eol()
	bp.c.scSCPrime()

	uri := bp.readBareOrBracketedURI()
	if uri == "" {
		bp.c.restore(s)
		return false
	}
	afterURI := bp.c.save()
	bp.c.scSCPrime()
	title, hadTitle := bp.readOptionalTitle()
	if !hadTitle {
		bp.c.restore(afterURI)
	}
	if !isBlankRemainder(bp.c) {
		bp.c.restore(s)
		return false
	}
	bp.c.consumeLine()

	var titlePtr *string
	if hadTitle {
		titlePtr = &title
	}
	if !env.defs.define(label.String(), LinkDefinition{URI: uri, Title: titlePtr}) {
		bp.diagnoseDuplicateDefinition(labelPos, label.String())
	}
	return true
}

func (bp *blockParser) readBareOrBracketedURI() string {
	if b, ok := bp.c.peek(); ok && b == '<' {
		bp.c.advance()
		var sb strings.Builder
		for {
			b, ok := bp.c.peek()
			if !ok || b == '>' || isEOLByte(b) {
				break
			}
			sb.WriteByte(b)
			bp.c.advance()
		}
		if b, ok := bp.c.peek(); ok && b == '>' {
			bp.c.advance()
		}
		return sb.String()
	}
	var sb strings.Builder
	for {
		b, ok := bp.c.peek()
		if !ok || b == ' ' || b == '\t' || isEOLByte(b) {
			break
		}
		sb.WriteByte(b)
		bp.c.advance()
	}
	return sb.String()
}

func (bp *blockParser) readOptionalTitle() (string, bool) {
	b, ok := bp.c.peek()
	if !ok {
		return "", false
	}
	var closer byte
	switch b {
	case '"':
		closer = '"'
	case '\'':
		closer = '\''
	case '(':
		closer = ')'
	default:
		return "", false
	}
	bp.c.advance()
	var sb strings.Builder
	sawEOL := false
	for {
		b, ok := bp.c.peek()
		if !ok {
			return "", false
		}
		if b == closer {
			bp.c.advance()
			return sb.String(), true
		}
		if isEOLByte(b) {
			if sawEOL {
				return "", false
			}
			sawEOL = true
			bp.c.eol()
			sb.WriteByte(' ')
			continue
		}
		sb.WriteByte(b)
		bp.c.advance()
	}
}

func (bp *blockParser) diagnoseDuplicateDefinition(pos SourcePos, label string) {
	bp.pendingDiagnostics = append(bp.pendingDiagnostics, customDiag(pos, DuplicateReferenceDefinition{Label: label}))
}

// --- paragraph ---

func (bp *blockParser) parseParagraph(env blockEnv) *Block {
	pos := bp.c.position()
	var lines []string
	broken := false
	blank := false
	for {
		lines = append(lines, strings.TrimRight(string(bp.c.consumeLine()), " \t"))
		if bp.c.eof() {
			break
		}
		if isBlankRemainder(bp.c) {
			blank = true
			break
		}
		if bp.looksLikeBlockStart(env) {
			broken = true
			break
		}
		bp.c.scSCPrime()
	}
	text := strings.Join(lines, "\n")
	kind := ParagraphKind
	if env.allowNaked && !blank && !broken {
		kind = NakedKind
	}
	return &Block{kind: kind, pos: pos, isp: ispSpan(pos, text)}
}

// --- unordered / ordered lists ---

type listBullet struct {
	marker   byte // '-', '+', '*', or the ordered separator '.'/')'
	char     byte // bullet character for unordered; separator for ordered
	index    uint32
	minLevel int
	ordered  bool
}

func (bp *blockParser) tryUnorderedList(env blockEnv) (*Block, bool) {
	s := bp.c.save()
	bp.c.scSCPrime()
	pos := bp.c.position()
	b, ok := bp.c.peek()
	if !ok || (b != '-' && b != '+' && b != '*') {
		bp.c.restore(s)
		return nil, false
	}
	if nb, ok2 := bp.c.peekAt(1); ok2 && !isSpaceOrTab(nb) && !isEOLByte(nb) {
		bp.c.restore(s)
		return nil, false
	}
	if isThematicBreakLine(bp.c.peekLineBytes()) {
		bp.c.restore(s)
		return nil, false
	}
	bp.c.restore(s)

	items, _ := bp.collectListItems(env, false, b)
	return &Block{kind: UnorderedListKind, pos: pos, items: items}, true
}

func (bp *blockParser) tryOrderedList(env blockEnv) (*Block, bool) {
	s := bp.c.save()
	bp.c.scSCPrime()
	pos := bp.c.position()
	n := digitRunLength(bp.c)
	if n == 0 || n > 10 {
		bp.c.restore(s)
		return nil, false
	}
	sep, ok := bp.c.peekAt(n)
	if !ok || (sep != '.' && sep != ')') {
		bp.c.restore(s)
		return nil, false
	}
	if nb, ok2 := bp.c.peekAt(n + 1); ok2 && !isSpaceOrTab(nb) && !isEOLByte(nb) {
		bp.c.restore(s)
		return nil, false
	}
	bp.c.restore(s)

	items, startIx := bp.collectListItems(env, true, sep)
	block := &Block{kind: OrderedListKind, pos: pos, items: items, start: startIx}
	return block, true
}

// collectListItems parses one whole list (every item sharing the first
// item's bullet character/separator), applying the index-validation and
// tight/loose normalization rules. startIx is the first item's index
// (meaningless when ordered is false).
func (bp *blockParser) collectListItems(env blockEnv, ordered bool, marker byte) (items [][]*Block, startIx uint32) {
	var attached [][]Diagnostic
	first := true
	var firstCol int

	for {
		s := bp.c.save()
		bp.c.scSCPrime()
		col := bp.c.col
		if first {
			firstCol = col
		} else if col < firstCol {
			bp.c.restore(s)
			break
		}

		var ix uint32
		var matched bool
		if ordered {
			n := digitRunLength(bp.c)
			if n == 0 {
				bp.c.restore(s)
				break
			}
			digits := string(bp.c.rest()[:n])
			v, _ := strconv.ParseUint(digits, 10, 64)
			if v > 1<<32-1 {
				v = 1<<32 - 1
			}
			ix = uint32(v)
			bp.c.advanceN(n)
			sep, ok := bp.c.peek()
			if !ok || sep != marker {
				bp.c.restore(s)
				break
			}
			bp.c.advance()
			matched = true
		} else {
			b, ok := bp.c.peek()
			if !ok || b != marker {
				bp.c.restore(s)
				break
			}
			bp.c.advance()
			matched = true
		}
		if !matched {
			bp.c.restore(s)
			break
		}
		if b, ok := bp.c.peek(); !ok || (!isSpaceOrTab(b) && !isEOLByte(b)) {
			bp.c.restore(s)
			break
		}
		bp.c.scSC1Prime()
		indLevel := bp.c.col
		minLevel := indLevel
		if indLevel-col > 4 || (!bp.c.eof() && isEOLByte(mustPeek(bp.c))) {
			minLevel = col + len(markerText(ordered, ix, marker)) + 1
		}

		var itemDiags []Diagnostic
		if first {
			startIx = ix
			if ordered && ix > 999_999_999 {
				itemDiags = append(itemDiags, customDiag(bp.c.position(), ListStartIndexTooBig{Index: ix}))
			}
		} else if ordered {
			expected := startIx + uint32(len(items))
			if ix != expected {
				itemDiags = append(itemDiags, customDiag(bp.c.position(), ListIndexOutOfOrder{Actual: ix, Expected: expected}))
			}
		}
		first = false

		innerRefLevel := slevel(minLevel, indLevel)
		itemBlocks := bp.parseItemBody(env, innerRefLevel)
		items = append(items, itemBlocks)
		attached = append(attached, itemDiags)
	}

	normalizeListTightness(items)
	for i, diags := range attached {
		if len(diags) > 0 && len(items[i]) > 0 {
			items[i][0].attached = append(items[i][0].attached, diags...)
		}
	}
	return items, startIx
}

func markerText(ordered bool, ix uint32, marker byte) string {
	if !ordered {
		return string(marker)
	}
	return strconv.FormatUint(uint64(ix), 10) + string(marker)
}

// parseItemBody parses one list item's inner blocks by reassembling the
// lines that belong to it (the rest of the opening line plus every
// subsequent line indented to at least innerRefLevel, or blank) into a
// nested blockParser.
func (bp *blockParser) parseItemBody(env blockEnv, innerRefLevel int) []*Block {
	var lines []string
	startLine, startCol := bp.c.line, bp.c.col
	lines = append(lines, string(bp.c.consumeLine()))
	for {
		if bp.c.eof() {
			break
		}
		if isBlankRemainder(bp.c) {
			s := bp.c.save()
			lines = append(lines, "")
			bp.c.consumeLine()
			if bp.c.eof() || isBlankRemainder(bp.c) {
				bp.c.restore(s)
				lines = lines[:len(lines)-1]
				break
			}
			if bp.c.indentLevel() < innerRefLevel {
				bp.c.restore(s)
				lines = lines[:len(lines)-1]
				break
			}
			continue
		}
		if bp.c.indentLevel() < innerRefLevel {
			break
		}
		lines = append(lines, string(bp.c.consumeLine()))
	}
	joined := strings.Join(lines, "\n")
	if joined == "" {
		return []*Block{emptyNaked(bp.c.position())}
	}
	sub := newCursor(bp.c.filename, []byte(joined+"\n"), startLine, startCol)
	innerParser := &blockParser{c: sub, log: bp.log}
	blocks := innerParser.parseSequence(env.sub(true, innerRefLevel))
	bp.pendingDiagnostics = append(bp.pendingDiagnostics, innerParser.pendingDiagnostics...)
	if len(blocks) == 0 {
		return []*Block{emptyNaked(bp.c.position())}
	}
	return blocks
}

func emptyNaked(pos SourcePos) *Block {
	return &Block{kind: NakedKind, pos: pos, isp: ispSpan(pos, "")}
}

// normalizeListTightness decides whether a list is tight or loose: if
// any block after the first block of any item is a paragraph (or
// heading/blockquote/code), every Naked block in the list becomes
// Paragraph; otherwise, only the last block of the last item demotes
// from Paragraph to Naked.
func normalizeListTightness(items [][]*Block) {
	hasLooseEvidence := false
	for _, item := range items {
		for i, b := range item {
			if i == 0 {
				continue
			}
			switch b.kind {
			case ParagraphKind, Heading1Kind, Heading2Kind, Heading3Kind, Heading4Kind, Heading5Kind, Heading6Kind, BlockquoteKind, CodeBlockKind:
				hasLooseEvidence = true
			}
		}
	}
	if hasLooseEvidence {
		for _, item := range items {
			for _, b := range item {
				if b.kind == NakedKind {
					b.kind = ParagraphKind
				}
			}
		}
		return
	}
	if len(items) == 0 {
		return
	}
	last := items[len(items)-1]
	if len(last) == 0 {
		return
	}
	tail := last[len(last)-1]
	if tail.kind == ParagraphKind {
		tail.kind = NakedKind
	}
}
