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
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatterFenceLine matches a line consisting of "---" and optional
// trailing spaces/tabs, the delimiter for an optional YAML preamble.
var frontMatterFenceLine = regexp.MustCompile(`^---[ \t]*$`)

// parseFrontMatter consumes an optional YAML front matter block at the
// start of c and returns the decoded value (nil if none was present or
// decoding failed) along with a diagnostic to prepend to the block list
// on failure. On success or absence, diag is nil and c is left
// positioned at the first byte after the closing fence (or at its
// original position, if no front matter was present).
func parseFrontMatter(c *cursor) (value any, diag *Diagnostic) {
	startPos := c.position()
	s := c.save()
	first := c.peekLineBytes()
	if !frontMatterFenceLine.Match(first) {
		return nil, nil
	}
	c.advanceN(len(first))
	c.eol()

	var bodyLines []string
	closed := false
	for !c.eof() {
		line := c.peekLineBytes()
		if frontMatterFenceLine.Match(line) {
			c.advanceN(len(line))
			c.eol()
			closed = true
			break
		}
		bodyLines = append(bodyLines, string(line))
		c.advanceN(len(line))
		c.eol()
	}
	if !closed {
		// No closing fence: the leading "---" was not front matter after
		// all, so rewind and let the block pass treat it as a thematic
		// break or paragraph.
		c.restore(s)
		return nil, nil
	}

	body := strings.Join(bodyLines, "\n")
	var decoded any
	if err := yaml.Unmarshal([]byte(body), &decoded); err != nil {
		line, col, ok := locateYAMLError(err)
		pos := startPos
		if ok {
			pos = SourcePos{Filename: startPos.Filename, Line: startPos.Line + line, Column: col}
		}
		d := customDiag(pos, YamlParseError{Message: err.Error()})
		return nil, &d
	}
	return decoded, nil
}

// yamlErrorLine extracts a "line N" fragment that gopkg.in/yaml.v3
// includes in most of its syntax error messages (TypeErrors report one
// line per nested field; the first is used here).
var yamlErrorLine = regexp.MustCompile(`line (\d+)`)

// locateYAMLError pulls a 1-based line number out of a yaml.v3 error
// message. yaml.v3 does not report a column, so col is always 1 when ok
// is true.
func locateYAMLError(err error) (line, col int, ok bool) {
	m := yamlErrorLine.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, 0, false
	}
	n, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0, 0, false
	}
	return n, 1, true
}
