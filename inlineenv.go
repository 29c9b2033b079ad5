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

// lastCharClass classifies the most recently emitted inline character,
// for the emphasis/strong/strike/sub/sup flanking-delimiter rule.
type lastCharClass uint8

const (
	lastNothing lastCharClass = iota
	lastSpace
	lastOther
)

// inlineEnv is the scoped environment threaded through the inline pass.
type inlineEnv struct {
	allowEmpty  bool
	allowLinks  bool
	allowImages bool
	lastChar    lastCharClass
}

func newInlineEnv() inlineEnv {
	return inlineEnv{allowEmpty: true, allowLinks: true, allowImages: true, lastChar: lastNothing}
}

// withAllowEmpty returns a copy of e with allowEmpty replaced, the way
// emphasis/strong/strike/sub/sup content, link text, and image alt text
// scopes do.
func (e inlineEnv) withAllowEmpty(allow bool) inlineEnv {
	e.allowEmpty = allow
	return e
}

func (e inlineEnv) withAllowLinks(allow bool) inlineEnv {
	e.allowLinks = allow
	return e
}

func (e inlineEnv) withAllowImages(allow bool) inlineEnv {
	e.allowImages = allow
	return e
}

func (e inlineEnv) withLastChar(c lastCharClass) inlineEnv {
	e.lastChar = c
	return e
}
