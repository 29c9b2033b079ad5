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

// blockEnv is the scoped environment threaded through the block pass.
// Values are copied on every call into a nested container (list item,
// blockquote) and the parent's copy is left untouched; defs is a pointer
// and is therefore shared and mutated document-wide, since reference
// definitions are visible to the whole document regardless of where they
// appear.
type blockEnv struct {
	refLevel   int
	allowNaked bool
	defs       *referenceTable
	tabWidth   int
}

func newBlockEnv(defs *referenceTable) blockEnv {
	return blockEnv{
		refLevel:   1,
		allowNaked: false,
		defs:       defs,
		tabWidth:   tabStopSize,
	}
}

// sub returns the environment to use for content nested one level deeper,
// with allowNaked and refLevel replaced. defs is carried over unchanged
// since it is never scoped.
func (e blockEnv) sub(allowNaked bool, refLevel int) blockEnv {
	e.allowNaked = allowNaked
	e.refLevel = refLevel
	return e
}
