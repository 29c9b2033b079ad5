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

// Package panicrecover converts a panic from inside parser internals
// into an error, so that an internal bug surfaces as a diagnostic rather
// than crashing the caller's process.
package panicrecover

import (
	"fmt"

	"github.com/pkg/errors"
)

// Guard runs fn and converts any panic it raises into a returned error
// annotated with a stack trace. A normal return (error or nil) from fn
// passes through unchanged.
func Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrap(e, "recovered from panic")
			} else {
				err = errors.Wrap(fmt.Errorf("%v", r), "recovered from panic")
			}
		}
	}()
	return fn()
}
