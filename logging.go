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

import "go.uber.org/zap"

// Option configures a [Parse] call.
type Option func(*parseConfig)

type parseConfig struct {
	log *zap.Logger
}

// WithLogger directs internal parse tracing to log. Parse is silent
// (using zap.NewNop) unless this option is given.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *parseConfig) {
		cfg.log = log
	}
}

func newParseConfig(opts []Option) *parseConfig {
	cfg := &parseConfig{log: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
