// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
)

const maxFieldLen = 61

var (
	rootLogger = logrus.NewEntry(logrus.StandardLogger())

	// L accesses the current logger from the context
	L = loggerFromContext

	initDone atomic.Bool
)

type ctxLogKey struct{}

// EnsureInit applies the default config if InitConfig has never run, which is the case in unit tests
func EnsureInit() {
	if !initDone.Load() {
		InitConfig(&gcconf.LogConfig{})
	}
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	EnsureInit()
	return context.WithValue(ctx, ctxLogKey{}, logger)
}

// WithLogField tags every subsequent log line on the context, truncating long values
func WithLogField(ctx context.Context, key, value string) context.Context {
	return WithLogger(ctx, loggerFromContext(ctx).WithField(key, truncate(value)))
}

// WithLogFields is WithLogField for several keys at once
func WithLogFields(ctx context.Context, fields map[string]string) context.Context {
	lf := make(logrus.Fields, len(fields))
	for k, v := range fields {
		lf[k] = truncate(v)
	}
	return WithLogger(ctx, loggerFromContext(ctx).WithFields(lf))
}

func truncate(value string) string {
	if len(value) > maxFieldLen {
		return value[0:maxFieldLen] + "..."
	}
	return value
}

func loggerFromContext(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(ctxLogKey{})
	if logger == nil {
		return rootLogger
	}
	return logger.(*logrus.Entry)
}

func IsDebugEnabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

func IsTraceEnabled() bool {
	return logrus.IsLevelEnabled(logrus.TraceLevel)
}

var levelNames = map[logrus.Level]string{
	logrus.ErrorLevel: "error",
	logrus.WarnLevel:  "warn",
	logrus.InfoLevel:  "info",
	logrus.DebugLevel: "debug",
	logrus.TraceLevel: "trace",
}

func GetLevel() string {
	if name, ok := levelNames[logrus.GetLevel()]; ok {
		return name
	}
	return "info"
}

func SetLevel(level string) {
	l := logrus.InfoLevel
	switch strings.ToLower(level) {
	case "error":
		l = logrus.ErrorLevel
	case "warn", "warning":
		l = logrus.WarnLevel
	case "debug":
		l = logrus.DebugLevel
	case "trace":
		l = logrus.TraceLevel
	}
	logrus.SetLevel(l)
}
