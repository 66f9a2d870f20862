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
	"os"
	"path"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
)

func TestLogFieldTruncated(t *testing.T) {
	hash := "0x4f1c2e6a1b9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f"
	ctx := WithLogField(context.Background(), "tx", hash)
	assert.Equal(t, hash[0:61]+"...", L(ctx).Data["tx"])
}

func TestLogFields(t *testing.T) {
	ctx := WithLogFields(context.Background(), map[string]string{"op": "MINT_ANIMAL", "animal": "A-1"})
	assert.Equal(t, "MINT_ANIMAL", L(ctx).Data["op"])
	assert.Equal(t, "A-1", L(ctx).Data["animal"])
	assert.Equal(t, rootLogger, L(context.Background()))
}

func TestLevels(t *testing.T) {
	defer SetLevel("info")
	for in, out := range map[string]string{
		"eRrOr":   "error",
		"WARNING": "warn",
		"warn":    "warn",
		"DEBUG":   "debug",
		"trace":   "trace",
		"bogus":   "info",
	} {
		SetLevel(in)
		assert.Equal(t, out, GetLevel(), in)
	}
	SetLevel("trace")
	assert.True(t, IsTraceEnabled())
	assert.True(t, IsDebugEnabled())
	assert.Equal(t, logrus.TraceLevel, logrus.GetLevel())
}

func TestFormats(t *testing.T) {
	defer InitConfig(&gcconf.LogConfig{})
	for _, conf := range []*gcconf.LogConfig{
		{Color: confutil.P("never"), UTC: confutil.P(true)},
		{Color: confutil.P("always")},
		{Output: confutil.P("stdout")},
		{Output: confutil.P("stderr"), Format: confutil.P("detailed")},
		{Format: confutil.P("json")},
	} {
		InitConfig(conf)
		L(context.Background()).Infof("format check")
	}
}

func TestFileOutput(t *testing.T) {
	defer InitConfig(&gcconf.LogConfig{Output: confutil.P("stderr")})
	logFile := path.Join(t.TempDir(), "ganadochain.log")
	InitConfig(&gcconf.LogConfig{
		Output: confutil.P("file"),
		File: gcconf.LogFileConfig{
			Filename: confutil.P(logFile),
		},
	})
	L(context.Background()).Infof("to file")

	fi, err := os.Stat(logFile)
	require.NoError(t, err)
	assert.False(t, fi.IsDir())
}

func TestNodeFieldTagsRootLogger(t *testing.T) {
	defer InitConfig(&gcconf.LogConfig{})
	InitConfig(&gcconf.LogConfig{Node: confutil.P("ranch-7")})
	assert.Equal(t, "ranch-7", L(context.Background()).Data["node"])

	InitConfig(&gcconf.LogConfig{})
	assert.NotContains(t, L(context.Background()).Data, "node")
}

func TestJSONFieldNames(t *testing.T) {
	fm := jsonFieldMap(map[string]string{"msg": "message", "level": "", "caller": "ignored"})
	assert.Equal(t, logrus.FieldMap{
		logrus.FieldKeyTime: "@timestamp",
		logrus.FieldKeyMsg:  "message",
	}, fm)
}
