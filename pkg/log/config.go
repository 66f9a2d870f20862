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
	"io"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

func InitConfig(conf *gcconf.LogConfig) {
	initDone.Store(true) // before SetLevel, which may log
	def := gcconf.LogDefaults

	SetLevel(confutil.StringNotEmpty(conf.Level, *def.Level))

	if out := outputFor(conf); out != nil {
		logrus.SetOutput(out)
	}

	rootLogger = logrus.NewEntry(logrus.StandardLogger())
	if node := confutil.StringOrEmpty(conf.Node, ""); node != "" {
		rootLogger = rootLogger.WithField("node", node)
	}

	formatter := buildFormatter(conf)
	if confutil.Bool(conf.UTC, *def.UTC) {
		formatter = &utcFormatter{f: formatter}
	}
	logrus.SetFormatter(formatter)
}

func outputFor(conf *gcconf.LogConfig) io.Writer {
	def := gcconf.LogDefaults
	switch confutil.StringNotEmpty(conf.Output, *def.Output) {
	case "file":
		filename := confutil.StringNotEmpty(conf.File.Filename, *def.File.Filename)
		rootLogger.Infof("Logs diverted to %s", filename)
		maxSize := confutil.ByteSize(conf.File.MaxSize, 0, *def.File.MaxSize)
		maxAge := confutil.DurationMin(conf.File.MaxAge, 0, *def.File.MaxAge)
		return &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    int(math.Ceil(float64(maxSize) / 1024 / 1024)),          // megabytes, rounded up
			MaxAge:     int(math.Ceil(float64(maxAge) / float64(24*time.Hour))), // days, rounded up
			MaxBackups: confutil.IntMin(conf.File.MaxBackups, 0, *def.File.MaxBackups),
			Compress:   confutil.Bool(conf.File.Compress, *def.File.Compress),
		}
	case "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	default:
		return nil
	}
}

func buildFormatter(conf *gcconf.LogConfig) logrus.Formatter {
	def := gcconf.LogDefaults
	timeFormat := confutil.StringNotEmpty(conf.TimeFormat, *def.TimeFormat)
	color := confutil.StringNotEmpty(conf.Color, *def.Color)
	forceColor, disableColor := color == "always", color == "never"

	switch confutil.StringNotEmpty(conf.Format, *def.Format) {
	case "json":
		return &logrus.JSONFormatter{
			TimestampFormat: timeFormat,
			FieldMap:        jsonFieldMap(conf.JSONFields),
		}
	case "detailed":
		logrus.SetReportCaller(true)
		return &logrus.TextFormatter{
			DisableColors:   disableColor,
			ForceColors:     forceColor,
			TimestampFormat: timeFormat,
			FullTimestamp:   true,
		}
	default:
		return &prefixed.TextFormatter{
			DisableColors:   disableColor,
			ForceColors:     forceColor,
			TimestampFormat: timeFormat,
			ForceFormatting: true,
			FullTimestamp:   true,
		}
	}
}

// jsonFieldMap overlays configured key names on the defaults. Unknown keys are ignored.
func jsonFieldMap(overrides map[string]string) logrus.FieldMap {
	fm := logrus.FieldMap{}
	for _, src := range []map[string]string{gcconf.LogDefaults.JSONFields, overrides} {
		for name, renamed := range src {
			if renamed == "" {
				continue
			}
			switch name {
			case "time":
				fm[logrus.FieldKeyTime] = renamed
			case "level":
				fm[logrus.FieldKeyLevel] = renamed
			case "msg":
				fm[logrus.FieldKeyMsg] = renamed
			case "func":
				fm[logrus.FieldKeyFunc] = renamed
			case "file":
				fm[logrus.FieldKeyFile] = renamed
			}
		}
	}
	return fm
}

type utcFormatter struct {
	f logrus.Formatter
}

func (u *utcFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return u.f.Format(e)
}
