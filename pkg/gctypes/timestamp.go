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

package gctypes

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
)

// Timestamp is unix nanoseconds. Persisted as an integer so the index sorts
// correctly on both sqlite and postgres, and serialized as RFC3339Nano UTC.
type Timestamp int64

func TimestampNow() Timestamp {
	return Timestamp(time.Now().UnixNano())
}

func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixNano())
}

func (ts Timestamp) Time() time.Time {
	return time.Unix(0, int64(ts))
}

func (ts Timestamp) String() string {
	return ts.Time().UTC().Format(time.RFC3339Nano)
}

func (ts Timestamp) Add(d time.Duration) Timestamp {
	return ts + Timestamp(d)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts == 0 {
		return json.Marshal(nil)
	}
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil || s == nil {
		*ts = 0
		return err
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return i18n.NewError(context.Background(), msgs.MsgTypesTimeParseFail, *s)
	}
	*ts = TimestampFromTime(t)
	return nil
}

func (ts *Timestamp) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*ts = 0
	case int64:
		*ts = Timestamp(src)
	case string:
		i, err := strconv.ParseInt(src, 10, 64)
		if err != nil {
			return i18n.NewError(context.Background(), msgs.MsgTypesTimeParseFail, src)
		}
		*ts = Timestamp(i)
	case time.Time:
		*ts = TimestampFromTime(src)
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesScanFail, src, ts)
	}
	return nil
}

func (ts Timestamp) Value() (driver.Value, error) {
	return int64(ts), nil
}
