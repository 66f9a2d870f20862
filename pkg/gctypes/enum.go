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
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
)

type EnumStringOptions interface {
	~string
	Options() []string
}

type EnumStringDefault interface {
	Default() string
}

// Enum stores one of a fixed set of strings, matched case-insensitively
type Enum[O EnumStringOptions] string

func (p Enum[O]) V() O {
	return O(p)
}

func (p Enum[O]) Validate() (O, error) {
	var opts O
	if p == "" {
		if d, ok := any(opts).(EnumStringDefault); ok {
			return O(d.Default()), nil
		}
	}
	for _, o := range opts.Options() {
		if strings.EqualFold(o, string(p)) {
			return O(o), nil
		}
	}
	return "", i18n.NewError(context.Background(), msgs.MsgTypesEnumValueInvalid, strings.Join(opts.Options(), ","))
}

func (p Enum[O]) Value() (driver.Value, error) {
	v, err := p.Validate()
	return string(v), err
}

func (p *Enum[O]) Scan(src interface{}) error {
	switch s := src.(type) {
	case string:
		*p = Enum[O](s)
	case []byte:
		*p = Enum[O](s)
	case nil:
		*p = ""
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesScanFail, src, p)
	}
	v, err := p.Validate()
	if err != nil {
		return err
	}
	*p = Enum[O](v)
	return nil
}
