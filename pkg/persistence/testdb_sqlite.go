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

package persistence

import (
	"context"

	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
)

// NewUnitTestPersistence returns a migrated in-memory sqlite DB for package tests.
// Callers must sit two directories below the module root.
func NewUnitTestPersistence(ctx context.Context) (Persistence, func(), error) {
	p, err := NewPersistence(ctx, &gcconf.DBConfig{
		Type: TypeSQLite,
		SQLDBConfig: gcconf.SQLDBConfig{
			DSN:           ":memory:",
			AutoMigrate:   confutil.P(true),
			MigrationsDir: "../../db/migrations/sqlite",
		},
	})
	if err != nil {
		return nil, func() {}, err
	}
	return p, p.Close, nil
}
