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
	"database/sql"
	"strings"

	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	gormSQLite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteTXOptions make every transaction BEGIN IMMEDIATE. The nonce transaction then holds the
// database write lock from its first statement, and a second process waits instead of failing.
const sqliteTXOptions = "_txlock=immediate&_busy_timeout=5000"

type sqliteProvider struct{}

func (p *sqliteProvider) DBName() string {
	return TypeSQLite
}

func (p *sqliteProvider) Open(uri string) gorm.Dialector {
	return gormSQLite.Open(sqliteDSN(uri))
}

func sqliteDSN(uri string) string {
	switch {
	case strings.Contains(uri, "_txlock="):
		return uri
	case strings.Contains(uri, "?"):
		return uri + "&" + sqliteTXOptions
	default:
		return uri + "?" + sqliteTXOptions
	}
}

func (p *sqliteProvider) GetMigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratesqlite3.WithInstance(db, &migratesqlite3.Config{})
}

// TakeNamedLock has nothing to do: the IMMEDIATE transaction already excludes every other writer
func (p *sqliteProvider) TakeNamedLock(ctx context.Context, dbTX DBTX, lockName string) error {
	return nil
}
