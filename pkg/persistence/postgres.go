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
	"hash/fnv"

	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type postgresProvider struct{}

func (p *postgresProvider) DBName() string {
	return TypePostgres
}

func (p *postgresProvider) Open(dsn string) gorm.Dialector {
	return gormPostgres.Open(dsn)
}

func (p *postgresProvider) GetMigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return postgres.WithInstance(db, &postgres.Config{})
}

func (p *postgresProvider) TakeNamedLock(ctx context.Context, dbTX DBTX, lockName string) error {
	return AdvisoryLock(ctx, dbTX, lockName)
}

// AdvisoryLock takes a transaction scoped advisory lock, released on commit or rollback.
// Replicas signing with the same key queue here for the nonce counter.
func AdvisoryLock(ctx context.Context, dbTX DBTX, lockName string) error {
	return dbTX.DB().WithContext(ctx).Exec(`SELECT pg_advisory_xact_lock( ? )`, lockKey(lockName)).Error
}

func lockKey(lockName string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(lockName))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}
