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

package mockpersistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DATA-DOG/go-sqlmock"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SQLMockProvider speaks the postgres dialect to go-sqlmock, so tests can provoke DB errors
// and see the advisory lock statements a postgres deployment would issue.
type SQLMockProvider struct {
	DB   *sql.DB
	Mock sqlmock.Sqlmock
	P    persistence.Persistence
}

func NewSQLMockProvider() (p *SQLMockProvider, err error) {
	mp := &SQLMockProvider{}
	if mp.DB, mp.Mock, err = sqlmock.New(); err != nil {
		return nil, err
	}
	// one connection and no prepared statements, so expectations are met in order
	defaults := *gcconf.PostgresDefaults
	defaults.MaxOpenConns = confutil.P(1)
	defaults.StatementCache = confutil.P(false)
	mp.P, err = persistence.NewSQLProvider(context.Background(), mp, &gcconf.SQLDBConfig{DSN: "mocked"}, &defaults)
	return mp, err
}

func (p *SQLMockProvider) DBName() string {
	return "sqlmock"
}

func (p *SQLMockProvider) Open(uri string) gorm.Dialector {
	return gormPostgres.New(gormPostgres.Config{Conn: p.DB})
}

func (p *SQLMockProvider) GetMigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return nil, fmt.Errorf("not supported")
}

func (p *SQLMockProvider) TakeNamedLock(ctx context.Context, dbTX persistence.DBTX, lockName string) error {
	return persistence.AdvisoryLock(ctx, dbTX, lockName)
}
