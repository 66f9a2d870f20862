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
	"os"
	"runtime/debug"
	"strings"
	"text/template"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"gorm.io/gorm"

	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type provider struct {
	p    SQLDBProvider
	gdb  *gorm.DB
	db   *sql.DB
	conf *gcconf.SQLDBConfig
}

type SQLDBProvider interface {
	DBName() string
	Open(uri string) gorm.Dialector
	GetMigrationDriver(*sql.DB) (migratedb.Driver, error)
	TakeNamedLock(ctx context.Context, dbTX DBTX, lockName string) error
}

func NewSQLProvider(ctx context.Context, p SQLDBProvider, conf *gcconf.SQLDBConfig, defs *gcconf.SQLDBConfig) (_ Persistence, err error) {
	if conf.DSN == "" {
		return nil, i18n.NewError(ctx, msgs.MsgPersistenceMissingDSN)
	}
	dsn := conf.DSN
	if len(conf.DSNParams) > 0 {
		if dsn, err = templatedDSN(ctx, conf); err != nil {
			return nil, err
		}
	}

	gp := &provider{p: p, conf: conf}
	gp.gdb, err = gorm.Open(p.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            confutil.Bool(conf.StatementCache, *defs.StatementCache),
	})
	if err == nil {
		gp.db, err = gp.gdb.DB()
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgPersistenceInitFailed)
	}
	if conf.DebugQueries {
		gp.gdb = gp.gdb.Debug()
	}
	gp.db.SetMaxOpenConns(confutil.IntMin(conf.MaxOpenConns, 1, *defs.MaxOpenConns))
	gp.db.SetMaxIdleConns(confutil.Int(conf.MaxIdleConns, *defs.MaxIdleConns))
	gp.db.SetConnMaxIdleTime(confutil.DurationMin(conf.ConnMaxIdleTime, 0, *defs.ConnMaxIdleTime))
	gp.db.SetConnMaxLifetime(confutil.DurationMin(conf.ConnMaxLifetime, 0, *defs.ConnMaxLifetime))

	if confutil.Bool(conf.AutoMigrate, false) {
		if err = gp.Migrate(ctx); err != nil {
			return nil, err
		}
	}
	return gp, nil
}

// templatedDSN substitutes {{.Param}} values read from files, such as mounted secrets
func templatedDSN(ctx context.Context, conf *gcconf.SQLDBConfig) (string, error) {
	tmpl, err := template.New("dsn").Option("missingkey=error").Parse(conf.DSN)
	if err != nil {
		return "", i18n.WrapError(ctx, err, msgs.MsgPersistenceDSNTemplate)
	}
	values := map[string]any{}
	for name, param := range conf.DSNParams {
		if param.File == "" {
			continue
		}
		b, err := os.ReadFile(param.File)
		if err != nil {
			return "", i18n.WrapError(ctx, err, msgs.MsgPersistenceDSNParamLoad, name)
		}
		values[name] = strings.TrimSpace(string(b))
	}
	out := new(strings.Builder)
	if err := tmpl.Execute(out, values); err != nil {
		return "", i18n.WrapError(ctx, err, msgs.MsgPersistenceDSNTemplate)
	}
	return out.String(), nil
}

type migrator interface {
	Migrate(ctx context.Context) error
}

// Migrate runs all up migrations from the configured directory
func (gp *provider) Migrate(ctx context.Context) error {
	if gp.conf.MigrationsDir == "" {
		return i18n.NewError(ctx, msgs.MsgPersistenceMissingMigrationDir)
	}
	driver, err := gp.p.GetMigrationDriver(gp.db)
	var m *migrate.Migrate
	if err == nil {
		fileURL := "file://" + gp.conf.MigrationsDir
		log.L(ctx).Infof("Running migrations in: %s", fileURL)
		m, err = migrate.NewWithDatabaseInstance(fileURL, gp.p.DBName(), driver)
	}
	if err == nil {
		err = m.Up()
	}
	if err != nil && err != migrate.ErrNoChange {
		return i18n.WrapError(ctx, err, msgs.MsgPersistenceMigrationFailed)
	}
	version, dirty, _ := m.Version()
	log.L(ctx).Infof("Migrations now at: v=%d dirty=%t", version, dirty)
	return nil
}

// Migrate runs migrations on p if it supports them
func Migrate(ctx context.Context, p Persistence) error {
	if m, ok := p.(migrator); ok {
		return m.Migrate(ctx)
	}
	return nil
}

func (gp *provider) DB() *gorm.DB {
	return gp.gdb
}

func (gp *provider) Close() {
	err := gp.db.Close()
	log.L(context.Background()).Infof("DB closed (err=%v)", err)
}

func (gp *provider) TakeNamedLock(ctx context.Context, dbTX DBTX, lockName string) error {
	return gp.p.TakeNamedLock(ctx, dbTX, lockName)
}

func shortID() string {
	return uuid.New().String()[0:8]
}

func (gp *provider) Transaction(parentCtx context.Context, fn func(ctx context.Context, dbTX DBTX) error) (err error) {
	completed := false
	tx := &transaction{txCtx: log.WithLogField(parentCtx, "dbtx", shortID())}
	defer func() {
		if !completed {
			panicData := recover()
			log.L(tx.txCtx).Errorf("Panic within database transaction: %v\n%s", panicData, debug.Stack())
			if err == nil {
				err = i18n.NewError(tx.txCtx, msgs.MsgPersistenceTxPanic, panicData)
			}
		}
		for _, fn := range tx.finalizers {
			fn(tx.txCtx, err)
		}
		if err == nil {
			for _, fn := range tx.postCommits {
				fn(tx.txCtx)
			}
		}
		if !completed {
			panic(err)
		}
	}()

	err = gp.gdb.Transaction(func(gormTX *gorm.DB) error {
		tx.gdb = gormTX.WithContext(tx.txCtx)
		innerErr := fn(tx.txCtx, tx)
		for _, pc := range tx.preCommits {
			if innerErr == nil {
				innerErr = pc(tx.txCtx, tx)
			}
		}
		return innerErr
	})

	if err != nil {
		for _, fn := range tx.postRollbacks {
			err = fn(tx.txCtx, err)
		}
	}

	completed = true
	return err
}

func (gp *provider) NOTX() DBTX {
	return &noTransaction{gdb: gp.gdb}
}
