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

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"gorm.io/gorm"
)

// Persistence is the single DB handle shared by the signer, the pool, the outbox and the reconciler.
// A nonce, its transaction record and the outbox claim are always written in one Transaction.
type Persistence interface {
	DB() *gorm.DB
	Close()

	// Transaction wraps a gorm transaction with pre-commit, post-commit, finalizer and post-rollback hooks
	Transaction(ctx context.Context, fn func(ctx context.Context, dbTX DBTX) error) (err error)
	// NOTX runs against the pool directly. Registering a pre-commit on it is an error.
	NOTX() DBTX

	// TakeNamedLock serializes writers across processes for the duration of dbTX
	TakeNamedLock(ctx context.Context, dbTX DBTX, lockName string) error
}

const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

func NewPersistence(ctx context.Context, conf *gcconf.DBConfig) (Persistence, error) {
	switch conf.Type {
	case "", TypeSQLite:
		return NewSQLProvider(ctx, &sqliteProvider{}, &conf.SQLDBConfig, gcconf.SQLiteDefaults)
	case TypePostgres:
		return NewSQLProvider(ctx, &postgresProvider{}, &conf.SQLDBConfig, gcconf.PostgresDefaults)
	default:
		return nil, i18n.NewError(ctx, msgs.MsgPersistenceInvalidType, conf.Type)
	}
}
