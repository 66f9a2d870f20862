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

	"gorm.io/gorm"
)

type DBTX interface {
	DB() *gorm.DB
	// FullTransaction is false for NOTX, where the hooks below are unavailable
	FullTransaction() bool
	// AddPreCommit runs before commit. An error rolls back the transaction.
	AddPreCommit(func(ctx context.Context, dbTX DBTX) error)
	// AddPostCommit runs only after a successful commit
	AddPostCommit(func(ctx context.Context))
	// AddFinalizer runs after commit or rollback, including on panic. err is nil on commit.
	AddFinalizer(func(ctx context.Context, err error))
	// AddPostRollback can observe and replace the error returned from a rolled back transaction
	AddPostRollback(func(ctx context.Context, err error) error)
}

type transaction struct {
	txCtx         context.Context
	gdb           *gorm.DB
	preCommits    []func(ctx context.Context, dbTX DBTX) error
	postCommits   []func(ctx context.Context)
	finalizers    []func(ctx context.Context, err error)
	postRollbacks []func(ctx context.Context, err error) error
}

func (t *transaction) DB() *gorm.DB {
	return t.gdb
}

func (t *transaction) FullTransaction() bool {
	return true
}

func (t *transaction) AddPreCommit(fn func(ctx context.Context, dbTX DBTX) error) {
	t.preCommits = append(t.preCommits, fn)
}

func (t *transaction) AddPostCommit(fn func(ctx context.Context)) {
	t.postCommits = append(t.postCommits, fn)
}

func (t *transaction) AddFinalizer(fn func(ctx context.Context, err error)) {
	t.finalizers = append(t.finalizers, fn)
}

func (t *transaction) AddPostRollback(fn func(ctx context.Context, err error) error) {
	t.postRollbacks = append(t.postRollbacks, fn)
}

type noTransaction struct {
	gdb *gorm.DB
}

func (t *noTransaction) DB() *gorm.DB {
	return t.gdb
}

func (t *noTransaction) FullTransaction() bool {
	return false
}

func (t *noTransaction) AddPreCommit(fn func(ctx context.Context, dbTX DBTX) error) {
	panic("pre-commit registered outside of a transaction")
}

func (t *noTransaction) AddPostCommit(fn func(ctx context.Context)) {
	panic("post-commit registered outside of a transaction")
}

func (t *noTransaction) AddFinalizer(fn func(ctx context.Context, err error)) {
	panic("finalizer registered outside of a transaction")
}

func (t *noTransaction) AddPostRollback(fn func(ctx context.Context, err error) error) {
	panic("post-rollback registered outside of a transaction")
}
