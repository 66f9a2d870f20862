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

package gcconf

import "github.com/vices1967-beep/GanadoChain-sub000/pkg/confutil"

// DBConfig selects the store for transaction records, the outbox and the herd registry.
// sqlite serves a single instance. Replicas sharing one signer need postgres for its advisory locks.
type DBConfig struct {
	Type        string `json:"type"` // sqlite (default) or postgres
	SQLDBConfig `json:",inline"`
}

// DSNParamLocation points at a file whose trimmed content is substituted into the DSN
type DSNParamLocation struct {
	File string `json:"file,omitempty"`
}

type SQLDBConfig struct {
	DSN             string                      `json:"dsn"` // can have {{.ParamName}} for replacement from params
	DSNParams       map[string]DSNParamLocation `json:"dsnParams"`
	MaxOpenConns    *int                        `json:"maxOpenConns"`
	MaxIdleConns    *int                        `json:"maxIdleConns"`
	ConnMaxIdleTime *string                     `json:"connMaxIdleTime"`
	ConnMaxLifetime *string                     `json:"connMaxLifetime"`
	AutoMigrate     *bool                       `json:"autoMigrate"`
	MigrationsDir   string                      `json:"migrationsDir"`
	DebugQueries    bool                        `json:"debugQueries"`
	StatementCache  *bool                       `json:"statementCache"`
}

// sqlite allows one writer, so a second connection would only queue behind the nonce lock
var SQLiteDefaults = &SQLDBConfig{
	MaxOpenConns:    confutil.P(1),
	MaxIdleConns:    confutil.P(1),
	ConnMaxIdleTime: confutil.P("0"),
	ConnMaxLifetime: confutil.P("0"),
	StatementCache:  confutil.P(false),
}

var PostgresDefaults = &SQLDBConfig{
	MaxOpenConns:    confutil.P(20),
	MaxIdleConns:    confutil.P(5),
	ConnMaxIdleTime: confutil.P("60s"),
	ConnMaxLifetime: confutil.P("0"),
	StatementCache:  confutil.P(true),
}
