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

// Package bootstrap is the process entrypoint: it loads configuration, runs the component
// manager until signalled, and runs schema migrations on demand.
package bootstrap

import (
	"context"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/persistence"
)

var running atomic.Pointer[*instance]

// Run blocks until Stop is called or a termination signal arrives
func Run(configFile string) RC {
	i := newInstance(configFile)
	if !running.CompareAndSwap(nil, &i) {
		panic("double started")
	}
	return i.run()
}

func Stop() {
	inst := running.Load()
	if inst != nil {
		(*inst).stop()
	}
}

// Migrate applies every pending up migration for the configured database, then exits
func Migrate(configFile string) RC {
	ctx := log.WithLogField(context.Background(), "pid", strconv.Itoa(os.Getpid()))
	conf, err := loadConfig(ctx, configFile)
	if err != nil {
		log.L(ctx).Errorf("%+v", err)
		return RC_FAIL
	}
	log.InitConfig(&conf.Log)

	p, err := persistence.NewPersistence(ctx, &conf.DB)
	if err == nil {
		defer p.Close()
		err = persistence.Migrate(ctx, p)
	}
	if err != nil {
		log.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgComponentMigrateError).Error())
		return RC_FAIL
	}
	log.L(ctx).Infof("Migrations complete")
	return RC_OK
}
