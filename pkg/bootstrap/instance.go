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

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/pkg/errors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/componentmgr"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/gcconf"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

var componentManagerFactory = componentmgr.NewComponentManager

type instance struct {
	configFile string

	ctx       context.Context
	cancelCtx context.CancelFunc
	signals   chan os.Signal
	stopped   atomic.Bool
	done      chan struct{}
}

type RC int

const (
	RC_OK   RC = 0
	RC_FAIL RC = 1
)

func newInstance(configFile string) *instance {
	i := &instance{
		configFile: configFile,
		signals:    make(chan os.Signal),
		done:       make(chan struct{}),
	}
	i.ctx, i.cancelCtx = context.WithCancel(log.WithLogField(context.Background(), "pid", strconv.Itoa(os.Getpid())))
	return i
}

// loadConfig reads the YAML file, then applies the GANADO_ secret path overrides
func loadConfig(ctx context.Context, configFile string) (*gcconf.GanadoConfig, error) {
	absPath, err := filepath.Abs(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving config file %q", configFile)
	}
	var conf gcconf.GanadoConfig
	if err := gcconf.ReadAndParseYAMLFile(ctx, absPath, &conf); err != nil {
		return nil, err
	}
	gcconf.ApplyEnvOverrides(&conf, nil)
	return &conf, nil
}

func (i *instance) signalHandler() {
	signal.Notify(i.signals, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-i.signals
	if sig != nil {
		log.L(i.ctx).Infof("Stopping due to signal %s", sig)
		i.stop()
	}
}

func (i *instance) run() RC {
	defer func() {
		close(i.done)
		running.Store(nil)
	}()
	go i.signalHandler()

	conf, err := loadConfig(i.ctx, i.configFile)
	if err != nil {
		log.L(i.ctx).Errorf("%+v", err)
		return RC_FAIL
	}

	cm := componentManagerFactory(i.ctx, conf)
	// From here the component manager must be stopped, including after a failed start
	defer cm.Stop()

	err = cm.Init()
	if err == nil {
		err = cm.Start()
	}
	if err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}

	<-i.ctx.Done()

	return RC_OK
}

func (i *instance) stop() {
	if i.stopped.CompareAndSwap(false, true) {
		signal.Stop(i.signals)
		i.cancelCtx()
		close(i.signals)
		<-i.done
	}
}
