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

// Package cli holds the ganadochain cobra commands
package cli

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/bootstrap"
)

// replaced in tests
var (
	runFn     = bootstrap.Run
	migrateFn = bootstrap.Migrate
)

type RootOptions struct {
	ConfigFile string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ganadochain",
		Short: "GanadoChain livestock transaction service",
		Long: `Submits livestock operations (animal NFT mints, role grants, token mints, health and
batch status updates) to the chain, tracks them to a receipt, and keeps the database in step.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to the YAML configuration file")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewVersionCommand())
	return cmd
}

func (o *RootOptions) requireConfig(ctx context.Context) error {
	if o.ConfigFile == "" {
		return i18n.NewError(ctx, msgs.MsgConfigCLIConfigFileMissing)
	}
	return nil
}

func rcError(command string, rc bootstrap.RC) error {
	if rc == bootstrap.RC_OK {
		return nil
	}
	return errors.Errorf("%s failed (rc=%d)", command, rc)
}

func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the service until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireConfig(cmd.Context()); err != nil {
				return err
			}
			return rcError("run", runFn(opts.ConfigFile))
		},
	}
}

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireConfig(cmd.Context()); err != nil {
				return err
			}
			return rcError("migrate", migrateFn(opts.ConfigFile))
		},
	}
}
