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

package chainclient

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/gcerrors"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

// hardhatArtifact covers both the full Hardhat output and a bare ABI array
type hardhatArtifact struct {
	ContractName string  `json:"contractName"`
	ABI          abi.ABI `json:"abi"`
}

func parseArtifact(ctx context.Context, name, path string, data []byte) (abi.ABI, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var a abi.ABI
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, gcerrors.WrapConfiguration(ctx, err, msgs.MsgConfigArtifactInvalid, path, name)
		}
		return a, nil
	}
	var artifact hardhatArtifact
	if err := json.Unmarshal(data, &artifact); err != nil || len(artifact.ABI) == 0 {
		return nil, gcerrors.Configuration(ctx, msgs.MsgConfigArtifactInvalid, path, name)
	}
	return artifact.ABI, nil
}

// loadArtifact tries the explicit path first, then walks dir for a file whose base name matches pattern
func loadArtifact(ctx context.Context, name, dir string, explicit string, pattern string) (abi.ABI, string, error) {
	searched := []string{}
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		searched = append(searched, path)
		if data, err := os.ReadFile(path); err == nil {
			a, err := parseArtifact(ctx, name, path, data)
			return a, path, err
		}
		log.L(ctx).Warnf("Artifact for %s not at %s, searching %s for %s", name, path, dir, pattern)
	}

	searched = append(searched, filepath.Join(dir, "**", pattern))
	var found string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		// Hardhat writes <Name>.dbg.json next to each artifact
		if strings.HasSuffix(d.Name(), ".dbg.json") {
			return nil
		}
		if match, _ := filepath.Match(pattern, d.Name()); match {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if found == "" {
		return nil, "", gcerrors.Configuration(ctx, msgs.MsgConfigArtifactMissing, name, strings.Join(searched, ","))
	}
	data, err := os.ReadFile(found)
	if err != nil {
		return nil, "", gcerrors.WrapConfiguration(ctx, err, msgs.MsgConfigArtifactInvalid, found, name)
	}
	a, err := parseArtifact(ctx, name, found, data)
	return a, found, err
}
