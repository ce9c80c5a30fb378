/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/carverauto/vmsync/pkg/logger"
	"gopkg.in/yaml.v3"
)

var errUnsupportedFormat = errors.New("unsupported config file format")

// FileConfigLoader loads configuration from a local JSON, TOML or YAML file.
// The format is chosen by file extension.
type FileConfigLoader struct {
	logger logger.Logger
}

func NewFileConfigLoader(log logger.Logger) *FileConfigLoader {
	if log == nil {
		log = createBasicLogger()
	}

	return &FileConfigLoader{logger: log}
}

// Load implements ConfigLoader.
func (f *FileConfigLoader) Load(_ context.Context, path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json", "":
		err = json.Unmarshal(data, dst)
	case ".toml":
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(dst)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, dst)
	default:
		return fmt.Errorf("%w: %s", errUnsupportedFormat, ext)
	}

	if err != nil {
		return fmt.Errorf("failed to decode '%s': %w", path, err)
	}

	f.logger.Debug().Str("path", path).Str("format", strings.TrimPrefix(ext, ".")).Msg("Loaded configuration file")

	return nil
}
