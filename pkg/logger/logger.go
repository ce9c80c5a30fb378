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
// Package logger provides JSON structured logging using zerolog
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//nolint:gochecknoglobals // process-wide logger used before a Logger is injected
var globalLogger zerolog.Logger

//nolint:gochecknoinits // zerolog needs a sane default before Init runs
func init() {
	globalLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
}

// Output resolves the configured output name to a writer.
func Output(config *Config) io.Writer {
	if config != nil && config.Output == "stderr" {
		return os.Stderr
	}

	return os.Stdout
}

// ParseLevel resolves the configured level. Debug wins over Level.
func ParseLevel(config *Config) (zerolog.Level, error) {
	switch {
	case config == nil:
		return zerolog.InfoLevel, nil
	case config.Debug:
		return zerolog.DebugLevel, nil
	case config.Level == "":
		return zerolog.InfoLevel, nil
	default:
		return zerolog.ParseLevel(config.Level)
	}
}

// New builds a zerolog logger writing to w at the configured level.
func New(config *Config, w io.Writer) (zerolog.Logger, error) {
	level, err := ParseLevel(config)
	if err != nil {
		return zerolog.Nop(), err
	}

	if config != nil && config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Init replaces the global logger.
func Init(config *Config) error {
	l, err := New(config, Output(config))
	if err != nil {
		return err
	}

	globalLogger = l
	log.Logger = globalLogger

	return nil
}

func SetLevel(level zerolog.Level) {
	globalLogger = globalLogger.Level(level)
	log.Logger = globalLogger
}

func SetDebug(debug bool) {
	if debug {
		SetLevel(zerolog.DebugLevel)
	} else {
		SetLevel(zerolog.InfoLevel)
	}
}

func GetLogger() zerolog.Logger {
	return globalLogger
}

func Debug() *zerolog.Event {
	return globalLogger.Debug()
}

func Info() *zerolog.Event {
	return globalLogger.Info()
}

func Warn() *zerolog.Event {
	return globalLogger.Warn()
}

func Error() *zerolog.Event {
	return globalLogger.Error()
}

func Fatal() *zerolog.Event {
	return globalLogger.Fatal()
}

func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}
