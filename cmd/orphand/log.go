// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
	"github.com/miz1choobi/txorphanage/txorphanage"
)

// logWriter implements an io.Writer that outputs to both standard output
// and the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

var (
	backendLog = btclog.NewBackend(logWriter{})

	// logRotator is the rotating file output. It must be initialized via
	// initLogRotator before backendLog's loggers are used.
	logRotator *rotator.Rotator

	orphLog = backendLog.Logger("ORPH")
	mainLog = backendLog.Logger("MAIN")
)

// subsystemLoggers maps each subsystem identifier to its logger, for
// runtime log-level adjustment.
var subsystemLoggers = map[string]btclog.Logger{
	"ORPH": orphLog,
	"MAIN": mainLog,
}

func init() {
	txorphanage.UseLogger(orphLog)
}

// initLogRotator initializes the log rotator to write logs to logFile and
// create roll files in the same directory. It must be called before the
// package-global loggers are used.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	logRotator = r
	return nil
}

// setLogLevels sets the log level for all subsystem loggers in
// subsystemLoggers.
func setLogLevels(logLevel string) {
	level, _ := btclog.LevelFromString(logLevel)
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
