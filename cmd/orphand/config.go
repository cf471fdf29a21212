// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogFilename = "orphand.log"
	defaultLogLevel    = "info"
	defaultMaxOrphans  = 100
	defaultNumPeers    = 8
	defaultNumTxs      = 10000
	minNumTxs          = 1
	maxNumTxs          = 1000000
)

var defaultLogDir = filepath.Join(defaultAppDataDir(), "logs")

// config defines the configuration options for orphand.
//
// See loadConfig for details on the configuration load process.
type config struct {
	LogDir     string `long:"logdir" description:"Directory to log output"`
	LogLevel   string `long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	MaxOrphans int    `long:"maxorphans" description:"Max number of orphan transactions to keep resident"`
	NumPeers   int    `long:"numpeers" description:"Number of simulated peers supplying orphan transactions"`
	NumTxs     int    `long:"numtxs" description:"Number of simulated transactions to run through the orphanage"`
	Seed       int64  `long:"seed" description:"Seed for the simulation's pseudo-random operation sequence"`
}

// defaultAppDataDir mirrors the pack's AppDataDir helpers closely enough
// for a demo binary: a dotdir under the user's home, falling back to the
// working directory if the home directory can't be determined.
func defaultAppDataDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".orphand")
	}
	return "."
}

// loadConfig initializes and parses the config using command line options.
func loadConfig() (*config, []string, error) {
	cfg := config{
		LogDir:     defaultLogDir,
		LogLevel:   defaultLogLevel,
		MaxOrphans: defaultMaxOrphans,
		NumPeers:   defaultNumPeers,
		NumTxs:     defaultNumTxs,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	if cfg.MaxOrphans < 0 {
		str := "%s: maxorphans must not be negative -- parsed [%v]"
		err := fmt.Errorf(str, "loadConfig", cfg.MaxOrphans)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	if cfg.NumTxs < minNumTxs || cfg.NumTxs > maxNumTxs {
		str := "%s: numtxs must be in range [%d-%d] -- parsed [%v]"
		err := fmt.Errorf(str, "loadConfig", minNumTxs, maxNumTxs, cfg.NumTxs)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	if cfg.NumPeers < 1 {
		str := "%s: numpeers must be at least 1 -- parsed [%v]"
		err := fmt.Errorf(str, "loadConfig", cfg.NumPeers)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}
