/*
 * pdp8i - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"pdp8i/internal/bin"
	"pdp8i/internal/config"
	"pdp8i/internal/console"
	"pdp8i/internal/logger"
	"pdp8i/internal/machine"

	_ "pdp8i/internal/devices/clock"
	_ "pdp8i/internal/devices/teleprinter"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "pdp8i.cfg", "Configuration file")
	optBin := getopt.StringLong("bin", 'b', "", "BIN format paper tape to load before starting")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("cannot create log file", "path", *optLogFile, "err", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	debug := false
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("pdp8i started")

	var cfg *config.Config
	if *optConfig != "" {
		if _, err := os.Stat(*optConfig); err == nil {
			cfg, err = config.Load(*optConfig)
			if err != nil {
				Logger.Error("loading configuration file", "path", *optConfig, "err", err)
				os.Exit(1)
			}
		} else {
			Logger.Warn("configuration file not found, starting with defaults", "path", *optConfig)
		}
	}

	fields := 1
	if cfg != nil {
		fields = cfg.Fields
	}
	m := machine.New(fields)
	m.InstallRIMLoader()
	m.InstallHelpLoader()

	if cfg != nil {
		if err := cfg.Apply(m.CPU); err != nil {
			Logger.Error("applying configuration file", "path", *optConfig, "err", err)
			os.Exit(1)
		}
	}

	if *optBin != "" {
		f, err := os.Open(*optBin)
		if err != nil {
			Logger.Error("opening BIN tape", "path", *optBin, "err", err)
			os.Exit(1)
		}
		err = bin.Load(f, m.Mem, 0)
		f.Close()
		if err != nil {
			Logger.Error("loading BIN tape", "path", *optBin, "err", err)
			os.Exit(1)
		}
	}

	m.Run()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		Logger.Info("shutting down on signal")
		m.Stop()
		os.Exit(0)
	}()

	console.Run(m)

	Logger.Info("shutting down")
	m.Stop()
}
