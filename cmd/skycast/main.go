// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package main implements the skycast weather daemon.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rayfon/skycast/internal/config"
	"github.com/rayfon/skycast/internal/logger"
	"github.com/rayfon/skycast/internal/presenter"
	"github.com/rayfon/skycast/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM,
		syscall.SIGABRT, os.Interrupt)
	defer cancel()

	log := logger.New(slog.LevelError)

	confRead := false
	confPath := flag.String("config", "", "path to the config file")
	oneshot := flag.Bool("oneshot", false, "print the current weather once and exit")
	city := flag.String("city", "", "city to fetch in oneshot mode (defaults to the configured city)")
	flag.Parse()

	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
		confRead = true
	}

	if path, file := findConfigFile(); !confRead && (path != "" && file != "") {
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}

	log = logger.New(conf.LogLevel)
	serv, err := service.New(conf, log)
	if err != nil {
		log.Error("failed to initialize skycast service", logger.Err(err))
		os.Exit(1)
	}

	if *oneshot {
		os.Exit(runOneshot(ctx, serv, conf, *city, log))
	}

	refreshChan := make(chan os.Signal, 1)
	signal.Notify(refreshChan, syscall.SIGUSR1)
	go serv.HandleRefreshSignal(ctx, refreshChan)

	log.Info("starting skycast service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error("failed to run skycast service", logger.Err(err))
	}
	log.Info("shutting down skycast service")
}

// runOneshot fetches a single city and renders it to stdout.
func runOneshot(ctx context.Context, serv *service.Service, conf *config.Config,
	city string, log *logger.Logger,
) int {
	if city == "" {
		city = conf.DefaultCity
	}

	store := serv.Store()
	if err := store.LoadByCity(ctx, city); err != nil {
		log.Error("failed to fetch weather data", logger.Err(err), slog.String("city", city))
		return 1
	}

	p := presenter.New(os.Stdout)
	if err := p.RenderSnapshot(store.Snapshot()); err != nil {
		log.Error("failed to render weather data", logger.Err(err))
		return 1
	}
	if err := p.RenderWindow(store.NextWindow()); err != nil {
		log.Error("failed to render forecast window", logger.Err(err))
		return 1
	}
	return 0
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "skycast", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
