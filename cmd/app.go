// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"lensfolio/cli/internal/auth"
	"lensfolio/cli/internal/config"
	"lensfolio/cli/internal/cookies"
	"lensfolio/cli/internal/detect"
	"lensfolio/cli/internal/hints"
	"lensfolio/cli/internal/logging"
	"lensfolio/cli/internal/sessionstore"
	"lensfolio/cli/internal/xdg"
)

// app is the wiring shared by every subcommand: config, logger, session
// store and the state machine on top of them.
type app struct {
	cfg     config.Config
	log     *pterm.Logger
	store   sessionstore.Store
	closer  io.Closer
	machine *auth.Machine
}

// loadApp reads config, applies the global flags and builds the machine
// with surface. The caller must Close the app.
func loadApp(surface auth.Surface) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if storeBackend != "" {
		cfg.Store.Backend = storeBackend
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogLevel, os.Stderr, !interactive)
	return newApp(cfg, log, surface)
}

func newApp(cfg config.Config, log *pterm.Logger, surface auth.Surface) (*app, error) {
	opts, err := storeOptions(cfg)
	if err != nil {
		return nil, err
	}
	store, closer, err := sessionstore.Open(opts)
	if err != nil {
		return nil, err
	}
	log.Debug("session store opened", log.Args("backend", sessionstore.Describe(store)))

	m, err := auth.NewMachine(auth.Options{
		Store:      store,
		Classifier: newClassifier(cfg),
		Surface:    surface,
		LoginURL:   cfg.Platform.LoginURL,
		Logger:     log,
	})
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return &app{cfg: cfg, log: log, store: store, closer: closer, machine: m}, nil
}

// start rehydrates the machine. A broken store is reported and the run
// continues unauthenticated.
func (a *app) start(ctx context.Context) {
	if err := a.machine.Start(ctx); err != nil {
		pterm.Warning.Println(startWarning(err))
		hints.Print(err)
	}
}

func startWarning(err error) string {
	if sessionstore.IsStorageError(err) {
		return "Stored session could not be loaded; continuing logged out."
	}
	return "Session rehydrate failed; continuing logged out."
}

func (a *app) Close() error {
	return errors.Join(a.machine.Close(), a.closer.Close())
}

func newClassifier(cfg config.Config) *detect.Classifier {
	ex := cookies.NewExtractor(cfg.Platform.Domain)
	ex.SessionCookie = cfg.Platform.SessionCookie
	ex.UserCookie = cfg.Platform.UserCookie
	return detect.NewClassifier(detect.Rules{
		ChallengePaths: cfg.Detection.ChallengePaths,
		LoginPaths:     cfg.Detection.LoginPaths,
		BodyMarkers:    cfg.Detection.BodyMarkers,
	}, ex)
}

func storeOptions(cfg config.Config) (sessionstore.Options, error) {
	o := sessionstore.Options{
		Backend:       cfg.Store.Backend,
		FilePath:      cfg.Store.FilePath,
		SealKey:       cfg.Store.SealKey,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
		RedisKey:      cfg.Store.RedisKey,
	}
	if o.Backend == sessionstore.BackendKeyring && cfg.Store.KeyringPassword != "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return o, err
		}
		o.Keychain.FileDir = filepath.Join(dir, "keyring")
		o.Keychain.FilePassword = cfg.Store.KeyringPassword
	}
	if o.Backend == sessionstore.BackendFile && o.FilePath == "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return o, err
		}
		o.FilePath = filepath.Join(dir, "session.json")
	}
	return o, nil
}
