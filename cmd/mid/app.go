package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/amonks/markitdown/gist"
	"github.com/amonks/markitdown/internal/config"
	"github.com/amonks/markitdown/internal/paths"
	"github.com/amonks/markitdown/session"
	"github.com/amonks/markitdown/tracker"
	"github.com/spf13/cobra"
)

// app holds what every command needs: config, logger and the session store.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	store  *session.Store
}

func loadApp() (*app, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if rootAPIURL != "" {
		cfg.API.URL = strings.TrimSpace(rootAPIURL)
	}

	stateDir, err := paths.DefaultStateDir()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: newLogger(),
		store:  session.NewStore(stateDir),
	}, nil
}

func debugEnabled() bool {
	if rootDebug {
		return true
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("MID_DEBUG")))
	return err == nil && enabled
}

func newLogger() *log.Logger {
	if debugEnabled() {
		return log.New(os.Stderr, "mid: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// client returns an API client for sess. Sign-in and sign-up work with a
// zero session.
func (a *app) client(sess session.Session, confirm tracker.Confirmer) *tracker.Client {
	return tracker.New(tracker.Options{
		BaseURL: a.cfg.API.URL,
		Session: sess,
		Timeout: a.cfg.API.Timeout,
		Confirm: confirm,
		Logger:  a.logger,
	})
}

// signedInClient loads the saved session and returns a client for it.
func (a *app) signedInClient(confirm tracker.Confirmer) (*tracker.Client, error) {
	sess, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	return a.client(sess, confirm), nil
}

func (a *app) gistClient() *gist.Client {
	return gist.NewClient(gist.Options{
		BaseURL: a.cfg.Gist.URL,
		Logger:  a.logger,
	})
}

// withClient loads the app and a signed-in client for a command.
func withClient(cmd *cobra.Command, confirm tracker.Confirmer) (context.Context, *app, *tracker.Client, error) {
	a, err := loadApp()
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := a.signedInClient(confirm)
	if err != nil {
		return nil, nil, nil, err
	}
	return cmd.Context(), a, client, nil
}

func parseID(kind, value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(value), "#"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + kind + " id " + strconv.Quote(value))
	}
	return id, nil
}
