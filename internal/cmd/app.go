package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/config"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/credstore"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/log"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/querycache"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/session"
)

// defaultCredentialsKey encrypts the on-disk store when the user has not
// set their own key. It protects against casual file reads, not against an
// attacker with the binary.
const defaultCredentialsKey = "naxum-local"

// app wires the configured client stack for one command invocation.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	creds   *credstore.Store
	client  *api.Client
	session *session.Manager
	cache   *querycache.Cache
}

// newApp builds the client stack from flags, config file, and environment,
// then restores any persisted session.
func newApp(cmd *cobra.Command) (*app, error) {
	home, _ := cmd.Flags().GetString("home")

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	logConfig := log.DefaultConfig()
	logConfig.Level = log.ParseLevel(cfg.LogLevel)
	logger := log.New(logConfig)
	log.SetDefaultLogger(logger)

	if err := os.MkdirAll(cfg.Home, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigRead, "failed to create config directory", err)
	}

	key := os.Getenv("NAXUM_CREDENTIALS_KEY")
	if key == "" {
		key = defaultCredentialsKey
	}

	creds, err := credstore.New(cfg.CredentialsPath(), key)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIURL, creds, logger)
	client.HTTPClient.Timeout = cfg.RequestTimeout

	a := &app{
		cfg:     cfg,
		logger:  logger,
		creds:   creds,
		client:  client,
		session: session.NewManager(client, creds, logger),
		cache:   querycache.New(cfg.CacheTTL, logger),
	}

	if err := a.session.Restore(); err != nil {
		// A broken credential record is recoverable by logging in again.
		logger.WithError(err).Warn("failed to restore stored session")
	}

	return a, nil
}

// requireAuth fails fast when no session is established.
func (a *app) requireAuth() error {
	if !a.session.Snapshot().IsAuthenticated() {
		return errors.NewNotAuthenticatedError()
	}
	return nil
}
