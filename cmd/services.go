package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/xvierd/kicks-cli/internal/adapters/kickapi"
	"github.com/xvierd/kicks-cli/internal/adapters/notification"
	"github.com/xvierd/kicks-cli/internal/adapters/storage"
	"github.com/xvierd/kicks-cli/internal/config"
	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/logging"
	"github.com/xvierd/kicks-cli/internal/ports"
	"github.com/xvierd/kicks-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	storage  ports.Storage
	client   *kickapi.Client
	kicks    *services.KickService
	notifier *notification.Notifier
	logger   *log.Logger
	logFile  io.Closer
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(cmd *cobra.Command) error {
	// Load configuration
	cfg, loadErr := config.Load()
	if loadErr != nil {
		// If config loading fails, use defaults with env overrides
		var envErr error
		if cfg, envErr = config.DefaultsWithEnv(); envErr != nil {
			return envErr
		}
	}
	app.config = cfg
	if apiURLFlag != "" {
		app.config.API.BaseURL = apiURLFlag
	}

	if err := initializeLogger(cmd); err != nil {
		return err
	}
	if loadErr != nil {
		app.logger.Warn("config not loaded, using defaults", "err", loadErr)
	}

	// Initialize notifier
	app.notifier = notification.New(&app.config.Notifications)

	// Determine database path
	path := dbPath
	if path == "" {
		path = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	var err error
	app.storage, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize services
	app.client = kickapi.New(app.config.API.BaseURL, app.config.Timeout(), kickapi.WithLogger(app.logger))
	app.kicks = services.NewKickService(app.storage, app.client, app.notifier, app.config.Timeout(), app.logger)

	app.logger.Debug("services ready", "db", path, "api", app.config.API.BaseURL)
	return nil
}

// initializeLogger logs to a file while the dashboard owns the terminal and
// to stderr otherwise. The dashboard is the root command's own action.
func initializeLogger(cmd *cobra.Command) error {
	if !cmd.HasParent() {
		f, err := logging.OpenFile(config.GetLogPath(app.config))
		if err != nil {
			return err
		}
		app.logFile = f
		app.logger = logging.New(app.config.Log, f)
		return nil
	}
	app.logger = logging.New(app.config.Log, cmd.ErrOrStderr())
	return nil
}

// cleanupServices closes all resources. It is safe to call more than once.
func cleanupServices() error {
	var errs []error
	if app.storage != nil {
		errs = append(errs, app.storage.Close())
		app.storage = nil
	}
	if app.logFile != nil {
		errs = append(errs, app.logFile.Close())
		app.logFile = nil
	}
	return errors.Join(errs...)
}

// resolveIdentity picks the user: --user flag, then KICKS_USER_ID or the
// config file.
func resolveIdentity() (domain.UserIdentity, error) {
	raw := userFlag
	if raw == "" {
		raw = app.config.User.ID
	}
	id, err := domain.ParseUserIdentity(raw)
	if err != nil {
		return "", fmt.Errorf("user %q: %w", raw, err)
	}
	return id, nil
}

// requireIdentity is resolveIdentity with a hint for the missing case.
func requireIdentity() (domain.UserIdentity, error) {
	id, err := resolveIdentity()
	if errors.Is(err, domain.ErrIdentityUnavailable) {
		return "", fmt.Errorf("no user selected: pass --user <id> or run kicks config set-user <id>")
	}
	return id, err
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
