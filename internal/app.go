// Package internal provides the App struct that wires all components of
// primo together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/valter-silva-au/primo/internal/cli"
	"github.com/valter-silva-au/primo/internal/core"
	"github.com/valter-silva-au/primo/internal/observability"
	"github.com/valter-silva-au/primo/internal/storage"
	"github.com/valter-silva-au/primo/pkg/models"
)

// App holds all service dependencies for one primo run.
type App struct {
	BasePath  string
	SessionID string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	// Storage layer
	Store storage.TaskFile

	// Core services
	Session *core.Session
	// LoadErr is the non-fatal error from loading the task file, set by Open.
	LoadErr error
	opened  bool

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires every component. basePath is the directory that
// holds .primoconfig and against which relative storage and event log paths
// are resolved. The task file is not read until Open.
func NewApp(basePath string) (*App, error) {
	app := &App{
		BasePath:  basePath,
		SessionID: uuid.NewString(),
	}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Storage layer ---
	app.Store, err = storage.NewTaskStore(cfg.Storage.Format, resolvePath(basePath, cfg.Storage.File))
	if err != nil {
		return nil, fmt.Errorf("creating task store: %w", err)
	}

	// --- Observability ---
	if cfg.Events.Enabled {
		app.EventLog, err = observability.NewJSONLEventLog(resolvePath(basePath, cfg.Events.File))
		if err != nil {
			// Non-fatal: run without an event log.
			app.EventLog = nil
		}
	}
	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
		evtAdapter = &eventLogAdapter{log: app.EventLog, session: app.SessionID}
	}

	// --- Core services ---
	app.Session = core.NewSession(app.Store, evtAdapter)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.AppConfig = app.Config
	cli.Session = app.Session
	cli.LoadErr = nil
	cli.OpenSession = app.Open
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Open loads the task file into the session and logs session.started. Later
// calls return the first result without reading the file again.
func (a *App) Open() error {
	if a.opened {
		return a.LoadErr
	}
	a.opened = true
	a.LoadErr = a.Session.Load()
	cli.LoadErr = a.LoadErr
	return a.LoadErr
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// configFileNames are the names that mark a primo base directory.
var configFileNames = []string{core.ConfigFileName, core.ConfigFileName + ".yaml", core.ConfigFileName + ".yml"}

// ResolveBasePath determines the base directory. It checks the PRIMO_HOME env
// var, then walks up from the working directory looking for a .primoconfig,
// then falls back to the working directory.
func ResolveBasePath() string {
	if home := os.Getenv("PRIMO_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := cwd; ; {
		for _, name := range configFileNames {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

func resolvePath(basePath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, path)
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger and stamps
// every event with the session id.
type eventLogAdapter struct {
	log     observability.EventLog
	session string
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   levelFor(eventType),
		Type:    eventType,
		Session: a.session,
		Message: eventType,
		Data:    data,
	})
}

func levelFor(eventType string) string {
	switch eventType {
	case core.EventCommandFailed:
		return observability.LevelWarn
	case core.EventStoreLoadError, core.EventStoreSaveError:
		return observability.LevelError
	default:
		return observability.LevelInfo
	}
}
