package app

import (
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"

	"github.com/shhac/atrium/internal/api"
	"github.com/shhac/atrium/internal/logging"
	"github.com/shhac/atrium/internal/model"
	"github.com/shhac/atrium/internal/page"
)

// App is the main application coordinator, responsible for wiring
// together all components and managing their lifecycle.
type App struct {
	fyneApp   fyne.App
	config    *Config
	logger    *slog.Logger
	closeLog  func() error
	location  *page.Location
	client    *api.Client
	state     *model.DashboardState
	dashboard string
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	dispatcher api.Dispatcher
}

// WithLogger uses logger instead of opening the log file.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDispatcher overrides how listing callbacks reach the UI thread.
func WithDispatcher(d api.Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = d
	}
}

// New creates a new App instance with the given configuration.
// This performs all dependency injection and wiring.
func New(fyneApp fyne.App, cfg *Config, opts ...Option) (*App, error) {
	o := options{dispatcher: fyne.Do}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		fyneApp:  fyneApp,
		config:   cfg,
		logger:   o.logger,
		closeLog: func() error { return nil },
	}

	if a.logger == nil {
		logOpts := logging.Options{Debug: cfg.Debug, Path: cfg.LogFile}
		if cfg.Debug {
			logOpts.Echo = os.Stderr
		}
		logger, err := logging.Open("atrium", logOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger.Logger
		a.closeLog = logger.Close
	}

	a.logger.Info("initializing Atrium",
		slog.Bool("debug", cfg.Debug),
		slog.String("location", cfg.Location),
		slog.String("config_file", cfg.FileUsed),
	)

	loc, err := page.NewLocation(cfg.Location)
	if err != nil {
		_ = a.closeLog()
		return nil, fmt.Errorf("failed to parse location: %w", err)
	}
	a.location = loc

	a.dashboard, err = cfg.DashboardTemplate()
	if err != nil {
		_ = a.closeLog()
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	a.client = api.New(loc,
		api.WithLogger(a.logger),
		api.WithDispatcher(o.dispatcher),
	)
	a.state = model.NewDashboardState()

	a.logger.Info("application initialized successfully")
	return a, nil
}

// Run shows window and runs the Fyne event loop until it closes.
func (a *App) Run(window fyne.Window) {
	a.logger.Info("starting application")
	window.ShowAndRun()
}

// Close releases the log file.
func (a *App) Close() error {
	return a.closeLog()
}

// Config returns the loaded configuration.
func (a *App) Config() *Config {
	return a.config
}

// State returns the application state for use by UI components.
func (a *App) State() *model.DashboardState {
	return a.state
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Location returns the current dashboard location.
func (a *App) Location() *page.Location {
	return a.location
}

// Client returns the listing client bound to Location.
func (a *App) Client() *api.Client {
	return a.client
}

// DashboardTemplate returns the dashboard document template in use.
func (a *App) DashboardTemplate() string {
	return a.dashboard
}

// FyneApp returns the underlying Fyne application instance.
func (a *App) FyneApp() fyne.App {
	return a.fyneApp
}
