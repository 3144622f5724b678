// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/infra/config"
	"github.com/runoshun/present-tense/internal/infra/crypto"
	"github.com/runoshun/present-tense/internal/infra/filestore"
	"github.com/runoshun/present-tense/internal/infra/gitstore"
	"github.com/runoshun/present-tense/internal/infra/logging"
	"github.com/runoshun/present-tense/internal/infra/sqlitestore"
	"github.com/runoshun/present-tense/internal/infra/watch"
	"github.com/runoshun/present-tense/internal/store"
	"github.com/runoshun/present-tense/internal/usecase"
)

const logCategory = "app"

// Config holds the resolved application paths.
type Config struct {
	ConfigPath string // Path to config.toml
	DataDir    string // Root of all persisted data
	BlobDir    string // Directory the backend writes to (watched for changes)
	CacheDir   string // Encryption nonce cache
}

// newConfig derives the paths below dataDir.
func newConfig(configPath, dataDir, backend string) Config {
	cfg := Config{
		ConfigPath: configPath,
		DataDir:    dataDir,
		CacheDir:   filepath.Join(dataDir, "cache"),
	}
	switch backend {
	case domain.BackendGit:
		cfg.BlobDir = filepath.Join(dataDir, "repo.git")
	case domain.BackendSQLite:
		cfg.BlobDir = dataDir
	default:
		cfg.BlobDir = filepath.Join(dataDir, "blobs")
	}
	return cfg
}

// Options selects where the container reads configuration and data from.
// Empty fields use the XDG defaults.
type Options struct {
	ConfigPath string
	DataDir    string
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Blobs            domain.BlobStore
	StoreInitializer domain.StoreInitializer
	Syncer           domain.Syncer // nil when the backend has no remote
	Clock            domain.Clock
	IDs              domain.IDGenerator
	Log              domain.Logger
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager

	// Stores
	Activities   *store.ActivityStore
	QuickActions *store.QuickActionRegistry
	Settings     *store.SettingsStore

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config

	// Configuration
	Calendar domain.Calendar
	Warnings []string // Config problems to show the user
	Config   Config

	closers []io.Closer
}

// New loads the configuration, opens the configured backend and loads all stores.
func New(opts Options) (*Container, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	configLoader := config.NewLoaderWithPath(configPath)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = appConfig.Store.Dir
	}
	if dataDir == "" {
		dataDir = domain.DefaultDataDir()
	}
	if dataDir == "" {
		return nil, errors.New("cannot determine data directory (set --data-dir or [store] dir)")
	}
	cfg := newConfig(configPath, dataDir, appConfig.Store.Backend)

	// Create logger
	fileLogger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	b, err := openBackend(appConfig, cfg)
	if err != nil {
		_ = fileLogger.Close()
		return nil, err
	}

	c := &Container{
		Blobs:            b.blobs,
		StoreInitializer: b.init,
		Syncer:           b.syncer,
		Clock:            domain.RealClock{},
		IDs:              domain.UUIDGenerator{},
		Log:              fileLogger,
		ConfigLoader:     configLoader,
		ConfigManager:    config.NewManagerWithPath(configPath),
		Logger:           logger,
		AppConfig:        appConfig,
		Config:           cfg,
		closers:          []io.Closer{fileLogger},
	}
	if b.closer != nil {
		c.closers = append(c.closers, b.closer)
	}

	if err := c.StoreInitializer.Initialize(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	if err := c.load(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// The stores are loaded from blobs.
func NewWithDeps(cfg Config, appConfig *domain.Config, blobs domain.BlobStore, clock domain.Clock, ids domain.IDGenerator, log domain.Logger) (*Container, error) {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	c := &Container{
		Blobs:     blobs,
		Clock:     clock,
		IDs:       ids,
		Log:       log,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		AppConfig: appConfig,
		Config:    cfg,
	}
	if initializer, ok := blobs.(domain.StoreInitializer); ok {
		if err := initializer.Initialize(); err != nil {
			return nil, fmt.Errorf("initialize store: %w", err)
		}
		c.StoreInitializer = initializer
	}
	if syncer, ok := blobs.(domain.Syncer); ok {
		c.Syncer = syncer
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// load resolves the calendar and loads the three stores.
// Sample activities are seeded only on first launch when the config asks for them.
func (c *Container) load() error {
	cal, warnings := c.AppConfig.ResolveCalendar()
	c.Calendar = cal
	c.Warnings = append(append([]string{}, c.AppConfig.Warnings...), warnings...)
	for _, w := range c.Warnings {
		c.Log.Warn(logCategory, "config: "+w)
	}

	c.Settings = store.NewSettingsStore(c.Blobs, c.Log)
	if err := c.Settings.Load(); err != nil {
		return err
	}

	firstLaunch := c.Settings.FirstLaunch()
	var seed func() []domain.Activity
	if firstLaunch && c.AppConfig.Tracker.SeedSampleData {
		seed = func() []domain.Activity {
			return domain.SampleActivities(c.Clock.Now(), c.Calendar, c.IDs)
		}
	}
	c.Activities = store.NewActivityStore(c.Blobs, c.Clock, c.IDs, c.Log)
	if err := c.Activities.Load(seed); err != nil {
		return err
	}

	c.QuickActions = store.NewQuickActionRegistry(c.Blobs, c.IDs, c.Log)
	if err := c.QuickActions.Load(); err != nil {
		return err
	}

	if firstLaunch {
		if err := c.Settings.MarkLaunched(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the log file and the backend.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Reload re-reads every store from the backend.
// The TUI calls it when the watcher reports a change made by another process.
func (c *Container) Reload() error {
	if err := c.Settings.Load(); err != nil {
		return err
	}
	if err := c.Activities.Load(nil); err != nil {
		return err
	}
	return c.QuickActions.Load()
}

// backend bundles the ports one storage backend provides.
type backend struct {
	blobs  domain.BlobStore
	init   domain.StoreInitializer
	syncer domain.Syncer
	closer io.Closer
}

// openBackend opens the blob store selected by [store] backend.
func openBackend(appConfig *domain.Config, cfg Config) (backend, error) {
	switch appConfig.Store.Backend {
	case domain.BackendFile, "":
		fs := filestore.New(cfg.BlobDir)
		return backend{blobs: fs, init: fs}, nil

	case domain.BackendGit:
		var enc *crypto.Encryptor
		if key := appConfig.Store.EncryptionKey; key != "" {
			var err error
			enc, err = crypto.NewEncryptor(key, cfg.CacheDir)
			if err != nil {
				return backend{}, fmt.Errorf("encryption key: %w", err)
			}
		}
		gs, err := gitstore.Open(cfg.BlobDir, gitstore.Options{
			Encryptor: enc,
			Namespace: appConfig.Store.Namespace,
			Remote:    appConfig.Store.Remote,
		})
		if err != nil {
			return backend{}, err
		}
		return backend{blobs: gs, init: gs, syncer: gs}, nil

	case domain.BackendSQLite:
		ss, err := sqlitestore.Open(filepath.Join(cfg.BlobDir, sqlitestore.FileName))
		if err != nil {
			return backend{}, err
		}
		return backend{blobs: ss, init: ss, closer: ss}, nil

	default:
		return backend{}, fmt.Errorf("%w: %q", domain.ErrInvalidBackend, appConfig.Store.Backend)
	}
}

// NewWatcher returns a watcher for the directory the backend writes to.
func (c *Container) NewWatcher() (*watch.Watcher, error) {
	dir, match := c.Config.BlobDir, watch.MatchFunc(filestoreMatch)
	switch c.AppConfig.Store.Backend {
	case domain.BackendGit:
		gs, ok := c.Blobs.(*gitstore.Store)
		if !ok || gs.RefsDir() == "" {
			return nil, errors.New("watch: git backend has no repository path")
		}
		dir, match = gs.RefsDir(), gitRefMatch
	case domain.BackendSQLite:
		match = sqliteMatch
	}
	return watch.New(dir, match, c.Log)
}

func filestoreMatch(path string) (string, bool) {
	key, err := filestore.KeyFromPath(path)
	return key, err == nil
}

func gitRefMatch(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".lock") {
		return "", false
	}
	return base, true
}

func sqliteMatch(path string) (string, bool) {
	return "", strings.HasPrefix(filepath.Base(path), sqlitestore.FileName)
}

// UseCase factory methods

// StartActivityUseCase returns a new StartActivity use case.
func (c *Container) StartActivityUseCase() *usecase.StartActivity {
	return usecase.NewStartActivity(c.Activities, c.Log)
}

// StopActivityUseCase returns a new StopActivity use case.
func (c *Container) StopActivityUseCase() *usecase.StopActivity {
	return usecase.NewStopActivity(c.Activities, c.Log)
}

// AddActivityUseCase returns a new AddActivity use case.
func (c *Container) AddActivityUseCase() *usecase.AddActivity {
	return usecase.NewAddActivity(c.Activities, c.Settings, c.Clock)
}

// EditActivityUseCase returns a new EditActivity use case.
func (c *Container) EditActivityUseCase() *usecase.EditActivity {
	return usecase.NewEditActivity(c.Activities)
}

// DeleteActivityUseCase returns a new DeleteActivity use case.
func (c *Container) DeleteActivityUseCase() *usecase.DeleteActivity {
	return usecase.NewDeleteActivity(c.Activities)
}

// ListActivitiesUseCase returns a new ListActivities use case.
func (c *Container) ListActivitiesUseCase() *usecase.ListActivities {
	return usecase.NewListActivities(c.Activities, c.Clock, c.Calendar)
}

// ShowStatsUseCase returns a new ShowStats use case.
func (c *Container) ShowStatsUseCase() *usecase.ShowStats {
	return usecase.NewShowStats(c.Activities, c.Clock, c.Calendar)
}

// ShowCalendarUseCase returns a new ShowCalendar use case.
func (c *Container) ShowCalendarUseCase() *usecase.ShowCalendar {
	return usecase.NewShowCalendar(c.Activities, c.Clock, c.Calendar)
}

// ListQuickActionsUseCase returns a new ListQuickActions use case.
func (c *Container) ListQuickActionsUseCase() *usecase.ListQuickActions {
	return usecase.NewListQuickActions(c.QuickActions)
}

// AddQuickActionUseCase returns a new AddQuickAction use case.
func (c *Container) AddQuickActionUseCase() *usecase.AddQuickAction {
	return usecase.NewAddQuickAction(c.QuickActions)
}

// EditQuickActionUseCase returns a new EditQuickAction use case.
func (c *Container) EditQuickActionUseCase() *usecase.EditQuickAction {
	return usecase.NewEditQuickAction(c.QuickActions)
}

// DeleteQuickActionUseCase returns a new DeleteQuickAction use case.
func (c *Container) DeleteQuickActionUseCase() *usecase.DeleteQuickAction {
	return usecase.NewDeleteQuickAction(c.QuickActions)
}

// MoveQuickActionUseCase returns a new MoveQuickAction use case.
func (c *Container) MoveQuickActionUseCase() *usecase.MoveQuickAction {
	return usecase.NewMoveQuickAction(c.QuickActions)
}

// StartQuickActionUseCase returns a new StartQuickAction use case.
func (c *Container) StartQuickActionUseCase() *usecase.StartQuickAction {
	return usecase.NewStartQuickAction(c.QuickActions, c.Activities, c.Log)
}

// ShowSettingsUseCase returns a new ShowSettings use case.
func (c *Container) ShowSettingsUseCase() *usecase.ShowSettings {
	return usecase.NewShowSettings(c.Settings)
}

// SetSettingUseCase returns a new SetSetting use case.
func (c *Container) SetSettingUseCase() *usecase.SetSetting {
	return usecase.NewSetSetting(c.Settings, c.Log)
}

// ExportDataUseCase returns a new ExportData use case.
func (c *Container) ExportDataUseCase() *usecase.ExportData {
	return usecase.NewExportData(c.Activities, c.Clock, c.Log)
}

// ImportDataUseCase returns a new ImportData use case.
func (c *Container) ImportDataUseCase() *usecase.ImportData {
	return usecase.NewImportData(c.Activities, c.Log)
}

// ResetAllUseCase returns a new ResetAll use case.
func (c *Container) ResetAllUseCase() *usecase.ResetAll {
	return usecase.NewResetAll(c.Activities, c.Settings, c.Log)
}

// AutoStopUseCase returns a new AutoStop use case.
func (c *Container) AutoStopUseCase() *usecase.AutoStop {
	return usecase.NewAutoStop(c.Activities, c.Settings, c.Clock, c.Log)
}

// SyncDataUseCase returns a new SyncData use case.
func (c *Container) SyncDataUseCase() *usecase.SyncData {
	return usecase.NewSyncData(c.Syncer, c.Settings, c.Clock, c.Log)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig)
}
