// Package dashboard coordinates the spreadsheet service, the local record
// mirror, and the lookup cache behind the HTTP handlers.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexonufrak/dashboard-api/internal/appconf"
	"github.com/alexonufrak/dashboard-api/internal/cache"
	"github.com/alexonufrak/dashboard-api/internal/logging"
	"github.com/alexonufrak/dashboard-api/internal/sheets"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

// cacheTTL is the default lifetime for cached lookups.
const cacheTTL = 2 * time.Minute

// Manager owns the data path: spreadsheet client for writes and fresh
// reads, record mirror for lookups and aggregates, cache in front of both.
type Manager struct {
	Sheets *sheets.Client
	DB     *recorddb.Client
	Cache  *cache.Cache

	config       appconf.Config
	logger       *slog.Logger
	syncInterval time.Duration

	syncMutex   sync.RWMutex
	lastSync    time.Time
	lastSyncErr error

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitManager builds a Manager from config, runs the initial sync, and
// starts the background re-sync loop.
func InitManager(config appconf.Config, logger *slog.Logger) (*Manager, error) {
	sheetsClient := sheets.NewClient(sheets.Config{
		BaseURL: config.SheetsBaseURL,
		BaseID:  config.SheetsBaseID,
		Token:   config.SheetsToken,
		Logger:  logger,
	})

	db, err := recorddb.NewClient(recorddb.NewConfig(config.MirrorDBPath, config.Env, false))
	if err != nil {
		return nil, err
	}

	manager := NewManager(config, sheetsClient, db, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := manager.Sync(ctx); err != nil {
		// Start anyway; the mirror may be populated from a previous run and
		// /health reports staleness.
		logging.LogError(logger, "initial record sync failed", err,
			slog.String("component", "dashboard_manager"))
	}

	manager.wg.Add(1)
	go manager.syncPeriodically()

	return manager, nil
}

// NewManager wires a Manager from pre-built dependencies without starting
// background work. Used directly by tests.
func NewManager(config appconf.Config, sheetsClient *sheets.Client, db *recorddb.Client, logger *slog.Logger) *Manager {
	return &Manager{
		Sheets:       sheetsClient,
		DB:           db,
		Cache:        cache.New(cacheTTL),
		config:       config,
		logger:       logger,
		syncInterval: config.SyncIntervalDuration(),
		shutdownChan: make(chan struct{}),
	}
}

// Shutdown gracefully stops the background goroutines and closes the mirror.
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		close(m.shutdownChan)
		m.wg.Wait()
		if m.DB != nil {
			_ = m.DB.Close()
		}
	})
}

func (m *Manager) syncPeriodically() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.syncInterval)
	defer ticker.Stop()

	sweepTicker := time.NewTicker(time.Minute)
	defer sweepTicker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			if err := m.Sync(ctx); err != nil {
				logging.LogError(m.logger, "record sync failed", err,
					slog.String("component", "dashboard_manager"))
			}
			cancel()
		case <-sweepTicker.C:
			m.Cache.Sweep()
		case <-m.shutdownChan:
			return
		}
	}
}

// LastSync returns the time of the last successful sync and the error from
// the most recent attempt, if any.
func (m *Manager) LastSync() (time.Time, error) {
	m.syncMutex.RLock()
	defer m.syncMutex.RUnlock()
	return m.lastSync, m.lastSyncErr
}

func (m *Manager) recordSyncResult(err error) {
	m.syncMutex.Lock()
	defer m.syncMutex.Unlock()
	m.lastSyncErr = err
	if err == nil {
		m.lastSync = time.Now()
	}
}
