package maintenance

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/oakmund/registrar/internal/config"
	"github.com/oakmund/registrar/internal/database"
)

// DefaultSchedule runs maintenance nightly at 04:00.
const DefaultSchedule = "0 4 * * *"

// ManagerConfig holds maintenance scheduling settings
type ManagerConfig struct {
	Enabled  bool
	Schedule string
	Vacuum   bool
}

// DefaultConfig returns the default maintenance configuration
func DefaultConfig() ManagerConfig {
	return ManagerConfig{
		Enabled:  true,
		Schedule: DefaultSchedule,
		Vacuum:   false,
	}
}

// Manager runs periodic database maintenance (planner stats refresh and
// optional vacuum) on a cron schedule.
type Manager struct {
	db      *database.DB
	config  ManagerConfig
	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// New creates a new maintenance manager
func New(db *database.DB) *Manager {
	return &Manager{
		db:     db,
		config: DefaultConfig(),
		cron:   cron.New(),
	}
}

// Start starts the maintenance scheduler
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	m.loadConfigFromDB()
	m.cron.Start()
	m.running = true

	if m.config.Enabled && m.config.Schedule != "" {
		if _, err := m.cron.AddFunc(m.config.Schedule, m.run); err != nil {
			log.Warn().Err(err).Str("schedule", m.config.Schedule).Msg("Failed to set maintenance schedule")
		}
	}

	log.Info().
		Bool("enabled", m.config.Enabled).
		Str("schedule", m.config.Schedule).
		Bool("vacuum", m.config.Vacuum).
		Msg("Maintenance manager started")

	return nil
}

// Stop stops the maintenance scheduler and waits for a running job to finish
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}

	ctx := m.cron.Stop()
	<-ctx.Done()

	m.running = false
	log.Info().Msg("Maintenance manager stopped")

	return nil
}

// loadConfigFromDB reads scheduling settings from the settings table
func (m *Manager) loadConfigFromDB() {
	loader := config.NewLoader(m.db)
	m.config.Enabled = loader.BoolDefaultTrue("maintenance.enabled")
	m.config.Schedule = loader.String("maintenance.schedule", DefaultSchedule)
	m.config.Vacuum = loader.Bool("maintenance.vacuum", false)
}

func (m *Manager) run() {
	log.Debug().Msg("Running scheduled database maintenance")

	if err := m.db.Optimize(); err != nil {
		log.Error().Err(err).Msg("Database optimize failed")
	}

	if m.config.Vacuum {
		if err := m.db.Vacuum(); err != nil {
			log.Error().Err(err).Msg("Database vacuum failed")
		}
	}
}
