package maintenance

import (
	"path/filepath"
	"testing"

	"github.com/oakmund/registrar/internal/database"
)

func TestManagerStartStop(t *testing.T) {
	tmp := t.TempDir()
	db, err := database.New(filepath.Join(tmp, "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	if err := db.SetSetting("maintenance.schedule", "0 2 * * *"); err != nil {
		t.Fatalf("failed to set schedule: %v", err)
	}
	if err := db.SetSetting("maintenance.vacuum", "true"); err != nil {
		t.Fatalf("failed to set vacuum: %v", err)
	}

	m := New(db)
	if err := m.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if !m.config.Enabled {
		t.Fatal("expected maintenance enabled by default")
	}
	if m.config.Schedule != "0 2 * * *" {
		t.Fatalf("expected schedule from settings, got %q", m.config.Schedule)
	}
	if !m.config.Vacuum {
		t.Fatal("expected vacuum enabled from settings")
	}

	// Idempotent start
	if err := m.Start(); err != nil {
		t.Fatalf("second Start returned error: %v", err)
	}

	// Maintenance job runs cleanly against a live database
	m.run()

	if err := m.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("second Stop returned error: %v", err)
	}
}
