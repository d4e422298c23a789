package shared

import (
	"testing"
)

func TestRunMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("expected migrations to run, got %v", err)
	}

	t.Run("Creates Tables", func(t *testing.T) {
		for _, table := range []string{"djs", "requests", "transactions", "djs_sequence", "requests_sequence", "transactions_sequence"} {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			if err != nil {
				t.Errorf("expected table %s to exist: %v", table, err)
			}
		}
	})

	t.Run("Seeds DJ Roster", func(t *testing.T) {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM djs").Scan(&count); err != nil {
			t.Fatalf("failed to count djs: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 seeded djs, got %d", count)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		if err := RunMigrations(db); err != nil {
			t.Fatalf("rerunning migrations should be a no-op, got %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM djs").Scan(&count); err != nil {
			t.Fatalf("failed to count djs: %v", err)
		}
		if count != 2 {
			t.Errorf("expected seed to apply once, got %d djs", count)
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("expected rollback to succeed, got %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM djs").Scan(&count); err != nil {
			t.Fatalf("failed to count djs: %v", err)
		}
		if count != 0 {
			t.Errorf("expected seed rollback to remove djs, got %d", count)
		}
	})
}
