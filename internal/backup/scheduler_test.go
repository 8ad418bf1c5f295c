// SPDX-License-Identifier: MIT
package backup

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewScheduler(t *testing.T) {
	manager := NewBackupManager("/tmp/backups", zerolog.Nop())
	scheduler := NewScheduler(manager, nil, zerolog.Nop())
	if scheduler == nil {
		t.Fatal("NewScheduler returned nil")
	}
	if scheduler.Manager != manager {
		t.Fatal("scheduler manager not set correctly")
	}
	if scheduler.BackupInterval != 24*time.Hour {
		t.Errorf("expected daily interval, got %v", scheduler.BackupInterval)
	}
}

func TestSchedulerStop(t *testing.T) {
	tmpDir := t.TempDir()
	store := setupStore(t)
	seedStore(t, store)

	manager := NewBackupManager(tmpDir, zerolog.Nop())
	scheduler := NewScheduler(manager, store, zerolog.Nop())
	scheduler.SetInterval(time.Hour)

	done := scheduler.Start()
	time.Sleep(50 * time.Millisecond)
	scheduler.Stop()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("scheduler did not stop within timeout")
	}

	backups, err := manager.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected the initial backup, got %d", len(backups))
	}
}

func TestSchedulerPrunes(t *testing.T) {
	tmpDir := t.TempDir()
	store := setupStore(t)
	seedStore(t, store)

	manager := NewBackupManager(tmpDir, zerolog.Nop())
	manager.now = fakeClock()
	scheduler := NewScheduler(manager, store, zerolog.Nop())
	scheduler.Keep = 2

	for i := 0; i < 4; i++ {
		if err := scheduler.runBackup(); err != nil {
			t.Fatalf("runBackup failed: %v", err)
		}
	}

	backups, _ := manager.ListBackups()
	if len(backups) != 2 {
		t.Errorf("expected 2 backups kept, got %d", len(backups))
	}
}
