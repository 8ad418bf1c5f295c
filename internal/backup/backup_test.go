// SPDX-License-Identifier: MIT
package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/db"
	"github.com/thatcatcamp/colorset/internal/palettes"
)

func setupStore(t *testing.T) *palettes.Store {
	t.Helper()
	testDB, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	return palettes.NewStore(testDB, zerolog.Nop())
}

func seedStore(t *testing.T, store *palettes.Store) {
	t.Helper()

	brand := colorset.New()
	dark := colorset.MustParseHex("#A5B4FC")
	brand.Set("Primary", colorset.MustParseHex("#4F46E5"), &dark, []colorset.LightnessPair{
		colorset.NewLightnessPair("hover", 0.4, "hover-dark", 0.6),
	})
	brand.UseAccentFor("Primary")

	base := colorset.New()
	black := colorset.Black
	base.Set("Background", colorset.White, &black, nil)

	if _, err := store.Save("brand", brand, colorset.FormatXML); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("base", base, colorset.FormatBinary); err != nil {
		t.Fatal(err)
	}
	if err := store.Link("brand", "base"); err != nil {
		t.Fatal(err)
	}
}

// fakeClock returns times one second apart.
func fakeClock() func() time.Time {
	t := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestNewBackupManager(t *testing.T) {
	manager := NewBackupManager("/tmp/backups", zerolog.Nop())
	if manager == nil {
		t.Fatal("NewBackupManager returned nil")
	}
	if manager.BackupPath != "/tmp/backups" {
		t.Errorf("expected /tmp/backups, got %s", manager.BackupPath)
	}
}

func TestCreateBackup(t *testing.T) {
	tmpDir := t.TempDir()
	store := setupStore(t)
	seedStore(t, store)

	manager := NewBackupManager(filepath.Join(tmpDir, "nested"), zerolog.Nop())
	manager.now = fakeClock()

	filename, err := manager.CreateBackup(store, "manual")
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filename != "palettes-2025-06-01-120001.000000.tar.gz" {
		t.Errorf("unexpected filename %s", filename)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "nested", filename)); err != nil {
		t.Errorf("backup file not created: %v", err)
	}

	manifest, err := manager.ReadManifest(filename)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if manifest.Note != "manual" {
		t.Errorf("expected note manual, got %q", manifest.Note)
	}
	if len(manifest.Palettes) != 2 {
		t.Fatalf("expected 2 palettes, got %d", len(manifest.Palettes))
	}

	brand := manifest.Palettes[1]
	if brand.Name != "brand" || brand.Format != "xml" {
		t.Errorf("unexpected entry %+v", brand)
	}
	if len(brand.Children) != 1 || brand.Children[0] != "base" {
		t.Errorf("expected child base, got %v", brand.Children)
	}
	if len(brand.Accents) != 1 || brand.Accents[0] != "Primary" {
		t.Errorf("expected accent Primary, got %v", brand.Accents)
	}
}

func TestRestoreBackup(t *testing.T) {
	tmpDir := t.TempDir()
	source := setupStore(t)
	seedStore(t, source)

	manager := NewBackupManager(tmpDir, zerolog.Nop())
	filename, err := manager.CreateBackup(source, "")
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	target := setupStore(t)
	count, err := manager.RestoreBackup(filename, target)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 palettes restored, got %d", count)
	}

	restored, err := target.Get("brand")
	if err != nil {
		t.Fatal(err)
	}
	if restored.Format != "xml" {
		t.Errorf("expected format to survive restore, got %s", restored.Format)
	}

	set, err := target.Load("brand")
	if err != nil {
		t.Fatal(err)
	}
	bg, ok := set.Resolve("Background", true, nil)
	if !ok || bg != colorset.Black {
		t.Errorf("expected child link restored, got %v %v", bg, ok)
	}

	accent := colorset.MustParseHex("#FF9800")
	primary, ok := set.Resolve("Primary", false, &accent)
	if !ok || primary != accent {
		t.Errorf("expected accent marker restored, got %v", primary)
	}

	// Restoring twice leaves a single link.
	if _, err := manager.RestoreBackup(filename, target); err != nil {
		t.Fatalf("second RestoreBackup failed: %v", err)
	}
	children, err := target.ChildNames("brand")
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 1 {
		t.Errorf("expected one child after second restore, got %v", children)
	}
}

func TestListAndPruneBackups(t *testing.T) {
	tmpDir := t.TempDir()
	store := setupStore(t)
	seedStore(t, store)

	manager := NewBackupManager(tmpDir, zerolog.Nop())
	manager.now = fakeClock()

	var created []string
	for i := 0; i < 4; i++ {
		filename, err := manager.CreateBackup(store, "")
		if err != nil {
			t.Fatal(err)
		}
		created = append(created, filename)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	backups, err := manager.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 4 {
		t.Fatalf("expected 4 backups, got %d", len(backups))
	}
	if backups[0].Filename != created[3] {
		t.Errorf("expected newest first, got %s", backups[0].Filename)
	}
	if backups[0].Size == 0 || backups[0].CreatedAt.IsZero() {
		t.Errorf("expected size and time, got %+v", backups[0])
	}

	removed, err := manager.Prune(2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	backups, _ = manager.ListBackups()
	if len(backups) != 2 || backups[1].Filename != created[2] {
		t.Errorf("unexpected backups after prune: %+v", backups)
	}

	if removed, _ := manager.Prune(0); removed != 0 {
		t.Error("Prune(0) should keep everything")
	}
}

func TestListBackupsMissingDirectory(t *testing.T) {
	manager := NewBackupManager(filepath.Join(t.TempDir(), "none"), zerolog.Nop())
	backups, err := manager.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Errorf("expected no backups and no error, got %v %v", backups, err)
	}
}

func TestRejectsForeignFilenames(t *testing.T) {
	manager := NewBackupManager(t.TempDir(), zerolog.Nop())
	store := setupStore(t)

	for _, name := range []string{"../palettes-x.tar.gz", "other.tar.gz", "palettes-x.zip"} {
		if _, err := manager.RestoreBackup(name, store); !errors.Is(err, ErrInvalidName) {
			t.Errorf("%s: expected ErrInvalidName, got %v", name, err)
		}
		if err := manager.DeleteBackup(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("%s: expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestRestoreCorruptBackup(t *testing.T) {
	tmpDir := t.TempDir()
	name := "palettes-2025-01-01-000000.000000.tar.gz"
	if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("not gzip"), 0644); err != nil {
		t.Fatal(err)
	}

	manager := NewBackupManager(tmpDir, zerolog.Nop())
	store := setupStore(t)
	if _, err := manager.RestoreBackup(name, store); err == nil {
		t.Error("expected error for corrupt backup")
	}

	names, _ := store.Names()
	if len(names) != 0 {
		t.Errorf("expected nothing restored, got %v", names)
	}
}
