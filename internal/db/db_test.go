// SPDX-License-Identifier: MIT
package db

import (
	"path/filepath"
	"testing"

	"github.com/thatcatcamp/colorset/internal/models"
)

func TestOpenMigratesPaletteTables(t *testing.T) {
	testDB, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for _, model := range models.All() {
		if !testDB.Migrator().HasTable(model) {
			t.Errorf("table for %T not created", model)
		}
	}

	if !testDB.Migrator().HasColumn(&models.Palette{}, "color_count") {
		t.Fatal("color_count column not found in palettes table")
	}
}

func TestInitDBCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "colorset.db")
	saved := GetDB()
	defer SetDB(saved)

	if err := InitDB("sqlite", path); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if GetDB() == nil {
		t.Fatal("DB not set after InitDB")
	}

	if err := GetDB().Create(&models.Palette{Name: "x", Data: []byte{1}}).Error; err != nil {
		t.Fatalf("insert failed: %v", err)
	}
}

func TestUnsupportedDatabase(t *testing.T) {
	if _, err := Open("postgres", "dsn"); err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}
