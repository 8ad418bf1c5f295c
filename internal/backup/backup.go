// SPDX-License-Identifier: MIT

// Package backup snapshots stored palettes into gzip'd tar archives and
// restores them, links and accent markers included.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/models"
)

const (
	filePrefix   = "palettes-"
	fileSuffix   = ".tar.gz"
	timeLayout   = "2006-01-02-150405.000000"
	manifestName = "manifest.yaml"

	maxEntrySize = 64 << 20
)

// ErrInvalidName is returned for backup file names this package did not create.
var ErrInvalidName = errors.New("invalid backup name")

// Source is the read side of the palette store.
type Source interface {
	List() ([]models.Palette, error)
	ChildNames(name string) ([]string, error)
	AccentNames(name string) ([]string, error)
}

// Target is the write side of the palette store.
type Target interface {
	Save(name string, set *colorset.ColorSet, format colorset.Format) (*models.Palette, error)
	Link(parentName, childName string) error
	ChildNames(name string) ([]string, error)
}

// Manifest describes the palettes inside an archive.
type Manifest struct {
	CreatedAt time.Time       `yaml:"created_at"`
	Note      string          `yaml:"note,omitempty"`
	Palettes  []ManifestEntry `yaml:"palettes"`
}

// ManifestEntry is one stored palette. File names the archive member that
// holds the palette's encoded data.
type ManifestEntry struct {
	Name     string   `yaml:"name"`
	File     string   `yaml:"file"`
	Format   string   `yaml:"format"`
	Children []string `yaml:"children,omitempty"`
	Accents  []string `yaml:"accents,omitempty"`
}

// Info describes a backup file on disk.
type Info struct {
	Filename  string
	Size      int64
	CreatedAt time.Time
}

// BackupManager handles all backup operations
type BackupManager struct {
	BackupPath string
	logger     zerolog.Logger
	now        func() time.Time
}

// NewBackupManager creates a new backup manager
func NewBackupManager(backupPath string, logger zerolog.Logger) *BackupManager {
	return &BackupManager{
		BackupPath: backupPath,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateBackup archives every palette in source and returns the new file name.
func (m *BackupManager) CreateBackup(source Source, note string) (string, error) {
	stored, err := source.List()
	if err != nil {
		return "", err
	}

	manifest := Manifest{CreatedAt: m.now().UTC(), Note: note}
	for i, p := range stored {
		children, err := source.ChildNames(p.Name)
		if err != nil {
			return "", err
		}
		accents, err := source.AccentNames(p.Name)
		if err != nil {
			return "", err
		}
		manifest.Palettes = append(manifest.Palettes, ManifestEntry{
			Name:     p.Name,
			File:     fmt.Sprintf("palettes/%04d%s", i, colorset.FileExtension),
			Format:   p.Format,
			Children: children,
			Accents:  accents,
		})
	}

	if err := os.MkdirAll(m.BackupPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	filename := filePrefix + manifest.CreatedAt.Format(timeLayout) + fileSuffix
	path := filepath.Join(m.BackupPath, filename)
	tmp := path + ".tmp"

	if err := writeArchive(tmp, manifest, stored); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize backup: %w", err)
	}

	m.logger.Info().
		Str("file", filename).
		Int("palettes", len(stored)).
		Msg("backup created")
	return filename, nil
}

func writeArchive(path string, manifest Manifest, stored []models.Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	manifestData, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := writeEntry(tw, manifestName, manifestData, manifest.CreatedAt); err != nil {
		return err
	}
	for i, p := range stored {
		if err := writeEntry(tw, manifest.Palettes[i].File, p.Data, manifest.CreatedAt); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return f.Close()
}

func writeEntry(tw *tar.Writer, name string, data []byte, modTime time.Time) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0644,
		Size:    int64(len(data)),
		ModTime: modTime,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// ReadManifest returns the manifest of a backup without restoring it.
func (m *BackupManager) ReadManifest(filename string) (*Manifest, error) {
	manifest, _, err := m.readArchive(filename)
	return manifest, err
}

// RestoreBackup saves every palette in the archive into target, replacing
// palettes with the same name, then restores missing child links. It
// returns the number of palettes restored. Nothing is written unless every
// palette in the archive decodes.
func (m *BackupManager) RestoreBackup(filename string, target Target) (int, error) {
	manifest, files, err := m.readArchive(filename)
	if err != nil {
		return 0, err
	}

	sets := make([]*colorset.ColorSet, len(manifest.Palettes))
	for i, entry := range manifest.Palettes {
		data, ok := files[entry.File]
		if !ok {
			return 0, fmt.Errorf("backup %s is missing %s", filename, entry.File)
		}
		set, err := colorset.Parse(data)
		if err != nil {
			return 0, fmt.Errorf("failed to decode palette %s: %w", entry.Name, err)
		}
		for _, name := range entry.Accents {
			set.UseAccentFor(name)
		}
		sets[i] = set
	}

	for i, entry := range manifest.Palettes {
		if _, err := target.Save(entry.Name, sets[i], colorset.FormatAuto); err != nil {
			return i, err
		}
	}

	for _, entry := range manifest.Palettes {
		if len(entry.Children) == 0 {
			continue
		}
		existing, err := target.ChildNames(entry.Name)
		if err != nil {
			return len(sets), err
		}
		linked := make(map[string]bool, len(existing))
		for _, name := range existing {
			linked[name] = true
		}
		for _, child := range entry.Children {
			if linked[child] {
				continue
			}
			if err := target.Link(entry.Name, child); err != nil {
				m.logger.Warn().Err(err).
					Str("parent", entry.Name).
					Str("child", child).
					Msg("could not restore palette link")
			}
		}
	}

	m.logger.Info().
		Str("file", filename).
		Int("palettes", len(sets)).
		Msg("backup restored")
	return len(sets), nil
}

func (m *BackupManager) readArchive(filename string) (*Manifest, map[string][]byte, error) {
	path, err := m.path(filename)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read backup %s: %w", filename, err)
	}
	defer gz.Close()

	files := make(map[string][]byte)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read backup %s: %w", filename, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(tr, maxEntrySize+1))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", hdr.Name, err)
		}
		if len(data) > maxEntrySize {
			return nil, nil, fmt.Errorf("backup entry %s is too large", hdr.Name)
		}
		files[hdr.Name] = data
	}

	raw, ok := files[manifestName]
	if !ok {
		return nil, nil, fmt.Errorf("backup %s has no manifest", filename)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, files, nil
}

// ListBackups returns the backups on disk, newest first.
func (m *BackupManager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.BackupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !validName(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		created, _ := time.Parse(timeLayout, stamp)
		backups = append(backups, Info{Filename: name, Size: info.Size(), CreatedAt: created})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Filename > backups[j].Filename
	})
	return backups, nil
}

// DeleteBackup removes one backup file.
func (m *BackupManager) DeleteBackup(filename string) error {
	path, err := m.path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	return nil
}

// Prune deletes all but the newest keep backups and returns how many were
// removed. A keep of zero or less disables pruning.
func (m *BackupManager) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	backups, err := m.ListBackups()
	if err != nil {
		return 0, err
	}

	removed := 0
	for i := keep; i < len(backups); i++ {
		if err := m.DeleteBackup(backups[i].Filename); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (m *BackupManager) path(filename string) (string, error) {
	if !validName(filename) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	return filepath.Join(m.BackupPath, filename), nil
}

func validName(filename string) bool {
	return filename == filepath.Base(filename) &&
		strings.HasPrefix(filename, filePrefix) &&
		strings.HasSuffix(filename, fileSuffix)
}
