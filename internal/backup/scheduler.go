// SPDX-License-Identifier: MIT
package backup

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler handles automatic backup scheduling
type Scheduler struct {
	Manager        *BackupManager
	Source         Source
	Keep           int
	BackupInterval time.Duration
	logger         zerolog.Logger
	ticker         *time.Ticker
	done           chan bool
	stopChan       chan bool
}

// NewScheduler creates a new backup scheduler
func NewScheduler(manager *BackupManager, source Source, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Manager:        manager,
		Source:         source,
		Keep:           10,
		BackupInterval: 24 * time.Hour,
		logger:         logger,
		done:           make(chan bool, 1),
		stopChan:       make(chan bool, 1),
	}
}

// Start begins the backup scheduler in a goroutine
// Returns a done channel that receives once the scheduler stops
func (s *Scheduler) Start() chan bool {
	go func() {
		s.ticker = time.NewTicker(s.BackupInterval)
		defer s.ticker.Stop()

		if err := s.runBackup(); err != nil {
			s.logger.Error().Err(err).Msg("initial backup failed")
		}

		for {
			select {
			case <-s.stopChan:
				s.done <- true
				return
			case <-s.ticker.C:
				if err := s.runBackup(); err != nil {
					s.logger.Error().Err(err).Msg("scheduled backup failed")
				}
			}
		}
	}()

	return s.done
}

// Stop stops the backup scheduler
func (s *Scheduler) Stop() {
	select {
	case s.stopChan <- true:
	default:
	}
}

// runBackup performs a single backup and prunes old ones
func (s *Scheduler) runBackup() error {
	if _, err := s.Manager.CreateBackup(s.Source, "scheduled"); err != nil {
		return fmt.Errorf("backup creation failed: %w", err)
	}

	removed, err := s.Manager.Prune(s.Keep)
	if err != nil {
		return fmt.Errorf("backup pruning failed: %w", err)
	}
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("pruned old backups")
	}
	return nil
}

// SetInterval sets the backup interval
func (s *Scheduler) SetInterval(interval time.Duration) {
	s.BackupInterval = interval
}
