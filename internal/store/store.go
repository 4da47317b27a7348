// Package store persists the state and portfolio documents as
// pretty-printed JSON files. Whole-document read-modify-write with a single
// writer; concurrent runs against the same files are an operational
// constraint, not supported by locking here.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/pkg/config"
	"github.com/wonny/stockbot/pkg/logger"
)

// Store loads and saves the two persisted documents.
type Store struct {
	stateFile     string
	portfolioFile string
	logger        *logger.Logger
}

// New creates a store bound to the configured document paths.
func New(cfg *config.Config, log *logger.Logger) *Store {
	return &Store{
		stateFile:     cfg.StateFile,
		portfolioFile: cfg.PortfolioFile,
		logger:        log,
	}
}

// LoadState reads the state document, returning empty defaults when the
// file does not exist. Read or decode failures are fatal to the run.
func (s *Store) LoadState() (*contracts.State, error) {
	data, err := os.ReadFile(s.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("path", s.stateFile).Info("State file not found, starting fresh")
			return contracts.NewState(), nil
		}
		return nil, fmt.Errorf("read state %s: %w", s.stateFile, err)
	}

	state := &contracts.State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", s.stateFile, err)
	}
	state.Normalize()
	return state, nil
}

// SaveState writes the whole state document, creating parent directories as
// needed.
func (s *Store) SaveState(state *contracts.State) error {
	s.logger.WithField("path", s.stateFile).Info("Saving state")
	return writeJSON(s.stateFile, state)
}

// LoadPortfolio reads the portfolio document, returning empty defaults when
// the file does not exist.
func (s *Store) LoadPortfolio() (*contracts.Portfolio, error) {
	data, err := os.ReadFile(s.portfolioFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("path", s.portfolioFile).Info("Portfolio file not found, starting fresh")
			return contracts.NewPortfolio(), nil
		}
		return nil, fmt.Errorf("read portfolio %s: %w", s.portfolioFile, err)
	}

	portfolio := &contracts.Portfolio{}
	if err := json.Unmarshal(data, portfolio); err != nil {
		return nil, fmt.Errorf("parse portfolio %s: %w", s.portfolioFile, err)
	}
	portfolio.Normalize()
	return portfolio, nil
}

// SavePortfolio writes the whole portfolio document.
func (s *Store) SavePortfolio(portfolio *contracts.Portfolio) error {
	s.logger.WithField("path", s.portfolioFile).Info("Saving portfolio")
	return writeJSON(s.portfolioFile, portfolio)
}

// writeJSON marshals pretty-printed JSON so the documents stay
// human-diffable.
func writeJSON(path string, doc interface{}) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
