package caches

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HishamYahya/gollm/logs"
)

// Store persists entries on the filesystem, one file per fingerprint.
// Writes are write-temp-then-rename so readers in other processes never
// observe a partial entry. Unreadable entries count as misses.
type Store struct {
	dir    string
	logger logs.Logger
}

func NewStore(dir string, logger logs.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: logger,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint+".json")
}

func (s *Store) Lookup(fingerprint string) (*Entry, bool) {
	content, err := os.ReadFile(s.path(fingerprint))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(content, &entry); err != nil {
		s.logger.Warn("corrupt cache entry",
			"fingerprint", fingerprint,
			"error", err,
		)
		return nil, false
	}
	if entry.Fingerprint != fingerprint || entry.Source == "" {
		s.logger.Warn("corrupt cache entry",
			"fingerprint", fingerprint,
		)
		return nil, false
	}

	return &entry, true
}

func (s *Store) Store(entry Entry) error {
	if entry.Fingerprint == "" {
		return fmt.Errorf("empty fingerprint")
	}
	if strings.ContainsAny(entry.Fingerprint, "/\\") {
		return fmt.Errorf("bad fingerprint: %q", entry.Fingerprint)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	content, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// last writer wins
	if err := os.Rename(tmpPath, s.path(entry.Fingerprint)); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func (s *Store) Invalidate(fingerprint string) error {
	err := os.Remove(s.path(fingerprint))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
