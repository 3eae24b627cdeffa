package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sweetnest/storefront/internal/logger"

	"github.com/glebarez/sqlite" // pure-Go sqlite driver (modernc.org based)
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// StateEntry one persisted store snapshot, JSON under a dedicated key
type StateEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName sets the table name
func (StateEntry) TableName() string {
	return "state_entries"
}

// Store is the local persisted key-value store backing every domain store,
// the device-local counterpart of the browser's localStorage.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite state file and migrates the table
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&StateEntry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory store, used by tests
func OpenInMemory() (*Store, error) {
	return Open("file::memory:?cache=shared")
}

// Load hydrates dest from the entry under key. A missing entry returns false.
// A corrupt entry is logged and treated as no prior session, never as a
// startup-blocking error.
func (s *Store) Load(key string, dest interface{}) (bool, error) {
	var entry StateEntry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if strings.TrimSpace(entry.Value) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		logger.Warnw("storage_entry_corrupt", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Save serializes v under key, replacing any previous entry
func (s *Store) Save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	entry := StateEntry{Key: key, Value: string(data), UpdatedAt: time.Now()}
	return s.db.Save(&entry).Error
}

// Delete removes the entry under key
func (s *Store) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&StateEntry{}).Error
}

// Reset drops every persisted entry
func (s *Store) Reset() error {
	return s.db.Where("1 = 1").Delete(&StateEntry{}).Error
}
