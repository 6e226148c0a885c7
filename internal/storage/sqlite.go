package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const memoryDSN = ":memory:"

// Entry is one row of the entries table.
type Entry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text"`
}

// SQLiteStore persists entries in a SQLite database.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and migrates the
// entries table. Use ":memory:" for an in-process database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrStoreRead, path, err)
	}
	// Every pooled connection to ":memory:" is a separate database.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("%w: migrating %s: %v", ErrStoreWrite, path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get implements KV.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var e Entry
	err := s.db.Where(&Entry{Key: key}).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	return e.Value, true, nil
}

// Set implements KV.
func (s *SQLiteStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Entry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
