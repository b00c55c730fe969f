package statestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// stateEntry is the single-table schema behind the sqlite driver.
type stateEntry struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

func (stateEntry) TableName() string { return "state_entries" }

// SQLite is a Store backed by a local sqlite database, for installs that want
// one durable file instead of a state directory.
type SQLite struct {
	conn *gorm.DB
}

// NewSQLite opens (and migrates) the sqlite-backed store at dsn.
func NewSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		return nil, errors.New("sqlite dsn is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if err := conn.AutoMigrate(&stateEntry{}); err != nil {
		return nil, fmt.Errorf("migrating state database: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var entry stateEntry
	err := s.conn.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sqlite get %q: %w", key, err)
	}
	return entry.Value, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	entry := stateEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.conn.WithContext(ctx).Save(&entry).Error
	if err != nil {
		return fmt.Errorf("sqlite set %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	err := s.conn.WithContext(ctx).Delete(&stateEntry{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("sqlite delete %q: %w", key, err)
	}
	return nil
}
