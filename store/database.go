package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry represents a row in the database
type Entry struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// TableName keeps the table name stable regardless of gorm's naming strategy.
func (Entry) TableName() string {
	return "smartstore_entries"
}

type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(dsn string) (*DatabaseStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return newDatabaseStore(db)
}

func newDatabaseStore(db *gorm.DB) (*DatabaseStore, error) {
	// Auto-create table if needed
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &DatabaseStore{db: db}, nil
}

// Get retrieves a raw value from database
func (ds *DatabaseStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry

	result := ds.db.WithContext(ctx).Where("key = ?", key).First(&entry)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if result.Error != nil {
		return "", false, result.Error
	}
	return entry.Value, true, nil
}

// Set upserts a raw value
func (ds *DatabaseStore) Set(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value}
	return ds.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

// Remove deletes a key from database
func (ds *DatabaseStore) Remove(ctx context.Context, key string) error {
	return ds.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}

// Available pings the underlying connection pool
func (ds *DatabaseStore) Available(ctx context.Context) bool {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

// Close closes the database connection
func (ds *DatabaseStore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
