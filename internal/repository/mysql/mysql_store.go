package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"pizza-service/internal/repository"
)

// record is one persisted document. The composite primary key makes
// Create atomic: a racing insert on the same (category, record_id) fails
// with a duplicate-key error.
type record struct {
	Category string `gorm:"primaryKey;size:32"`
	RecordID string `gorm:"primaryKey;size:64"`
	Value    []byte `gorm:"type:mediumblob"`
}

func (record) TableName() string { return "records" }

// Store implements the persistence contract on MySQL through gorm.
type Store struct {
	db *gorm.DB
}

var _ repository.Store = (*Store)(nil)

// Open connects with the given DSN and migrates the records table.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("mysql store: connect: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("mysql store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing gorm connection.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Exists(ctx context.Context, category, id string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&record{}).
		Where("category = ? AND record_id = ?", category, id).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("mysql store: exists %s/%s: %w", category, id, err)
	}
	return n > 0, nil
}

func (s *Store) Create(ctx context.Context, category, id string, value []byte) error {
	err := s.db.WithContext(ctx).Create(&record{Category: category, RecordID: id, Value: value}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("mysql store: create %s/%s: %w", category, id, err)
	}
	return nil
}

func (s *Store) Read(ctx context.Context, category, id string) ([]byte, error) {
	var r record
	err := s.db.WithContext(ctx).
		Where("category = ? AND record_id = ?", category, id).
		First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("mysql store: read %s/%s: %w", category, id, err)
	}
	return r.Value, nil
}

func (s *Store) Update(ctx context.Context, category, id string, value []byte) error {
	res := s.db.WithContext(ctx).Model(&record{}).
		Where("category = ? AND record_id = ?", category, id).
		Update("value", value)
	if res.Error != nil {
		return fmt.Errorf("mysql store: update %s/%s: %w", category, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, category, id string) error {
	res := s.db.WithContext(ctx).
		Where("category = ? AND record_id = ?", category, id).
		Delete(&record{})
	if res.Error != nil {
		return fmt.Errorf("mysql store: delete %s/%s: %w", category, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
