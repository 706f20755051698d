package session

import (
	"context"
	"fmt"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed storage keys
const (
	TokenKey = "token"
	RoleKey  = "role"
	EmailKey = "email"
)

// Entry is one key/value pair of durable client-side storage
type Entry struct {
	Key       string    `gorm:"column:storage_key;primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Entry model
func (Entry) TableName() string {
	return "client_storage"
}

// Store persists session state across restarts
type Store struct {
	db *gorm.DB
}

// NewStore migrates the storage table and returns a store backed by db
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate client storage: %w", err)
	}
	return &Store{db: db}, nil
}

// Save writes the token, role and email keys, replacing any previous values
func (s *Store) Save(ctx context.Context, state State) error {
	now := time.Now()
	entries := []Entry{
		{Key: TokenKey, Value: state.Token, UpdatedAt: now},
		{Key: RoleKey, Value: string(state.Role), UpdatedAt: now},
		{Key: EmailKey, Value: state.Email, UpdatedAt: now},
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entries).Error
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load reads the stored session. Missing keys yield an empty, unauthenticated state.
func (s *Store) Load(ctx context.Context) (State, error) {
	var entries []Entry
	if err := s.db.WithContext(ctx).
		Where("storage_key IN ?", []string{TokenKey, RoleKey, EmailKey}).
		Find(&entries).Error; err != nil {
		return State{}, fmt.Errorf("failed to load session: %w", err)
	}

	var state State
	for _, e := range entries {
		switch e.Key {
		case TokenKey:
			state.Token = e.Value
		case RoleKey:
			state.Role = models.ParseRole(e.Value)
		case EmailKey:
			state.Email = e.Value
		}
	}
	return state, nil
}

// Clear removes the stored token, role and email
func (s *Store) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).
		Where("storage_key IN ?", []string{TokenKey, RoleKey, EmailKey}).
		Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
