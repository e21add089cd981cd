// Package postgres persists users in PostgreSQL using GORM. Conditional
// create/update semantics are expressed with ON CONFLICT DO NOTHING and
// affected-row checks so the gateway contract matches the DynamoDB adapter.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/user-service/internal/users/domain"
	"github.com/Apurer/user-service/internal/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the PostgreSQL-backed user storage gateway.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&userRecord{})
	}
	return repo
}

type userRecord struct {
	ID        string         `gorm:"primaryKey;column:id"`
	FirstName string         `gorm:"column:first_name"`
	LastName  string         `gorm:"column:last_name"`
	Emails    pq.StringArray `gorm:"column:emails;type:text[]"`
	DOB       string         `gorm:"column:dob"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Create inserts the user only when the id is free.
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	record := toRecord(user)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrAlreadyExists
	}
	return nil
}

// Get fetches a user by id.
func (r *Repository) Get(ctx context.Context, id string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update replaces the stored row only when it still exists.
func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(user)
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"first_name": record.FirstName,
			"last_name":  record.LastName,
			"emails":     record.Emails,
			"dob":        record.DOB,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.Get(ctx, user.ID)
}

// Delete removes the row if present; absent ids are not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRecord{}).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Emails:    pq.StringArray(user.Emails),
		DOB:       user.DOB,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Emails:    []string(r.Emails),
		DOB:       r.DOB,
	}
}
