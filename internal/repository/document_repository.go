package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppDocument is one durable key-value entry. The whole app state lives under
// a single key; a handful of secondary keys hold the credential directory and
// UI settings.
type AppDocument struct {
	Key       string         `gorm:"type:varchar(255);primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for AppDocument
func (AppDocument) TableName() string {
	return "app_documents"
}

// DocumentRepository defines the interface for durable key-value access
type DocumentRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// documentRepositoryImpl is the GORM implementation of DocumentRepository
type documentRepositoryImpl struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new instance of DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

// Get reads the value stored under key. Returns gorm.ErrRecordNotFound when
// the key is absent.
func (r *documentRepositoryImpl) Get(ctx context.Context, key string) ([]byte, error) {
	var doc AppDocument
	if err := r.db.WithContext(ctx).First(&doc, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return []byte(doc.Value), nil
}

// Put overwrites the value stored under key (last write wins).
func (r *documentRepositoryImpl) Put(ctx context.Context, key string, value []byte) error {
	doc := AppDocument{Key: key, Value: datatypes.JSON(value)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&doc).Error
}

// Delete removes the key. Deleting an absent key is not an error.
func (r *documentRepositoryImpl) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&AppDocument{}, "key = ?", key).Error
}
