// Package state persists each store's collection as a JSON document under a
// namespaced key, the local-storage model the stores were designed around.
// Writes are whole-document and last-writer-wins; there is no merge or lock
// beyond the database's own.
package state

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/delphine/shop/internal/domain"
)

type Record struct {
	Key       string `gorm:"primaryKey;size:80"`
	Value     []byte `gorm:"type:blob"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (Record) TableName() string { return "state_records" }

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Migrate() error {
	return r.db.AutoMigrate(&Record{})
}

func (r *Repo) Load(ctx context.Context, key string) ([]byte, error) {
	var rec Record
	if err := r.db.WithContext(ctx).First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec.Value, nil
}

func (r *Repo) Save(ctx context.Context, key string, value []byte) error {
	return r.db.WithContext(ctx).Save(&Record{Key: key, Value: value}).Error
}
