package codegroup

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, group *CodeGroup) error
	FindAllByUser(ctx context.Context, userID string) ([]CodeGroup, error)
	FindByIDAndUser(ctx context.Context, userID, id string) (*CodeGroup, error)
	Update(ctx context.Context, group *CodeGroup) error
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction so writes
// commit and roll back together with the rest of the unit of work.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, group *CodeGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]CodeGroup, error) {
	var groups []CodeGroup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&groups).Error
	return groups, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID, id string) (*CodeGroup, error) {
	var group CodeGroup
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) Update(ctx context.Context, group *CodeGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&CodeGroup{}).Error
}
