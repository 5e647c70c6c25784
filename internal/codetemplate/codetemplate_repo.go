package codetemplate

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, tmpl *CodeTemplate) error
	FindAllByUser(ctx context.Context, userID string) ([]CodeTemplate, error)
	FindByIDAndUser(ctx context.Context, userID, id string) (*CodeTemplate, error)
	Update(ctx context.Context, tmpl *CodeTemplate) error
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

func (r *repository) Create(ctx context.Context, tmpl *CodeTemplate) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]CodeTemplate, error) {
	var tmpls []CodeTemplate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&tmpls).Error
	return tmpls, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID, id string) (*CodeTemplate, error) {
	var tmpl CodeTemplate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *repository) Update(ctx context.Context, tmpl *CodeTemplate) error {
	return r.db.WithContext(ctx).Save(tmpl).Error
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&CodeTemplate{}).Error
}
