package payslip

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, payslip *ProcessedPayslip) error
	FindAllByUser(ctx context.Context, userID string) ([]ProcessedPayslip, error)
	FindByIDAndUser(ctx context.Context, userID string, id string) (*ProcessedPayslip, error)
	Delete(ctx context.Context, userID string, id string) error
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

func (r *repository) Create(ctx context.Context, payslip *ProcessedPayslip) error {
	return r.db.WithContext(ctx).Create(payslip).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]ProcessedPayslip, error) {
	var payslips []ProcessedPayslip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID string, id string) (*ProcessedPayslip, error) {
	var payslip ProcessedPayslip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&payslip, "id = ?", id).Error
	return &payslip, err
}

func (r *repository) Delete(ctx context.Context, userID string, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&ProcessedPayslip{}, "id = ?", id).Error
}
