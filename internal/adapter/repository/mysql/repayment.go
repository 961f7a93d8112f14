package mysql

import (
	"context"

	"gorm.io/gorm"

	repaymentDomain "propledger-backend/internal/domain/repayment"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository { return &RepaymentRepository{db: db} }

func (r *RepaymentRepository) Create(ctx context.Context, rp *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *RepaymentRepository) Save(ctx context.Context, rp *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Save(rp).Error
}

func (r *RepaymentRepository) Delete(ctx context.Context, rp *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Delete(rp).Error
}

func (r *RepaymentRepository) GetByPublicID(ctx context.Context, repaymentID string) (*repaymentDomain.Repayment, error) {
	var out repaymentDomain.Repayment
	res := r.db.WithContext(ctx).Preload("Loan").Preload("Source").
		Where("repayment_id = ?", repaymentID).First(&out)
	return &out, res.Error
}

func (r *RepaymentRepository) List(ctx context.Context, f repaymentDomain.ListFilter) ([]repaymentDomain.Repayment, error) {
	q := r.db.WithContext(ctx).Preload("Loan").Preload("Source")
	if f.LoanID != 0 {
		q = q.Where("loan_id = ?", f.LoanID)
	}
	if f.SourceID != 0 {
		q = q.Where("source_id = ?", f.SourceID)
	}
	if f.FromDate != nil {
		q = q.Where("payment_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("payment_date <= ?", *f.ToDate)
	}
	var out []repaymentDomain.Repayment
	res := q.Order("payment_date DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) ListByLoan(ctx context.Context, loanID uint64) ([]repaymentDomain.Repayment, error) {
	var out []repaymentDomain.Repayment
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).
		Order("payment_date, id").Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) CountBySource(ctx context.Context, sourceID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&repaymentDomain.Repayment{}).
		Where("source_id = ?", sourceID).Count(&n)
	return n, res.Error
}
