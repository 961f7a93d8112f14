package mysql

import (
	"context"

	"gorm.io/gorm"

	sourceDomain "propledger-backend/internal/domain/source"
)

type SourceRepository struct{ db *gorm.DB }

func NewSourceRepository(db *gorm.DB) *SourceRepository { return &SourceRepository{db: db} }

func (r *SourceRepository) Create(ctx context.Context, s *sourceDomain.Source) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SourceRepository) Save(ctx context.Context, s *sourceDomain.Source) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SourceRepository) Delete(ctx context.Context, s *sourceDomain.Source) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

func (r *SourceRepository) GetByPublicID(ctx context.Context, sourceID string) (*sourceDomain.Source, error) {
	var out sourceDomain.Source
	res := r.db.WithContext(ctx).Where("source_id = ?", sourceID).First(&out)
	return &out, res.Error
}

func (r *SourceRepository) GetByLoan(ctx context.Context, loanID uint64) (*sourceDomain.Source, error) {
	var out sourceDomain.Source
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND source_type = ?", loanID, sourceDomain.TypeLoan).
		First(&out)
	return &out, res.Error
}

func (r *SourceRepository) List(ctx context.Context) ([]sourceDomain.Source, error) {
	var out []sourceDomain.Source
	res := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, res.Error
}
