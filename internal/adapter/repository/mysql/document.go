package mysql

import (
	"context"

	"gorm.io/gorm"

	documentDomain "propledger-backend/internal/domain/document"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) Save(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DocumentRepository) Delete(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Delete(d).Error
}

func (r *DocumentRepository) GetByPublicID(ctx context.Context, documentID string) (*documentDomain.Document, error) {
	var out documentDomain.Document
	res := r.db.WithContext(ctx).Where("document_id = ?", documentID).First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) List(ctx context.Context, f documentDomain.ListFilter) ([]documentDomain.Document, error) {
	q := r.db.WithContext(ctx)
	if f.EntityKind != "" {
		q = q.Where("entity_type = ?", f.EntityKind)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	var out []documentDomain.Document
	res := q.Order("id DESC").Find(&out)
	return out, res.Error
}
