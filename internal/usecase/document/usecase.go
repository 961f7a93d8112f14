package document

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"propledger-backend/internal/domain/document"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/id"
)

type Usecase struct {
	documents document.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(documents document.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{documents: documents, uow: tx}
}

type Input struct {
	EntityType string          `json:"entity_type" validate:"required"`
	EntityID   string          `json:"entity_id" validate:"required,hex32"`
	FilePath   string          `json:"file_path" validate:"required"`
	Metadata   json.RawMessage `json:"metadata"`
}

type DTO struct {
	DocumentID string          `json:"document_id"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	FilePath   string          `json:"file_path"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toDTO(d *document.Document) *DTO {
	return &DTO{
		DocumentID: d.DocumentID,
		EntityType: string(d.EntityKind),
		EntityID:   d.EntityID,
		FilePath:   d.FilePath,
		Metadata:   d.Metadata,
		CreatedAt:  d.CreatedAt,
	}
}

// checkRef verifies the referenced entity exists. Documents never dangle.
func checkRef(ctx context.Context, r uow.Repos, kind document.EntityKind, entityID string) error {
	var err error
	switch kind {
	case document.KindProperty:
		_, err = r.Properties.GetByPublicID(ctx, entityID)
	case document.KindPurchase:
		_, err = r.Purchases.GetByPublicID(ctx, entityID)
	case document.KindLoan:
		_, err = r.Loans.GetByPublicID(ctx, entityID)
	case document.KindRepayment:
		_, err = r.Repayments.GetByPublicID(ctx, entityID)
	default:
		return document.ErrUnknownEntity
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return document.ErrDanglingRef
	}
	return err
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	kind := document.EntityKind(in.EntityType)
	if !kind.Valid() {
		return nil, document.ErrUnknownEntity
	}

	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := checkRef(ctx, r, kind, in.EntityID); err != nil {
			return err
		}
		d := &document.Document{
			DocumentID: id.NewID32(),
			EntityKind: kind,
			EntityID:   in.EntityID,
			FilePath:   in.FilePath,
			Metadata:   in.Metadata,
		}
		if err := r.Documents.Create(ctx, d); err != nil {
			return err
		}
		dto = toDTO(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, documentID string) (*DTO, error) {
	d, err := u.documents.GetByPublicID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, document.ErrNotFound
		}
		return nil, err
	}
	return toDTO(d), nil
}

func (u *Usecase) List(ctx context.Context, entityType, entityID string) ([]DTO, error) {
	var f document.ListFilter
	if entityType != "" {
		f.EntityKind = document.EntityKind(entityType)
		if !f.EntityKind.Valid() {
			return nil, document.ErrUnknownEntity
		}
	}
	f.EntityID = entityID
	ds, err := u.documents.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]DTO, 0, len(ds))
	for i := range ds {
		out = append(out, *toDTO(&ds[i]))
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, documentID string, in Input) (*DTO, error) {
	kind := document.EntityKind(in.EntityType)
	if !kind.Valid() {
		return nil, document.ErrUnknownEntity
	}

	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Documents.GetByPublicID(ctx, documentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return document.ErrNotFound
			}
			return err
		}
		if err := checkRef(ctx, r, kind, in.EntityID); err != nil {
			return err
		}
		d.EntityKind = kind
		d.EntityID = in.EntityID
		d.FilePath = in.FilePath
		d.Metadata = in.Metadata
		if err := r.Documents.Save(ctx, d); err != nil {
			return err
		}
		dto = toDTO(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Delete(ctx context.Context, documentID string) error {
	d, err := u.documents.GetByPublicID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return document.ErrNotFound
		}
		return err
	}
	return u.documents.Delete(ctx, d)
}
