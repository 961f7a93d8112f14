package document

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrUnknownEntity = errors.New("unknown document entity kind")
	ErrDanglingRef   = errors.New("referenced entity does not exist")
)

// EntityKind tags which table a document is attached to. New kinds need an
// existence check wired into the document usecase.
type EntityKind string

const (
	KindProperty  EntityKind = "property"
	KindPurchase  EntityKind = "purchase"
	KindLoan      EntityKind = "loan"
	KindRepayment EntityKind = "loan_repayment"
)

func (k EntityKind) Valid() bool {
	switch k {
	case KindProperty, KindPurchase, KindLoan, KindRepayment:
		return true
	}
	return false
}

type Document struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	DocumentID string `gorm:"column:document_id;type:char(32);not null;uniqueIndex:ux_documents_document_id" json:"document_id"`

	// Tagged reference: kind selects the table, entity_id is that entity's
	// public id. Existence is validated at write time.
	EntityKind EntityKind `gorm:"column:entity_type;size:32;not null;index:idx_documents_entity,priority:1" json:"entity_type"`
	EntityID   string     `gorm:"column:entity_id;type:char(32);not null;index:idx_documents_entity,priority:2" json:"entity_id"`

	FilePath string          `gorm:"column:file_path;size:512;not null" json:"file_path"`
	Metadata json.RawMessage `gorm:"column:doc_metadata;type:json" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
