package purchase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/property"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/dates"
	"propledger-backend/pkg/id"
)

var ErrHasDependents = errors.New("purchase has loans or invoices attached")

type Usecase struct {
	purchases purchase.Repository
	props     property.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(purchases purchase.Repository, props property.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{purchases: purchases, props: props, uow: tx}
}

type Input struct {
	PropertyID       string          `json:"property_id" validate:"required,hex32"`
	PurchaseDate     string          `json:"purchase_date" validate:"required"`
	RegistrationDate string          `json:"registration_date"`
	PossessionDate   string          `json:"possession_date"`
	Seller           string          `json:"seller"`
	Remarks          string          `json:"remarks"`
	BaseCost         decimal.Decimal `json:"base_cost"`
	OtherCharges     decimal.Decimal `json:"other_charges"`
	IFMS             decimal.Decimal `json:"ifms"`
	LeaseRent        decimal.Decimal `json:"lease_rent"`
	AMC              decimal.Decimal `json:"amc"`
	GST              decimal.Decimal `json:"gst"`
}

type DTO struct {
	PurchaseID       string          `json:"purchase_id"`
	PropertyID       string          `json:"property_id"`
	PropertyName     string          `json:"property_name,omitempty"`
	PurchaseDate     string          `json:"purchase_date"`
	RegistrationDate string          `json:"registration_date,omitempty"`
	PossessionDate   string          `json:"possession_date,omitempty"`
	Seller           string          `json:"seller,omitempty"`
	Remarks          string          `json:"remarks,omitempty"`
	BaseCost         decimal.Decimal `json:"base_cost"`
	OtherCharges     decimal.Decimal `json:"other_charges"`
	IFMS             decimal.Decimal `json:"ifms"`
	LeaseRent        decimal.Decimal `json:"lease_rent"`
	AMC              decimal.Decimal `json:"amc"`
	GST              decimal.Decimal `json:"gst"`
	PropertyCost     decimal.Decimal `json:"property_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalSaleCost    decimal.Decimal `json:"total_sale_cost"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toDTO(p *purchase.Purchase) *DTO {
	d := &DTO{
		PurchaseID:       p.PurchaseID,
		PurchaseDate:     dates.Format(p.PurchaseDate),
		RegistrationDate: dates.FormatOptional(p.RegistrationDate),
		PossessionDate:   dates.FormatOptional(p.PossessionDate),
		Seller:           p.Seller,
		Remarks:          p.Remarks,
		BaseCost:         p.BaseCost,
		OtherCharges:     p.OtherCharges,
		IFMS:             p.IFMS,
		LeaseRent:        p.LeaseRent,
		AMC:              p.AMC,
		GST:              p.GST,
		PropertyCost:     p.PropertyCost,
		TotalCost:        p.TotalCost,
		TotalSaleCost:    p.TotalSaleCost,
		CreatedAt:        p.CreatedAt,
	}
	if p.Property != nil {
		d.PropertyID = p.Property.PropertyID
		d.PropertyName = p.Property.Name
	}
	return d
}

func (u *Usecase) apply(p *purchase.Purchase, in Input) error {
	pd, err := dates.Parse(in.PurchaseDate)
	if err != nil {
		return err
	}
	rd, err := dates.ParseOptional(in.RegistrationDate)
	if err != nil {
		return err
	}
	od, err := dates.ParseOptional(in.PossessionDate)
	if err != nil {
		return err
	}
	p.PurchaseDate = pd
	p.RegistrationDate = rd
	p.PossessionDate = od
	p.Seller = in.Seller
	p.Remarks = in.Remarks
	p.BaseCost = in.BaseCost
	p.OtherCharges = in.OtherCharges
	p.IFMS = in.IFMS
	p.LeaseRent = in.LeaseRent
	p.AMC = in.AMC
	p.GST = in.GST
	return p.ApplyCosts()
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	prop, err := u.props.GetByPublicID(ctx, in.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, property.ErrNotFound
		}
		return nil, err
	}
	p := &purchase.Purchase{
		PurchaseID: id.NewID32(),
		PropertyID: prop.ID,
		Property:   prop,
	}
	if err := u.apply(p, in); err != nil {
		return nil, err
	}
	if err := u.purchases.Create(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, purchaseID string) (*DTO, error) {
	p, err := u.purchases.GetByPublicID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrNotFound
		}
		return nil, err
	}
	return toDTO(p), nil
}

// List filters by the property's public id when one is given.
func (u *Usecase) List(ctx context.Context, propertyID string) ([]DTO, error) {
	var f purchase.ListFilter
	if propertyID != "" {
		prop, err := u.props.GetByPublicID(ctx, propertyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, property.ErrNotFound
			}
			return nil, err
		}
		f.PropertyID = prop.ID
	}
	ps, err := u.purchases.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]DTO, 0, len(ps))
	for i := range ps {
		out = append(out, *toDTO(&ps[i]))
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, purchaseID string, in Input) (*DTO, error) {
	p, err := u.purchases.GetByPublicID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrNotFound
		}
		return nil, err
	}
	// the owning property is fixed at creation; property_id changes are ignored
	if err := u.apply(p, in); err != nil {
		return nil, err
	}
	if err := u.purchases.Save(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// Delete runs the dependency check and the delete in one transaction so a
// loan or invoice created concurrently cannot be orphaned.
func (u *Usecase) Delete(ctx context.Context, purchaseID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Purchases.GetByPublicID(ctx, purchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return purchase.ErrNotFound
			}
			return err
		}
		ls, err := r.Loans.List(ctx, loan.ListFilter{PurchaseID: p.ID})
		if err != nil {
			return err
		}
		is, err := r.Invoices.ListByPurchase(ctx, p.ID)
		if err != nil {
			return err
		}
		if len(ls) > 0 || len(is) > 0 {
			return ErrHasDependents
		}
		return r.Purchases.Delete(ctx, p)
	})
}
