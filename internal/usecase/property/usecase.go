package property

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propledger-backend/internal/domain/property"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/id"
)

type Usecase struct {
	props property.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(props property.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{props: props, uow: tx}
}

type Input struct {
	Name           string          `json:"name" validate:"required"`
	Address        string          `json:"address"`
	PropertyType   string          `json:"property_type"`
	CarpetArea     decimal.Decimal `json:"carpet_area"`
	ExclusiveArea  decimal.Decimal `json:"exclusive_area"`
	CommonArea     decimal.Decimal `json:"common_area"`
	FloorNumber    int             `json:"floor_number"`
	ParkingDetails string          `json:"parking_details"`
	Developer      string          `json:"developer"`
	ReraID         string          `json:"rera_id"`
	InitialRate    decimal.Decimal `json:"initial_rate"`
	CurrentRate    decimal.Decimal `json:"current_rate"`
}

type DTO struct {
	PropertyID     string          `json:"property_id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	PropertyType   string          `json:"property_type"`
	CarpetArea     decimal.Decimal `json:"carpet_area"`
	ExclusiveArea  decimal.Decimal `json:"exclusive_area"`
	CommonArea     decimal.Decimal `json:"common_area"`
	SuperArea      decimal.Decimal `json:"super_area"`
	FloorNumber    int             `json:"floor_number"`
	ParkingDetails string          `json:"parking_details"`
	Developer      string          `json:"developer"`
	ReraID         string          `json:"rera_id"`
	InitialRate    decimal.Decimal `json:"initial_rate"`
	CurrentRate    decimal.Decimal `json:"current_rate"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toDTO(p *property.Property) *DTO {
	return &DTO{
		PropertyID:     p.PropertyID,
		Name:           p.Name,
		Address:        p.Address,
		PropertyType:   p.PropertyType,
		CarpetArea:     p.CarpetArea,
		ExclusiveArea:  p.ExclusiveArea,
		CommonArea:     p.CommonArea,
		SuperArea:      p.SuperArea,
		FloorNumber:    p.FloorNumber,
		ParkingDetails: p.ParkingDetails,
		Developer:      p.Developer,
		ReraID:         p.ReraID,
		InitialRate:    p.InitialRate,
		CurrentRate:    p.CurrentRate,
		CurrentPrice:   p.CurrentPrice,
		CreatedAt:      p.CreatedAt,
	}
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	p := &property.Property{
		PropertyID:     id.NewID32(),
		Name:           in.Name,
		Address:        in.Address,
		PropertyType:   in.PropertyType,
		CarpetArea:     in.CarpetArea,
		ExclusiveArea:  in.ExclusiveArea,
		CommonArea:     in.CommonArea,
		FloorNumber:    in.FloorNumber,
		ParkingDetails: in.ParkingDetails,
		Developer:      in.Developer,
		ReraID:         in.ReraID,
		InitialRate:    in.InitialRate,
		CurrentRate:    in.CurrentRate,
	}
	if err := p.Derive(); err != nil {
		return nil, err
	}
	if err := u.props.Create(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, propertyID string) (*DTO, error) {
	p, err := u.props.GetByPublicID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, property.ErrNotFound
		}
		return nil, err
	}
	return toDTO(p), nil
}

func (u *Usecase) List(ctx context.Context) ([]DTO, error) {
	ps, err := u.props.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DTO, 0, len(ps))
	for i := range ps {
		out = append(out, *toDTO(&ps[i]))
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, propertyID string, in Input) (*DTO, error) {
	p, err := u.props.GetByPublicID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, property.ErrNotFound
		}
		return nil, err
	}
	p.Name = in.Name
	p.Address = in.Address
	p.PropertyType = in.PropertyType
	p.CarpetArea = in.CarpetArea
	p.ExclusiveArea = in.ExclusiveArea
	p.CommonArea = in.CommonArea
	p.FloorNumber = in.FloorNumber
	p.ParkingDetails = in.ParkingDetails
	p.Developer = in.Developer
	p.ReraID = in.ReraID
	p.InitialRate = in.InitialRate
	p.CurrentRate = in.CurrentRate
	if err := p.Derive(); err != nil {
		return nil, err
	}
	if err := u.props.Save(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// Delete runs the purchase-reference check and the delete in one transaction
// so a purchase created concurrently cannot be orphaned.
func (u *Usecase) Delete(ctx context.Context, propertyID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Properties.GetByPublicID(ctx, propertyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return property.ErrNotFound
			}
			return err
		}
		n, err := r.Purchases.CountByProperty(ctx, p.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return property.ErrHasPurchases
		}
		return r.Properties.Delete(ctx, p)
	})
}
