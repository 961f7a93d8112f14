package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domain "propledger-backend/internal/domain/property"
	"propledger-backend/pkg/id"
)

func makeProperty(publicID string) *domain.Property {
	return &domain.Property{
		PropertyID:    publicID,
		Name:          "Sunrise Towers 14B",
		Address:       "Sector 45, Gurugram",
		PropertyType:  "apartment",
		CarpetArea:    d("850.50"),
		ExclusiveArea: d("120.25"),
		CommonArea:    d("229.25"),
		SuperArea:     d("1200"),
		FloorNumber:   14,
		Developer:     "Horizon Estates",
		InitialRate:   d("8500"),
		CurrentRate:   d("8500"),
		CurrentPrice:  d("10200000"),
	}
}

func TestPropertyCreateAndGetByPublicID(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	publicID := id.NewID32()
	p := makeProperty(publicID)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByPublicID(ctx, publicID)
	if err != nil {
		t.Fatalf("GetByPublicID: %v", err)
	}
	if got.Name != "Sunrise Towers 14B" || got.FloorNumber != 14 {
		t.Errorf("unexpected property: %+v", got)
	}
	if !got.SuperArea.Equal(d("1200")) {
		t.Errorf("SuperArea round-trip: got %s", got.SuperArea)
	}
	if !got.CurrentPrice.Equal(d("10200000")) {
		t.Errorf("CurrentPrice round-trip: got %s", got.CurrentPrice)
	}
}

func TestPropertySaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	publicID := id.NewID32()
	p := makeProperty(publicID)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.CurrentRate = d("9000")
	p.CurrentPrice = d("10800000")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByPublicID(ctx, publicID)
	if err != nil {
		t.Fatalf("GetByPublicID: %v", err)
	}
	if !got.CurrentPrice.Equal(d("10800000")) {
		t.Errorf("CurrentPrice not updated, got %s", got.CurrentPrice)
	}
}

func TestPropertyGetByPublicID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)

	_, err := repo.GetByPublicID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestPropertyListAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	first := makeProperty(id.NewID32())
	second := makeProperty(id.NewID32())
	second.Name = "Lakeview Villa 7"
	for _, p := range []*domain.Property{first, second} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("List: want insertion order, got %+v", all)
	}

	if err := repo.Delete(ctx, first); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	all, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}
	if len(all) != 1 || all[0].ID != second.ID {
		t.Fatalf("List after delete: got %+v", all)
	}
}
